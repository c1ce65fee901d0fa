// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import (
	"time"

	"go.uber.org/atomic"
)

// Link is a non-owning reference to another actor held in a link registry.
// It never controls the lifetime of the actor it references.
type Link struct {
	proxy    Proxy
	notified *atomic.Time
}

// NewLink creates a Link for the given proxy.
func NewLink(proxy Proxy) *Link {
	return &Link{proxy: proxy, notified: atomic.NewTime(time.Time{})}
}

// ID returns the linked actor id.
func (x *Link) ID() string {
	return x.proxy.ID()
}

// Proxy returns the linked actor proxy.
func (x *Link) Proxy() Proxy {
	return x.proxy
}

// Notified returns the time carried by the last heartbeat the linked actor sent.
// It is the zero time until the first heartbeat.
func (x *Link) Notified() time.Time {
	return x.notified.Load()
}

func (x *Link) setNotified(t time.Time) {
	x.notified.Store(t)
}
