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
	"context"
	"encoding/json"
	"fmt"

	"github.com/tochemey/pulse/errors"
)

// Proxy addresses an actor: its id plus the route into its mailbox.
//
// A Proxy is an immutable value, safe to copy between goroutines. It is the
// only form of an actor that may cross a process boundary: it serializes to
// {"aid": "..."} and the receiving side binds it to a route of its own with Bind.
type Proxy struct {
	id    string
	route Route
}

// NewProxy creates a Proxy for the given actor id and route.
func NewProxy(id string, route Route) Proxy {
	return Proxy{id: id, route: route}
}

// ID returns the actor id.
func (x Proxy) ID() string {
	return x.id
}

// IsZero reports whether the proxy addresses nothing.
func (x Proxy) IsZero() bool {
	return x.id == ""
}

// Bind returns a copy of the proxy using the given route.
func (x Proxy) Bind(route Route) Proxy {
	return Proxy{id: x.id, route: route}
}

// Routable reports whether the proxy carries a route.
func (x Proxy) Routable() bool {
	return x.route != nil
}

// IsAlive reports whether the addressed mailbox still accepts envelopes.
func (x Proxy) IsAlive() bool {
	return x.route != nil && !x.route.IsClosed()
}

// Deliver enqueues the envelope into the addressed mailbox.
func (x Proxy) Deliver(ctx context.Context, envelope *Envelope) error {
	if x.route == nil {
		return errors.ErrUnroutable
	}

	if err := envelope.Validate(); err != nil {
		return err
	}

	if x.route.IsClosed() {
		return errors.ErrDead
	}
	return x.route.Put(ctx, envelope)
}

// Equals reports whether both proxies address the same actor.
func (x Proxy) Equals(other Proxy) bool {
	return x.id == other.id
}

// String returns the actor id.
func (x Proxy) String() string {
	return fmt.Sprintf("proxy(%s)", x.id)
}

type proxyWire struct {
	AID string `json:"aid"`
}

// MarshalJSON encodes the proxy identity only. Routes never travel.
func (x Proxy) MarshalJSON() ([]byte, error) {
	return json.Marshal(proxyWire{AID: x.id})
}

// UnmarshalJSON decodes a proxy identity. The result has no route until bound.
func (x *Proxy) UnmarshalJSON(data []byte) error {
	var wire proxyWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	x.id = wire.AID
	x.route = nil
	return nil
}
