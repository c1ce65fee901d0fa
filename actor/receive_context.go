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

	"github.com/tochemey/pulse/log"
)

// ReceiveContext carries a single envelope to its handler.
//
// It is created by the dispatch loop for each envelope and is only valid for
// the duration of the handler call. Do not retain it.
type ReceiveContext struct {
	ctx      context.Context
	self     *Actor
	caller   *Link
	envelope *Envelope
}

func newReceiveContext(ctx context.Context, self *Actor, caller *Link, envelope *Envelope) *ReceiveContext {
	return &ReceiveContext{ctx: ctx, self: self, caller: caller, envelope: envelope}
}

// Context returns the tick context.
func (x *ReceiveContext) Context() context.Context {
	return x.ctx
}

// Self returns the actor handling the envelope.
func (x *ReceiveContext) Self() *Actor {
	return x.self
}

// Caller returns the resolved sender.
// It is nil when the sender is unknown, which only happens while the actor drains its mailbox on shutdown.
func (x *ReceiveContext) Caller() *Link {
	return x.caller
}

// Name returns the message name.
func (x *ReceiveContext) Name() string {
	return x.envelope.Name
}

// Args returns the positional payload.
func (x *ReceiveContext) Args() []any {
	return x.envelope.Args
}

// Arg returns the positional argument at index i or nil.
func (x *ReceiveContext) Arg(i int) any {
	return x.envelope.Arg(i)
}

// Kwargs returns the named payload.
func (x *ReceiveContext) Kwargs() Kwargs {
	return x.envelope.Kwargs
}

// Envelope returns the envelope being handled.
func (x *ReceiveContext) Envelope() *Envelope {
	return x.envelope
}

// Logger returns the actor logger.
func (x *ReceiveContext) Logger() log.Logger {
	return x.self.Logger()
}
