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

package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/atomic"

	"github.com/tochemey/pulse/actor"
	gerrors "github.com/tochemey/pulse/errors"
)

// route publishes envelopes to a mailbox subject
type route struct {
	subject   string
	transport *Transport
}

var _ actor.Route = (*route)(nil)

func (x *route) Put(_ context.Context, envelope *actor.Envelope) error {
	if x.IsClosed() {
		return gerrors.ErrMailboxClosed
	}

	data, err := x.transport.codec.Encode(envelope)
	if err != nil {
		return err
	}
	return x.transport.publish(x.subject, data)
}

// IsClosed reports the state of the local connection. NATS cannot tell whether
// the remote mailbox is still subscribed.
func (x *route) IsClosed() bool {
	return x.transport.isClosed()
}

// Mailbox is a process-safe mailbox backed by a synchronous NATS subscription
type Mailbox struct {
	route        *route
	subscription *nats.Subscription
	closed       *atomic.Bool
}

var _ actor.Mailbox = (*Mailbox)(nil)

// Subject returns the subject the mailbox listens on
func (x *Mailbox) Subject() string {
	return x.route.subject
}

// Put publishes the envelope to the mailbox subject
func (x *Mailbox) Put(ctx context.Context, envelope *actor.Envelope) error {
	if x.closed.Load() {
		return gerrors.ErrMailboxClosed
	}
	return x.route.Put(ctx, envelope)
}

// Get waits at most timeout for the next envelope
func (x *Mailbox) Get(ctx context.Context, timeout time.Duration) (*actor.Envelope, error) {
	if x.IsClosed() {
		return nil, gerrors.ErrMailboxClosed
	}

	if timeout <= 0 {
		timeout = actor.InboxTimeout
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg, err := x.subscription.NextMsgWithContext(waitCtx)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, nats.ErrTimeout):
			return nil, gerrors.ErrMailboxEmpty
		case errors.Is(err, nats.ErrBadSubscription), errors.Is(err, nats.ErrConnectionClosed):
			return nil, gerrors.ErrMailboxClosed
		default:
			return nil, err
		}
	}

	envelope, err := x.route.transport.codec.Decode(msg.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode envelope from %s: %w", x.route.subject, err)
	}
	return envelope, nil
}

// Len returns the number of envelopes received and not yet consumed
func (x *Mailbox) Len() int64 {
	if x.closed.Load() {
		return 0
	}
	pending, _, err := x.subscription.Pending()
	if err != nil {
		return 0
	}
	return int64(pending)
}

// IsClosed returns true when the mailbox or its connection is closed
func (x *Mailbox) IsClosed() bool {
	return x.closed.Load() || x.route.IsClosed()
}

// Close unsubscribes from the mailbox subject. Envelopes not yet consumed are dropped.
func (x *Mailbox) Close() error {
	if !x.closed.CompareAndSwap(false, true) {
		return nil
	}

	if x.route.IsClosed() {
		return nil
	}

	if err := x.subscription.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrBadSubscription) {
		return err
	}
	return nil
}
