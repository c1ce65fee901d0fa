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
	"time"
)

// Route is the enqueue capability a Proxy carries.
// Implementations must be safe for concurrent producers.
type Route interface {
	// Put enqueues the envelope. It never blocks waiting for the consumer.
	Put(ctx context.Context, envelope *Envelope) error
	// IsClosed reports whether the underlying mailbox has been closed.
	IsClosed() bool
}

// Mailbox is the queue an actor consumes its envelopes from.
//
// The actor is the single consumer: Get is only called from the goroutine
// running the actor's scheduler. Get waits at most timeout and returns
// errors.ErrMailboxEmpty when nothing arrived, errors.ErrMailboxClosed once
// Close has been called. Ordering is FIFO.
type Mailbox interface {
	Route
	Get(ctx context.Context, timeout time.Duration) (*Envelope, error)
	// Len returns a snapshot of the number of queued envelopes
	Len() int64
	// Close releases the mailbox. It is idempotent.
	Close() error
}
