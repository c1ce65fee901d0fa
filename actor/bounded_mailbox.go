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
	stderrors "errors"
	"time"

	gods "github.com/Workiva/go-datastructures/queue"

	"github.com/tochemey/pulse/errors"
)

// BoundedMailbox is a fixed capacity mailbox backed by a ring buffer.
//
// Put never blocks: it returns errors.ErrMailboxFull when the buffer is at
// capacity. This is the only flow control the runtime offers.
type BoundedMailbox struct {
	underlying *gods.RingBuffer
}

// enforce compilation error
var _ Mailbox = (*BoundedMailbox)(nil)

// NewBoundedMailbox creates a BoundedMailbox. The ring buffer rounds the
// capacity up to the next power of two.
func NewBoundedMailbox(capacity int) *BoundedMailbox {
	return &BoundedMailbox{underlying: gods.NewRingBuffer(uint64(capacity))}
}

// Put enqueues the envelope or fails when the mailbox is full.
func (mailbox *BoundedMailbox) Put(_ context.Context, envelope *Envelope) error {
	ok, err := mailbox.underlying.Offer(envelope)
	if err != nil {
		return errors.ErrMailboxClosed
	}
	if !ok {
		return errors.ErrMailboxFull
	}
	return nil
}

// Get polls the ring buffer for at most timeout.
func (mailbox *BoundedMailbox) Get(ctx context.Context, timeout time.Duration) (*Envelope, error) {
	if mailbox.underlying.IsDisposed() {
		return nil, errors.ErrMailboxClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// a zero timeout means wait forever for the ring buffer
	if timeout <= 0 {
		timeout = InboxTimeout
	}

	item, err := mailbox.underlying.Poll(timeout)
	if err != nil {
		switch {
		case stderrors.Is(err, gods.ErrTimeout):
			return nil, errors.ErrMailboxEmpty
		case stderrors.Is(err, gods.ErrDisposed):
			return nil, errors.ErrMailboxClosed
		default:
			return nil, err
		}
	}

	envelope, ok := item.(*Envelope)
	if !ok {
		return nil, errors.NewErrInvalidEnvelope(stderrors.New("unexpected mailbox item"))
	}
	return envelope, nil
}

// Len returns the number of queued envelopes.
func (mailbox *BoundedMailbox) Len() int64 {
	return int64(mailbox.underlying.Len())
}

// Cap returns the capacity of the ring buffer.
func (mailbox *BoundedMailbox) Cap() int64 {
	return int64(mailbox.underlying.Cap())
}

// IsClosed reports whether the mailbox has been closed.
func (mailbox *BoundedMailbox) IsClosed() bool {
	return mailbox.underlying.IsDisposed()
}

// Close disposes the ring buffer and unblocks a waiting Get.
func (mailbox *BoundedMailbox) Close() error {
	mailbox.underlying.Dispose()
	return nil
}
