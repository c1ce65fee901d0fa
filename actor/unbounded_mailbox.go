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
	"sync"
	"sync/atomic"
	"time"

	"github.com/tochemey/pulse/errors"
)

type mpscNode struct {
	next atomic.Pointer[mpscNode]
	data *Envelope
}

var mpscNodePool = sync.Pool{New: func() any { return new(mpscNode) }}

// UnboundedMailbox is the default in-process mailbox.
//
// Producers append through a lock-free MPSC queue and wake the consumer
// through a one slot signal channel, so a Get waiting for InboxTimeout
// returns as soon as an envelope lands.
type UnboundedMailbox struct {
	head  atomic.Pointer[mpscNode] // consumer only
	_pad1 [64]byte
	tail  atomic.Pointer[mpscNode] // producers only
	_pad2 [64]byte

	length    atomic.Int64
	signal    chan struct{}
	closed    atomic.Bool
	closing   chan struct{}
	closeOnce sync.Once
}

// enforce compilation error
var _ Mailbox = (*UnboundedMailbox)(nil)

// NewUnboundedMailbox creates an UnboundedMailbox.
func NewUnboundedMailbox() *UnboundedMailbox {
	dummy := mpscNodePool.Get().(*mpscNode)
	dummy.next.Store(nil)
	dummy.data = nil
	m := &UnboundedMailbox{
		signal:  make(chan struct{}, 1),
		closing: make(chan struct{}),
	}
	m.head.Store(dummy)
	m.tail.Store(dummy)
	return m
}

// Put appends the envelope. Never blocks.
func (m *UnboundedMailbox) Put(_ context.Context, envelope *Envelope) error {
	if m.closed.Load() {
		return errors.ErrMailboxClosed
	}

	n := mpscNodePool.Get().(*mpscNode)
	n.data = envelope
	prev := m.tail.Swap(n)
	prev.next.Store(n)
	m.length.Add(1)

	select {
	case m.signal <- struct{}{}:
	default:
	}
	return nil
}

// Get pops the oldest envelope, waiting at most timeout for one to arrive.
func (m *UnboundedMailbox) Get(ctx context.Context, timeout time.Duration) (*Envelope, error) {
	if m.closed.Load() {
		return nil, errors.ErrMailboxClosed
	}

	if envelope := m.dequeue(); envelope != nil {
		return envelope, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-m.signal:
			if envelope := m.dequeue(); envelope != nil {
				return envelope, nil
			}
		case <-timer.C:
			if envelope := m.dequeue(); envelope != nil {
				return envelope, nil
			}
			return nil, errors.ErrMailboxEmpty
		case <-m.closing:
			return nil, errors.ErrMailboxClosed
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Len returns the number of queued envelopes.
func (m *UnboundedMailbox) Len() int64 {
	return m.length.Load()
}

// IsClosed reports whether Close has been called.
func (m *UnboundedMailbox) IsClosed() bool {
	return m.closed.Load()
}

// Close marks the mailbox closed and wakes a waiting consumer.
// Envelopes still queued are released.
func (m *UnboundedMailbox) Close() error {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		close(m.closing)
	})
	return nil
}

func (m *UnboundedMailbox) dequeue() *Envelope {
	head := m.head.Load()
	next := head.next.Load()
	if next == nil {
		return nil
	}

	m.head.Store(next)
	value := next.data
	next.data = nil

	head.next.Store(nil)
	mpscNodePool.Put(head)
	m.length.Add(-1)
	return value
}
