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

package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"

	"github.com/tochemey/pulse/actor"
	gerrors "github.com/tochemey/pulse/errors"
)

// minimumWait is the shortest blocking pop. Redis reads a zero timeout as forever.
const minimumWait = time.Millisecond

// route pushes envelopes to a mailbox list
type route struct {
	key       string
	tombstone string
	transport *Transport
}

var _ actor.Route = (*route)(nil)

func (x *route) Put(ctx context.Context, envelope *actor.Envelope) error {
	if x.IsClosed() {
		return gerrors.ErrMailboxClosed
	}

	data, err := x.transport.codec.Encode(envelope)
	if err != nil {
		return err
	}

	pushed, err := pushScript.Run(ctx, x.transport.client, []string{x.key, x.tombstone}, data).Int64()
	if err != nil {
		return err
	}

	if pushed == 0 {
		return gerrors.ErrMailboxClosed
	}
	return nil
}

// IsClosed reports the state of the local client. A closed remote mailbox is
// detected on Put through its tombstone.
func (x *route) IsClosed() bool {
	return !x.transport.connected.Load()
}

// Mailbox is a process-safe mailbox backed by a Redis list
type Mailbox struct {
	route  *route
	closed *atomic.Bool
}

var _ actor.Mailbox = (*Mailbox)(nil)

// Key returns the list key of the mailbox
func (x *Mailbox) Key() string {
	return x.route.key
}

// Put appends the envelope to the mailbox list
func (x *Mailbox) Put(ctx context.Context, envelope *actor.Envelope) error {
	if x.closed.Load() {
		return gerrors.ErrMailboxClosed
	}
	return x.route.Put(ctx, envelope)
}

// Get pops the head of the list, waiting at most timeout.
//
// Waits below one second are issued as a raw BLPOP because the typed helper
// rounds them up to a full second.
func (x *Mailbox) Get(ctx context.Context, timeout time.Duration) (*actor.Envelope, error) {
	if x.IsClosed() {
		return nil, gerrors.ErrMailboxClosed
	}

	if timeout <= 0 {
		timeout = actor.InboxTimeout
	}
	timeout = max(timeout, minimumWait)

	client := x.route.transport.client
	var (
		values []string
		err    error
	)

	if timeout >= time.Second {
		values, err = client.BLPop(ctx, timeout, x.route.key).Result()
	} else {
		seconds := strconv.FormatFloat(timeout.Seconds(), 'f', 3, 64)
		values, err = client.Do(ctx, "BLPOP", x.route.key, seconds).StringSlice()
	}

	if err != nil {
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(err, redis.Nil):
			return nil, gerrors.ErrMailboxEmpty
		case errors.Is(err, redis.ErrClosed):
			return nil, gerrors.ErrMailboxClosed
		default:
			return nil, err
		}
	}

	// BLPOP answers with the key and the value
	if len(values) != 2 {
		return nil, fmt.Errorf("unexpected BLPOP reply of size %d", len(values))
	}

	envelope, err := x.route.transport.codec.Decode([]byte(values[1]))
	if err != nil {
		return nil, fmt.Errorf("failed to decode envelope from %s: %w", x.route.key, err)
	}
	return envelope, nil
}

// Len returns the length of the mailbox list
func (x *Mailbox) Len() int64 {
	if x.IsClosed() {
		return 0
	}

	size, err := x.route.transport.client.LLen(context.Background(), x.route.key).Result()
	if err != nil {
		return 0
	}
	return size
}

// IsClosed returns true when the mailbox or its client is closed
func (x *Mailbox) IsClosed() bool {
	return x.closed.Load() || x.route.IsClosed()
}

// Close writes the tombstone and deletes the list. Envelopes not yet consumed are dropped.
func (x *Mailbox) Close() error {
	if !x.closed.CompareAndSwap(false, true) {
		return nil
	}

	if x.route.IsClosed() {
		return nil
	}

	ctx := context.Background()
	ttl := x.route.transport.config.ClosedTTL
	_, err := x.route.transport.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, x.route.tombstone, 1, ttl)
		pipe.Del(ctx, x.route.key)
		return nil
	})
	return err
}
