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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/pulse/log"
)

// fakeClock is advanced by hand. Ticks run on the test goroutine only.
type fakeClock struct {
	now time.Time
}

func (x *fakeClock) Now() time.Time {
	return x.now
}

func (x *fakeClock) Advance(d time.Duration) {
	x.now = x.now.Add(d)
}

func newSupervisedActor(t *testing.T, kind Kind, timeout time.Duration, arbiter Proxy, clock *fakeClock) *Actor {
	t.Helper()
	a, err := New(testImpl(kind, timeout, NewUnboundedMailbox(), func() Scheduler { return newStubScheduler() }),
		WithLogger(log.DiscardLogger),
		WithArbiter(arbiter),
		WithClock(clock.Now))
	require.NoError(t, err)
	return a
}

func notifications(mailbox Mailbox) []*Envelope {
	var out []*Envelope
	for _, envelope := range received(mailbox) {
		if envelope.Name == MessageNotify {
			out = append(out, envelope)
		}
	}
	return out
}

func TestHeartbeat(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("With timeout debouncing notify to the tolerance window", func(t *testing.T) {
		arbiter := newPeer()
		clock := &fakeClock{now: start}
		a := newSupervisedActor(t, KindThread, 10*time.Second, arbiter.proxy(), clock)
		require.Equal(t, 2*time.Second, a.tolerance())

		// 10 seconds of ticks every 50ms
		for range 200 {
			a.Tick(ctx)
			clock.Advance(50 * time.Millisecond)
		}

		sent := notifications(arbiter.mailbox)
		require.Len(t, sent, 5)
		for i, envelope := range sent {
			at, err := heartbeatTime(envelope.Arg(0))
			require.NoError(t, err)
			assert.True(t, start.Add(time.Duration(i)*2*time.Second).Equal(at))
			assert.Equal(t, a.ID(), envelope.SenderID)
			assert.False(t, envelope.AckRequired)
		}
		assert.EqualValues(t, 5, a.Stats().Heartbeats)
		assert.True(t, start.Add(8*time.Second).Equal(a.LastNotified()))
	})
	t.Run("With no timeout never missing the default window", func(t *testing.T) {
		arbiter := newPeer()
		clock := &fakeClock{now: start}
		a := newSupervisedActor(t, KindThread, 0, arbiter.proxy(), clock)
		require.Equal(t, DefaultActorTimeout, a.tolerance())

		for range 100 {
			a.Tick(ctx)
			clock.Advance(time.Second)
		}

		sent := notifications(arbiter.mailbox)
		require.Len(t, sent, 4)
		previous := start
		for _, envelope := range sent[1:] {
			at, err := heartbeatTime(envelope.Arg(0))
			require.NoError(t, err)
			assert.LessOrEqual(t, at.Sub(previous), DefaultActorTimeout)
			previous = at
		}
	})
	t.Run("With monitor never notifying", func(t *testing.T) {
		arbiter := newPeer()
		clock := &fakeClock{now: start}
		a := newSupervisedActor(t, KindMonitor, 0, arbiter.proxy(), clock)
		for range 10 {
			a.Tick(ctx)
			clock.Advance(time.Minute)
		}
		assert.Empty(t, notifications(arbiter.mailbox))
		assert.True(t, a.LastNotified().IsZero())
	})
	t.Run("With no arbiter never notifying", func(t *testing.T) {
		a := newUnitActor(t)
		a.Tick(ctx)
		assert.Zero(t, a.Stats().Heartbeats)
	})
	t.Run("With the arbiter recording the heartbeat of its child", func(t *testing.T) {
		clock := &fakeClock{now: start}
		arbiter := newUnitActor(t)
		child := newSupervisedActor(t, KindThread, 5*time.Second, arbiter.Proxy(), clock)
		link := arbiter.Link(child.Proxy())

		child.Tick(ctx)
		arbiter.Tick(ctx)
		assert.True(t, start.Equal(link.Notified()))
	})
}
