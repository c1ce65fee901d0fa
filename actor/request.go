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

	"github.com/google/uuid"

	"github.com/tochemey/pulse/errors"
	"github.com/tochemey/pulse/future"
)

// Send delivers a one-way envelope from this actor. A trailing Kwargs argument
// becomes the envelope kwargs. The receiver never answers.
func (a *Actor) Send(ctx context.Context, to Proxy, name string, args ...any) error {
	return a.tell(ctx, to, name, args...)
}

// Request delivers an envelope asking for an acknowledgement and returns the
// future resolved by the callback.
//
// The callback is processed by this actor's own dispatch loop: never await the
// future from inside one of its handlers or hooks, the tick would wait on itself.
// Requests still pending when the actor stops fail with errors.ErrDead.
func (a *Actor) Request(ctx context.Context, to Proxy, name string, args ...any) (future.Future, error) {
	if a.Stopped() {
		return nil, errors.ErrDead
	}

	rid := uuid.NewString()
	promise := future.NewPromise()
	a.pending.Set(rid, promise)
	// teardown may have failed the pending requests before this one was registered
	if a.Stopped() {
		if waiter, ok := a.pending.Pop(rid); ok {
			waiter.Failure(errors.ErrDead)
		}
		return nil, errors.ErrDead
	}

	envelope := NewEnvelope(a.id, name, args...).WithAck(rid)
	if err := to.Deliver(ctx, envelope); err != nil {
		a.pending.Delete(rid)
		return nil, err
	}
	return promise.Future(), nil
}

// ShutDown asks the arbiter to stop.
func (a *Actor) ShutDown(ctx context.Context) error {
	if a.arbiter == nil {
		return nil
	}
	return a.tell(ctx, a.arbiter.Proxy(), MessageStop)
}

// ScheduleOnce delivers a one-way envelope from this actor to the receiver after delay.
// It returns the key of the scheduled job.
func (a *Actor) ScheduleOnce(ctx context.Context, to Proxy, name string, delay time.Duration, args ...any) (string, error) {
	return a.messages.scheduleOnce(ctx, to, name, delay, args)
}

// Schedule delivers a one-way envelope from this actor to the receiver every interval
// until the job is canceled or the actor stops. It returns the key of the scheduled job.
func (a *Actor) Schedule(ctx context.Context, to Proxy, name string, interval time.Duration, args ...any) (string, error) {
	return a.messages.schedule(ctx, to, name, interval, args)
}

// CancelSchedule cancels a scheduled job
func (a *Actor) CancelSchedule(key string) error {
	return a.messages.cancel(key)
}

func (a *Actor) tell(ctx context.Context, to Proxy, name string, args ...any) error {
	return to.Deliver(ctx, NewEnvelope(a.id, name, args...))
}

// resolve completes the waiter of the given correlation id.
func (a *Actor) resolve(rid string, result any, reason string) {
	promise, ok := a.pending.Pop(rid)
	if !ok {
		a.logger.Debugf("%s received a callback for an unknown request %s", a.name, rid)
		return
	}

	if reason != "" {
		promise.Failure(errors.NewErrRemoteFailure(reason))
		return
	}
	promise.Success(result)
}

func (a *Actor) failPending() {
	for _, promise := range a.pending.Drain() {
		promise.Failure(errors.ErrDead)
	}
}
