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
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"

	"github.com/tochemey/pulse/errors"
)

// messageStopTimeout bounds how long teardown waits for running jobs.
const messageStopTimeout = time.Second

// messageScheduler delivers delayed and recurring envelopes on behalf of an actor.
// The underlying quartz scheduler is created on first use and cleared on teardown.
type messageScheduler struct {
	mu      sync.Mutex
	owner   *Actor
	quartz  quartz.Scheduler
	stopped bool
}

func newMessageScheduler(owner *Actor) *messageScheduler {
	return &messageScheduler{owner: owner}
}

func (x *messageScheduler) scheduleOnce(ctx context.Context, to Proxy, name string, delay time.Duration, args []any) (string, error) {
	if delay <= 0 {
		return "", errors.ErrInvalidTimeout
	}
	return x.scheduleJob(ctx, to, name, quartz.NewRunOnceTrigger(delay), args)
}

func (x *messageScheduler) schedule(ctx context.Context, to Proxy, name string, interval time.Duration, args []any) (string, error) {
	if interval <= 0 {
		return "", errors.ErrInvalidTimeout
	}
	return x.scheduleJob(ctx, to, name, quartz.NewSimpleTrigger(interval), args)
}

func (x *messageScheduler) scheduleJob(ctx context.Context, to Proxy, name string, trigger quartz.Trigger, args []any) (string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.ensureStarted(ctx); err != nil {
		return "", err
	}

	senderID := x.owner.id
	deliver := job.NewFunctionJob[bool](
		func(ctx context.Context) (bool, error) {
			err := to.Deliver(ctx, NewEnvelope(senderID, name, args...))
			return err == nil, err
		},
	)

	key := uuid.NewString()
	detail := quartz.NewJobDetail(deliver, quartz.NewJobKey(key))
	if err := x.quartz.ScheduleJob(detail, trigger); err != nil {
		return "", err
	}
	return key, nil
}

func (x *messageScheduler) cancel(key string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.quartz == nil || x.stopped {
		return errors.ErrSchedulerNotStarted
	}
	return x.quartz.DeleteJob(quartz.NewJobKey(key))
}

// ensureStarted must be called with the lock held.
func (x *messageScheduler) ensureStarted(ctx context.Context) error {
	if x.stopped {
		return errors.ErrDead
	}

	if x.quartz != nil {
		return nil
	}

	scheduler, err := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	if err != nil {
		return err
	}

	scheduler.Start(context.WithoutCancel(ctx))
	if !scheduler.IsStarted() {
		return errors.ErrSchedulerNotStarted
	}
	x.quartz = scheduler
	return nil
}

func (x *messageScheduler) stop(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.stopped = true
	if x.quartz == nil {
		return
	}

	_ = x.quartz.Clear()
	x.quartz.Stop()

	ctx, cancel := context.WithTimeout(ctx, messageStopTimeout)
	defer cancel()
	x.quartz.Wait(ctx)
}
