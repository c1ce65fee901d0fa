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

// Package eventloop provides the default scheduler driving actors: a single
// goroutine calling every registered task once per tick.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/pulse/internal/ticker"
	"github.com/tochemey/pulse/log"
)

// DefaultInterval is the default tick interval
const DefaultInterval = 5 * time.Millisecond

// ErrAlreadyRunning is returned when Run is called on a loop that already ran
var ErrAlreadyRunning = errors.New("event loop already running")

// Task is driven by the loop once per tick.
type Task = interface {
	Tick(ctx context.Context)
}

// Loop calls its tasks in registration order from the goroutine calling Run.
// A loop runs once: after it stopped it cannot be restarted.
type Loop struct {
	interval time.Duration
	logger   log.Logger

	mu    sync.RWMutex
	tasks []Task

	started   *atomic.Bool
	ticks     *atomic.Int64
	stopOnce  sync.Once
	stopReq   chan struct{}
	doneOnce  sync.Once
	quiescent chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithInterval sets the tick interval
func WithInterval(interval time.Duration) Option {
	return func(l *Loop) {
		if interval > 0 {
			l.interval = interval
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		interval:  DefaultInterval,
		logger:    log.DiscardLogger,
		started:   atomic.NewBool(false),
		ticks:     atomic.NewInt64(0),
		stopReq:   make(chan struct{}),
		quiescent: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddPeriodicTask registers a task. Adding a registered task is a no-op.
func (l *Loop) AddPeriodicTask(task Task) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.tasks {
		if t == task {
			return
		}
	}
	l.tasks = append(l.tasks, task)
}

// RemovePeriodicTask deregisters a task.
func (l *Loop) RemovePeriodicTask(task Task) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, t := range l.tasks {
		if t == task {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered tasks
func (l *Loop) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tasks)
}

// Ticks returns the number of ticks run so far
func (l *Loop) Ticks() int64 {
	return l.ticks.Load()
}

// Run ticks the registered tasks until RequestStop is called or ctx is done.
// A tick in flight always completes before Run returns. Panics raised by
// tasks unwind through Run.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.doneOnce.Do(func() { close(l.quiescent) })

	tk := ticker.New(l.interval)
	tk.Start()
	defer tk.Stop()

	l.logger.Debugf("event loop started with interval %s", l.interval)
	for {
		// a pending stop request wins over a ready tick
		select {
		case <-l.stopReq:
			l.logger.Debug("event loop stopped")
			return nil
		default:
		}

		select {
		case <-l.stopReq:
			l.logger.Debug("event loop stopped")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C():
			l.tick(ctx)
		}
	}
}

// RequestStop asks the loop to stop after the tick in flight. It never blocks
// and returns a channel closed once Run has returned.
func (l *Loop) RequestStop() <-chan struct{} {
	l.stopOnce.Do(func() { close(l.stopReq) })
	return l.quiescent
}

func (l *Loop) tick(ctx context.Context) {
	l.ticks.Inc()
	l.mu.RLock()
	tasks := make([]Task, len(l.tasks))
	copy(tasks, l.tasks)
	l.mu.RUnlock()

	for _, task := range tasks {
		task.Tick(ctx)
	}
}
