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

// Package backend provides the concurrency variants hosting actors.
//
// A thread or monitor actor runs on its own goroutine with an in-process
// mailbox. A process actor runs behind a process-safe mailbox, such as the
// ones in transport/nats and transport/redis, so that other OS processes can
// deliver to it through a proxy.
package backend

import (
	"time"

	"github.com/google/uuid"

	"github.com/tochemey/pulse/actor"
	"github.com/tochemey/pulse/eventloop"
	"github.com/tochemey/pulse/log"
)

// config holds the settings shared by every backend variant
type config struct {
	id       string
	timeout  time.Duration
	mailbox  actor.Mailbox
	interval time.Duration
	logger   log.Logger
}

// ImplOption configures the actor.Impl produced by a backend
type ImplOption func(*config)

// WithID sets the actor id. Defaults to a random uuid.
func WithID(id string) ImplOption {
	return func(c *config) {
		c.id = id
	}
}

// WithTimeout sets the supervision timeout. Zero means none.
func WithTimeout(timeout time.Duration) ImplOption {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithMailbox overrides the mailbox of a thread or monitor actor.
func WithMailbox(mailbox actor.Mailbox) ImplOption {
	return func(c *config) {
		c.mailbox = mailbox
	}
}

// WithInterval sets the tick interval of the event loop driving the actor
func WithInterval(interval time.Duration) ImplOption {
	return func(c *config) {
		c.interval = interval
	}
}

// WithLoopLogger sets the logger of the event loop driving the actor
func WithLoopLogger(logger log.Logger) ImplOption {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(opts []ImplOption) *config {
	c := &config{
		id:       uuid.NewString(),
		interval: eventloop.DefaultInterval,
		logger:   log.DiscardLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) impl(kind actor.Kind) actor.Impl {
	interval := c.interval
	logger := c.logger
	return actor.Impl{
		Kind:    kind,
		ID:      c.id,
		Mailbox: c.mailbox,
		Timeout: c.timeout,
		NewScheduler: func() actor.Scheduler {
			return eventloop.New(eventloop.WithInterval(interval), eventloop.WithLogger(logger))
		},
	}
}

// Thread returns the implementation of an actor hosted on its own goroutine.
// The mailbox defaults to an unbounded in-process mailbox.
func Thread(opts ...ImplOption) actor.Impl {
	c := newConfig(opts)
	if c.mailbox == nil {
		c.mailbox = actor.NewUnboundedMailbox()
	}
	return c.impl(actor.KindThread)
}

// Monitor returns the implementation of a supervising actor.
func Monitor(opts ...ImplOption) actor.Impl {
	c := newConfig(opts)
	if c.mailbox == nil {
		c.mailbox = actor.NewUnboundedMailbox()
	}
	return c.impl(actor.KindMonitor)
}

// Process returns the implementation of an actor reachable from other OS processes.
// The mailbox must be process-safe and is keyed by the id the actor is created with,
// so pass the same id with WithID.
func Process(mailbox actor.Mailbox, opts ...ImplOption) actor.Impl {
	c := newConfig(opts)
	c.mailbox = mailbox
	return c.impl(actor.KindProcess)
}
