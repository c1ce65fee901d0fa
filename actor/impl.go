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

	"github.com/tochemey/pulse/internal/validation"
)

// Kind identifies the concurrency backend hosting an actor.
type Kind int

const (
	// KindThread hosts the actor on its own goroutine inside the current process
	KindThread Kind = iota
	// KindProcess hosts the actor behind a process-safe mailbox reachable from other OS processes
	KindProcess
	// KindMonitor hosts a supervising actor inside the current process.
	// Monitors never announce their exit to the arbiter and never heartbeat.
	KindMonitor
)

// String returns the textual representation of the kind
func (k Kind) String() string {
	switch k {
	case KindThread:
		return "thread"
	case KindProcess:
		return "process"
	case KindMonitor:
		return "monitor"
	default:
		return "unknown"
	}
}

// PeriodicTask is driven by a Scheduler once per tick.
// It is an alias of the unnamed interface so schedulers can implement
// Scheduler without importing this package.
type PeriodicTask = interface {
	Tick(ctx context.Context)
}

// Scheduler drives periodic tasks from a single goroutine.
//
// Run blocks until the scheduler stops. RequestStop asks the scheduler to stop
// without blocking and returns a channel closed once the scheduler is quiescent,
// meaning no tick is in flight and Run is about to return.
type Scheduler interface {
	AddPeriodicTask(task PeriodicTask)
	RemovePeriodicTask(task PeriodicTask)
	Run(ctx context.Context) error
	RequestStop() <-chan struct{}
}

// Impl is what a backend hands to an actor at construction.
type Impl struct {
	// Kind is the backend variant
	Kind Kind
	// ID is the unique actor id
	ID string
	// Mailbox is owned by the actor from construction until it is closed during teardown
	Mailbox Mailbox
	// Timeout is the supervision interval. Zero means none.
	Timeout time.Duration
	// NewScheduler creates the scheduler driving the actor
	NewScheduler func() Scheduler
}

// Validate checks the backend contract.
func (x Impl) Validate() error {
	return validation.New(validation.AllErrors()).
		AddValidator(validation.NewEmptyStringValidator("ID", x.ID)).
		AddAssertion(x.Mailbox != nil, "the [Mailbox] is required").
		AddAssertion(x.NewScheduler != nil, "the [NewScheduler] is required").
		AddAssertion(x.Timeout == 0 || x.Timeout >= MinimumActorTimeout, "the [Timeout] must be zero or at least 1s").
		Validate()
}
