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
	"fmt"
	"os"
	"time"

	"github.com/flowchartsman/retry"

	"github.com/tochemey/pulse/errors"
	"github.com/tochemey/pulse/internal/chain"
)

// Start runs the actor until it stops. It is only effective from the initial
// state: further calls return immediately.
//
// Start runs OnStart, retried up to the configured attempts, then enters
// RUNNING and blocks in the scheduler. Teardown always runs before Start
// returns. The returned error is either the start failure, in which case the
// actor stays in its initial state, or the *errors.ExitError a handler or the
// scheduler raised to exit deliberately.
func (a *Actor) Start(ctx context.Context) (*Actor, error) {
	if a.State() != StateInitial || !a.starting.CompareAndSwap(false, true) {
		return a, nil
	}

	a.ctx = context.WithoutCancel(ctx)
	if err := a.init(ctx); err != nil {
		a.starting.Store(false)
		return a, err
	}

	a.ppid = os.Getppid()
	a.logger.Infof("Booting %q", a.name)
	a.state.Store(int32(StateRunning))
	close(a.running)
	return a, a.run(ctx)
}

func (a *Actor) init(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, a.initTimeout)
	defer cancel()

	retrier := retry.NewRetrier(a.initMaxRetries, time.Millisecond, a.initTimeout)
	if err := retrier.RunContext(cctx, func(ctx context.Context) error {
		return a.guard(func() error { return a.hooks.OnStart(ctx, a) })
	}); err != nil {
		a.logger.Errorf("Failed to start %s: %v", a.name, err)
		return errors.NewErrInitFailure(err)
	}
	return nil
}

// run blocks in the scheduler. Panics and errors are logged and swallowed
// except the deliberate exit signal, which is returned once teardown is done.
func (a *Actor) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var exitErr *errors.ExitError
			if e, ok := r.(error); ok && stderrors.As(e, &exitErr) {
				err = exitErr
			} else {
				a.logger.Errorf("Exception in %s: %v", a.name, r)
			}
		}
		a.logger.Infof("exiting %s", a.name)
		if exitErr := a.finalize(a.ctx); exitErr != nil && err == nil {
			err = exitErr
		}
	}()

	if runErr := a.scheduler.Run(ctx); runErr != nil {
		var exitErr *errors.ExitError
		if stderrors.As(runErr, &exitErr) {
			return exitErr
		}
		if !stderrors.Is(runErr, context.Canceled) {
			a.logger.Errorf("Exception in %s: %v", a.name, runErr)
		}
	}
	return nil
}

// Stop begins a graceful shutdown. It is only effective while RUNNING and not
// already stopping. OnStop runs first: when it returns false the scheduler is
// asked to stop, and once it is quiescent the actor drains its mailbox and
// tears down on the goroutine running Start. Stop never blocks.
func (a *Actor) Stop() {
	if a.State() != StateRunning || !a.stopping.CompareAndSwap(false, true) {
		return
	}

	owned := false
	if err := a.guard(func() error {
		owned = a.hooks.OnStop(a.ctx, a)
		return nil
	}); err != nil {
		a.logger.Errorf("OnStop of %s failed: %v", a.name, err)
		owned = false
	}

	if !owned {
		a.Quiesce()
	}
}

// Quiesce asks the scheduler to stop and returns the channel closed once it is quiescent.
// Hooks taking ownership of the shutdown in OnStop call it when they are done.
// Never wait on the returned channel from inside a tick.
func (a *Actor) Quiesce() <-chan struct{} {
	a.qmu.Lock()
	defer a.qmu.Unlock()
	if a.quiesced == nil {
		a.quiesced = a.scheduler.RequestStop()
	}
	return a.quiesced
}

// Terminate stops the actor without OnStop and without draining its mailbox.
// Queued envelopes are discarded and the actor ends TERMINATED.
func (a *Actor) Terminate() {
	if a.State() != StateRunning || !a.terminating.CompareAndSwap(false, true) {
		return
	}
	a.stopping.Store(true)
	a.Quiesce()
}

// finalize runs exactly once after the scheduler returned.
// The mailbox is released last. An exit signal raised by a handler while
// draining or by OnExit does not interrupt the teardown: the first one is
// returned once every step ran.
func (a *Actor) finalize(ctx context.Context) *errors.ExitError {
	if !a.finalized.CompareAndSwap(false, true) {
		return nil
	}

	var exit *errors.ExitError
	keep := func(e *errors.ExitError) {
		if exit == nil {
			exit = e
		}
	}

	final := StateClosed
	if a.terminating.Load() {
		final = StateTerminated
		a.discard(ctx)
	} else if e := a.contain(func() { a.flush(ctx, true) }); e != nil {
		keep(e)
		a.discard(ctx)
	}

	a.messages.stop(ctx)

	err := chain.New(chain.WithRunAll()).
		AddRunner(func() (err error) {
			keep(a.contain(func() {
				err = a.guard(func() error { a.hooks.OnExit(ctx, a); return nil })
			}))
			return err
		}).
		AddRunner(func() error { a.state.Store(int32(final)); return nil }).
		AddRunner(func() error { a.scheduler.RemovePeriodicTask(a); return nil }).
		AddRunnerIf(a.kind != KindMonitor && a.arbiter != nil, func() error {
			return a.tell(ctx, a.arbiter.Proxy(), MessageOnActorExit)
		}).
		AddRunner(func() error {
			a.stopping.Store(false)
			a.failPending()
			return nil
		}).
		AddRunner(a.mailbox.Close).
		Run()

	if err != nil {
		a.logger.Warnf("teardown of %s: %v", a.name, err)
	}
	close(a.done)
	return exit
}

// contain runs a teardown step and returns the exit signal it raised.
// Any other panic is logged so the remaining steps still run.
func (a *Actor) contain(fn func()) (exit *errors.ExitError) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && stderrors.As(e, &exit) {
				return
			}
			a.logger.Errorf("Exception in %s teardown: %v", a.name, r)
		}
	}()
	fn()
	return nil
}

// discard drops what is left in the mailbox on a hard stop.
func (a *Actor) discard(ctx context.Context) {
	n := a.mailbox.Len()
	if n <= 0 {
		return
	}
	a.discarded.Add(n)
	a.dispatchMetric.RecordDiscarded(ctx, a.id, n)
	a.logger.Warnf("%s terminated with %d pending envelopes", a.name, n)
}

// guard turns a hook panic into an error. The exit signal keeps unwinding.
func (a *Actor) guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return fn()
}

// recovered converts a recovered value to an error, re-raising the exit signal.
func recovered(r any) error {
	if e, ok := r.(error); ok {
		var exitErr *errors.ExitError
		if stderrors.As(e, &exitErr) {
			panic(exitErr)
		}
		return errors.NewPanicError(e)
	}
	return errors.NewPanicError(fmt.Errorf("%v", r))
}
