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

package backend

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tochemey/pulse/actor"
	"github.com/tochemey/pulse/errors"
)

// Handle is a running actor together with the goroutine hosting its Start call.
type Handle struct {
	*actor.Actor

	exited chan struct{}
	once   sync.Once
	err    error
}

// Spawn creates the actor, starts it on its own goroutine and returns once it is running.
//
// When the start hook fails, Spawn returns the start error and no handle.
// Canceling ctx cancels the actor run, which then finalizes.
func Spawn(ctx context.Context, impl actor.Impl, opts ...actor.Option) (*Handle, error) {
	a, err := actor.New(impl, opts...)
	if err != nil {
		return nil, err
	}

	handle := &Handle{
		Actor:  a,
		exited: make(chan struct{}),
	}

	go func() {
		_, err := a.Start(ctx)
		handle.exit(err)
	}()

	select {
	case <-a.Running():
		return handle, nil
	case <-handle.exited:
		if handle.err != nil {
			return nil, handle.err
		}
	}

	// the actor may have run and exited before Running was observed
	select {
	case <-a.Running():
		return handle, nil
	default:
		return nil, errors.ErrDead
	}
}

func (h *Handle) exit(err error) {
	h.once.Do(func() {
		h.err = err
		close(h.exited)
	})
}

// Exited is closed once the Start call hosting the actor returned
func (h *Handle) Exited() <-chan struct{} {
	return h.exited
}

// Wait blocks until the actor finalized and returns the error Start returned.
// It returns the context error when ctx is done first.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.exited:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StopAll stops the given actors in parallel and waits for each of them to finalize.
// It returns the first error observed. A zero timeout waits indefinitely.
func StopAll(ctx context.Context, timeout time.Duration, handles ...*Handle) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, handle := range handles {
		if handle == nil {
			continue
		}
		eg.Go(func() error {
			handle.Stop()
			return handle.Wait(ctx)
		})
	}
	return eg.Wait()
}
