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

package future

import (
	"context"
	"sync"
)

// Future represents a value which may or may not currently be available,
// but will be available at some point in the future, or an error if that value
// could not be made available.
//
// A Future is completed exactly once through its Promise. Await can be called
// any number of times, from any goroutine, and always returns the same outcome
// once the Future has completed.
//
// Example usage:
//
//	call, err := self.Request(ctx, target.Proxy(), "ping")
//	if err != nil {
//	    return err
//	}
//
//	ctx, cancel := context.WithTimeout(ctx, time.Second)
//	defer cancel()
//
//	reply, err := call.Await(ctx)
type Future interface {
	// Await blocks until the Future is completed or the context is canceled and
	// returns either a result or an error.
	Await(ctx context.Context) (any, error)
	// IsCompleted reports whether the Future already holds its outcome.
	IsCompleted() bool
	// Done returns a channel closed once the Future is completed.
	Done() <-chan struct{}
}

// Promise is the writable, single-assignment side of a Future.
type Promise interface {
	// Success completes the underlying Future with a value.
	Success(value any)
	// Failure fails the underlying Future with an error.
	Failure(err error)
	// Future returns the underlying Future.
	Future() Future
}

// future implements Future and Promise.
type future struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

// Verify future satisfies both interfaces.
var (
	_ Future  = (*future)(nil)
	_ Promise = (*future)(nil)
)

// NewPromise returns a Promise whose Future is not yet completed.
func NewPromise() Promise {
	return &future{done: make(chan struct{})}
}

// New creates a Future completed by the given task, executed asynchronously.
func New(task func() (any, error)) Future {
	promise := NewPromise()
	go func() {
		result, err := task()
		if err != nil {
			promise.Failure(err)
			return
		}
		promise.Success(result)
	}()
	return promise.Future()
}

// Await blocks until the Future is completed or the context is canceled.
// A canceled context does not complete the Future.
func (x *future) Await(ctx context.Context) (any, error) {
	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsCompleted reports whether the Future already holds its outcome.
func (x *future) IsCompleted() bool {
	select {
	case <-x.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed once the Future is completed.
func (x *future) Done() <-chan struct{} {
	return x.done
}

// Success completes the Future with a given value.
func (x *future) Success(value any) {
	x.once.Do(func() {
		x.value = value
		close(x.done)
	})
}

// Failure fails the Future with a given error.
func (x *future) Failure(err error) {
	x.once.Do(func() {
		x.err = err
		close(x.done)
	})
}

// Future returns the underlying Future.
func (x *future) Future() Future {
	return x
}
