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

package chain

import "go.uber.org/multierr"

// Chain runs a sequence of steps in insertion order and collects their errors.
type Chain struct {
	failFast bool
	errs     []error
}

// Option configures a Chain at creation time.
type Option func(*Chain)

// New creates a new Chain. By default every step runs and all errors are combined.
func New(opts ...Option) *Chain {
	chain := &Chain{errs: make([]error, 0)}
	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

// WithFailFast makes the chain skip remaining steps after the first error.
func WithFailFast() Option {
	return func(c *Chain) { c.failFast = true }
}

// WithRunAll makes the chain run every step regardless of earlier errors.
func WithRunAll() Option {
	return func(c *Chain) { c.failFast = false }
}

// AddRunner runs the given step unless the chain is failing fast and already failed.
func (c *Chain) AddRunner(fn func() error) *Chain {
	if c.failFast && len(c.errs) > 0 {
		return c
	}
	if err := fn(); err != nil {
		c.errs = append(c.errs, err)
	}
	return c
}

// AddRunnerIf adds the step only when the condition holds.
func (c *Chain) AddRunnerIf(condition bool, fn func() error) *Chain {
	if !condition {
		return c
	}
	return c.AddRunner(fn)
}

// Run returns the first error when failing fast, otherwise all errors combined.
func (c *Chain) Run() error {
	if len(c.errs) == 0 {
		return nil
	}
	if c.failFast {
		return c.errs[0]
	}
	return multierr.Combine(c.errs...)
}
