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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	t.Run("With FailFast", func(t *testing.T) {
		var calledFn2, calledFn3 bool

		actual := New(WithFailFast()).
			AddRunner(func() error { return errors.New("err1") }).
			AddRunner(func() error { calledFn2 = true; return errors.New("err2") }).
			AddRunnerIf(true, func() error { calledFn3 = true; return nil }).
			Run()

		require.EqualError(t, actual, "err1")
		assert.False(t, calledFn2)
		assert.False(t, calledFn3)
	})
	t.Run("With RunAll", func(t *testing.T) {
		var calledFn3 bool

		actual := New(WithRunAll()).
			AddRunner(func() error { return errors.New("err1") }).
			AddRunner(func() error { return errors.New("err2") }).
			AddRunner(func() error { calledFn3 = true; return nil }).
			Run()

		require.Error(t, actual)
		assert.Contains(t, actual.Error(), "err1")
		assert.Contains(t, actual.Error(), "err2")
		assert.True(t, calledFn3)
	})
	t.Run("With skipped conditional step", func(t *testing.T) {
		called := false
		actual := New().
			AddRunnerIf(false, func() error { called = true; return errors.New("skipped") }).
			Run()
		require.NoError(t, actual)
		assert.False(t, called)
	})
}
