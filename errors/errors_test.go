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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	t.Run("NewErrInitFailure", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewErrInitFailure(cause)
		assert.ErrorIs(t, err, ErrInitFailure)
		assert.ErrorIs(t, err, cause)
	})
	t.Run("NewErrRemoteFailure", func(t *testing.T) {
		err := NewErrRemoteFailure("division by zero")
		assert.ErrorIs(t, err, ErrRemoteFailure)
		assert.Contains(t, err.Error(), "division by zero")
	})
	t.Run("PanicError", func(t *testing.T) {
		cause := errors.New("boom")
		err := fmt.Errorf("wrapped: %w", NewPanicError(cause))
		var pe *PanicError
		require.True(t, errors.As(err, &pe))
		assert.EqualError(t, pe, "panic: boom")
		assert.ErrorIs(t, err, cause)
	})
	t.Run("ExitError", func(t *testing.T) {
		err := fmt.Errorf("run: %w", NewExitError(3))
		var exit *ExitError
		require.True(t, errors.As(err, &exit))
		assert.Equal(t, 3, exit.Code)
		assert.EqualError(t, exit, "exit status 3")
	})
}
