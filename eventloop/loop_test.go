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

package eventloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingTask struct {
	count *atomic.Int64
	onTick func()
}

func newCountingTask() *countingTask {
	return &countingTask{count: atomic.NewInt64(0)}
}

func (x *countingTask) Tick(context.Context) {
	x.count.Inc()
	if x.onTick != nil {
		x.onTick()
	}
}

func TestLoop(t *testing.T) {
	t.Run("With tasks ticking until stopped", func(t *testing.T) {
		loop := New(WithInterval(time.Millisecond))
		task := newCountingTask()
		loop.AddPeriodicTask(task)
		loop.AddPeriodicTask(task)
		require.Equal(t, 1, loop.Len())

		errc := make(chan error, 1)
		go func() { errc <- loop.Run(context.Background()) }()

		require.Eventually(t, func() bool { return task.count.Load() >= 3 }, time.Second, time.Millisecond)

		quiescent := loop.RequestStop()
		require.NoError(t, <-errc)
		select {
		case <-quiescent:
		case <-time.After(time.Second):
			t.Fatal("loop did not report quiescence")
		}

		ticked := task.count.Load()
		time.Sleep(10 * time.Millisecond)
		assert.Equal(t, ticked, task.count.Load())
		assert.GreaterOrEqual(t, loop.Ticks(), ticked)
	})
	t.Run("With stop requested before run", func(t *testing.T) {
		loop := New()
		task := newCountingTask()
		loop.AddPeriodicTask(task)
		loop.RequestStop()
		loop.RequestStop()
		require.NoError(t, loop.Run(context.Background()))
		assert.Zero(t, task.count.Load())
	})
	t.Run("With removed task", func(t *testing.T) {
		loop := New(WithInterval(time.Millisecond))
		kept := newCountingTask()
		removed := newCountingTask()
		loop.AddPeriodicTask(kept)
		loop.AddPeriodicTask(removed)
		loop.RemovePeriodicTask(removed)
		require.Equal(t, 1, loop.Len())

		errc := make(chan error, 1)
		go func() { errc <- loop.Run(context.Background()) }()
		require.Eventually(t, func() bool { return kept.count.Load() >= 2 }, time.Second, time.Millisecond)
		loop.RequestStop()
		require.NoError(t, <-errc)
		assert.Zero(t, removed.count.Load())
	})
	t.Run("With a task stopping the loop from a tick", func(t *testing.T) {
		loop := New(WithInterval(time.Millisecond))
		task := newCountingTask()
		task.onTick = func() { loop.RequestStop() }
		loop.AddPeriodicTask(task)
		require.NoError(t, loop.Run(context.Background()))
		assert.EqualValues(t, 1, task.count.Load())
	})
	t.Run("With canceled context", func(t *testing.T) {
		loop := New(WithInterval(time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, loop.Run(ctx), context.Canceled)
	})
	t.Run("With Run called twice", func(t *testing.T) {
		loop := New()
		loop.RequestStop()
		require.NoError(t, loop.Run(context.Background()))
		require.ErrorIs(t, loop.Run(context.Background()), ErrAlreadyRunning)
	})
	t.Run("With a panicking task", func(t *testing.T) {
		loop := New(WithInterval(time.Millisecond))
		task := newCountingTask()
		task.onTick = func() { panic("boom") }
		loop.AddPeriodicTask(task)
		require.PanicsWithValue(t, "boom", func() { _ = loop.Run(context.Background()) })
		select {
		case <-loop.RequestStop():
		default:
			t.Fatal("loop should be quiescent after a panic")
		}
	})
}
