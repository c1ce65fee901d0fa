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

package ticker

import (
	"sync"
	"time"
)

// Ticker delivers ticks at a fixed interval.
// A tick is dropped when the receiver is still busy with the previous one,
// so a slow consumer never accumulates a backlog of ticks.
type Ticker struct {
	ticks    chan time.Time
	interval time.Duration

	mu      sync.Mutex
	ticking bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates an instance of Ticker that ticks every interval.
func New(interval time.Duration) *Ticker {
	if interval <= 0 {
		panic("interval must be greater than zero")
	}
	return &Ticker{
		ticks:    make(chan time.Time),
		interval: interval,
	}
}

// C returns the channel on which ticks are delivered
func (t *Ticker) C() <-chan time.Time {
	return t.ticks
}

// Interval returns the ticking interval
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Start the ticker. Calling Start on a ticking Ticker is a no-op.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ticking {
		return
	}

	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	t.ticking = true
	go t.loop(t.stopCh, t.doneCh)
}

// Stop stops the ticker and waits for its goroutine to exit.
// No tick is delivered after Stop returns.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.ticking {
		t.mu.Unlock()
		return
	}
	t.ticking = false
	close(t.stopCh)
	done := t.doneCh
	t.mu.Unlock()
	<-done
}

// Ticking returns true when the ticker is ticking
func (t *Ticker) Ticking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticking
}

func (t *Ticker) loop(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case tc := <-ticker.C:
			select {
			case t.ticks <- tc:
			case <-stop:
				return
			default:
			}
		case <-stop:
			return
		}
	}
}
