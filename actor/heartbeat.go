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
)

// heartbeat tells the arbiter this actor is alive, at most once per tolerance window.
// Monitors and actors without an arbiter never heartbeat.
func (a *Actor) heartbeat(ctx context.Context) {
	if a.kind == KindMonitor || a.arbiter == nil {
		return
	}

	now := a.clock()
	last := a.lastNotified.Load()
	if !last.IsZero() && now.Sub(last) < a.tolerance() {
		return
	}

	a.lastNotified.Store(now)
	if err := a.tell(ctx, a.arbiter.Proxy(), MessageNotify, unixSeconds(now)); err != nil {
		a.logger.Warnf("%s failed to notify the arbiter: %v", a.name, err)
		return
	}

	a.heartbeats.Inc()
	a.dispatchMetric.RecordHeartbeat(ctx, a.id)
}

// tolerance is the heartbeat debounce window.
func (a *Actor) tolerance() time.Duration {
	if a.timeout <= 0 {
		return DefaultActorTimeout
	}
	return time.Duration(float64(a.timeout) * ActorTimeoutTolerance)
}
