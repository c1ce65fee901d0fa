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

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/pulse/internal/xsync"
)

// ArbiterHooks turns an actor into a supervisor of the actors it links.
//
// On every tick it calls OnManageActor for each linked actor, then stops and
// unlinks every managed actor whose last heartbeat is older than its declared
// timeout. Actors linked without a declared timeout are never expired.
type ArbiterHooks struct {
	inner     Hooks
	timeouts  *xsync.Map[string, time.Duration]
	firstSeen *xsync.Map[string, time.Time]
}

// enforce compilation error
var _ Hooks = (*ArbiterHooks)(nil)

// ArbiterOption configures ArbiterHooks.
type ArbiterOption func(*ArbiterHooks)

// WithManagedTimeout declares the supervision timeout of a linked actor.
func WithManagedTimeout(aid string, timeout time.Duration) ArbiterOption {
	return func(x *ArbiterHooks) {
		x.Manage(aid, timeout)
	}
}

// WithArbiterHooks sets the hooks the arbiter delegates its lifecycle to.
func WithArbiterHooks(hooks Hooks) ArbiterOption {
	return func(x *ArbiterHooks) {
		if hooks != nil {
			x.inner = hooks
		}
	}
}

// NewArbiterHooks creates ArbiterHooks.
func NewArbiterHooks(opts ...ArbiterOption) *ArbiterHooks {
	x := &ArbiterHooks{
		inner:     BaseHooks{},
		timeouts:  xsync.NewMap[string, time.Duration](),
		firstSeen: xsync.NewMap[string, time.Time](),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Manage declares the supervision timeout of a linked actor. A zero timeout stops managing it.
func (x *ArbiterHooks) Manage(aid string, timeout time.Duration) {
	if timeout <= 0 {
		x.timeouts.Delete(aid)
		x.firstSeen.Delete(aid)
		return
	}
	x.timeouts.Set(aid, timeout)
}

func (x *ArbiterHooks) OnStart(ctx context.Context, arbiter *Actor) error {
	return x.inner.OnStart(ctx, arbiter)
}

func (x *ArbiterHooks) OnStop(ctx context.Context, arbiter *Actor) bool {
	return x.inner.OnStop(ctx, arbiter)
}

func (x *ArbiterHooks) OnExit(ctx context.Context, arbiter *Actor) {
	x.inner.OnExit(ctx, arbiter)
}

func (x *ArbiterHooks) OnManageActor(ctx context.Context, arbiter *Actor, link *Link) {
	x.inner.OnManageActor(ctx, arbiter, link)
}

// OnTask sweeps the linked actors.
func (x *ArbiterHooks) OnTask(ctx context.Context, arbiter *Actor) {
	now := arbiter.clock()
	expired := mapset.NewSet[string]()

	for _, link := range arbiter.Links() {
		x.OnManageActor(ctx, arbiter, link)

		timeout, ok := x.timeouts.Get(link.ID())
		if !ok {
			continue
		}

		last := link.Notified()
		if last.IsZero() {
			seen, ok := x.firstSeen.Get(link.ID())
			if !ok {
				x.firstSeen.Set(link.ID(), now)
				continue
			}
			last = seen
		}

		if now.Sub(last) > timeout {
			expired.Add(link.ID())
		}
	}

	for _, aid := range expired.ToSlice() {
		link := arbiter.GetActor(aid)
		if link == nil {
			continue
		}

		arbiter.Logger().Warnf("%s did not notify within %s, stopping it", aid, x.timeoutOf(aid))
		if err := arbiter.Send(ctx, link.Proxy(), MessageStop); err != nil {
			arbiter.Logger().Warnf("failed to stop %s: %v", aid, err)
		}
		arbiter.Unlink(aid)
		x.Manage(aid, 0)
	}

	x.inner.OnTask(ctx, arbiter)
}

func (x *ArbiterHooks) timeoutOf(aid string) time.Duration {
	timeout, _ := x.timeouts.Get(aid)
	return timeout
}
