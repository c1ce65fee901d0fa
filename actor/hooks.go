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

import "context"

// Hooks are the extension points of an actor's lifecycle.
type Hooks interface {
	// OnStart runs once before the actor enters RUNNING. An error aborts the start.
	OnStart(ctx context.Context, actor *Actor) error
	// OnTask runs at the end of every tick while the actor is not stopping.
	OnTask(ctx context.Context, actor *Actor)
	// OnStop runs when a stop begins. Returning true means the hook owns the
	// shutdown and will complete it by calling actor.Quiesce.
	OnStop(ctx context.Context, actor *Actor) bool
	// OnExit runs once during teardown, before the mailbox is released.
	OnExit(ctx context.Context, actor *Actor)
	// OnManageActor runs on supervising actors for every linked actor on each sweep.
	OnManageActor(ctx context.Context, actor *Actor, link *Link)
}

// BaseHooks implements Hooks with no-ops. Embed it to override only what is needed.
type BaseHooks struct{}

// enforce compilation error
var _ Hooks = BaseHooks{}

func (BaseHooks) OnStart(context.Context, *Actor) error         { return nil }
func (BaseHooks) OnTask(context.Context, *Actor)                {}
func (BaseHooks) OnStop(context.Context, *Actor) bool           { return false }
func (BaseHooks) OnExit(context.Context, *Actor)                {}
func (BaseHooks) OnManageActor(context.Context, *Actor, *Link) {}
