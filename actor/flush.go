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
	stderrors "errors"

	"github.com/tochemey/pulse/errors"
)

// Tick is called by the scheduler once per loop iteration.
func (a *Actor) Tick(ctx context.Context) {
	a.flush(ctx, false)
	a.heartbeat(ctx)
	if !a.stopping.Load() {
		if err := a.guard(func() error { a.hooks.OnTask(ctx, a); return nil }); err != nil {
			a.logger.Errorf("OnTask of %s failed: %v", a.name, err)
		}
	}
}

// flush pops and dispatches one envelope, or every envelope until the
// mailbox reports empty when closing. An empty, closed or faulty mailbox
// ends the step quietly.
func (a *Actor) flush(ctx context.Context, closing bool) {
	for {
		envelope, err := a.mailbox.Get(ctx, InboxTimeout)
		if err != nil {
			if !stderrors.Is(err, errors.ErrMailboxEmpty) &&
				!stderrors.Is(err, errors.ErrMailboxClosed) &&
				ctx.Err() == nil {
				a.logger.Debugf("%s mailbox fault: %v", a.name, err)
			}
			return
		}

		if envelope == nil {
			return
		}

		a.dispatch(ctx, envelope, closing)
		if !closing {
			return
		}
	}
}

func (a *Actor) dispatch(ctx context.Context, envelope *Envelope, closing bool) {
	caller := a.GetActor(envelope.SenderID)
	if caller == nil && !closing {
		a.logger.Infof("message from an unlinked actor %s dropped: %s", envelope.SenderID, envelope)
		a.droppedUnlinked.Inc()
		a.dispatchMetric.RecordDroppedUnlinked(ctx, a.id)
		return
	}

	entry, ok := a.table.lookup(envelope.Name)
	if !ok {
		a.logger.Debugf("no handler for %s", envelope)
		a.droppedUnhandled.Inc()
		a.dispatchMetric.RecordDroppedUnhandled(ctx, a.id)
		return
	}

	result, err := a.invoke(newReceiveContext(ctx, a, caller, envelope), entry.fn)
	if err != nil {
		var exitErr *errors.ExitError
		if stderrors.As(err, &exitErr) {
			panic(exitErr)
		}
		a.logger.Errorf("error while processing %s: %v", envelope, err)
		a.handlerFailures.Inc()
		a.dispatchMetric.RecordHandlerFailure(ctx, a.id)
	} else {
		a.processed.Inc()
		a.dispatchMetric.RecordProcessed(ctx, a.id)
	}

	if !envelope.AckRequired || !entry.ack || caller == nil {
		return
	}
	a.acknowledge(ctx, caller, envelope, result, err)
}

func (a *Actor) invoke(rctx *ReceiveContext, fn Handler) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = recovered(r)
		}
	}()
	return fn(rctx)
}

// acknowledge answers the caller with a callback envelope carrying (rid, result).
// A failed handler answers with a nil result and the failure in the error kwarg.
func (a *Actor) acknowledge(ctx context.Context, caller *Link, envelope *Envelope, result any, failure error) {
	reply := &Envelope{
		SenderID: a.id,
		Name:     MessageCallback,
		Args:     []any{envelope.CorrelationID, result},
	}

	if failure != nil {
		reply.Args = []any{envelope.CorrelationID, nil}
		reply.Kwargs = Kwargs{errorKwarg: failure.Error()}
	}

	if err := caller.Proxy().Deliver(ctx, reply); err != nil {
		a.logger.Warnf("failed to acknowledge %s to %s: %v", envelope, caller.ID(), err)
	}
}
