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

package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DispatchMetric records the outcome of every envelope an actor pulls from its mailbox.
type DispatchMetric struct {
	processed        metric.Int64Counter
	droppedUnlinked  metric.Int64Counter
	droppedUnhandled metric.Int64Counter
	handlerFailures  metric.Int64Counter
	heartbeats       metric.Int64Counter
	discarded        metric.Int64Counter
}

// NewDispatchMetric creates the dispatch instruments on the given meter.
func NewDispatchMetric(meter metric.Meter) (*DispatchMetric, error) {
	m := new(DispatchMetric)
	var err error

	if m.processed, err = meter.Int64Counter(
		"actor_processed_count",
		metric.WithDescription("Total number of envelopes handled"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processed instrument, %w", err)
	}

	if m.droppedUnlinked, err = meter.Int64Counter(
		"actor_dropped_unlinked_count",
		metric.WithDescription("Total number of envelopes dropped because the sender was not linked"),
	); err != nil {
		return nil, fmt.Errorf("failed to create droppedUnlinked instrument, %w", err)
	}

	if m.droppedUnhandled, err = meter.Int64Counter(
		"actor_dropped_unhandled_count",
		metric.WithDescription("Total number of envelopes dropped because no handler matched"),
	); err != nil {
		return nil, fmt.Errorf("failed to create droppedUnhandled instrument, %w", err)
	}

	if m.handlerFailures, err = meter.Int64Counter(
		"actor_handler_failure_count",
		metric.WithDescription("Total number of handler invocations that failed or panicked"),
	); err != nil {
		return nil, fmt.Errorf("failed to create handlerFailures instrument, %w", err)
	}

	if m.heartbeats, err = meter.Int64Counter(
		"actor_heartbeat_count",
		metric.WithDescription("Total number of heartbeats sent to the arbiter"),
	); err != nil {
		return nil, fmt.Errorf("failed to create heartbeats instrument, %w", err)
	}

	if m.discarded, err = meter.Int64Counter(
		"actor_discarded_count",
		metric.WithDescription("Total number of envelopes discarded by a hard stop"),
	); err != nil {
		return nil, fmt.Errorf("failed to create discarded instrument, %w", err)
	}

	return m, nil
}

func (x *DispatchMetric) RecordProcessed(ctx context.Context, actorID string) {
	x.processed.Add(ctx, 1, withActor(actorID))
}

func (x *DispatchMetric) RecordDroppedUnlinked(ctx context.Context, actorID string) {
	x.droppedUnlinked.Add(ctx, 1, withActor(actorID))
}

func (x *DispatchMetric) RecordDroppedUnhandled(ctx context.Context, actorID string) {
	x.droppedUnhandled.Add(ctx, 1, withActor(actorID))
}

func (x *DispatchMetric) RecordHandlerFailure(ctx context.Context, actorID string) {
	x.handlerFailures.Add(ctx, 1, withActor(actorID))
}

func (x *DispatchMetric) RecordHeartbeat(ctx context.Context, actorID string) {
	x.heartbeats.Add(ctx, 1, withActor(actorID))
}

// RecordDiscarded adds n to the discarded envelopes counter.
func (x *DispatchMetric) RecordDiscarded(ctx context.Context, actorID string, n int64) {
	if n <= 0 {
		return
	}
	x.discarded.Add(ctx, n, withActor(actorID))
}

func withActor(actorID string) metric.AddOption {
	return metric.WithAttributes(attribute.String("actor.id", actorID))
}
