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
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"

	"github.com/tochemey/pulse/errors"
	"github.com/tochemey/pulse/future"
	imetric "github.com/tochemey/pulse/internal/metric"
	"github.com/tochemey/pulse/internal/xsync"
	"github.com/tochemey/pulse/log"
)

// Actor is an independent unit of computation that only communicates through its mailbox.
//
// An Actor is local to the goroutine running its scheduler and never leaves it:
// hand out its Proxy instead. Every serialization path of an Actor fails with
// errors.ErrActorNotSerializable.
type Actor struct {
	id      string
	name    string
	kind    Kind
	timeout time.Duration
	ppid    int

	mailbox   Mailbox
	scheduler Scheduler
	table     *DispatchTable
	hooks     Hooks

	state       *atomic.Int32
	starting    *atomic.Bool
	stopping    *atomic.Bool
	terminating *atomic.Bool
	finalized   *atomic.Bool

	self    *Link
	arbiter *Link
	monitor *Link
	links   *xsync.Map[string, *Link]
	pending *xsync.Map[string, future.Promise]

	lastNotified *atomic.Time

	// the context used outside of a Start call, detached from its cancellation
	ctx      context.Context
	quiesced <-chan struct{}
	qmu      sync.Mutex
	running  chan struct{}
	done     chan struct{}

	messages *messageScheduler

	logger         log.Logger
	httpClient     *http.Client
	meterProvider  metric.MeterProvider
	dispatchMetric *imetric.DispatchMetric
	clock          func() time.Time
	initMaxRetries int
	initTimeout    time.Duration

	processed        *atomic.Int64
	droppedUnlinked  *atomic.Int64
	droppedUnhandled *atomic.Int64
	handlerFailures  *atomic.Int64
	heartbeats       *atomic.Int64
	discarded        *atomic.Int64
}

// New creates an actor from the backend implementation. The actor is registered
// with its scheduler and stays in the initial state until Start is called.
func New(impl Impl, opts ...Option) (*Actor, error) {
	if err := impl.Validate(); err != nil {
		return nil, err
	}

	a := &Actor{
		id:               impl.ID,
		kind:             impl.Kind,
		timeout:          impl.Timeout,
		mailbox:          impl.Mailbox,
		scheduler:        impl.NewScheduler(),
		table:            NewDispatchTable(),
		hooks:            BaseHooks{},
		state:            atomic.NewInt32(int32(StateInitial)),
		starting:         atomic.NewBool(false),
		stopping:         atomic.NewBool(false),
		terminating:      atomic.NewBool(false),
		finalized:        atomic.NewBool(false),
		links:            xsync.NewMap[string, *Link](),
		pending:          xsync.NewMap[string, future.Promise](),
		lastNotified:     atomic.NewTime(time.Time{}),
		ctx:              context.Background(),
		running:          make(chan struct{}),
		done:             make(chan struct{}),
		logger:           log.New(log.ErrorLevel, os.Stderr),
		httpClient:       http.DefaultClient,
		clock:            time.Now,
		initMaxRetries:   DefaultInitMaxRetries,
		initTimeout:      DefaultInitTimeout,
		processed:        atomic.NewInt64(0),
		droppedUnlinked:  atomic.NewInt64(0),
		droppedUnhandled: atomic.NewInt64(0),
		handlerFailures:  atomic.NewInt64(0),
		heartbeats:       atomic.NewInt64(0),
		discarded:        atomic.NewInt64(0),
	}

	for _, opt := range opts {
		opt.Apply(a)
	}

	if a.scheduler == nil {
		return nil, fmt.Errorf("backend scheduler factory returned nil")
	}

	if a.name == "" {
		a.name = fmt.Sprintf("%s(%s)", a.kind, shortID(a.id))
	}
	a.logger = a.logger.With("actor", a.name)
	a.self = NewLink(NewProxy(a.id, a.mailbox))

	dispatchMetric, err := imetric.NewDispatchMetric(imetric.NewProvider(imetric.WithMeterProvider(a.meterProvider)).Meter())
	if err != nil {
		return nil, err
	}
	a.dispatchMetric = dispatchMetric
	a.messages = newMessageScheduler(a)

	a.scheduler.AddPeriodicTask(a)
	return a, nil
}

// ID returns the actor unique id
func (a *Actor) ID() string {
	return a.id
}

// Name returns the actor name
func (a *Actor) Name() string {
	return a.name
}

// Kind returns the backend variant hosting the actor
func (a *Actor) Kind() Kind {
	return a.kind
}

// IsProcess reports whether the actor is hosted by the process backend
func (a *Actor) IsProcess() bool {
	return a.kind == KindProcess
}

// Timeout returns the supervision interval. Zero means none.
func (a *Actor) Timeout() time.Duration {
	return a.timeout
}

// PPID returns the parent process id recorded when the actor started
func (a *Actor) PPID() int {
	return a.ppid
}

// Proxy returns the address of this actor
func (a *Actor) Proxy() Proxy {
	return a.self.Proxy()
}

// Arbiter returns the root supervisor link or nil
func (a *Actor) Arbiter() *Link {
	return a.arbiter
}

// Monitor returns the mid-level supervisor link or nil
func (a *Actor) Monitor() *Link {
	return a.monitor
}

// Mailbox returns the mailbox owned by the actor
func (a *Actor) Mailbox() Mailbox {
	return a.mailbox
}

// DispatchTable returns the immutable dispatch table
func (a *Actor) DispatchTable() *DispatchTable {
	return a.table
}

// Logger returns the actor logger
func (a *Actor) Logger() log.Logger {
	return a.logger
}

// HTTP returns the HTTP client handlers may use
func (a *Actor) HTTP() *http.Client {
	return a.httpClient
}

// State returns the lifecycle state
func (a *Actor) State() State {
	return State(a.state.Load())
}

// Started reports whether the actor has reached RUNNING at some point
func (a *Actor) Started() bool {
	return a.State() >= StateRunning
}

// Stopped reports whether the actor has exited
func (a *Actor) Stopped() bool {
	return a.State() >= StateClosed
}

// IsAlive reports whether the actor is running
func (a *Actor) IsAlive() bool {
	return a.State() == StateRunning
}

// Closed reports whether the actor exited gracefully
func (a *Actor) Closed() bool {
	return a.State() == StateClosed
}

// Stopping reports whether a stop is in progress
func (a *Actor) Stopping() bool {
	return a.stopping.Load()
}

// LastNotified returns the time of the last heartbeat sent to the arbiter.
// It is the zero time until the first heartbeat.
func (a *Actor) LastNotified() time.Time {
	return a.lastNotified.Load()
}

// Running returns a channel closed once the actor entered RUNNING
func (a *Actor) Running() <-chan struct{} {
	return a.running
}

// Done returns a channel closed once teardown completed
func (a *Actor) Done() <-chan struct{} {
	return a.done
}

// Link registers a non-owning reference to another actor.
// Linking is directional: the other actor must link back to resolve envelopes from this one.
func (a *Actor) Link(proxy Proxy) *Link {
	link := NewLink(proxy)
	a.links.Set(proxy.ID(), link)
	return link
}

// Unlink removes the reference to the given actor
func (a *Actor) Unlink(aid string) {
	a.links.Delete(aid)
}

// Links returns a snapshot of the link registry
func (a *Actor) Links() []*Link {
	return a.links.Values()
}

// GetActor resolves an actor id against self, the link registry, the arbiter
// and the monitor in that order. It returns nil when nothing matches.
func (a *Actor) GetActor(aid string) *Link {
	switch {
	case aid == a.id:
		return a.self
	default:
		if link, ok := a.links.Get(aid); ok {
			return link
		}
	}

	if a.arbiter != nil && a.arbiter.ID() == aid {
		return a.arbiter
	}

	if a.monitor != nil && a.monitor.ID() == aid {
		return a.monitor
	}
	return nil
}

// Stats is a snapshot of the dispatch counters of an actor.
type Stats struct {
	Processed        int64
	DroppedUnlinked  int64
	DroppedUnhandled int64
	HandlerFailures  int64
	Heartbeats       int64
	Discarded        int64
	Pending          int
	Links            int
	MailboxSize      int64
}

// Stats returns the dispatch counters
func (a *Actor) Stats() Stats {
	return Stats{
		Processed:        a.processed.Load(),
		DroppedUnlinked:  a.droppedUnlinked.Load(),
		DroppedUnhandled: a.droppedUnhandled.Load(),
		HandlerFailures:  a.handlerFailures.Load(),
		Heartbeats:       a.heartbeats.Load(),
		Discarded:        a.discarded.Load(),
		Pending:          a.pending.Len(),
		Links:            a.links.Len(),
		MailboxSize:      a.mailbox.Len(),
	}
}

// String returns the actor name
func (a *Actor) String() string {
	return a.name
}

// MarshalJSON refuses to serialize the actor
func (a *Actor) MarshalJSON() ([]byte, error) {
	return nil, errors.ErrActorNotSerializable
}

// MarshalBinary refuses to serialize the actor
func (a *Actor) MarshalBinary() ([]byte, error) {
	return nil, errors.ErrActorNotSerializable
}

// MarshalText refuses to serialize the actor
func (a *Actor) MarshalText() ([]byte, error) {
	return nil, errors.ErrActorNotSerializable
}

// GobEncode refuses to serialize the actor
func (a *Actor) GobEncode() ([]byte, error) {
	return nil, errors.ErrActorNotSerializable
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
