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
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/tochemey/pulse/eventloop"
	"github.com/tochemey/pulse/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubScheduler never ticks. Unit tests drive Tick by hand.
type stubScheduler struct {
	mu      sync.Mutex
	tasks   []PeriodicTask
	removed *atomic.Int32
	once    sync.Once
	stopc   chan struct{}
}

func newStubScheduler() *stubScheduler {
	return &stubScheduler{removed: atomic.NewInt32(0), stopc: make(chan struct{})}
}

func (x *stubScheduler) AddPeriodicTask(task PeriodicTask) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.tasks = append(x.tasks, task)
}

func (x *stubScheduler) RemovePeriodicTask(PeriodicTask) {
	x.removed.Inc()
}

func (x *stubScheduler) Run(ctx context.Context) error {
	select {
	case <-x.stopc:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (x *stubScheduler) RequestStop() <-chan struct{} {
	x.once.Do(func() { close(x.stopc) })
	return x.stopc
}

// countingMailbox records how many times Close is called.
type countingMailbox struct {
	*UnboundedMailbox
	closes *atomic.Int32
}

func newCountingMailbox() *countingMailbox {
	return &countingMailbox{UnboundedMailbox: NewUnboundedMailbox(), closes: atomic.NewInt32(0)}
}

func (x *countingMailbox) Close() error {
	x.closes.Inc()
	return x.UnboundedMailbox.Close()
}

// peer is a bare mailbox standing for an actor that is not running.
type peer struct {
	id      string
	mailbox *UnboundedMailbox
}

func newPeer() *peer {
	return &peer{id: uuid.NewString(), mailbox: NewUnboundedMailbox()}
}

func (x *peer) proxy() Proxy {
	return NewProxy(x.id, x.mailbox)
}

func (x *peer) send(t *testing.T, to Proxy, envelope *Envelope) {
	t.Helper()
	envelope.SenderID = x.id
	require.NoError(t, to.Deliver(context.Background(), envelope))
}

// received pops every envelope currently queued in the mailbox.
func received(mailbox Mailbox) []*Envelope {
	var envelopes []*Envelope
	for {
		envelope, err := mailbox.Get(context.Background(), time.Millisecond)
		if err != nil {
			return envelopes
		}
		envelopes = append(envelopes, envelope)
	}
}

func testImpl(kind Kind, timeout time.Duration, mailbox Mailbox, factory func() Scheduler) Impl {
	return Impl{
		Kind:         kind,
		ID:           uuid.NewString(),
		Mailbox:      mailbox,
		Timeout:      timeout,
		NewScheduler: factory,
	}
}

func loopFactory() Scheduler {
	return eventloop.New(eventloop.WithInterval(time.Millisecond))
}

// newUnitActor creates an actor driven by hand.
func newUnitActor(t *testing.T, opts ...Option) *Actor {
	t.Helper()
	opts = append([]Option{WithLogger(log.DiscardLogger)}, opts...)
	a, err := New(testImpl(KindThread, 0, NewUnboundedMailbox(), func() Scheduler { return newStubScheduler() }), opts...)
	require.NoError(t, err)
	return a
}

// startActor runs Start on its own goroutine and waits for RUNNING.
func startActor(t *testing.T, a *Actor) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() {
		_, err := a.Start(context.Background())
		errc <- err
	}()

	select {
	case <-a.Running():
	case err := <-errc:
		t.Fatalf("actor failed to start: %v", err)
	case <-time.After(time.Second):
		t.Fatal("actor did not start")
	}
	return errc
}

// newRunningActor creates an actor hosted by an event loop and starts it.
func newRunningActor(t *testing.T, opts ...Option) (*Actor, <-chan error) {
	t.Helper()
	opts = append([]Option{WithLogger(log.DiscardLogger)}, opts...)
	a, err := New(testImpl(KindThread, 0, NewUnboundedMailbox(), loopFactory), opts...)
	require.NoError(t, err)
	return a, startActor(t, a)
}

// stopActor stops the actor and waits for Start to return.
func stopActor(t *testing.T, a *Actor, errc <-chan error) {
	t.Helper()
	a.Stop()
	waitExit(t, a, errc)
}

func waitExit(t *testing.T, a *Actor, errc <-chan error) {
	t.Helper()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("actor did not stop")
	}
	<-a.Done()
}

// recordingHooks records the lifecycle calls.
type recordingHooks struct {
	BaseHooks
	mu      sync.Mutex
	events  []string
	starts  *atomic.Int32
	exits   *atomic.Int32
	tasks   *atomic.Int32
	stops   *atomic.Int32
	ownStop bool
	startFn func() error
}

func newRecordingHooks() *recordingHooks {
	return &recordingHooks{
		starts: atomic.NewInt32(0),
		exits:  atomic.NewInt32(0),
		tasks:  atomic.NewInt32(0),
		stops:  atomic.NewInt32(0),
	}
}

func (x *recordingHooks) record(event string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.events = append(x.events, event)
}

func (x *recordingHooks) Events() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make([]string, len(x.events))
	copy(out, x.events)
	return out
}

func (x *recordingHooks) OnStart(context.Context, *Actor) error {
	x.starts.Inc()
	if x.startFn != nil {
		return x.startFn()
	}
	return nil
}

func (x *recordingHooks) OnTask(context.Context, *Actor) {
	x.tasks.Inc()
}

func (x *recordingHooks) OnStop(context.Context, *Actor) bool {
	x.stops.Inc()
	return x.ownStop
}

func (x *recordingHooks) OnExit(context.Context, *Actor) {
	x.exits.Inc()
	x.record("exit")
}
