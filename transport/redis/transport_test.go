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

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/travisjeffery/go-dynaport"

	"github.com/tochemey/pulse/actor"
	"github.com/tochemey/pulse/backend"
	gerrors "github.com/tochemey/pulse/errors"
	"github.com/tochemey/pulse/log"
)

// startRedis runs a redis container for the duration of the test.
// The test is skipped when no container provider is available.
func startRedis(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	endpoint, err := container.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)
	return endpoint
}

func newTransport(t *testing.T, addr string) *Transport {
	t.Helper()
	transport := New(&Config{Addr: addr, KeyPrefix: "test.mailbox"}, WithLogger(log.DiscardLogger))
	require.NoError(t, transport.Connect(context.Background()))
	t.Cleanup(func() { _ = transport.Close() })
	return transport
}

func TestConfig(t *testing.T) {
	t.Run("With valid config", func(t *testing.T) {
		config := &Config{Addr: "127.0.0.1:6379"}
		config.sanitize()
		require.NoError(t, config.Validate())
		assert.Equal(t, DefaultKeyPrefix, config.KeyPrefix)
		assert.Equal(t, 5, config.MaxRetries)
		assert.Equal(t, time.Hour, config.ClosedTTL)
	})
	t.Run("With missing address", func(t *testing.T) {
		config := &Config{KeyPrefix: "pulse", ClosedTTL: time.Minute}
		assert.EqualError(t, config.Validate(), "the [Addr] is required")
	})
	t.Run("With invalid key prefix", func(t *testing.T) {
		config := &Config{Addr: "127.0.0.1:6379", KeyPrefix: "pulse:mailbox", ClosedTTL: time.Minute}
		require.Error(t, config.Validate())
	})
	t.Run("With short tombstone ttl", func(t *testing.T) {
		config := &Config{Addr: "127.0.0.1:6379", KeyPrefix: "pulse", ClosedTTL: time.Millisecond}
		require.Error(t, config.Validate())
	})
	t.Run("With negative database", func(t *testing.T) {
		config := &Config{Addr: "127.0.0.1:6379", KeyPrefix: "pulse", ClosedTTL: time.Minute, DB: -1}
		require.Error(t, config.Validate())
	})
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("With no server listening", func(t *testing.T) {
		port := dynaport.Get(1)[0]
		transport := New(&Config{Addr: fmt.Sprintf("127.0.0.1:%d", port), MaxRetries: 1}, WithLogger(log.DiscardLogger))
		require.Error(t, transport.Connect(ctx))

		_, err := transport.NewMailbox(ctx, "actor-1")
		require.ErrorIs(t, err, ErrNotConnected)
		require.NoError(t, transport.Close())
	})
	t.Run("With nil config", func(t *testing.T) {
		require.Error(t, New(nil).Connect(ctx))
	})
}

func TestTransport(t *testing.T) {
	ctx := context.Background()
	addr := startRedis(t)

	t.Run("With mailbox round trip", func(t *testing.T) {
		transport := newTransport(t, addr)
		mailbox, err := transport.NewMailbox(ctx, "actor-1")
		require.NoError(t, err)
		assert.Equal(t, "test.mailbox.actor-1", mailbox.Key())

		start := time.Now()
		_, err = mailbox.Get(ctx, 50*time.Millisecond)
		require.ErrorIs(t, err, gerrors.ErrMailboxEmpty)
		assert.Less(t, time.Since(start), time.Second)

		proxy := transport.Proxy("actor-1")
		for i := range 3 {
			require.NoError(t, proxy.Deliver(ctx, actor.NewEnvelope("sender", "work", i)))
		}
		assert.EqualValues(t, 3, mailbox.Len())

		for i := range 3 {
			envelope, err := mailbox.Get(ctx, time.Second)
			require.NoError(t, err)
			assert.Equal(t, []any{float64(i)}, envelope.Args)
		}
		require.NoError(t, mailbox.Close())
	})
	t.Run("With a closed mailbox refusing remote routes", func(t *testing.T) {
		owner := newTransport(t, addr)
		remote := newTransport(t, addr)

		mailbox, err := owner.NewMailbox(ctx, "actor-2")
		require.NoError(t, err)
		require.NoError(t, remote.Proxy("actor-2").Deliver(ctx, actor.NewEnvelope("sender", "m")))

		require.NoError(t, mailbox.Close())
		require.NoError(t, mailbox.Close())
		assert.True(t, mailbox.IsClosed())
		assert.Zero(t, mailbox.Len())

		_, err = mailbox.Get(ctx, time.Millisecond)
		require.ErrorIs(t, err, gerrors.ErrMailboxClosed)
		require.ErrorIs(t, remote.Route("actor-2").Put(ctx, actor.NewEnvelope("sender", "m")), gerrors.ErrMailboxClosed)

		// a new incarnation reopens the mailbox, the old content is gone
		reopened, err := owner.NewMailbox(ctx, "actor-2")
		require.NoError(t, err)
		assert.Zero(t, reopened.Len())
		require.NoError(t, remote.Route("actor-2").Put(ctx, actor.NewEnvelope("sender", "m")))
		assert.EqualValues(t, 1, reopened.Len())
		require.NoError(t, reopened.Close())
	})
	t.Run("With compressed envelopes", func(t *testing.T) {
		transport := New(&Config{Addr: addr, Compress: true}, WithLogger(log.DiscardLogger))
		require.NoError(t, transport.Connect(ctx))
		defer transport.Close()

		mailbox, err := transport.NewMailbox(ctx, "actor-3")
		require.NoError(t, err)
		require.NoError(t, mailbox.Put(ctx, actor.NewEnvelope("sender", "zipped", "payload")))
		envelope, err := mailbox.Get(ctx, 2*time.Second)
		require.NoError(t, err)
		assert.Equal(t, []any{"payload"}, envelope.Args)
		require.NoError(t, mailbox.Close())
	})
	t.Run("With closed transport", func(t *testing.T) {
		transport := newTransport(t, addr)
		mailbox, err := transport.NewMailbox(ctx, "actor-4")
		require.NoError(t, err)

		require.NoError(t, transport.Close())
		assert.True(t, mailbox.IsClosed())
		require.ErrorIs(t, transport.Proxy("actor-4").Deliver(ctx, actor.NewEnvelope("sender", "m")), gerrors.ErrDead)
		require.NoError(t, mailbox.Close())
	})
	t.Run("With process actors", func(t *testing.T) {
		left := newTransport(t, addr)
		right := newTransport(t, addr)

		const (
			leftID  = "left-actor"
			rightID = "right-actor"
		)

		leftMailbox, err := left.NewMailbox(ctx, leftID)
		require.NoError(t, err)
		rightMailbox, err := right.NewMailbox(ctx, rightID)
		require.NoError(t, err)

		leftActor, err := backend.Spawn(ctx,
			backend.Process(leftMailbox, backend.WithID(leftID), backend.WithInterval(time.Millisecond)),
			actor.WithLogger(log.DiscardLogger),
			actor.WithLinks(left.Proxy(rightID)))
		require.NoError(t, err)

		rightActor, err := backend.Spawn(ctx,
			backend.Process(rightMailbox, backend.WithID(rightID), backend.WithInterval(time.Millisecond)),
			actor.WithLogger(log.DiscardLogger),
			actor.WithLinks(right.Proxy(leftID)))
		require.NoError(t, err)

		awaitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		future, err := rightActor.Request(ctx, right.Proxy(leftID), actor.MessagePing)
		require.NoError(t, err)
		result, err := future.Await(awaitCtx)
		require.NoError(t, err)
		assert.Equal(t, actor.Pong, result)

		require.NoError(t, backend.StopAll(ctx, 5*time.Second, leftActor, rightActor))
		assert.True(t, leftMailbox.IsClosed())
	})
}
