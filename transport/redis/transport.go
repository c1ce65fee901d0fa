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

// Package redis carries actor mailboxes over Redis lists so that actors
// living in different OS processes can reach each other through proxies.
//
// A mailbox is a list consumed with BLPOP. Closing a mailbox leaves a tombstone
// key behind so that routes in other processes stop pushing to it.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"

	"github.com/tochemey/pulse/actor"
	"github.com/tochemey/pulse/codec"
	"github.com/tochemey/pulse/log"
)

// ErrNotConnected is returned when using a transport that is not connected
var ErrNotConnected = errors.New("redis transport is not connected")

// pushScript appends to a mailbox list unless the mailbox tombstone exists
var pushScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[2]) == 1 then
	return 0
end
return redis.call('RPUSH', KEYS[1], ARGV[1])
`)

// Transport owns the Redis client shared by the mailboxes and routes of a process
type Transport struct {
	config *Config
	mu     sync.Mutex

	connected *atomic.Bool
	client    *redis.Client
	codec     codec.Codec
	logger    log.Logger
}

// New creates an instance of Transport
func New(config *Config, opts ...Option) *Transport {
	transport := &Transport{
		config:    config,
		connected: atomic.NewBool(false),
		logger:    log.DefaultLogger,
	}

	for _, opt := range opts {
		opt.Apply(transport)
	}

	if transport.codec == nil {
		var codecOpts []codec.Option
		if config != nil && config.Compress {
			codecOpts = append(codecOpts, codec.WithCompression())
		}
		transport.codec = codec.New(codecOpts...)
	}
	return transport
}

// Connect creates the client and waits for the server to answer
func (x *Transport) Connect(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.connected.Load() {
		return nil
	}

	if x.config == nil {
		return errors.New("redis transport config is required")
	}

	x.config.sanitize()
	if err := x.config.Validate(); err != nil {
		return err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     x.config.Addr,
		Username: x.config.Username,
		Password: x.config.Password,
		DB:       x.config.DB,
	})

	retrier := retry.NewRetrier(x.config.MaxRetries, 100*time.Millisecond, 2*time.Second)
	if err := retrier.RunContext(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to %s: %w", x.config.Addr, err)
	}

	x.client = client
	x.connected.Store(true)
	x.logger.Infof("redis transport connected to %s", x.config.Addr)
	return nil
}

// Key returns the list key of the mailbox of the given actor
func (x *Transport) Key(aid string) string {
	return fmt.Sprintf("%s.%s", x.config.KeyPrefix, aid)
}

// NewMailbox returns the mailbox of the given actor and clears a tombstone
// left by a previous mailbox with the same id.
func (x *Transport) NewMailbox(ctx context.Context, aid string) (*Mailbox, error) {
	if !x.connected.Load() {
		return nil, ErrNotConnected
	}

	route := x.route(x.Key(aid))
	if err := x.client.Del(ctx, route.tombstone).Err(); err != nil {
		return nil, err
	}

	return &Mailbox{
		route:  route,
		closed: atomic.NewBool(false),
	}, nil
}

// Route returns the route to the mailbox of the given actor
func (x *Transport) Route(aid string) actor.Route {
	return x.route(x.Key(aid))
}

// Proxy returns a routable proxy to the given actor
func (x *Transport) Proxy(aid string) actor.Proxy {
	return actor.NewProxy(aid, x.Route(aid))
}

// Close closes the client
func (x *Transport) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.connected.Load() {
		return nil
	}

	x.connected.Store(false)
	return x.client.Close()
}

func (x *Transport) route(key string) *route {
	return &route{
		key:       key,
		tombstone: key + ".closed",
		transport: x,
	}
}
