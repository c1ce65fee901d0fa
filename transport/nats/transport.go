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

// Package nats carries actor mailboxes over NATS subjects so that actors
// living in different OS processes can reach each other through proxies.
package nats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/nats-io/nats.go"
	"go.uber.org/atomic"

	"github.com/tochemey/pulse/actor"
	"github.com/tochemey/pulse/codec"
	"github.com/tochemey/pulse/log"
)

// ErrNotConnected is returned when using a transport that is not connected
var ErrNotConnected = errors.New("nats transport is not connected")

// Transport owns the NATS connection shared by the mailboxes and routes of a process
type Transport struct {
	config *Config
	mu     sync.Mutex

	connected *atomic.Bool
	conn      *nats.Conn
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

// Connect establishes the NATS connection
func (x *Transport) Connect(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.connected.Load() {
		return nil
	}

	if x.config == nil {
		return errors.New("nats transport config is required")
	}

	x.config.sanitize()
	if err := x.config.Validate(); err != nil {
		return err
	}

	opts := nats.GetDefaultOptions()
	opts.Url = x.config.Server
	opts.Name = x.config.Name
	opts.ReconnectWait = x.config.ReconnectWait
	opts.MaxReconnect = -1

	var connection *nats.Conn
	// create a new instance of retrier that will try a maximum of MaxRetries times, with
	// an initial delay of 100 ms and a maximum delay of ReconnectWait
	retrier := retry.NewRetrier(x.config.MaxRetries, 100*time.Millisecond, x.config.ReconnectWait)
	if err := retrier.RunContext(ctx, func(context.Context) error {
		var err error
		connection, err = opts.Connect()
		return err
	}); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", x.config.Server, err)
	}

	x.conn = connection
	x.connected.Store(true)
	x.logger.Infof("nats transport connected to %s", x.config.Server)
	return nil
}

// Subject returns the subject of the mailbox of the given actor
func (x *Transport) Subject(aid string) string {
	return fmt.Sprintf("%s.%s", x.config.SubjectPrefix, aid)
}

// NewMailbox subscribes to the mailbox subject of the given actor.
// The returned mailbox belongs to the actor created with the same id.
func (x *Transport) NewMailbox(aid string) (*Mailbox, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.connected.Load() {
		return nil, ErrNotConnected
	}

	subject := x.Subject(aid)
	subscription, err := x.conn.SubscribeSync(subject)
	if err != nil {
		return nil, err
	}

	// make sure the server registered the interest before anybody publishes
	if err := x.conn.Flush(); err != nil {
		_ = subscription.Unsubscribe()
		return nil, err
	}

	return &Mailbox{
		route:        x.route(subject),
		subscription: subscription,
		closed:       atomic.NewBool(false),
	}, nil
}

// Route returns the route to the mailbox of the given actor
func (x *Transport) Route(aid string) actor.Route {
	return x.route(x.Subject(aid))
}

// Proxy returns a routable proxy to the given actor
func (x *Transport) Proxy(aid string) actor.Proxy {
	return actor.NewProxy(aid, x.Route(aid))
}

// Close flushes pending publications and closes the connection
func (x *Transport) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.connected.Load() {
		return nil
	}

	err := x.conn.Flush()
	x.conn.Close()
	x.connected.Store(false)
	return err
}

func (x *Transport) route(subject string) *route {
	return &route{subject: subject, transport: x}
}

// publish must not hold the lock: routes publish from actor goroutines
func (x *Transport) publish(subject string, data []byte) error {
	if !x.connected.Load() {
		return ErrNotConnected
	}
	return x.conn.Publish(subject, data)
}

func (x *Transport) isClosed() bool {
	return !x.connected.Load() || x.conn.IsClosed()
}
