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
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/pulse/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(actor *Actor)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Actor)

func (f OptionFunc) Apply(a *Actor) {
	f(a)
}

// WithName sets the actor name used in logs
func WithName(name string) Option {
	return OptionFunc(func(a *Actor) {
		a.name = name
	})
}

// WithArbiter sets the root supervisor of the actor
func WithArbiter(arbiter Proxy) Option {
	return OptionFunc(func(a *Actor) {
		a.arbiter = NewLink(arbiter)
	})
}

// WithMonitor sets the mid-level supervisor of the actor
func WithMonitor(monitor Proxy) Option {
	return OptionFunc(func(a *Actor) {
		a.monitor = NewLink(monitor)
	})
}

// WithLinks links the given actors at construction
func WithLinks(proxies ...Proxy) Option {
	return OptionFunc(func(a *Actor) {
		for _, proxy := range proxies {
			a.links.Set(proxy.ID(), NewLink(proxy))
		}
	})
}

// WithHooks sets the lifecycle hooks
func WithHooks(hooks Hooks) Option {
	return OptionFunc(func(a *Actor) {
		if hooks != nil {
			a.hooks = hooks
		}
	})
}

// WithHandlers builds the dispatch table from the built-ins and the given handlers
func WithHandlers(specs ...HandlerSpec) Option {
	return OptionFunc(func(a *Actor) {
		a.table = NewDispatchTable(specs...)
	})
}

// WithDispatchTable sets a prebuilt dispatch table
func WithDispatchTable(table *DispatchTable) Option {
	return OptionFunc(func(a *Actor) {
		if table != nil {
			a.table = table
		}
	})
}

// WithLogger sets the actor logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(a *Actor) {
		if logger != nil {
			a.logger = logger
		}
	})
}

// WithHTTPClient sets the HTTP client handlers reach through HTTP
func WithHTTPClient(client *http.Client) Option {
	return OptionFunc(func(a *Actor) {
		a.httpClient = client
	})
}

// WithMetricProvider records the dispatch instruments on the given meter provider
func WithMetricProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(a *Actor) {
		a.meterProvider = provider
	})
}

// WithClock overrides the clock used by the heartbeat
func WithClock(clock func() time.Time) Option {
	return OptionFunc(func(a *Actor) {
		if clock != nil {
			a.clock = clock
		}
	})
}

// WithInitMaxRetries sets the number of times OnStart is attempted
func WithInitMaxRetries(max int) Option {
	return OptionFunc(func(a *Actor) {
		a.initMaxRetries = max
	})
}

// WithInitTimeout sets how long OnStart may take across all attempts
func WithInitTimeout(timeout time.Duration) Option {
	return OptionFunc(func(a *Actor) {
		a.initTimeout = timeout
	})
}
