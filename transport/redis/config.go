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
	"time"

	"github.com/tochemey/pulse/internal/validation"
)

// DefaultKeyPrefix is the key prefix used when none is configured
const DefaultKeyPrefix = "pulse.mailbox"

// Config represents the Redis transport configuration
type Config struct {
	// Addr defines the redis server address in the format host:port
	Addr string
	// Username is the optional ACL user
	Username string
	// Password is the optional password
	Password string
	// DB selects the database
	DB int
	// KeyPrefix prefixes the list of every mailbox. A mailbox is stored under <prefix>.<actor id>
	KeyPrefix string
	// MaxRetries bounds the connection attempts. Defaults to 5
	MaxRetries int
	// ClosedTTL is how long a closed mailbox keeps refusing envelopes. Defaults to one hour
	ClosedTTL time.Duration
	// Compress enables the zstd compression of envelopes
	Compress bool
}

// Validate checks whether the given transport configuration is valid
func (x Config) Validate() error {
	return validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("Addr", x.Addr)).
		AddValidator(validation.NewSubjectValidator("KeyPrefix", x.KeyPrefix)).
		AddAssertion(x.DB >= 0, "the [DB] must not be negative").
		AddAssertion(x.MaxRetries >= 0, "the [MaxRetries] must not be negative").
		AddValidator(validation.NewDurationValidator("ClosedTTL", x.ClosedTTL, time.Second)).
		Validate()
}

func (x *Config) sanitize() {
	if x.KeyPrefix == "" {
		x.KeyPrefix = DefaultKeyPrefix
	}
	if x.MaxRetries == 0 {
		x.MaxRetries = 5
	}
	if x.ClosedTTL == 0 {
		x.ClosedTTL = time.Hour
	}
}
