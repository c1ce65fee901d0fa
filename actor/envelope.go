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
	"fmt"
	"strings"

	"github.com/tochemey/pulse/errors"
)

// Kwargs holds the named payload of an envelope.
// When passed as the last argument of Send or Request it becomes the envelope kwargs.
type Kwargs map[string]any

// Envelope is a unit of mailbox traffic.
type Envelope struct {
	// SenderID is the id of the originating actor
	SenderID string
	// Name is resolved against the receiver's dispatch table
	Name string
	// Args is the positional payload
	Args []any
	// Kwargs is the named payload
	Kwargs Kwargs
	// CorrelationID matches an eventual callback to its waiter
	CorrelationID string
	// AckRequired asks the receiver to answer with a callback envelope
	AckRequired bool
}

// NewEnvelope creates a one-way envelope. A trailing Kwargs value in args becomes the kwargs.
func NewEnvelope(senderID, name string, args ...any) *Envelope {
	positional, kwargs := splitArgs(args)
	return &Envelope{
		SenderID: senderID,
		Name:     name,
		Args:     positional,
		Kwargs:   kwargs,
	}
}

// WithAck marks the envelope as requiring a callback correlated by rid.
func (x *Envelope) WithAck(rid string) *Envelope {
	x.CorrelationID = rid
	x.AckRequired = true
	return x
}

// Arg returns the positional argument at index i or nil.
func (x *Envelope) Arg(i int) any {
	if i < 0 || i >= len(x.Args) {
		return nil
	}
	return x.Args[i]
}

// Validate checks that the envelope can be routed and dispatched.
func (x *Envelope) Validate() error {
	switch {
	case strings.TrimSpace(x.SenderID) == "":
		return errors.NewErrInvalidEnvelope(fmt.Errorf("missing sender"))
	case strings.TrimSpace(x.Name) == "":
		return errors.NewErrInvalidEnvelope(fmt.Errorf("missing name"))
	case x.AckRequired && x.CorrelationID == "":
		return errors.NewErrInvalidEnvelope(fmt.Errorf("missing correlation id"))
	default:
		return nil
	}
}

// String returns a short description used in logs.
func (x *Envelope) String() string {
	return fmt.Sprintf("envelope(name=%s, sender=%s, rid=%s, ack=%t)", x.Name, x.SenderID, x.CorrelationID, x.AckRequired)
}

func splitArgs(args []any) ([]any, Kwargs) {
	if len(args) == 0 {
		return nil, nil
	}
	if kwargs, ok := args[len(args)-1].(Kwargs); ok {
		return args[:len(args)-1], kwargs
	}
	return args, nil
}
