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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDead indicates that the actor is no longer alive or has been terminated.
	ErrDead = errors.New("actor is not alive")

	// ErrActorNotSerializable is returned when an actor value, rather than its proxy,
	// is handed to any serialization path. Actors hold a mailbox and host resources that
	// cannot leave their own goroutine boundary.
	ErrActorNotSerializable = errors.New("actor cannot be serialized, use its proxy instead")

	// ErrMailboxEmpty is returned by a mailbox when nothing arrived within the poll timeout.
	ErrMailboxEmpty = errors.New("mailbox is empty")

	// ErrMailboxClosed is returned when using a mailbox after it has been closed.
	ErrMailboxClosed = errors.New("mailbox is closed")

	// ErrMailboxFull is returned by bounded mailboxes that reached their capacity.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrUnroutable is returned when a proxy has no route bound to it.
	ErrUnroutable = errors.New("proxy has no route")

	// ErrInitFailure is returned when the actor's start hook fails.
	ErrInitFailure = errors.New("actor start hook failed")

	// ErrInvalidEnvelope indicates that an envelope is structurally invalid.
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrRemoteFailure is the error a waiter receives when the remote handler failed.
	ErrRemoteFailure = errors.New("remote handler failed")

	// ErrSchedulerNotStarted is returned when scheduling a message while the scheduler is not running.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrInvalidTimeout is returned when a timeout value is less than or equal to zero.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// NewErrInitFailure wraps a base error with ErrInitFailure to indicate a startup failure.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// NewErrInvalidEnvelope wraps a base error with ErrInvalidEnvelope.
func NewErrInvalidEnvelope(err error) error {
	return errors.Join(ErrInvalidEnvelope, err)
}

// NewErrRemoteFailure builds the error delivered to a waiter whose remote handler failed.
func NewErrRemoteFailure(reason string) error {
	return fmt.Errorf("%w: %s", ErrRemoteFailure, reason)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// ExitError is the deliberate process-exit signal. It is the only failure an actor
// run does not swallow: it is handed back to the caller of Start once the actor
// has finalized.
type ExitError struct {
	Code int
}

var _ error = (*ExitError)(nil)

// NewExitError creates an instance of ExitError
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// Error implements the standard error interface
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
