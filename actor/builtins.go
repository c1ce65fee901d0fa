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
	"math"
	"os"
	"path/filepath"
	"time"
)

// Built-in control message names. Every dispatch table carries them unless overridden.
const (
	MessageCallback    = "callback"
	MessageStop        = "stop"
	MessageNotify      = "notify"
	MessageOnActorExit = "onActorExit"
	MessageInfo        = "info"
	MessagePing        = "ping"
)

// Pong is the reply of the ping handler.
const Pong = "pong"

// errorKwarg is the callback kwarg carrying the failure of the remote handler.
const errorKwarg = "error"

func builtinHandlers() []HandlerSpec {
	return []HandlerSpec{
		HandleNoAck(MessageCallback, handleCallback),
		HandleNoAck(MessageStop, handleStop),
		HandleNoAck(MessageNotify, handleNotify),
		HandleNoAck(MessageOnActorExit, handleOnActorExit),
		Handle(MessageInfo, handleInfo),
		Handle(MessagePing, handlePing),
	}
}

// handleCallback resolves the caller-side waiter of a request.
// args: (correlationID, result). kwargs may carry the remote failure.
func handleCallback(ctx *ReceiveContext) (any, error) {
	rid, ok := ctx.Arg(0).(string)
	if !ok || rid == "" {
		return nil, fmt.Errorf("callback without correlation id")
	}

	var reason string
	if ctx.Kwargs() != nil {
		if msg, ok := ctx.Kwargs()[errorKwarg]; ok {
			reason = fmt.Sprint(msg)
		}
	}

	ctx.Self().resolve(rid, ctx.Arg(1), reason)
	return nil, nil
}

func handleStop(ctx *ReceiveContext) (any, error) {
	ctx.Self().Stop()
	return nil, nil
}

// handleNotify records the heartbeat time on the caller's link.
func handleNotify(ctx *ReceiveContext) (any, error) {
	caller := ctx.Caller()
	if caller == nil {
		return nil, nil
	}

	t, err := heartbeatTime(ctx.Arg(0))
	if err != nil {
		return nil, err
	}
	caller.setNotified(t)
	return nil, nil
}

func handleOnActorExit(ctx *ReceiveContext) (any, error) {
	if caller := ctx.Caller(); caller != nil {
		ctx.Self().Unlink(caller.ID())
	}
	return nil, nil
}

func handleInfo(ctx *ReceiveContext) (any, error) {
	return ctx.Self().Info(), nil
}

func handlePing(*ReceiveContext) (any, error) {
	return Pong, nil
}

// Info returns the introspection snapshot answered to the info message.
func (a *Actor) Info() map[string]any {
	return map[string]any{
		"aid":       a.id,
		"pid":       os.Getpid(),
		"ppid":      a.ppid,
		"thread":    a.name,
		"process":   filepath.Base(os.Args[0]),
		"kind":      a.kind.String(),
		"isprocess": a.kind == KindProcess,
	}
}

// heartbeatTime accepts the encodings a notify argument takes on its way:
// a time.Time in process, float seconds once decoded from the wire, integer nanoseconds.
func heartbeatTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case float64:
		sec, frac := math.Modf(t)
		return time.Unix(int64(sec), int64(frac*float64(time.Second))), nil
	case int64:
		return time.Unix(0, t), nil
	case int:
		return time.Unix(0, int64(t)), nil
	default:
		return time.Time{}, fmt.Errorf("invalid heartbeat time %T", v)
	}
}

// unixSeconds encodes t the way notify carries it.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
