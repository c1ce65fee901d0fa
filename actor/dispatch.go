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

import "sort"

// Handler processes an envelope. The returned value is the callback result
// when the sender asked for an acknowledgement.
type Handler func(ctx *ReceiveContext) (any, error)

// HandlerSpec declares a named handler and whether it acknowledges.
type HandlerSpec struct {
	name string
	fn   Handler
	ack  bool
}

// Handle declares an acknowledging handler.
func Handle(name string, fn Handler) HandlerSpec {
	return HandlerSpec{name: name, fn: fn, ack: true}
}

// HandleNoAck declares a one-way handler: it never produces a callback.
func HandleNoAck(name string, fn Handler) HandlerSpec {
	return HandlerSpec{name: name, fn: fn, ack: false}
}

type dispatchEntry struct {
	fn  Handler
	ack bool
}

// DispatchTable maps message names to handlers. It is immutable once built.
type DispatchTable struct {
	entries map[string]dispatchEntry
}

// NewDispatchTable builds a table holding the built-in control handlers plus
// the given ones. A given handler replaces the built-in of the same name, and
// later specs replace earlier ones.
func NewDispatchTable(specs ...HandlerSpec) *DispatchTable {
	builtins := builtinHandlers()
	entries := make(map[string]dispatchEntry, len(builtins)+len(specs))
	for _, spec := range append(builtins, specs...) {
		if spec.name == "" || spec.fn == nil {
			continue
		}
		entries[spec.name] = dispatchEntry{fn: spec.fn, ack: spec.ack}
	}
	return &DispatchTable{entries: entries}
}

// Has reports whether a handler is registered for name.
func (x *DispatchTable) Has(name string) bool {
	_, ok := x.entries[name]
	return ok
}

// AckRequired reports whether the handler for name acknowledges.
// Unknown names never acknowledge.
func (x *DispatchTable) AckRequired(name string) bool {
	entry, ok := x.entries[name]
	return ok && entry.ack
}

// Names returns the registered message names sorted.
func (x *DispatchTable) Names() []string {
	names := make([]string, 0, len(x.entries))
	for name := range x.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (x *DispatchTable) lookup(name string) (dispatchEntry, bool) {
	entry, ok := x.entries[name]
	return entry, ok
}
