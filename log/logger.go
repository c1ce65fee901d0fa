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

package log

import (
	"io"
	"os"
)

// Logger is the logging surface handed to actors, hooks and transports.
type Logger interface {
	Debug(...any)
	Debugf(string, ...any)
	Info(...any)
	Infof(string, ...any)
	Warn(...any)
	Warnf(string, ...any)
	Error(...any)
	Errorf(string, ...any)
	// Fatal logs then calls os.Exit(1)
	Fatal(...any)
	// Fatalf logs then calls os.Exit(1)
	Fatalf(string, ...any)
	// Panic logs then panics with the message
	Panic(...any)
	// Panicf logs then panics with the message
	Panicf(string, ...any)

	// LogLevel returns the minimum level written
	LogLevel() Level
	// Enabled reports whether the given level would be written
	Enabled(Level) bool
	// With returns a Logger that adds the given key-value pairs to every entry
	With(keyValues ...any) Logger
	// Flush syncs the outputs that support it
	Flush() error
}

// New creates a zap backed Logger at the given level writing to the given writers.
// When no writer is given the logger writes to os.Stdout.
func New(level Level, writers ...io.Writer) Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}
	return NewZap(level, writers...)
}
