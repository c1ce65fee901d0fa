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
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DefaultLogger writes InfoLevel and above to os.Stdout.
	DefaultLogger = NewZap(InfoLevel, os.Stdout)

	// DebugLogger writes DebugLevel and above to os.Stdout.
	DebugLogger = NewZap(DebugLevel, os.Stdout)
)

// zapLevels maps a Level to its zap counterpart. Anything else logs at debug.
var zapLevels = map[Level]zapcore.Level{
	DebugLevel:   zapcore.DebugLevel,
	InfoLevel:    zapcore.InfoLevel,
	WarningLevel: zapcore.WarnLevel,
	ErrorLevel:   zapcore.ErrorLevel,
	PanicLevel:   zapcore.PanicLevel,
	FatalLevel:   zapcore.FatalLevel,
}

// Zap implements Logger on top of a JSON zap core.
// The level is shared by every logger derived with With and can be changed with SetLevel.
type Zap struct {
	sugar   *zap.SugaredLogger
	level   zap.AtomicLevel
	outputs []zapcore.WriteSyncer
}

var _ Logger = (*Zap)(nil)

// NewZap creates a zap backed Logger
func NewZap(level Level, writers ...io.Writer) *Zap {
	outputs := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, writer := range writers {
		outputs = append(outputs, zapcore.AddSync(writer))
	}

	atomicLevel := zap.NewAtomicLevelAt(toZapLevel(level))
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.Lock(zap.CombineWriteSyncers(outputs...)),
		atomicLevel)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel))

	return &Zap{
		sugar:   logger.Sugar(),
		level:   atomicLevel,
		outputs: outputs,
	}
}

func (z *Zap) Debug(v ...any)                 { z.sugar.Debug(v...) }
func (z *Zap) Debugf(format string, v ...any) { z.sugar.Debugf(format, v...) }
func (z *Zap) Info(v ...any)                  { z.sugar.Info(v...) }
func (z *Zap) Infof(format string, v ...any)  { z.sugar.Infof(format, v...) }
func (z *Zap) Warn(v ...any)                  { z.sugar.Warn(v...) }
func (z *Zap) Warnf(format string, v ...any)  { z.sugar.Warnf(format, v...) }
func (z *Zap) Error(v ...any)                 { z.sugar.Error(v...) }
func (z *Zap) Errorf(format string, v ...any) { z.sugar.Errorf(format, v...) }
func (z *Zap) Fatal(v ...any)                 { z.sugar.Fatal(v...) }
func (z *Zap) Fatalf(format string, v ...any) { z.sugar.Fatalf(format, v...) }
func (z *Zap) Panic(v ...any)                 { z.sugar.Panic(v...) }
func (z *Zap) Panicf(format string, v ...any) { z.sugar.Panicf(format, v...) }

// LogLevel returns the minimum level written
func (z *Zap) LogLevel() Level {
	current := z.level.Level()
	for level, zapLevel := range zapLevels {
		if zapLevel == current {
			return level
		}
	}
	return InvalidLevel
}

// SetLevel changes the minimum level of this logger and of every logger derived from it
func (z *Zap) SetLevel(level Level) {
	z.level.SetLevel(toZapLevel(level))
}

// Enabled reports whether the given level would be written
func (z *Zap) Enabled(level Level) bool {
	return z.level.Enabled(toZapLevel(level))
}

// With returns a Logger that includes the given key-value pairs in all subsequent entries.
// Pairs whose key is not a string are skipped. A trailing key without value is recorded under "_".
func (z *Zap) With(keyValues ...any) Logger {
	fields := make([]any, 0, len(keyValues)+1)
	for i := 0; i < len(keyValues); i += 2 {
		if i+1 == len(keyValues) {
			fields = append(fields, "_", keyValues[i])
			break
		}
		if key, ok := keyValues[i].(string); ok {
			fields = append(fields, key, keyValues[i+1])
		}
	}

	if len(fields) == 0 {
		return z
	}

	return &Zap{
		sugar:   z.sugar.With(fields...),
		level:   z.level,
		outputs: z.outputs,
	}
}

// Flush syncs every output except the standard streams, which may not support it.
func (z *Zap) Flush() error {
	var err error
	for _, output := range z.outputs {
		if file, ok := output.(*os.File); ok && (file == os.Stdout || file == os.Stderr) {
			continue
		}
		err = multierr.Append(err, output.Sync())
	}
	return err
}

func encoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.TimeKey = "ts"
	config.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339Nano))
	}
	config.EncodeDuration = zapcore.StringDurationEncoder
	return config
}

func toZapLevel(level Level) zapcore.Level {
	if zapLevel, ok := zapLevels[level]; ok {
		return zapLevel
	}
	return zapcore.DebugLevel
}
