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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With Debug level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("test debug")
		require.NoError(t, logger.Flush())

		msg, lvl := extractEntry(t, buffer.Bytes())
		assert.Equal(t, "test debug", msg)
		assert.Equal(t, DebugLevel.String(), lvl)
	})
	t.Run("With Info level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.Equal(t, InfoLevel, logger.LogLevel())

		logger.Debug("hidden")
		require.Empty(t, buffer.String())

		logger.Infof("booting %q", "worker")
		msg, lvl := extractEntry(t, buffer.Bytes())
		assert.Equal(t, `booting "worker"`, msg)
		assert.Equal(t, InfoLevel.String(), lvl)
	})
	t.Run("With Warn level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		require.Equal(t, WarningLevel, logger.LogLevel())

		logger.Info("hidden")
		require.Empty(t, buffer.String())

		logger.Warn("careful")
		msg, lvl := extractEntry(t, buffer.Bytes())
		assert.Equal(t, "careful", msg)
		assert.Equal(t, WarningLevel.String(), lvl)
	})
	t.Run("With Error level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		require.Equal(t, ErrorLevel, logger.LogLevel())
		assert.False(t, logger.Enabled(WarningLevel))
		assert.True(t, logger.Enabled(ErrorLevel))

		logger.Errorf("failed: %d", 42)
		msg, lvl := extractEntry(t, buffer.Bytes())
		assert.Equal(t, "failed: 42", msg)
		assert.Equal(t, ErrorLevel.String(), lvl)
	})
	t.Run("With Panic level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(PanicLevel, buffer)
		require.Equal(t, PanicLevel, logger.LogLevel())
		assert.Panics(t, func() { logger.Panic("boom") })
	})
	t.Run("With invalid level defaults to Debug", func(t *testing.T) {
		logger := NewZap(Level(42), new(bytes.Buffer))
		require.Equal(t, DebugLevel, logger.LogLevel())
	})
	t.Run("With fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("actor", "worker", 42, "ignored", "orphan").Info("started")

		var entry map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
		assert.Contains(t, entry, "actor")
		assert.Contains(t, entry, "_")
		assert.Equal(t, logger, logger.With())
	})
	t.Run("With level changed at runtime", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		child := logger.With("actor", "worker")

		child.Info("hidden")
		require.Empty(t, buffer.String())

		logger.SetLevel(InfoLevel)
		assert.Equal(t, InfoLevel, child.LogLevel())
		child.Info("visible")
		msg, _ := extractEntry(t, buffer.Bytes())
		assert.Equal(t, "visible", msg)
	})
	t.Run("With file output", func(t *testing.T) {
		file, err := os.Create(filepath.Join(t.TempDir(), "actor.log"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = file.Close() })

		logger := NewZap(InfoLevel, file)
		logger.Info("synced")
		require.NoError(t, logger.Flush())

		content, err := os.ReadFile(file.Name())
		require.NoError(t, err)
		msg, _ := extractEntry(t, content)
		assert.Equal(t, "synced", msg)
	})
}

func TestDiscardLogger(t *testing.T) {
	assert.Equal(t, InfoLevel, DiscardLogger.LogLevel())
	assert.Equal(t, DiscardLogger, DiscardLogger.With("actor", "test"))
	assert.False(t, DiscardLogger.Enabled(ErrorLevel))
	assert.True(t, DiscardLogger.Enabled(PanicLevel))
	assert.NoError(t, DiscardLogger.Flush())
	assert.Panics(t, func() { DiscardLogger.Panicf("boom %d", 1) })
	DiscardLogger.Info("nothing")
	DiscardLogger.Errorf("nothing %s", "at all")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarningLevel, ParseLevel("warning"))
	assert.Equal(t, WarningLevel, ParseLevel(" warn "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InvalidLevel, ParseLevel("verbose"))
	assert.Equal(t, "invalid", InvalidLevel.String())
}

func extractEntry(t *testing.T, raw []byte) (msg, level string) {
	t.Helper()
	var entry struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &entry))
	return entry.Msg, entry.Level
}
