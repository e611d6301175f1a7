// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, false},
		{"", false, true, true},
		{"bogus", false, true, true},
		{"WARN", false, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tc.level, Output: &buf})

			logger.Debug().Msg("debug message")
			logger.Info().Msg("info message")
			logger.Warn().Msg("warn message")

			out := buf.String()
			assert.Equal(t, tc.wantDebug, bytes.Contains([]byte(out), []byte("debug message")))
			assert.Equal(t, tc.wantInfo, bytes.Contains([]byte(out), []byte("info message")))
			assert.Equal(t, tc.wantWarn, bytes.Contains([]byte(out), []byte("warn message")))
		})
	}
}

func TestNew_DisabledLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "disabled", Output: &buf})
	logger.Error().Msg("nope")
	assert.Empty(t, buf.String())
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Output: &buf}, "explainer")
	logger.Info().Str("request_id", "r1").Msg("sent")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "explainer", entry["component"])
	assert.Equal(t, "r1", entry["request_id"])
	assert.Equal(t, "sent", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Pretty: true, Output: &buf})
	logger.Info().Msg("pretty message")

	out := buf.String()
	assert.Contains(t, out, "pretty message")
	assert.Contains(t, out, "INF")
	// Console output is not JSON.
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.True(t, cfg.Pretty)
	assert.NotNil(t, cfg.Output)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" Error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jedai.log")

	logger, closer, err := NewFile("info", path)
	require.NoError(t, err)
	logger.Info().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestNewFile_Unopenable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	// A regular file in the directory position cannot be created through.
	logger, closer, err := NewFile("info", filepath.Join(blocker, "jedai.log"))
	require.Error(t, err)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())

	// Nop logger is safe to use.
	logger.Error().Msg("discarded")
}

func TestOpenFile_EmptyPath(t *testing.T) {
	_, err := OpenFile("")
	assert.Error(t, err)
}
