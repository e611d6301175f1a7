// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/jedai-tui/internal/config"
	"github.com/jeranaias/jedai-tui/internal/conversation"
	"github.com/jeranaias/jedai-tui/internal/model"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("JEDAI_HOME", dir)
	t.Setenv("JEDAI_ENDPOINT", "")
	t.Setenv("JEDAI_LOG_LEVEL", "")
	t.Setenv("JEDAI_THEME", "")
	return dir
}

// run executes the command tree with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(bytes.NewReader(nil))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func answerServer(t *testing.T, explanation, reference string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responseCodeExplainer": map[string]string{"textResponse": explanation},
			"responseQueryDetector": map[string]string{"textResponse": reference},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestAsk_PrintsAnswerAndReference(t *testing.T) {
	isolate(t)
	srv := answerServer(t, "It prints **hello**.", "main.go:3")

	out, _, err := run(t, "ask", "--endpoint", srv.URL, "what", "does", "main", "do?")
	require.NoError(t, err)

	// Output is not a terminal, so markdown stays raw.
	assert.Contains(t, out, "It prints **hello**.")
	assert.Contains(t, out, "Reference:\nmain.go:3")
}

func TestAsk_FallbackExitsWithError(t *testing.T) {
	isolate(t)
	srv := failingServer(t)

	out, stderr, err := run(t, "ask", "--endpoint", srv.URL, "why?")
	require.ErrorIs(t, err, ErrNoAnswer)
	assert.Contains(t, out, conversation.FallbackText)
	assert.Contains(t, stderr, "explain request failed")
}

func TestAsk_JSON(t *testing.T) {
	isolate(t)
	srv := answerServer(t, "explained", "ref")

	out, _, err := run(t, "ask", "--json", "--endpoint", srv.URL, "q")
	require.NoError(t, err)

	var msg model.Message
	require.NoError(t, json.Unmarshal([]byte(out), &msg))
	assert.Equal(t, model.SenderBot, msg.Sender)
	assert.Equal(t, "explained", msg.Text)
	assert.Equal(t, "ref", msg.Reference)
	assert.False(t, msg.Fallback)
}

func TestAsk_BlankQuestion(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "ask", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question is empty")
}

func TestAsk_RequiresQuestion(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "ask")
	assert.Error(t, err)
}

func TestAsk_InvalidEndpointFlag(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "ask", "--endpoint", "ftp://example.com", "q")
	require.Error(t, err)

	var verrs config.ValidateErrors
	assert.True(t, errors.As(err, &verrs))
}

// =============================================================================
// ROOT AND VERSION TESTS
// =============================================================================

func TestRoot_RequiresTerminal(t *testing.T) {
	isolate(t)
	if interactive() {
		t.Skip("running in a terminal")
	}
	_, _, err := run(t)

	var ttyErr *TTYRequiredError
	require.True(t, errors.As(err, &ttyErr))
	assert.Contains(t, err.Error(), "jedai ask")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jedai version "+Version)
	assert.Contains(t, out, "Go version")
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestConfigPath(t *testing.T) {
	dir := isolate(t)
	out, _, err := run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml")+"\n", out)

	out, _, err = run(t, "config", "path", "--config", "/tmp/other.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.toml\n", out)
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	_, _, err := run(t, "config", "init")
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, _, err = run(t, "config", "init")
	assert.Error(t, err, "existing file must not be overwritten")

	_, _, err = run(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigSetGet(t *testing.T) {
	isolate(t)
	t.Setenv("JEDAI_ENDPOINT", "http://from-env:1")

	out, _, err := run(t, "config", "set", "ui.theme", "Light")
	require.NoError(t, err)
	assert.Equal(t, "ui.theme = light\n", out)

	out, _, err = run(t, "config", "get", "ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	// The environment override is visible but never written to the file.
	out, _, err = run(t, "config", "get", "endpoint.url")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:1\n", out)

	path, err := config.ConfigPath()
	require.NoError(t, err)
	stored, err := config.LoadStored(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Endpoint.URL, stored.Endpoint.URL)
}

func TestConfigSet_Errors(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "config", "set", "ui.nope", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid keys")

	_, _, err = run(t, "config", "set", "endpoint.timeout_secs", "abc")
	assert.Error(t, err)

	_, _, err = run(t, "config", "set", "ui.theme", "neon")
	assert.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "config", "show", "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "[endpoint]")
	assert.Contains(t, out, `theme = "dark"`)
}

// =============================================================================
// REPL TESTS
// =============================================================================

type scriptedReader struct {
	lines   []string
	history []string
}

func (r *scriptedReader) Prompt(string) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

type clipRecorder struct {
	writes []string
	err    error
}

func (c *clipRecorder) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, text)
	return nil
}

func newTestSession(t *testing.T, srvURL string, clip *clipRecorder) (*replSession, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Endpoint.URL = srvURL
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &replSession{
		ctx:     ctx,
		flow:    newFlow(cfg, zerolog.Nop()),
		printer: newAnswerPrinter(&out, cfg),
		clip:    clip,
		out:     &out,
		logger:  zerolog.Nop(),
	}, &out
}

func TestRepl_AskAndCopy(t *testing.T) {
	srv := answerServer(t, "Use this:\n```go\nfmt.Println(1)\n```\nand ```sh\nls\n```", "ref")
	clip := &clipRecorder{}
	s, out := newTestSession(t, srv.URL, clip)

	r := &scriptedReader{lines: []string{"  how?  ", "", "/copy", "/copy 1", "/copy 7", "/help", "/quit", "never read"}}
	require.NoError(t, s.run(r))

	assert.Equal(t, []string{"ls\n", "fmt.Println(1)\n"}, clip.writes)
	assert.Equal(t, []string{"  how?  ", "/copy", "/copy 1", "/copy 7", "/help", "/quit"}, r.history)
	assert.Equal(t, []string{"never read"}, r.lines)

	text := out.String()
	assert.Contains(t, text, "(code blocks #1-#2, /copy n to copy)")
	assert.Contains(t, text, "Copied code block #2")
	assert.Contains(t, text, "Copied code block #1")
	assert.Contains(t, text, "No code block 7 (1-2)")
	assert.Contains(t, text, "/copy [n]")

	// The query is sent verbatim.
	first := s.flow.Store().Messages()[0]
	assert.Equal(t, "  how?  ", first.Text)
}

func TestRepl_FallbackAndEmptyCopy(t *testing.T) {
	srv := failingServer(t)
	s, out := newTestSession(t, srv.URL, &clipRecorder{})

	require.NoError(t, s.run(&scriptedReader{lines: []string{"q", "/copy"}}))

	text := out.String()
	assert.Contains(t, text, conversation.FallbackText)
	assert.Contains(t, text, "No code block to copy")
}

func TestRepl_ClipboardError(t *testing.T) {
	srv := answerServer(t, "```\nx```", "")
	s, out := newTestSession(t, srv.URL, &clipRecorder{err: errors.New("no display")})

	require.NoError(t, s.run(&scriptedReader{lines: []string{"q", "/copy"}}))
	assert.Contains(t, out.String(), "Clipboard unavailable")
}

type abortReader struct{}

func (abortReader) Prompt(string) (string, error) { return "", liner.ErrPromptAborted }
func (abortReader) AppendHistory(string)          {}

type brokenReader struct{}

func (brokenReader) Prompt(string) (string, error) { return "", errors.New("tty gone") }
func (brokenReader) AppendHistory(string)          {}

func TestRepl_PromptErrors(t *testing.T) {
	s, _ := newTestSession(t, "http://127.0.0.1:1", &clipRecorder{})
	assert.NoError(t, s.run(abortReader{}))

	err := s.run(brokenReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

// =============================================================================
// TERMINAL HELPERS
// =============================================================================

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", WrapText("short", 40))
	assert.Equal(t, "aaaa bbbb\ncccc", WrapText("aaaa bbbb cccc", 12))
}

func TestIsTerminalWriter(t *testing.T) {
	assert.False(t, isTerminalWriter(&bytes.Buffer{}))
}
