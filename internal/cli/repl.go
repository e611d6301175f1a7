// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/jedai-tui/internal/clipboard"
	"github.com/jeranaias/jedai-tui/internal/conversation"
	"github.com/jeranaias/jedai-tui/internal/segment"
)

const replPrompt = "padawan> "

const replHelp = `Type a question and press Enter. Commands:
  /copy [n]   copy code block n (default: the newest)
  /help       show this help
  /quit       leave (also Ctrl+D)`

// lineReader is the part of liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// newReplCmd creates the line-mode chat command.
func newReplCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Chat in line mode",
		Long: `Repl is a line-mode chat with line editing and history for the
current session. It works in any terminal and with piped input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := opts.consoleLogger(cmd.ErrOrStderr(), cfg)

			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			s := &replSession{
				ctx:     cmd.Context(),
				flow:    newFlow(cfg, logger),
				printer: newAnswerPrinter(cmd.OutOrStdout(), cfg),
				clip:    clipboard.System{},
				out:     cmd.OutOrStdout(),
				logger:  logger,
			}
			return s.run(line)
		},
	}
}

// =============================================================================
// REPL SESSION
// =============================================================================

type replSession struct {
	ctx     context.Context
	flow    *conversation.Flow
	printer *answerPrinter
	clip    clipboard.Writer
	out     io.Writer
	logger  zerolog.Logger
}

// run reads lines until EOF, Ctrl+C at the prompt, or /quit.
func (s *replSession) run(r lineReader) error {
	fmt.Fprintln(s.out, "JedAI "+Version+". /help for commands.")
	for {
		input, err := r.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		r.AppendHistory(input)
		if s.handle(input) {
			return nil
		}
	}
}

// handle processes one line and reports whether the session should end.
func (s *replSession) handle(input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "/") {
		fields := strings.Fields(trimmed)
		switch fields[0] {
		case "/quit", "/exit":
			return true
		case "/help":
			fmt.Fprintln(s.out, replHelp)
			return false
		case "/copy":
			s.copyBlock(fields[1:])
			return false
		}
	}
	s.ask(input)
	return false
}

// ask sends input verbatim. Ctrl+C while waiting cancels the request.
func (s *replSession) ask(input string) {
	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt)
	defer stop()

	msg, err := s.flow.Send(ctx, input)
	if err != nil {
		return
	}
	s.printer.Print(msg)

	if n := len(segment.Codes(msg.Segments())); n > 0 && !msg.Fallback {
		total := len(s.codeBlocks())
		fmt.Fprintf(s.out, "(code blocks #%d-#%d, /copy n to copy)\n", total-n+1, total)
	}
}

// codeBlocks lists every code block in the session, oldest first.
func (s *replSession) codeBlocks() []segment.Segment {
	var blocks []segment.Segment
	for _, msg := range s.flow.Store().Messages() {
		if msg.IsBot() && !msg.Fallback {
			blocks = append(blocks, segment.Codes(msg.Segments())...)
		}
	}
	return blocks
}

func (s *replSession) copyBlock(args []string) {
	blocks := s.codeBlocks()
	if len(blocks) == 0 {
		fmt.Fprintln(s.out, "No code block to copy")
		return
	}

	n := len(blocks)
	if len(args) > 0 {
		v, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
		if err != nil || v < 1 || v > len(blocks) {
			fmt.Fprintf(s.out, "No code block %s (1-%d)\n", args[0], len(blocks))
			return
		}
		n = v
	}

	if err := s.clip.WriteAll(blocks[n-1].Content); err != nil {
		s.logger.Warn().Err(err).Int("block", n).Msg("copy failed")
		fmt.Fprintln(s.out, "Clipboard unavailable")
		return
	}
	fmt.Fprintf(s.out, "Copied code block #%d\n", n)
}
