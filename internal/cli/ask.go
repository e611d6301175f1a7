// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/jedai-tui/internal/conversation"
)

// ErrNoAnswer is returned when the service could not answer; the fallback
// message has already been printed.
var ErrNoAnswer = errors.New("no answer from the explanation service")

// newAskCmd creates the one-shot question command.
func newAskCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the answer",
		Long: `Ask sends one question to the explanation service and prints the
answer. Markdown is rendered when stdout is a terminal.

Examples:
  jedai ask "What does the main function do?"
  jedai ask --json "Explain handlers.go" | jq .text`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := opts.consoleLogger(cmd.ErrOrStderr(), cfg)
			flow := newFlow(cfg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			msg, err := flow.Send(ctx, strings.Join(args, " "))
			if errors.Is(err, conversation.ErrEmptyQuery) {
				return errors.New("question is empty")
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(msg); err != nil {
					return err
				}
			} else {
				newAnswerPrinter(cmd.OutOrStdout(), cfg).Print(msg)
			}

			if msg.Fallback {
				return ErrNoAnswer
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the answer message as JSON")
	return cmd
}
