// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/jedai-tui/internal/clipboard"
	"github.com/jeranaias/jedai-tui/internal/config"
	"github.com/jeranaias/jedai-tui/internal/logging"
	"github.com/jeranaias/jedai-tui/internal/ui/chat"
	"github.com/jeranaias/jedai-tui/internal/ui/styles"
)

// runTUI opens the chat screen. The terminal belongs to the screen, so the
// log goes to the configured file.
func runTUI(cmd *cobra.Command, opts *rootOptions, noBanner bool) error {
	if err := RequiresTTY("the chat screen"); err != nil {
		return err
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, closer, logErr := logging.NewFile(cfg.Log.Level, cfg.LogPath())
	defer closer.Close()
	if logErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", logErr)
	}
	logger = logger.With().Str("component", "tui").Logger()
	logger.Info().
		Str("version", Version).
		Str("endpoint", cfg.Endpoint.URL+cfg.Endpoint.Path).
		Msg("starting chat screen")

	if !clipboard.Available() {
		logger.Warn().Msg("no clipboard utility found, copying will fail")
	}

	theme := styles.NewTheme(cfg.UI.Theme)
	flow := newFlow(cfg, logger)
	notifier := clipboard.NewNotifier(nil, cfg.UI.CopyFeedback())

	var reloads <-chan config.Reload
	if path, err := opts.storedConfigPath(); err == nil {
		watcher, err := config.NewWatcher(path, config.DefaultDebounce)
		if err != nil {
			logger.Debug().Err(err).Msg("config reload disabled")
		} else {
			watcher.Start()
			defer watcher.Close()
			reloads = watcher.Updates()
			logger.Debug().Str("path", watcher.Path()).Msg("watching config file")
		}
	}

	m := chat.New(flow, notifier, theme, chat.Options{
		Version:    Version,
		Endpoint:   cfg.Endpoint.URL,
		ShowBanner: cfg.UI.ShowBanner,
		NoBanner:   noBanner,
		Logger:     logger,
		Reloads:    reloads,
		Context:    cmd.Context(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("chat screen failed")
		return fmt.Errorf("chat screen: %w", err)
	}
	logger.Info().Int("messages", flow.Store().Len()).Msg("chat screen closed")
	return nil
}
