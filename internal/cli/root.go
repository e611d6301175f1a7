// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jeranaias/jedai-tui/internal/config"
	"github.com/jeranaias/jedai-tui/internal/conversation"
	"github.com/jeranaias/jedai-tui/internal/explainer"
	"github.com/jeranaias/jedai-tui/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	endpoint   string
	logLevel   string
	theme      string
}

// addFlags registers the global flags on flags.
func (o *rootOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.configPath, "config", "", "config file (default ~/.jedai/config.toml)")
	flags.StringVar(&o.endpoint, "endpoint", "", "explanation service URL")
	flags.StringVar(&o.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")
	flags.StringVar(&o.theme, "theme", "", "color theme (auto, dark, light)")
}

// loadConfig loads the config file named by --config, or the default file,
// then applies the flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.endpoint != "" {
		cfg.Endpoint.URL = o.endpoint
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.theme != "" {
		cfg.UI.Theme = o.theme
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// storedConfigPath is the file config commands read and write.
func (o *rootOptions) storedConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.ConfigPath()
}

// consoleLogger logs to w for the line-mode commands. Without an explicit
// level only warnings and errors are shown.
func (o *rootOptions) consoleLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	lc := logging.DefaultConfig()
	lc.Level = "warn"
	lc.Output = w
	if o.logLevel != "" {
		lc.Level = cfg.Log.Level
	}
	return logging.NewWithComponent(lc, "cli")
}

// newFlow wires an explainer client for cfg into a fresh conversation.
func newFlow(cfg *config.Config, logger zerolog.Logger) *conversation.Flow {
	client := explainer.NewClient(cfg.Endpoint.URL).
		WithPath(cfg.Endpoint.Path).
		WithTimeout(cfg.Endpoint.Timeout()).
		WithRateLimit(cfg.Endpoint.MaxPerMinute).
		WithUserAgent("jedai/" + Version).
		WithLogger(logger)
	return conversation.NewFlow(conversation.NewStore(), client).WithLogger(logger)
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the jedai command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var noBanner bool

	cmd := &cobra.Command{
		Use:   "jedai",
		Short: "JedAI - ask Obi-Wan about your code",
		Long: `JedAI sends questions about a code repository to an explanation
service and shows the answers as a chat transcript, with highlighted,
copyable code blocks.

Run without a subcommand to open the interactive chat screen.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, noBanner)
		},
	}

	opts.addFlags(cmd.PersistentFlags())
	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "hide the welcome banner")

	cmd.AddCommand(newAskCmd(opts))
	cmd.AddCommand(newReplCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
