// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/jedai-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete jedai configuration.
type Config struct {
	// Endpoint is the explanation service.
	Endpoint EndpointConfig `toml:"endpoint"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Log configuration
	Log LogConfig `toml:"log"`
}

// EndpointConfig locates the explanation service.
type EndpointConfig struct {
	// URL is the service base URL, e.g. http://localhost:8000
	URL string `toml:"url"`
	// Path is the query endpoint path appended to URL.
	Path string `toml:"path"`
	// TimeoutSecs bounds one request, in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
	// MaxPerMinute caps outgoing requests per minute; 0 disables the cap.
	MaxPerMinute int `toml:"max_per_minute"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme"`
	// CopyFeedbackMS is how long the copied badge stays, in milliseconds.
	CopyFeedbackMS int `toml:"copy_feedback_ms"`
	// WordWrap is the markdown wrap width; 0 follows the window width.
	WordWrap int `toml:"word_wrap"`
	// ShowBanner shows the welcome banner above the transcript.
	ShowBanner bool `toml:"show_banner"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is trace, debug, info, warn, error or disabled.
	Level string `toml:"level"`
	// File is where the TUI writes its log. "~" expands to the home directory.
	File string `toml:"file"`
}

// Timeout returns the request timeout as a duration.
func (e EndpointConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

// CopyFeedback returns the copied-badge duration.
func (u UIConfig) CopyFeedback() time.Duration {
	return time.Duration(u.CopyFeedbackMS) * time.Millisecond
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URL:          "http://localhost:8000",
			Path:         "/",
			TimeoutSecs:  60,
			MaxPerMinute: 30,
		},
		UI: UIConfig{
			Theme:          "auto",
			CopyFeedbackMS: 1000,
			WordWrap:       0,
			ShowBanner:     true,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join("~", ".jedai", "jedai.log"),
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the jedai configuration directory. JEDAI_HOME overrides
// the default ~/.jedai.
func ConfigDir() (string, error) {
	if dir := os.Getenv("JEDAI_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".jedai"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns Log.File with a leading "~" expanded.
func (c *Config) LogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return c.Log.File
	}
	return util.ExpandHome(c.Log.File, home)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the default config file, or the defaults when it does not
// exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg := Default()
		return finish(cfg)
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file. Keys absent
// from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

// LoadStored loads what is stored at path, without environment overrides,
// for editing and saving back. A missing file yields the defaults.
func LoadStored(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

func decodeFile(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path with mode 0600.
func SaveTOML(cfg *Config, path string) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal encodes the configuration as TOML with a header comment.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# jedai configuration file\n")
	buf.WriteString("# Environment overrides: JEDAI_ENDPOINT, JEDAI_LOG_LEVEL, JEDAI_THEME\n\n")
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes    = map[string]bool{"auto": true, "dark": true, "light": true}
	validLogLevels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true}
)

// Validate validates the configuration and returns a ValidateErrors when
// anything is wrong.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Endpoint
	if c.Endpoint.URL == "" {
		errs = append(errs, ValidationError{Field: "endpoint.url", Message: "must not be empty"})
	} else if u, err := url.Parse(c.Endpoint.URL); err != nil {
		errs = append(errs, ValidationError{Field: "endpoint.url", Message: fmt.Sprintf("invalid URL: %v", err)})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{Field: "endpoint.url", Message: fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme)})
	} else if u.Host == "" {
		errs = append(errs, ValidationError{Field: "endpoint.url", Message: "missing host"})
	}
	if c.Endpoint.Path != "" && !strings.HasPrefix(c.Endpoint.Path, "/") {
		errs = append(errs, ValidationError{Field: "endpoint.path", Message: "must start with '/'"})
	}
	if c.Endpoint.TimeoutSecs < 1 || c.Endpoint.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{Field: "endpoint.timeout_secs", Message: fmt.Sprintf("must be between 1 and 600, got %d", c.Endpoint.TimeoutSecs)})
	}
	if c.Endpoint.MaxPerMinute < 0 || c.Endpoint.MaxPerMinute > 6000 {
		errs = append(errs, ValidationError{Field: "endpoint.max_per_minute", Message: fmt.Sprintf("must be between 0 and 6000, got %d", c.Endpoint.MaxPerMinute)})
	}

	// UI
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{Field: "ui.theme", Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme)})
	}
	if c.UI.CopyFeedbackMS < 100 || c.UI.CopyFeedbackMS > 10000 {
		errs = append(errs, ValidationError{Field: "ui.copy_feedback_ms", Message: fmt.Sprintf("must be between 100 and 10000, got %d", c.UI.CopyFeedbackMS)})
	}
	if c.UI.WordWrap != 0 && (c.UI.WordWrap < 20 || c.UI.WordWrap > 400) {
		errs = append(errs, ValidationError{Field: "ui.word_wrap", Message: fmt.Sprintf("must be 0 or between 20 and 400, got %d", c.UI.WordWrap)})
	}

	// Log
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("invalid level '%s'", c.Log.Level)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values with defaults and normalizes case.
func (c *Config) SetDefaults() {
	defaults := Default()

	c.Endpoint.URL = strings.TrimSuffix(strings.TrimSpace(c.Endpoint.URL), "/")
	if c.Endpoint.URL == "" {
		c.Endpoint.URL = defaults.Endpoint.URL
	}
	if c.Endpoint.Path == "" {
		c.Endpoint.Path = defaults.Endpoint.Path
	}
	if c.Endpoint.TimeoutSecs == 0 {
		c.Endpoint.TimeoutSecs = defaults.Endpoint.TimeoutSecs
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.UI.CopyFeedbackMS == 0 {
		c.UI.CopyFeedbackMS = defaults.UI.CopyFeedbackMS
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// EnvFile returns the path of the optional dotenv file read alongside the
// process environment.
func EnvFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "jedai.env"), nil
}

// envLookup reads variables from the process environment first and then
// from EnvFile. A missing or unreadable file contributes nothing.
func envLookup() func(string) string {
	var file map[string]string
	if path, err := EnvFile(); err == nil {
		if vals, err := godotenv.Read(path); err == nil {
			file = vals
		}
	}
	return func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return file[key]
	}
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - JEDAI_ENDPOINT: overrides endpoint.url
//   - JEDAI_LOG_LEVEL: overrides log.level
//   - JEDAI_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	getenv := envLookup()
	if endpoint := getenv("JEDAI_ENDPOINT"); endpoint != "" {
		c.Endpoint.URL = endpoint
	}
	if level := getenv("JEDAI_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if theme := getenv("JEDAI_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Keys returns every settable key in dot notation.
func Keys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, section.Tag.Get("toml")+"."+section.Type.Field(j).Tag.Get("toml"))
		}
	}
	return keys
}

// Get retrieves a value by key, e.g. "endpoint.url".
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a value by key, converting strings to the field's type.
// The result is not validated; call Validate afterwards.
func (c *Config) Set(key string, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid integer value %q", key, value)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid boolean value %q", key, value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("%s: unsupported field type %s", key, field.Kind())
	}
	return nil
}

// lookup resolves a "section.key" name by TOML tag.
func (c *Config) lookup(key string) (reflect.Value, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return reflect.Value{}, fmt.Errorf("invalid key %q, expected section.name", key)
	}

	v := reflect.ValueOf(c).Elem()
	for depth, part := range parts {
		found := false
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).Tag.Get("toml") == part {
				v = v.Field(i)
				found = true
				break
			}
		}
		if !found {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:depth+1], "."))
		}
	}
	return v, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
