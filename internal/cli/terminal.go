// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/jeranaias/jedai-tui/internal/util"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

type fileDescriptor interface {
	Fd() uintptr
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f fileDescriptor) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isTerminalWriter reports whether w is a file attached to a terminal.
// Buffers and pipes wrapped in other writers are not.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(fileDescriptor)
	return ok && isTerminal(f)
}

// interactive reports whether both stdin and stdout are terminals.
func interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// =============================================================================
// TERMINAL DIMENSIONS
// =============================================================================

const (
	// DefaultTerminalWidth is used when the width cannot be determined.
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width output is wrapped to.
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the width of stdout clamped to MinTerminalWidth,
// or DefaultTerminalWidth when stdout has no size.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// WrapText wraps text at word boundaries to maxWidth display cells.
func WrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = GetTerminalWidth()
	}
	if maxWidth > 10 {
		maxWidth -= 2
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		if util.StringWidth(line) <= maxWidth {
			result.WriteString(line)
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			if util.StringWidth(current)+1+util.StringWidth(word) <= maxWidth {
				current += " " + word
			} else {
				result.WriteString(current)
				result.WriteString("\n")
				current = word
			}
		}
		result.WriteString(current)
	}
	return result.String()
}

// =============================================================================
// COLOR SUPPORT
// =============================================================================

var (
	colorsEnabled     bool
	colorsEnabledOnce sync.Once
)

// ColorsEnabled honors NO_COLOR and FORCE_COLOR, otherwise colors follow
// whether stdout is a terminal.
func ColorsEnabled() bool {
	colorsEnabledOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" {
			colorsEnabled = false
			return
		}
		if os.Getenv("FORCE_COLOR") != "" {
			colorsEnabled = true
			return
		}
		colorsEnabled = isTerminal(os.Stdout)
	})
	return colorsEnabled
}

// =============================================================================
// TTY REQUIREMENTS
// =============================================================================

// RequiresTTY returns a *TTYRequiredError naming operation unless the
// process is interactive.
func RequiresTTY(operation string) error {
	if !interactive() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}

// TTYRequiredError is returned when an operation needs a terminal.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	return e.Operation + " requires an interactive terminal; use 'jedai ask' or pipe into 'jedai repl'"
}
