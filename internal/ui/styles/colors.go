// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Saber - Primary accent, banner and bot label
var Saber = lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"}

// SaberDeep - Darker accent for borders
var SaberDeep = lipgloss.AdaptiveColor{Light: "#075985", Dark: "#0C4A6E"}

// Purple - Selections, focused code block
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Emerald - Success states, copied badge
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, fallback messages
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Headers, footers and code blocks
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, reference text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

// Bot message bubble
var BotBubbleFg = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E9E4F5"}
var BotBubbleBorder = lipgloss.AdaptiveColor{Light: "#7DD3FC", Dark: "#0EA5E9"}

// Fallback message bubble
var FallbackBubbleFg = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#FECACA"}
var FallbackBubbleBorder = Rose

// =============================================================================
// CODE BLOCK COLORS
// =============================================================================

var CodeBorder = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}
var CodeBorderFocused = Purple
var CodeBadgeBg = lipgloss.AdaptiveColor{Light: "#E0E7FF", Dark: "#313244"}
var CodeBadgeFg = lipgloss.AdaptiveColor{Light: "#3730A3", Dark: "#CBA6F7"}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet contains text indicators that carry meaning without color.
type StatusIndicatorSet struct {
	Copied  string
	Copy    string
	Error   string
	Pending string
}

// StatusIndicators are ASCII-safe where it matters.
var StatusIndicators = StatusIndicatorSet{
	Copied:  "copied ✓",
	Copy:    "copy",
	Error:   "[X]",
	Pending: "[ ]",
}
