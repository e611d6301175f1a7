// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual pieces of the JedAI chat screen.

Components are built on Bubble Tea and Lip Gloss and take their colors from
the styles package.

# Display Components

Banner (banner.go) - Title, greeting and service URL above the transcript.
MessageBubble (message.go) - One transcript message. Bot prose is rendered
with glamour and code runs become code blocks.
MessageList (message.go) - The full transcript with transcript-wide code
block numbering and selection.
CodeBlock (codeblock.go) - Chroma-highlighted code with a language badge and
a copy badge.
ChatViewport (viewport.go) - Scrollable transcript that follows new messages.

# Feedback

Spinner (spinner.go) - "Obi-Wan is thinking" indicator with elapsed time.
*/
package components
