// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package segment

import "strings"

// Fence is the code block delimiter.
const Fence = "```"

// =============================================================================
// SEGMENT TYPE
// =============================================================================

// Kind discriminates the two segment variants.
type Kind int

const (
	KindText Kind = iota
	KindCode
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// Segment is one contiguous run of a response body.
type Segment struct {
	Kind Kind

	// Content is the run's text. For code it excludes the fences and the
	// language tag line.
	Content string

	// Lang is the language tag of a code run, possibly empty.
	Lang string

	// Open is the raw opening delimiter of a code run: the fence, the tag
	// and the line break that ended the tag line, if there was one.
	Open string
}

// Text returns a text segment.
func Text(content string) Segment {
	return Segment{Kind: KindText, Content: content}
}

// Code returns a code segment whose opening delimiter is a fence followed
// by a tag line for lang.
func Code(lang, content string) Segment {
	return Segment{Kind: KindCode, Content: content, Lang: lang, Open: Fence + lang + "\n"}
}

// IsCode reports whether the segment is a fenced code run.
func (s Segment) IsCode() bool {
	return s.Kind == KindCode
}

// Raw returns the segment as it appeared in the source text.
func (s Segment) Raw() string {
	if s.Kind != KindCode {
		return s.Content
	}
	open := s.Open
	if open == "" {
		open = Fence
	}
	return open + s.Content + Fence
}

// =============================================================================
// SCANNER
// =============================================================================

// scanner walks the input once, left to right. Between fences it is in
// text state; after an opening fence it looks for the next fence, which
// always closes the block.
type scanner struct {
	src       string
	pos       int // next byte to examine
	textStart int // start of the pending text run
	out       []Segment
}

// Split breaks text into text and code segments in order of appearance.
//
// Zero-length text runs are dropped. Code runs are kept even when empty.
// An opening fence with no closing fence does not start a code block; the
// rest of the input, backticks included, stays text.
func Split(text string) []Segment {
	s := &scanner{src: text}
	s.run()
	return s.out
}

func (s *scanner) run() {
	for {
		open := s.nextFence(s.pos)
		if open < 0 {
			break
		}
		body := open + len(Fence)
		closing := s.nextFence(body)
		if closing < 0 {
			// Unterminated. Nothing after this point can close a block.
			break
		}

		s.flushText(open)
		s.emitCode(s.src[open:body], s.src[body:closing])

		s.pos = closing + len(Fence)
		s.textStart = s.pos
	}
	s.flushText(len(s.src))
}

// nextFence returns the index of the first fence at or after from, or -1.
func (s *scanner) nextFence(from int) int {
	run := 0
	for i := from; i < len(s.src); i++ {
		if s.src[i] != '`' {
			run = 0
			continue
		}
		run++
		if run == len(Fence) {
			return i - len(Fence) + 1
		}
	}
	return -1
}

func (s *scanner) flushText(end int) {
	if end > s.textStart {
		s.out = append(s.out, Text(s.src[s.textStart:end]))
	}
}

func (s *scanner) emitCode(fence, body string) {
	lang, n := tagLine(body)
	s.out = append(s.out, Segment{
		Kind:    KindCode,
		Content: body[n:],
		Lang:    lang,
		Open:    fence + body[:n],
	})
}

// tagLine reports the language tag at the start of a code body and how many
// bytes the tag line occupies. A tag line is a run of characters other than
// whitespace and backticks, possibly empty, ended by a newline. When the
// body does not start with one, n is zero.
func tagLine(body string) (lang string, n int) {
	for i := 0; i < len(body); i++ {
		switch c := body[i]; c {
		case '\n':
			return body[:i], i + 1
		case ' ', '\t', '\r', '\v', '\f', '`':
			return "", 0
		}
	}
	return "", 0
}

// =============================================================================
// HELPERS
// =============================================================================

// Join concatenates segments back into source text.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Raw())
	}
	return b.String()
}

// Codes returns the code segments of segments, in order.
func Codes(segments []Segment) []Segment {
	var codes []Segment
	for _, seg := range segments {
		if seg.IsCode() {
			codes = append(codes, seg)
		}
	}
	return codes
}
