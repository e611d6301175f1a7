// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package segment splits a bot response into alternating prose and
// fenced-code runs.
//
// A fence is three backticks. The opening fence may carry a language tag
// on the rest of its line:
//
//	Here is the fix:
//	```go
//	fmt.Println("hi")
//	```
//
// Split returns the runs in order of appearance; Join puts them back
// together byte for byte.
//
// # Usage
//
//	for _, seg := range segment.Split(reply) {
//	    switch seg.Kind {
//	    case segment.KindText:
//	        renderMarkdown(seg.Content)
//	    case segment.KindCode:
//	        renderCode(seg.Lang, seg.Content)
//	    }
//	}
package segment
