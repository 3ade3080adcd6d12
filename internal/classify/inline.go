// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"regexp"

	"github.com/pdiddy/mdword/pkg/types"
)

// emphasisPattern matches, leftmost first, a **bold**, *italic*, or `code`
// span. Matching is non-greedy and does not nest.
var emphasisPattern = regexp.MustCompile("\\*\\*(.+?)\\*\\*|\\*([^*]+?)\\*|`([^`]+?)`")

// groupStyles maps each capture group of emphasisPattern to its style.
var groupStyles = []types.RunStyle{types.StyleBold, types.StyleItalic, types.StyleCode}

// SplitRuns splits text into emphasis runs in left-to-right order. Text
// outside a matched delimiter pair, including unmatched delimiters, becomes
// plain runs.
func SplitRuns(text string) []types.Run {
	var runs []types.Run
	last := 0
	for _, m := range emphasisPattern.FindAllStringSubmatchIndex(text, -1) {
		runs = appendRun(runs, text[last:m[0]], types.StylePlain)
		for g, style := range groupStyles {
			start, end := m[2+2*g], m[3+2*g]
			if start >= 0 {
				runs = appendRun(runs, text[start:end], style)
				break
			}
		}
		last = m[1]
	}
	return appendRun(runs, text[last:], types.StylePlain)
}

// appendRun adds a run, skipping empty text and merging adjacent runs of
// the same style.
func appendRun(runs []types.Run, text string, style types.RunStyle) []types.Run {
	if text == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Style == style {
		runs[n-1].Text += text
		return runs
	}
	return append(runs, types.Run{Text: text, Style: style})
}
