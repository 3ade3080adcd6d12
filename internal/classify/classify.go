// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify turns line-oriented Markdown (or renderer output) into
// structural document elements. A single pass decides, line by line, whether
// the text is a heading, list item, quote, code block, or paragraph and hands
// each element to a Sink in input order.
package classify

import (
	"iter"
	"strings"

	"github.com/pdiddy/mdword/pkg/types"
)

// fenceMarker opens and closes a fenced code region.
const fenceMarker = "```"

// Sink receives classified elements. Document builders implement it.
type Sink interface {
	AddHeading(text string, level int) error
	AddParagraph(runs []types.Run) error
	AddListItem(text string) error
	AddQuote(text string) error
	AddCodeBlock(language, body string) error
}

// fenceState is the scanner's only state carried between lines.
type fenceState int

const (
	stateNormal fenceState = iota
	stateInCode
)

// scanner holds one classification pass. It is not safe for concurrent use
// and is never shared between passes.
type scanner struct {
	state    fenceState
	language string
	code     []string
}

// Elements returns a lazy sequence of the elements classified from lines.
// Each element is produced before the next line is examined.
func Elements(lines []string) iter.Seq[types.Element] {
	return func(yield func(types.Element) bool) {
		var s scanner
		for _, line := range lines {
			el, ok := s.step(line)
			if ok && !yield(el) {
				return
			}
		}
		if el, ok := s.finish(); ok {
			yield(el)
		}
	}
}

// Emit classifies lines and calls the matching sink operation for each
// element, in order. The first sink error stops the scan and is returned
// as is.
func Emit(lines []string, sink Sink) error {
	for el := range Elements(lines) {
		if err := Dispatch(el, sink); err != nil {
			return err
		}
	}
	return nil
}

// Collect returns every element classified from lines.
func Collect(lines []string) []types.Element {
	var out []types.Element
	for el := range Elements(lines) {
		out = append(out, el)
	}
	return out
}

// Dispatch hands a single element to the sink operation for its kind.
func Dispatch(el types.Element, sink Sink) error {
	switch el.Kind {
	case types.KindHeading:
		return sink.AddHeading(el.Text, el.Level)
	case types.KindListItem:
		return sink.AddListItem(el.Text)
	case types.KindQuote:
		return sink.AddQuote(el.Text)
	case types.KindCodeBlock:
		return sink.AddCodeBlock(el.Language, el.Body())
	default:
		return sink.AddParagraph(el.Runs)
	}
}

// Lines splits text into classifier input, tolerating CRLF line endings.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// step advances the scanner by one line and reports the element it
// completes, if any.
func (s *scanner) step(line string) (types.Element, bool) {
	trimmed := strings.TrimSpace(line)

	if s.state == stateInCode {
		if strings.HasPrefix(trimmed, fenceMarker) {
			return s.closeFence(), true
		}
		s.code = append(s.code, line)
		return types.Element{}, false
	}

	if strings.HasPrefix(trimmed, fenceMarker) {
		s.state = stateInCode
		s.language = strings.TrimSpace(strings.TrimLeft(trimmed, "`"))
		s.code = nil
		return types.Element{}, false
	}

	return classifyLine(trimmed)
}

// finish closes a fence left open at end of input.
func (s *scanner) finish() (types.Element, bool) {
	if s.state != stateInCode {
		return types.Element{}, false
	}
	return s.closeFence(), true
}

func (s *scanner) closeFence() types.Element {
	el := types.NewCodeBlock(s.language, s.code)
	s.state = stateNormal
	s.language = ""
	s.code = nil
	return el
}

// classifyLine classifies a single line outside a code region.
func classifyLine(trimmed string) (types.Element, bool) {
	if isComment(trimmed) {
		return types.Element{}, false
	}

	text := strings.TrimSpace(DecodeEntities(StripMarkup(trimmed)))
	if text == "" || isThematicBreak(text) {
		return types.Element{}, false
	}

	switch {
	case strings.HasPrefix(text, "#"):
		return heading(text)
	case strings.HasPrefix(text, "•"):
		return nonEmpty(types.NewListItem(strings.TrimSpace(strings.TrimPrefix(text, "•"))))
	case strings.HasPrefix(text, "* "), strings.HasPrefix(text, "-"):
		return nonEmpty(types.NewListItem(strings.TrimSpace(text[1:])))
	case strings.HasPrefix(text, ">"):
		return nonEmpty(types.NewQuote(strings.TrimSpace(text[1:])))
	}

	if inner, ok := wholeLineBold(text); ok {
		return types.NewParagraph([]types.Run{{Text: inner, Style: types.StyleBold}}), true
	}
	return types.NewParagraph(SplitRuns(text)), true
}

// heading builds a heading from a line starting with one or more '#'.
func heading(text string) (types.Element, bool) {
	level := len(text) - len(strings.TrimLeft(text, "#"))
	if level > types.MaxHeadingLevel {
		level = types.MaxHeadingLevel
	}
	return nonEmpty(types.NewHeading(strings.Trim(text, "# \t"), level))
}

// nonEmpty drops elements whose text is nothing but the marker.
func nonEmpty(el types.Element) (types.Element, bool) {
	return el, el.Text != ""
}

// wholeLineBold reports whether the line is a single **bold** span and
// returns its inner text.
func wholeLineBold(text string) (string, bool) {
	if len(text) < 5 || !strings.HasPrefix(text, "**") || !strings.HasSuffix(text, "**") {
		return "", false
	}
	inner := text[2 : len(text)-2]
	if strings.Contains(inner, "**") {
		return "", false
	}
	inner = strings.TrimSpace(inner)
	return inner, inner != ""
}

// isThematicBreak matches horizontal rules: three or more of the same
// '-', '*' or '_' with optional spaces.
func isThematicBreak(text string) bool {
	compact := strings.ReplaceAll(text, " ", "")
	if len(compact) < 3 {
		return false
	}
	c := compact[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	return strings.Count(compact, string(c)) == len(compact)
}
