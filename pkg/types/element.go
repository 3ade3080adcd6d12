// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ElementKind identifies the structural role a classified line plays in the
// output document.
type ElementKind string

const (
	KindHeading   ElementKind = "heading"
	KindListItem  ElementKind = "list_item"
	KindQuote     ElementKind = "quote"
	KindCodeBlock ElementKind = "code_block"
	KindParagraph ElementKind = "paragraph"
)

// RunStyle is the formatting shared by one contiguous span of paragraph text.
type RunStyle string

const (
	StylePlain  RunStyle = "plain"
	StyleBold   RunStyle = "bold"
	StyleItalic RunStyle = "italic"
	StyleCode   RunStyle = "code"
)

// Run is a substring of a paragraph tagged with a single style. Run order
// within a paragraph is significant.
type Run struct {
	Text  string   `json:"text" yaml:"text"`
	Style RunStyle `json:"style" yaml:"style"`
}

// Element is one classified output unit. Which fields are meaningful depends
// on Kind:
//
//	heading:    Level (1-3), Text
//	list_item:  Text
//	quote:      Text
//	code_block: Language, Lines
//	paragraph:  Text, Runs
type Element struct {
	Kind     ElementKind `json:"kind" yaml:"kind"`
	Level    int         `json:"level,omitempty" yaml:"level,omitempty"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	Language string      `json:"language,omitempty" yaml:"language,omitempty"`
	Lines    []string    `json:"lines,omitempty" yaml:"lines,omitempty"`
	Runs     []Run       `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// Body returns the code block body: the accumulated lines joined by newlines.
func (e Element) Body() string {
	return strings.Join(e.Lines, "\n")
}

// NewHeading returns a heading element.
func NewHeading(text string, level int) Element {
	return Element{Kind: KindHeading, Level: level, Text: text}
}

// NewListItem returns a list item element.
func NewListItem(text string) Element {
	return Element{Kind: KindListItem, Text: text}
}

// NewQuote returns a quote element.
func NewQuote(text string) Element {
	return Element{Kind: KindQuote, Text: text}
}

// NewCodeBlock returns a code block element. The lines slice is copied.
func NewCodeBlock(language string, lines []string) Element {
	return Element{
		Kind:     KindCodeBlock,
		Language: language,
		Lines:    append([]string{}, lines...),
	}
}

// NewParagraph returns a paragraph element whose Text is the concatenation
// of its runs.
func NewParagraph(runs []Run) Element {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return Element{Kind: KindParagraph, Text: b.String(), Runs: runs}
}

// ElementCounts tallies emitted elements per kind.
type ElementCounts struct {
	Headings   int `json:"headings" yaml:"headings"`
	Paragraphs int `json:"paragraphs" yaml:"paragraphs"`
	ListItems  int `json:"list_items" yaml:"list_items"`
	Quotes     int `json:"quotes" yaml:"quotes"`
	CodeBlocks int `json:"code_blocks" yaml:"code_blocks"`
}

// Add increments the counter for kind.
func (c *ElementCounts) Add(kind ElementKind) {
	switch kind {
	case KindHeading:
		c.Headings++
	case KindParagraph:
		c.Paragraphs++
	case KindListItem:
		c.ListItems++
	case KindQuote:
		c.Quotes++
	case KindCodeBlock:
		c.CodeBlocks++
	}
}

// Total returns the number of elements counted.
func (c ElementCounts) Total() int {
	return c.Headings + c.Paragraphs + c.ListItems + c.Quotes + c.CodeBlocks
}
