// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx builds WordprocessingML (.docx) documents from classified
// Markdown elements. Document implements classify.Sink; nothing is written
// until WriteTo serialises the package.
package docx

import (
	"strings"
	"time"

	"github.com/pdiddy/mdword/internal/classify"
	"github.com/pdiddy/mdword/pkg/types"
)

// Paragraph style IDs defined in styles.xml besides the heading styles.
const (
	styleNormal     = "Normal"
	styleListBullet = "ListBullet"
	styleQuote      = "Quote"
	styleCode       = "Code"
	styleCodeLabel  = "CodeLabel"
)

// bulletNumID is the numbering instance used by list items.
const bulletNumID = "1"

// tabWidth is the number of spaces a tab in a code line expands to.
const tabWidth = 4

// Document accumulates paragraphs for one output file.
type Document struct {
	cfg        types.ConvertConfig
	meta       types.DocumentMeta
	paragraphs []paragraphXML
	now        func() time.Time
}

// New creates an empty document using cfg for page layout, fonts, and the
// heading style mapping.
func New(cfg types.ConvertConfig) *Document {
	return &Document{cfg: cfg, now: time.Now}
}

// SetMeta sets the properties written to docProps/core.xml.
func (d *Document) SetMeta(meta types.DocumentMeta) {
	d.meta = meta
}

// Len returns the number of paragraphs added so far.
func (d *Document) Len() int {
	return len(d.paragraphs)
}

// AddHeading adds a heading paragraph styled through the configured
// level-to-style mapping.
func (d *Document) AddHeading(text string, level int) error {
	d.paragraphs = append(d.paragraphs, paragraphXML{
		Props: &paragraphPropsXML{Style: &valXML{Val: d.cfg.Styles.HeadingStyle(level)}},
		Runs:  []runXML{textRun(text, nil)},
	})
	return nil
}

// AddParagraph adds a body paragraph with one run per emphasis run.
func (d *Document) AddParagraph(runs []types.Run) error {
	d.paragraphs = append(d.paragraphs, paragraphXML{Runs: d.styledRuns(runs)})
	return nil
}

// AddListItem adds a bulleted paragraph. Emphasis inside the item is kept.
func (d *Document) AddListItem(text string) error {
	d.paragraphs = append(d.paragraphs, paragraphXML{
		Props: &paragraphPropsXML{
			Style: &valXML{Val: styleListBullet},
			NumPr: &numPrXML{ILvl: valXML{Val: "0"}, NumID: valXML{Val: bulletNumID}},
		},
		Runs: d.styledRuns(classify.SplitRuns(text)),
	})
	return nil
}

// AddQuote adds an indented quote paragraph.
func (d *Document) AddQuote(text string) error {
	d.paragraphs = append(d.paragraphs, paragraphXML{
		Props: &paragraphPropsXML{Style: &valXML{Val: styleQuote}},
		Runs:  d.styledRuns(classify.SplitRuns(text)),
	})
	return nil
}

// AddCodeBlock adds one Code paragraph per body line, preceded by a
// language caption when enabled and a language is declared.
func (d *Document) AddCodeBlock(language, body string) error {
	if d.cfg.Styles.ShowCodeLanguage && language != "" {
		d.paragraphs = append(d.paragraphs, paragraphXML{
			Props: &paragraphPropsXML{Style: &valXML{Val: styleCodeLabel}},
			Runs:  []runXML{textRun(language, nil)},
		})
	}

	expand := strings.Repeat(" ", tabWidth)
	for _, line := range strings.Split(body, "\n") {
		d.paragraphs = append(d.paragraphs, paragraphXML{
			Props: &paragraphPropsXML{Style: &valXML{Val: styleCode}},
			Runs:  []runXML{textRun(strings.ReplaceAll(line, "\t", expand), nil)},
		})
	}
	return nil
}

// styledRuns converts emphasis runs to WordprocessingML runs.
func (d *Document) styledRuns(runs []types.Run) []runXML {
	out := make([]runXML, 0, len(runs))
	for _, r := range runs {
		var props *runPropsXML
		switch r.Style {
		case types.StyleBold:
			props = &runPropsXML{Bold: &emptyXML{}}
		case types.StyleItalic:
			props = &runPropsXML{Italic: &emptyXML{}}
		case types.StyleCode:
			props = &runPropsXML{Fonts: &fontsXML{ASCII: d.cfg.Fonts.Code, HAnsi: d.cfg.Fonts.Code, CS: d.cfg.Fonts.Code}}
		}
		out = append(out, textRun(r.Text, props))
	}
	return out
}

// textRun builds a run, preserving leading and trailing whitespace.
func textRun(text string, props *runPropsXML) runXML {
	t := textXML{Value: text}
	if text != strings.TrimSpace(text) {
		t.Space = "preserve"
	}
	return runXML{Props: props, Text: t}
}
