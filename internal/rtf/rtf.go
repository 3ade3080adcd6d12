// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rtf builds Rich Text Format documents from classified Markdown
// elements. Document implements classify.Sink. The output opens in Word and
// most other word processors.
package rtf

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/pdiddy/mdword/internal/classify"
	"github.com/pdiddy/mdword/pkg/types"
)

// Font table indexes.
const (
	fontBody     = 0
	fontCode     = 1
	fontEastAsia = 2
)

// Color table entries, 1-based as referenced by \cfN.
var colors = [][3]int{
	{0x00, 0x33, 0x66},
	{0x00, 0x66, 0xCC},
	{0x00, 0x66, 0x99},
	{0x1F, 0x38, 0x64},
	{0x00, 0x80, 0x00},
	{0x40, 0x40, 0x40},
	{0x66, 0x66, 0x66},
}

const (
	colorTitle = iota + 1
	colorHeading1
	colorHeading2
	colorHeading3
	colorCode
	colorQuote
	colorLabel
)

type headingLook struct {
	size   float64
	color  int
	center bool
}

var headingLooks = map[string]headingLook{
	types.StyleTitle:    {size: 22, color: colorTitle, center: true},
	types.StyleHeading1: {size: 18, color: colorHeading1},
	types.StyleHeading2: {size: 16, color: colorHeading2},
	types.StyleHeading3: {size: 14, color: colorHeading3},
}

const (
	twipsPerInch = 1440
	tabWidth     = 4
	generator    = "mdword"
)

// Document accumulates the RTF body for one output file.
type Document struct {
	cfg  types.ConvertConfig
	meta types.DocumentMeta
	body bytes.Buffer
	n    int
	now  func() time.Time
}

// New creates an empty document.
func New(cfg types.ConvertConfig) *Document {
	return &Document{cfg: cfg, now: time.Now}
}

// SetMeta sets the properties written to the \info group.
func (d *Document) SetMeta(meta types.DocumentMeta) {
	d.meta = meta
}

// Len returns the number of paragraphs added so far.
func (d *Document) Len() int {
	return d.n
}

func (d *Document) AddHeading(text string, level int) error {
	look, ok := headingLooks[d.cfg.Styles.HeadingStyle(level)]
	if !ok {
		look = headingLooks[types.StyleHeading3]
	}
	d.pard(`\sb240\sa120\keepn`)
	if look.center {
		d.body.WriteString(`\qc`)
	}
	fmt.Fprintf(&d.body, `{\b\fs%d\cf%d `, halfPoints(look.size), look.color)
	d.body.WriteString(escape(text))
	d.body.WriteString("}")
	d.par()
	return nil
}

func (d *Document) AddParagraph(runs []types.Run) error {
	d.pard(`\sa120`)
	d.writeRuns(runs)
	d.par()
	return nil
}

func (d *Document) AddListItem(text string) error {
	d.pard(`\fi-360\li720\sa60`)
	d.body.WriteString(`\bullet\tab `)
	d.writeRuns(classify.SplitRuns(text))
	d.par()
	return nil
}

func (d *Document) AddQuote(text string) error {
	d.pard(`\li720\ri720\sa120`)
	fmt.Fprintf(&d.body, `{\i\cf%d `, colorQuote)
	d.writeRuns(classify.SplitRuns(text))
	d.body.WriteString("}")
	d.par()
	return nil
}

// AddCodeBlock writes each body line as its own monospace paragraph. The
// language caption follows the ShowCodeLanguage setting.
func (d *Document) AddCodeBlock(language, body string) error {
	size := halfPoints(d.cfg.Fonts.CodeSize)
	if d.cfg.Styles.ShowCodeLanguage && language != "" {
		d.pard(`\li720\sb120\keepn`)
		fmt.Fprintf(&d.body, `{\f%d\fs%d\b\cf%d %s}`, fontCode, size, colorLabel, escape(language))
		d.par()
	}

	expand := strings.Repeat(" ", tabWidth)
	for _, line := range strings.Split(body, "\n") {
		d.pard(`\li720\sa0`)
		fmt.Fprintf(&d.body, `{\f%d\fs%d\cf%d %s}`, fontCode, size, colorCode,
			escape(strings.ReplaceAll(line, "\t", expand)))
		d.par()
	}
	return nil
}

// WriteTo serialises the complete document. It implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var out bytes.Buffer
	d.writeHeader(&out)
	out.Write(d.body.Bytes())
	out.WriteString("}\n")
	return out.WriteTo(w)
}

func (d *Document) writeHeader(out *bytes.Buffer) {
	fonts := d.cfg.Fonts
	out.WriteString(`{\rtf1\ansi\ansicpg1252\deff0\uc1` + "\n")
	fmt.Fprintf(out, `{\fonttbl{\f%d\fswiss\fcharset0 %s;}{\f%d\fmodern\fcharset0 %s;}{\f%d\fnil\fcharset134 %s;}}`+"\n",
		fontBody, escape(fonts.Body), fontCode, escape(fonts.Code), fontEastAsia, escape(fonts.EastAsia))

	out.WriteString(`{\colortbl;`)
	for _, c := range colors {
		fmt.Fprintf(out, `\red%d\green%d\blue%d;`, c[0], c[1], c[2])
	}
	out.WriteString("}\n")
	out.WriteString(`{\*\generator ` + generator + ";}\n")
	d.writeInfo(out)

	page := d.cfg.Page
	fmt.Fprintf(out, `\paperw12240\paperh15840\margl%d\margr%d\margt%d\margb%d`+"\n",
		twips(page.Left), twips(page.Right), twips(page.Top), twips(page.Bottom))
	fmt.Fprintf(out, `\f%d\fs%d`+"\n", fontBody, halfPoints(fonts.BodySize))
}

func (d *Document) writeInfo(out *bytes.Buffer) {
	created := d.meta.Date
	if created.IsZero() {
		created = d.now()
	}

	out.WriteString(`{\info`)
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(out, `{\%s %s}`, name, escape(value))
		}
	}
	field("title", d.meta.Title)
	field("subject", d.meta.Subject)
	field("author", d.meta.Author)
	field("keywords", strings.Join(d.meta.Keywords, ", "))
	fmt.Fprintf(out, `{\creatim\yr%d\mo%d\dy%d\hr%d\min%d}`,
		created.Year(), created.Month(), created.Day(), created.Hour(), created.Minute())
	out.WriteString("}\n")
}

// pard starts a paragraph with default formatting plus props.
func (d *Document) pard(props string) {
	d.body.WriteString(`\pard\plain\f0\fs`)
	fmt.Fprintf(&d.body, "%d", halfPoints(d.cfg.Fonts.BodySize))
	d.body.WriteString(props)
	d.body.WriteString(" ")
}

func (d *Document) par() {
	d.body.WriteString("\\par\n")
	d.n++
}

func (d *Document) writeRuns(runs []types.Run) {
	for _, r := range runs {
		text := escape(r.Text)
		switch r.Style {
		case types.StyleBold:
			fmt.Fprintf(&d.body, `{\b %s}`, text)
		case types.StyleItalic:
			fmt.Fprintf(&d.body, `{\i %s}`, text)
		case types.StyleCode:
			fmt.Fprintf(&d.body, `{\f%d %s}`, fontCode, text)
		default:
			d.body.WriteString(text)
		}
	}
}

// escape quotes RTF control characters and writes non-ASCII runes as
// \uN? escapes, splitting runes outside the BMP into surrogate pairs.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\tab `)
		case r < 0x80:
			b.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			writeUnicode(&b, hi)
			writeUnicode(&b, lo)
		default:
			writeUnicode(&b, r)
		}
	}
	return b.String()
}

// writeUnicode writes a UTF-16 code unit as a signed 16-bit \u value
// followed by a '?' fallback character.
func writeUnicode(b *strings.Builder, r rune) {
	fmt.Fprintf(b, `\u%d?`, int16(uint16(r)))
}

func twips(inches float64) int {
	return int(math.Round(inches * twipsPerInch))
}

func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}
