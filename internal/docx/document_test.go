// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdword/internal/classify"
	"github.com/pdiddy/mdword/pkg/types"
)

// Reader-side structs match on local names only, the way a .docx reader
// sees the package regardless of prefixes.
type readDocument struct {
	Body struct {
		Paragraphs []readParagraph `xml:"p"`
		Section    struct {
			Margin struct {
				Top  string `xml:"top,attr"`
				Left string `xml:"left,attr"`
			} `xml:"pgMar"`
		} `xml:"sectPr"`
	} `xml:"body"`
}

type readParagraph struct {
	Props struct {
		Style struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
		NumPr *struct {
			NumID struct {
				Val string `xml:"val,attr"`
			} `xml:"numId"`
		} `xml:"numPr"`
	} `xml:"pPr"`
	Runs []readRun `xml:"r"`
}

type readRun struct {
	Props struct {
		Bold   *struct{} `xml:"b"`
		Italic *struct{} `xml:"i"`
		Fonts  *struct {
			ASCII string `xml:"ascii,attr"`
		} `xml:"rFonts"`
	} `xml:"rPr"`
	Text struct {
		Space string `xml:"space,attr"`
		Value string `xml:",chardata"`
	} `xml:"t"`
}

func (p readParagraph) text() string {
	var s string
	for _, r := range p.Runs {
		s += r.Text.Value
	}
	return s
}

func writeDocument(t *testing.T, doc *Document) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	f, err := zr.Open(name)
	require.NoError(t, err, "part %s", name)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return data
}

func parseDocument(t *testing.T, zr *zip.Reader) readDocument {
	t.Helper()
	var doc readDocument
	require.NoError(t, xml.Unmarshal(readPart(t, zr, partDocument), &doc))
	return doc
}

func TestWriteTo_Parts(t *testing.T) {
	zr := writeDocument(t, New(types.DefaultConvertConfig()))

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		partContentTypes, partRels, partDocument, partDocumentRels,
		partStyles, partNumbering, partCore, partApp,
	}, names)

	for _, name := range names {
		data := readPart(t, zr, name)
		assert.True(t, bytes.HasPrefix(data, []byte(xml.Header)), "%s lacks XML header", name)
		var v struct{}
		assert.NoError(t, xml.Unmarshal(data, &v), "%s is not well-formed", name)
	}
}

func TestDocument_Elements(t *testing.T) {
	doc := New(types.DefaultConvertConfig())
	input := "# Title\nThis is **bold** and `code`\n- item *one*\n> quoted\n```go\nfunc main() {\n\tx()\n}\n```"
	require.NoError(t, classify.Emit(classify.Lines(input), doc))

	got := parseDocument(t, writeDocument(t, doc))
	ps := got.Body.Paragraphs

	// Heading, paragraph, list item, quote, caption, three code lines.
	require.Len(t, ps, 8)
	assert.Equal(t, 8, doc.Len())

	assert.Equal(t, types.StyleHeading1, ps[0].Props.Style.Val)
	assert.Equal(t, "Title", ps[0].text())

	require.Len(t, ps[1].Runs, 4)
	assert.Equal(t, "This is ", ps[1].Runs[0].Text.Value)
	assert.Equal(t, "preserve", ps[1].Runs[0].Text.Space)
	assert.NotNil(t, ps[1].Runs[1].Props.Bold)
	require.NotNil(t, ps[1].Runs[3].Props.Fonts)
	assert.Equal(t, "Consolas", ps[1].Runs[3].Props.Fonts.ASCII)

	assert.Equal(t, styleListBullet, ps[2].Props.Style.Val)
	require.NotNil(t, ps[2].Props.NumPr)
	assert.Equal(t, bulletNumID, ps[2].Props.NumPr.NumID.Val)
	assert.Equal(t, "item one", ps[2].text())
	assert.NotNil(t, ps[2].Runs[1].Props.Italic)

	assert.Equal(t, styleQuote, ps[3].Props.Style.Val)
	assert.Equal(t, "quoted", ps[3].text())

	assert.Equal(t, styleCodeLabel, ps[4].Props.Style.Val)
	assert.Equal(t, "go", ps[4].text())
	for _, p := range ps[5:] {
		assert.Equal(t, styleCode, p.Props.Style.Val)
	}
	assert.Equal(t, "    x()", ps[6].text())
}

func TestDocument_HeadingStyleMapping(t *testing.T) {
	cfg := types.DefaultConvertConfig()
	cfg.Styles.Headings = map[int]string{1: types.StyleTitle, 2: types.StyleHeading1, 3: types.StyleHeading2}
	doc := New(cfg)

	for level := 1; level <= 3; level++ {
		require.NoError(t, doc.AddHeading("h", level))
	}

	ps := parseDocument(t, writeDocument(t, doc)).Body.Paragraphs
	require.Len(t, ps, 3)
	assert.Equal(t, types.StyleTitle, ps[0].Props.Style.Val)
	assert.Equal(t, types.StyleHeading1, ps[1].Props.Style.Val)
	assert.Equal(t, types.StyleHeading2, ps[2].Props.Style.Val)
}

func TestDocument_CodeLanguageCaptionDisabled(t *testing.T) {
	cfg := types.DefaultConvertConfig()
	cfg.Styles.ShowCodeLanguage = false
	doc := New(cfg)

	require.NoError(t, doc.AddCodeBlock("python", "print(1)"))
	assert.Equal(t, 1, doc.Len())
}

func TestDocument_Margins(t *testing.T) {
	cfg := types.DefaultConvertConfig()
	cfg.Page = types.PageConfig{Top: 0.8, Bottom: 0.8, Left: 1.25, Right: 1}

	got := parseDocument(t, writeDocument(t, New(cfg)))
	assert.Equal(t, "1152", got.Body.Section.Margin.Top)
	assert.Equal(t, "1800", got.Body.Section.Margin.Left)
}

func TestDocument_CoreProperties(t *testing.T) {
	doc := New(types.DefaultConvertConfig())
	doc.now = func() time.Time { return time.Date(2025, 12, 23, 8, 0, 0, 0, time.UTC) }
	doc.SetMeta(types.DocumentMeta{
		Title:    "M2.1 Review & Notes",
		Author:   "AI Tech Review",
		Keywords: []string{"go", "docx"},
	})

	var core struct {
		Title    string `xml:"title"`
		Creator  string `xml:"creator"`
		Keywords string `xml:"keywords"`
		Created  string `xml:"created"`
	}
	require.NoError(t, xml.Unmarshal(readPart(t, writeDocument(t, doc), partCore), &core))

	assert.Equal(t, "M2.1 Review & Notes", core.Title)
	assert.Equal(t, "AI Tech Review", core.Creator)
	assert.Equal(t, "go, docx", core.Keywords)
	assert.Equal(t, "2025-12-23T08:00:00Z", core.Created)
}
