// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"math"
	"strconv"

	"github.com/pdiddy/mdword/pkg/types"
)

const twipsPerInch = 1440

// twips converts inches to a twips attribute value.
func twips(inches float64) string {
	return strconv.Itoa(int(math.Round(inches * twipsPerInch)))
}

// halfPoints converts a point size to the half-point units of w:sz.
func halfPoints(pt float64) string {
	return strconv.Itoa(int(math.Round(pt * 2)))
}

// headingLook is the run formatting of a heading style.
type headingLook struct {
	id      string
	name    string
	size    float64
	color   string
	outline string
	center  bool
}

var headingLooks = []headingLook{
	{id: types.StyleTitle, name: "Title", size: 22, color: "003366", center: true},
	{id: types.StyleHeading1, name: "heading 1", size: 18, color: "0066CC", outline: "0"},
	{id: types.StyleHeading2, name: "heading 2", size: 16, color: "006699", outline: "1"},
	{id: types.StyleHeading3, name: "heading 3", size: 14, color: "1F3864", outline: "2"},
}

// buildStyles returns the style sheet for cfg.
func buildStyles(cfg types.ConvertConfig) stylesXML {
	fonts := cfg.Fonts
	codeFonts := &fontsXML{ASCII: fonts.Code, HAnsi: fonts.Code, CS: fonts.Code, EastAsia: fonts.EastAsia}
	normal := valXML{Val: styleNormal}

	styles := []styleXML{
		{
			Type:    "paragraph",
			StyleID: styleNormal,
			Default: "1",
			Name:    valXML{Val: "Normal"},
			QFormat: &emptyXML{},
		},
	}

	for _, h := range headingLooks {
		ppr := &paragraphPropsXML{
			KeepNext: &emptyXML{},
			Spacing:  &spacingXML{Before: "240", After: "120"},
		}
		if h.center {
			ppr.Justification = &valXML{Val: "center"}
		}
		if h.outline != "" {
			ppr.OutlineLvl = &valXML{Val: h.outline}
		}
		styles = append(styles, styleXML{
			Type:    "paragraph",
			StyleID: h.id,
			Name:    valXML{Val: h.name},
			BasedOn: &normal,
			Next:    &normal,
			QFormat: &emptyXML{},
			PPr:     ppr,
			RPr: &runPropsXML{
				Bold:  &emptyXML{},
				Color: &valXML{Val: h.color},
				Size:  &valXML{Val: halfPoints(h.size)},
			},
		})
	}

	styles = append(styles,
		styleXML{
			Type:    "paragraph",
			StyleID: styleListBullet,
			Name:    valXML{Val: "List Bullet"},
			BasedOn: &normal,
			QFormat: &emptyXML{},
			PPr: &paragraphPropsXML{
				Indent:            &indentXML{Left: "720", Hanging: "360"},
				ContextualSpacing: &emptyXML{},
			},
		},
		styleXML{
			Type:    "paragraph",
			StyleID: styleQuote,
			Name:    valXML{Val: "Quote"},
			BasedOn: &normal,
			Next:    &normal,
			QFormat: &emptyXML{},
			PPr:     &paragraphPropsXML{Indent: &indentXML{Left: "720", Right: "720"}},
			RPr:     &runPropsXML{Italic: &emptyXML{}, Color: &valXML{Val: "404040"}},
		},
		styleXML{
			Type:    "paragraph",
			StyleID: styleCode,
			Name:    valXML{Val: "Code"},
			BasedOn: &normal,
			PPr: &paragraphPropsXML{
				Spacing:           &spacingXML{Before: "120", After: "120", Line: "240"},
				Indent:            &indentXML{Left: "720"},
				ContextualSpacing: &emptyXML{},
			},
			RPr: &runPropsXML{
				Fonts: codeFonts,
				Color: &valXML{Val: "008000"},
				Size:  &valXML{Val: halfPoints(fonts.CodeSize)},
			},
		},
		styleXML{
			Type:    "paragraph",
			StyleID: styleCodeLabel,
			Name:    valXML{Val: "Code Label"},
			BasedOn: &normal,
			Next:    &valXML{Val: styleCode},
			PPr: &paragraphPropsXML{
				KeepNext: &emptyXML{},
				Spacing:  &spacingXML{Before: "120", After: "0"},
				Indent:   &indentXML{Left: "720"},
			},
			RPr: &runPropsXML{
				Fonts: codeFonts,
				Bold:  &emptyXML{},
				Color: &valXML{Val: "666666"},
				Size:  &valXML{Val: halfPoints(fonts.CodeSize)},
			},
		},
	)

	return stylesXML{
		XmlnsW: nsW,
		DocDefaults: docDefaultsXML{
			RunDefaults: runDefaultsXML{Props: runPropsXML{
				Fonts: &fontsXML{ASCII: fonts.Body, HAnsi: fonts.Body, CS: fonts.Body, EastAsia: fonts.EastAsia},
				Size:  &valXML{Val: halfPoints(fonts.BodySize)},
			}},
			ParaDefaults: paraDefaultsXML{Props: paragraphPropsXML{
				Spacing: &spacingXML{After: "120", Line: "276"},
			}},
		},
		Styles: styles,
	}
}

// buildNumbering returns the single-level bullet list definition used by
// ListBullet paragraphs.
func buildNumbering() numberingXML {
	return numberingXML{
		XmlnsW: nsW,
		AbstractNums: []abstractNumXML{{
			ID:             "0",
			MultiLevelType: valXML{Val: "singleLevel"},
			Levels: []lvlXML{{
				ILvl:    "0",
				Start:   valXML{Val: "1"},
				NumFmt:  valXML{Val: "bullet"},
				LvlText: valXML{Val: "•"},
				LvlJc:   valXML{Val: "left"},
				PPr:     &paragraphPropsXML{Indent: &indentXML{Left: "720", Hanging: "360"}},
			}},
		}},
		Nums: []numXML{{ID: bulletNumID, AbstractNum: valXML{Val: "0"}}},
	}
}

// buildSection returns US Letter page size with the configured margins.
func buildSection(page types.PageConfig) sectionXML {
	return sectionXML{
		PageSize: pageSizeXML{W: "12240", H: "15840"},
		PageMargin: pageMarginXML{
			Top:    twips(page.Top),
			Right:  twips(page.Right),
			Bottom: twips(page.Bottom),
			Left:   twips(page.Left),
			Header: "720",
			Footer: "720",
			Gutter: "0",
		},
	}
}
