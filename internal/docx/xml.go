// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import "encoding/xml"

// XML namespaces written into the package parts.
const (
	nsW        = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsCP       = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC       = "http://purl.org/dc/elements/1.1/"
	nsDCTerms  = "http://purl.org/dc/terms/"
	nsXSI      = "http://www.w3.org/2001/XMLSchema-instance"
	nsTypes    = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPkgRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsExtended = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

// Element names carry their w: prefix literally; encoding/xml writes them
// as given, and the prefix is bound on the root element.

// documentXML is word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    bodyXML  `xml:"w:body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"w:p"`
	Section    sectionXML     `xml:"w:sectPr"`
}

// paragraphXML is a <w:p>.
type paragraphXML struct {
	Props *paragraphPropsXML `xml:"w:pPr,omitempty"`
	Runs  []runXML           `xml:"w:r"`
}

// paragraphPropsXML is a <w:pPr>. Field order follows the schema sequence.
type paragraphPropsXML struct {
	Style             *valXML     `xml:"w:pStyle,omitempty"`
	KeepNext          *emptyXML   `xml:"w:keepNext,omitempty"`
	NumPr             *numPrXML   `xml:"w:numPr,omitempty"`
	Spacing           *spacingXML `xml:"w:spacing,omitempty"`
	Indent            *indentXML  `xml:"w:ind,omitempty"`
	ContextualSpacing *emptyXML   `xml:"w:contextualSpacing,omitempty"`
	Justification     *valXML     `xml:"w:jc,omitempty"`
	OutlineLvl        *valXML     `xml:"w:outlineLvl,omitempty"`
}

// runXML is a <w:r> holding a single text node.
type runXML struct {
	Props *runPropsXML `xml:"w:rPr,omitempty"`
	Text  textXML      `xml:"w:t"`
}

// runPropsXML is a <w:rPr>. Field order follows the schema sequence.
type runPropsXML struct {
	Fonts  *fontsXML `xml:"w:rFonts,omitempty"`
	Bold   *emptyXML `xml:"w:b,omitempty"`
	Italic *emptyXML `xml:"w:i,omitempty"`
	Color  *valXML   `xml:"w:color,omitempty"`
	Size   *valXML   `xml:"w:sz,omitempty"`
}

type textXML struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type emptyXML struct{}

type valXML struct {
	Val string `xml:"w:val,attr"`
}

type fontsXML struct {
	ASCII    string `xml:"w:ascii,attr,omitempty"`
	HAnsi    string `xml:"w:hAnsi,attr,omitempty"`
	EastAsia string `xml:"w:eastAsia,attr,omitempty"`
	CS       string `xml:"w:cs,attr,omitempty"`
}

type numPrXML struct {
	ILvl  valXML `xml:"w:ilvl"`
	NumID valXML `xml:"w:numId"`
}

// spacingXML values are twips.
type spacingXML struct {
	Before string `xml:"w:before,attr,omitempty"`
	After  string `xml:"w:after,attr,omitempty"`
	Line   string `xml:"w:line,attr,omitempty"`
}

// indentXML values are twips.
type indentXML struct {
	Left      string `xml:"w:left,attr,omitempty"`
	Right     string `xml:"w:right,attr,omitempty"`
	Hanging   string `xml:"w:hanging,attr,omitempty"`
	FirstLine string `xml:"w:firstLine,attr,omitempty"`
}

type sectionXML struct {
	PageSize   pageSizeXML   `xml:"w:pgSz"`
	PageMargin pageMarginXML `xml:"w:pgMar"`
}

type pageSizeXML struct {
	W string `xml:"w:w,attr"`
	H string `xml:"w:h,attr"`
}

type pageMarginXML struct {
	Top    string `xml:"w:top,attr"`
	Right  string `xml:"w:right,attr"`
	Bottom string `xml:"w:bottom,attr"`
	Left   string `xml:"w:left,attr"`
	Header string `xml:"w:header,attr"`
	Footer string `xml:"w:footer,attr"`
	Gutter string `xml:"w:gutter,attr"`
}

// stylesXML is word/styles.xml.
type stylesXML struct {
	XMLName     xml.Name       `xml:"w:styles"`
	XmlnsW      string         `xml:"xmlns:w,attr"`
	DocDefaults docDefaultsXML `xml:"w:docDefaults"`
	Styles      []styleXML     `xml:"w:style"`
}

type docDefaultsXML struct {
	RunDefaults  runDefaultsXML  `xml:"w:rPrDefault"`
	ParaDefaults paraDefaultsXML `xml:"w:pPrDefault"`
}

type runDefaultsXML struct {
	Props runPropsXML `xml:"w:rPr"`
}

type paraDefaultsXML struct {
	Props paragraphPropsXML `xml:"w:pPr"`
}

type styleXML struct {
	Type    string             `xml:"w:type,attr"`
	StyleID string             `xml:"w:styleId,attr"`
	Default string             `xml:"w:default,attr,omitempty"`
	Name    valXML             `xml:"w:name"`
	BasedOn *valXML            `xml:"w:basedOn,omitempty"`
	Next    *valXML            `xml:"w:next,omitempty"`
	QFormat *emptyXML          `xml:"w:qFormat,omitempty"`
	PPr     *paragraphPropsXML `xml:"w:pPr,omitempty"`
	RPr     *runPropsXML       `xml:"w:rPr,omitempty"`
}

// numberingXML is word/numbering.xml.
type numberingXML struct {
	XMLName      xml.Name         `xml:"w:numbering"`
	XmlnsW       string           `xml:"xmlns:w,attr"`
	AbstractNums []abstractNumXML `xml:"w:abstractNum"`
	Nums         []numXML         `xml:"w:num"`
}

type abstractNumXML struct {
	ID             string   `xml:"w:abstractNumId,attr"`
	MultiLevelType valXML   `xml:"w:multiLevelType"`
	Levels         []lvlXML `xml:"w:lvl"`
}

type lvlXML struct {
	ILvl    string             `xml:"w:ilvl,attr"`
	Start   valXML             `xml:"w:start"`
	NumFmt  valXML             `xml:"w:numFmt"`
	LvlText valXML             `xml:"w:lvlText"`
	LvlJc   valXML             `xml:"w:lvlJc"`
	PPr     *paragraphPropsXML `xml:"w:pPr,omitempty"`
}

type numXML struct {
	ID          string `xml:"w:numId,attr"`
	AbstractNum valXML `xml:"w:abstractNumId"`
}

// contentTypesXML is [Content_Types].xml.
type contentTypesXML struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// relationshipsXML is a .rels part.
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// corePropertiesXML is docProps/core.xml.
type corePropertiesXML struct {
	XMLName        xml.Name   `xml:"cp:coreProperties"`
	XmlnsCP        string     `xml:"xmlns:cp,attr"`
	XmlnsDC        string     `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string     `xml:"xmlns:dcterms,attr"`
	XmlnsXSI       string     `xml:"xmlns:xsi,attr"`
	Title          string     `xml:"dc:title,omitempty"`
	Subject        string     `xml:"dc:subject,omitempty"`
	Creator        string     `xml:"dc:creator,omitempty"`
	Keywords       string     `xml:"cp:keywords,omitempty"`
	LastModifiedBy string     `xml:"cp:lastModifiedBy,omitempty"`
	Created        w3cDateXML `xml:"dcterms:created"`
	Modified       w3cDateXML `xml:"dcterms:modified"`
}

type w3cDateXML struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// appPropertiesXML is docProps/app.xml.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
	Paragraphs  int      `xml:"Paragraphs"`
}
