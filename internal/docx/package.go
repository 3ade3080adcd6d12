// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	partContentTypes = "[Content_Types].xml"
	partRels         = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
)

const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
)

const application = "mdword"

// part is one entry of the zip package.
type part struct {
	name string
	body any
}

// WriteTo serialises the document as a .docx zip package. It implements
// io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	for _, p := range d.parts() {
		if err := writePart(zw, p); err != nil {
			return cw.n, err
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("closing docx package: %w", err)
	}
	return cw.n, nil
}

func (d *Document) parts() []part {
	paragraphs := d.paragraphs
	if paragraphs == nil {
		paragraphs = []paragraphXML{}
	}

	return []part{
		{partContentTypes, contentTypes()},
		{partRels, relationshipsXML{
			Xmlns: nsPkgRels,
			Relationships: []relationshipXML{
				{ID: "rId1", Type: relOfficeDocument, Target: partDocument},
				{ID: "rId2", Type: relCoreProps, Target: partCore},
				{ID: "rId3", Type: relExtendedProps, Target: partApp},
			},
		}},
		{partDocument, documentXML{
			XmlnsW: nsW,
			XmlnsR: nsR,
			Body: bodyXML{
				Paragraphs: paragraphs,
				Section:    buildSection(d.cfg.Page),
			},
		}},
		{partDocumentRels, relationshipsXML{
			Xmlns: nsPkgRels,
			Relationships: []relationshipXML{
				{ID: "rId1", Type: relStyles, Target: "styles.xml"},
				{ID: "rId2", Type: relNumbering, Target: "numbering.xml"},
			},
		}},
		{partStyles, buildStyles(d.cfg)},
		{partNumbering, buildNumbering()},
		{partCore, d.coreProperties()},
		{partApp, appPropertiesXML{
			Xmlns:       nsExtended,
			Application: application,
			Paragraphs:  len(d.paragraphs),
		}},
	}
}

func contentTypes() contentTypesXML {
	const (
		ctRels      = "application/vnd.openxmlformats-package.relationships+xml"
		ctXML       = "application/xml"
		ctDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
		ctStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
		ctNumbering = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
		ctCore      = "application/vnd.openxmlformats-package.core-properties+xml"
		ctApp       = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	)
	return contentTypesXML{
		Xmlns: nsTypes,
		Defaults: []defaultXML{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []overrideXML{
			{PartName: "/" + partDocument, ContentType: ctDocument},
			{PartName: "/" + partStyles, ContentType: ctStyles},
			{PartName: "/" + partNumbering, ContentType: ctNumbering},
			{PartName: "/" + partCore, ContentType: ctCore},
			{PartName: "/" + partApp, ContentType: ctApp},
		},
	}
}

func (d *Document) coreProperties() corePropertiesXML {
	now := d.now().UTC()
	created := now
	if !d.meta.Date.IsZero() {
		created = d.meta.Date.UTC()
	}

	return corePropertiesXML{
		XmlnsCP:        nsCP,
		XmlnsDC:        nsDC,
		XmlnsDCTerms:   nsDCTerms,
		XmlnsXSI:       nsXSI,
		Title:          d.meta.Title,
		Subject:        d.meta.Subject,
		Creator:        d.meta.Author,
		Keywords:       strings.Join(d.meta.Keywords, ", "),
		LastModifiedBy: application,
		Created:        w3cDateXML{Type: "dcterms:W3CDTF", Value: created.Format(time.RFC3339)},
		Modified:       w3cDateXML{Type: "dcterms:W3CDTF", Value: now.Format(time.RFC3339)},
	}
}

func writePart(zw *zip.Writer, p part) error {
	fw, err := zw.Create(p.name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", p.name, err)
	}
	if _, err := io.WriteString(fw, xml.Header); err != nil {
		return fmt.Errorf("writing %s: %w", p.name, err)
	}
	if err := xml.NewEncoder(fw).Encode(p.body); err != nil {
		return fmt.Errorf("encoding %s: %w", p.name, err)
	}
	return nil
}

// countingWriter tracks bytes written for io.WriterTo.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
