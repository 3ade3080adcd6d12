// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source loads Markdown articles: it decodes the file, splits off
// YAML frontmatter, and produces the lines the classifier consumes.
package source

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/mdword/internal/classify"
	"github.com/pdiddy/mdword/internal/render"
	"github.com/pdiddy/mdword/pkg/types"
)

// ErrMissingInput reports that the Markdown source does not exist.
var ErrMissingInput = errors.New("missing input")

// Article is a loaded Markdown source ready for classification.
type Article struct {
	Path string
	Meta types.DocumentMeta

	// Lines is the classifier input for the body (frontmatter removed).
	Lines []string

	// Digest is the hex SHA-256 of the file as read from disk.
	Digest string
}

// frontMatter is the YAML envelope accepted at the top of an article.
type frontMatter struct {
	Title    string    `yaml:"title"`
	Author   string    `yaml:"author"`
	Subject  string    `yaml:"subject"`
	Summary  string    `yaml:"summary"`
	Keywords []string  `yaml:"keywords"`
	Tags     []string  `yaml:"tags"`
	Date     time.Time `yaml:"date"`
}

// Load reads the article at path. In InputHTML mode the body is rendered by
// r before being split into lines; r may be nil for InputMarkdown.
func Load(path string, mode types.InputMode, r *render.Renderer) (*Article, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	meta, body := splitFrontMatter(text)

	var lines []string
	switch mode {
	case types.InputHTML:
		if r == nil {
			r = render.New(render.Options{})
		}
		lines, err = r.HTMLLines(body)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", path, err)
		}
	default:
		lines = classify.Lines(string(body))
	}

	sum := sha256.Sum256(raw)
	return &Article{
		Path:   path,
		Meta:   meta,
		Lines:  lines,
		Digest: hex.EncodeToString(sum[:]),
	}, nil
}

// decode strips a UTF-8 byte order mark (or transcodes UTF-16 when a BOM
// says so) and normalises to NFC.
func decode(raw []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), dec))
	if err != nil {
		return nil, err
	}
	return normalise(text), nil
}

// normalise composes text to NFC line by line. Lines inside fenced code
// blocks are left byte for byte as written.
func normalise(text []byte) []byte {
	out := make([]byte, 0, len(text))
	inCode := false
	for line := range bytes.SplitAfterSeq(text, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte("```")) {
			inCode = !inCode
			out = append(out, norm.NFC.Bytes(line)...)
			continue
		}
		if inCode {
			out = append(out, line...)
			continue
		}
		out = append(out, norm.NFC.Bytes(line)...)
	}
	return out
}

// splitFrontMatter separates YAML frontmatter from the Markdown body. Only
// a leading "---" line closed by a second "---" line with a YAML mapping
// between them counts as frontmatter; anything else, including a document
// that opens with a thematic break, is returned whole.
func splitFrontMatter(text []byte) (types.DocumentMeta, []byte) {
	block, body, ok := cutFrontMatter(text)
	if !ok {
		return types.DocumentMeta{}, text
	}

	var fields map[string]any
	if err := yaml.Unmarshal(block, &fields); err != nil || len(fields) == 0 {
		return types.DocumentMeta{}, text
	}

	// A mapping with fields of the wrong type still marks frontmatter; it
	// is dropped from the body without contributing metadata.
	var fm frontMatter
	if _, err := frontmatter.Parse(bytes.NewReader(text), &fm); err != nil {
		return types.DocumentMeta{}, body
	}

	meta := types.DocumentMeta{
		Title:    strings.TrimSpace(fm.Title),
		Author:   strings.TrimSpace(fm.Author),
		Subject:  strings.TrimSpace(fm.Subject),
		Keywords: append(append([]string{}, fm.Keywords...), fm.Tags...),
		Date:     fm.Date,
	}
	if meta.Subject == "" {
		meta.Subject = strings.TrimSpace(fm.Summary)
	}
	if len(meta.Keywords) == 0 {
		meta.Keywords = nil
	}
	return meta, body
}

// cutFrontMatter returns the text between a leading "---" line and the
// next "---" line, and the body that follows the closing line.
func cutFrontMatter(text []byte) (block, body []byte, ok bool) {
	first, rest, found := bytes.Cut(text, []byte("\n"))
	if !found || !isDelimiter(first) {
		return nil, nil, false
	}
	offset := 0
	for len(rest[offset:]) > 0 {
		line, _, more := bytes.Cut(rest[offset:], []byte("\n"))
		next := offset + len(line)
		if more {
			next++
		}
		if isDelimiter(line) {
			return rest[:offset], rest[next:], true
		}
		offset = next
	}
	return nil, nil, false
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimRight(line, " \t\r")) == "---"
}
