// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns Markdown into HTML lines the classifier understands.
// It is the HTML input mode: goldmark renders the article, and the rendered
// code and blockquote regions are rewritten back into fence and quote
// markers so they survive line-oriented classification.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/pdiddy/mdword/internal/classify"
)

var (
	preOpenPattern = regexp.MustCompile(`<pre><code(?:\s+class="language-([^"]+)")?[^>]*>`)
	preClose       = "</code></pre>"
	quoteOpen      = "<blockquote>"
	quoteClose     = "</blockquote>"
	itemOpen       = "<li>"
	itemClose      = "</li>"
	rowOpen        = "<tr>"
	rowClose       = "</tr>"
	cellPattern    = regexp.MustCompile(`^<t[hd](?:\s[^>]*)?>(.*)</t[hd]>$`)
)

// Options configures the goldmark engine.
type Options struct {
	// Extensions names goldmark extensions to enable. Empty means GFM.
	Extensions []string

	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
}

// Renderer renders Markdown with goldmark. It holds no per-call state and
// can be reused.
type Renderer struct {
	engine goldmark.Markdown
}

// New builds a Renderer from opts. Unknown extension names are ignored.
func New(opts Options) *Renderer {
	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(rendererOptions...),
		),
	}
}

// HTML renders markdown to HTML.
func (r *Renderer) HTML(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// HTMLLines renders markdown and returns the HTML split into classifier
// lines. Code regions come back as fenced blocks with entity-decoded bodies
// and blockquote content is prefixed with "> ".
func (r *Renderer) HTMLLines(markdown []byte) ([]string, error) {
	out, err := r.HTML(markdown)
	if err != nil {
		return nil, err
	}
	return refence(classify.Lines(string(out))), nil
}

// refence rewrites rendered <pre><code> and <blockquote> regions into the
// markers the classifier recognises. The first paragraph of a loose list
// item is folded back into its <li>, and each table row becomes one line
// with its cells joined by " | ".
func refence(lines []string) []string {
	var (
		out    []string
		inCode bool
		quotes int
		item   bool
		row    bool
		cells  []string
	)

	for _, line := range lines {
		if inCode {
			if idx := strings.Index(line, preClose); idx >= 0 {
				if body := line[:idx]; body != "" {
					out = append(out, classify.DecodeEntities(body))
				}
				out = append(out, "```")
				inCode = false
				continue
			}
			out = append(out, classify.DecodeEntities(line))
			continue
		}

		if loc := preOpenPattern.FindStringSubmatchIndex(line); loc != nil {
			var lang string
			if loc[2] >= 0 {
				lang = line[loc[2]:loc[3]]
			}
			if before := strings.TrimSpace(line[:loc[0]]); before != "" {
				out = append(out, quotePrefix(quotes)+before)
			}
			out = append(out, "```"+lang)

			rest := line[loc[1]:]
			if idx := strings.Index(rest, preClose); idx >= 0 {
				if body := rest[:idx]; body != "" {
					out = append(out, classify.DecodeEntities(body))
				}
				out = append(out, "```")
				continue
			}
			if rest != "" {
				out = append(out, classify.DecodeEntities(rest))
			}
			inCode = true
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == quoteOpen:
			quotes++
			continue
		case trimmed == quoteClose:
			if quotes > 0 {
				quotes--
			}
			continue
		case trimmed == itemOpen:
			item = true
			continue
		case trimmed == itemClose:
			item = false
			continue
		case trimmed == rowOpen:
			row, cells = true, nil
			continue
		case trimmed == rowClose:
			if joined := strings.Join(cells, " | "); strings.Trim(joined, " |") != "" {
				out = append(out, quotePrefix(quotes)+joined)
			}
			row, cells = false, nil
			continue
		}

		if row {
			if m := cellPattern.FindStringSubmatch(trimmed); m != nil {
				cells = append(cells, strings.TrimSpace(m[1]))
			}
			continue
		}

		if item && trimmed != "" {
			item = false
			if rest, ok := strings.CutPrefix(trimmed, "<p>"); ok {
				trimmed = itemOpen + rest
				if body, ok := strings.CutSuffix(trimmed, "</p>"); ok {
					trimmed = body + itemClose
				}
				line = trimmed
			}
		}

		if quotes > 0 && trimmed != "" {
			line = quotePrefix(quotes) + trimmed
		}
		out = append(out, line)
	}

	return out
}

func quotePrefix(depth int) string {
	if depth == 0 {
		return ""
	}
	return "> "
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = true
	}
	return extenders
}
