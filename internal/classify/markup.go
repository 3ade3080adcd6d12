// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"regexp"
	"strings"
)

// substitution rewrites one markup artifact. Exactly one of replace and
// expand is set.
type substitution struct {
	pattern *regexp.Regexp
	replace string
	expand  func(match []string) string
}

// markupTable is applied in order to every non-code line. Structural HTML
// tags become their Markdown prefix so the prefix rules classify them; inline
// tags become Markdown delimiters so the run splitter styles them; anything
// else the renderer emits is dropped.
var markupTable = []substitution{
	{
		pattern: regexp.MustCompile(`(?i)<h([1-6])[^>]*>(.*?)</h[1-6]>`),
		expand: func(m []string) string {
			return strings.Repeat("#", int(m[1][0]-'0')) + " " + m[2]
		},
	},
	{pattern: regexp.MustCompile(`(?i)<li[^>]*>`), replace: "• "},
	{pattern: regexp.MustCompile(`(?i)</li>`), replace: ""},
	{pattern: regexp.MustCompile(`(?i)<(?:strong|b)>(.*?)</(?:strong|b)>`), replace: "**$1**"},
	{pattern: regexp.MustCompile(`(?i)<(?:em|i)>(.*?)</(?:em|i)>`), replace: "*$1*"},
	{pattern: regexp.MustCompile(`(?i)<code[^>]*>(.*?)</code>`), replace: "`$1`"},
	{pattern: regexp.MustCompile(`(?i)<a\s[^>]*>(.*?)</a>`), replace: "$1"},
	{pattern: regexp.MustCompile(`(?i)<img\s[^>]*alt="([^"]*)"[^>]*>`), replace: "$1"},
	{pattern: regexp.MustCompile(`(?i)<br\s*/?>`), replace: " "},
	{pattern: regexp.MustCompile(`(?i)</?(?:p|ul|ol|div|span|strong|b|em|i|code|pre|blockquote|del|s|sup|sub|table|thead|tbody|tr|th|td|input|hr|h[1-6])(?:\s[^>]*)?/?>`), replace: ""},
	{pattern: regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`), replace: "$1"},
	{pattern: regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`), replace: "$1"},
}

// entityTable maps the HTML entities a Markdown renderer emits to their
// characters. strings.Replacer applies it in a single pass, so "&amp;lt;"
// decodes to "&lt;" and not "<".
var entityTable = strings.NewReplacer(
	"&gt;", ">",
	"&lt;", "<",
	"&amp;", "&",
	"&quot;", `"`,
	"&nbsp;", " ",
	"&#39;", "'",
	"&#x27;", "'",
	"&apos;", "'",
	"&#34;", `"`,
)

var commentPattern = regexp.MustCompile(`^<!--.*-->$`)

// StripMarkup removes renderer markup artifacts from a line using the fixed
// substitution table.
func StripMarkup(line string) string {
	for _, sub := range markupTable {
		if !sub.pattern.MatchString(line) {
			continue
		}
		if sub.expand != nil {
			line = sub.pattern.ReplaceAllStringFunc(line, func(s string) string {
				return sub.expand(sub.pattern.FindStringSubmatch(s))
			})
			continue
		}
		line = sub.pattern.ReplaceAllString(line, sub.replace)
	}
	return line
}

// DecodeEntities replaces the known HTML entity escapes in s.
func DecodeEntities(s string) string {
	return entityTable.Replace(s)
}

// isComment reports whether a trimmed line is a single-line HTML comment.
func isComment(trimmed string) bool {
	return commentPattern.MatchString(trimmed)
}
