// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdword/internal/classify"
	"github.com/pdiddy/mdword/pkg/types"
)

func render(t *testing.T, doc *Document) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	return buf.String()
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ASCII", "hello world", "hello world"},
		{"braces and backslash", `a{b}\c`, `a\{b\}\\c`},
		{"tab", "a\tb", `a\tab b`},
		{"latin", "café", `caf\u233?`},
		{"CJK above int16 range", "评", `\u-29756?`},
		{"outside BMP", "😀", `\u-10179?\u-8704?`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, escape(tc.in))
		})
	}
}

func TestDocument_Header(t *testing.T) {
	out := render(t, New(types.DefaultConvertConfig()))

	assert.True(t, strings.HasPrefix(out, `{\rtf1\ansi`))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `{\f0\fswiss\fcharset0 Calibri;}`)
	assert.Contains(t, out, `{\f1\fmodern\fcharset0 Consolas;}`)
	assert.Contains(t, out, `\margl1440\margr1440\margt1440\margb1440`)
	assert.Contains(t, out, `\f0\fs22`)
	assert.Equal(t, strings.Count(out, "{"), strings.Count(out, "}"))
}

func TestDocument_Elements(t *testing.T) {
	doc := New(types.DefaultConvertConfig())
	input := "# Title\nSome **bold** text\n- item\n> said {so}\n```go\nx := 1\n```"
	require.NoError(t, classify.Emit(classify.Lines(input), doc))

	out := render(t, doc)

	// Heading, paragraph, list item, quote, caption, one code line.
	assert.Equal(t, 6, doc.Len())
	assert.Equal(t, 6, strings.Count(out, `\par`+"\n"))
	assert.Contains(t, out, `{\b\fs36\cf2 Title}`)
	assert.Contains(t, out, `Some {\b bold} text`)
	assert.Contains(t, out, `\bullet\tab item`)
	assert.Contains(t, out, `{\i\cf6 said \{so\}}`)
	assert.Contains(t, out, `{\f1\fs20\b\cf7 go}`)
	assert.Contains(t, out, `{\f1\fs20\cf5 x := 1}`)
}

func TestDocument_TitleHeadingCentered(t *testing.T) {
	cfg := types.DefaultConvertConfig()
	cfg.Styles.Headings = map[int]string{1: types.StyleTitle}
	doc := New(cfg)
	require.NoError(t, doc.AddHeading("Main", 1))

	out := render(t, doc)
	assert.Contains(t, out, `\keepn \qc{\b\fs44\cf1 Main}`)
}

func TestDocument_Info(t *testing.T) {
	doc := New(types.DefaultConvertConfig())
	doc.now = func() time.Time { return time.Date(2025, 12, 23, 8, 5, 0, 0, time.UTC) }
	doc.SetMeta(types.DocumentMeta{Title: "M2.1 评测", Author: "Reviewer"})

	out := render(t, doc)
	assert.Contains(t, out, `{\title M2.1 \u-29756?\u27979?}`)
	assert.Contains(t, out, `{\author Reviewer}`)
	assert.NotContains(t, out, `{\subject`)
	assert.Contains(t, out, `{\creatim\yr2025\mo12\dy23\hr8\min5}`)
}
