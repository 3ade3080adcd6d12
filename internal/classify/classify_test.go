// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdword/pkg/types"
)

func plain(s string) types.Run  { return types.Run{Text: s, Style: types.StylePlain} }
func bold(s string) types.Run   { return types.Run{Text: s, Style: types.StyleBold} }
func italic(s string) types.Run { return types.Run{Text: s, Style: types.StyleItalic} }
func code(s string) types.Run   { return types.Run{Text: s, Style: types.StyleCode} }

func TestElements_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []types.Element
	}{
		{
			name:  "heading",
			input: "# Title",
			want:  []types.Element{types.NewHeading("Title", 1)},
		},
		{
			name:  "dash list item",
			input: "- item one",
			want:  []types.Element{types.NewListItem("item one")},
		},
		{
			name:  "fenced code block",
			input: "```python\nprint(1)\n```",
			want:  []types.Element{types.NewCodeBlock("python", []string{"print(1)"})},
		},
		{
			name:  "inline bold",
			input: "This is **bold** and plain",
			want: []types.Element{types.NewParagraph([]types.Run{
				plain("This is "), bold("bold"), plain(" and plain"),
			})},
		},
		{
			name:  "empty line",
			input: "",
			want:  nil,
		},
		{
			name:  "unterminated fence",
			input: "```text\nline1",
			want:  []types.Element{types.NewCodeBlock("text", []string{"line1"})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collect(Lines(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestElements_Classification(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []types.Element
	}{
		{"level clamped to three", "##### Deep", []types.Element{types.NewHeading("Deep", 3)}},
		{"level two", "## Section", []types.Element{types.NewHeading("Section", 2)}},
		{"closing hashes stripped", "### Closed ###", []types.Element{types.NewHeading("Closed", 3)}},
		{"bare hashes dropped", "###", nil},
		{"bullet character", "• point", []types.Element{types.NewListItem("point")}},
		{"star bullet", "* starred", []types.Element{types.NewListItem("starred")}},
		{"bare dash dropped", "-", nil},
		{"quote", "> quoted text", []types.Element{types.NewQuote("quoted text")}},
		{"thematic break dropped", "---", nil},
		{"spaced thematic break dropped", "* * *", nil},
		{"html comment dropped", "<!-- note -->", nil},
		{"whitespace only dropped", "   \t ", nil},
		{
			name: "whole line bold",
			line: "**Summary**",
			want: []types.Element{types.NewParagraph([]types.Run{bold("Summary")})},
		},
		{
			name: "mixed emphasis",
			line: "Use `go test` for *fast* **feedback**",
			want: []types.Element{types.NewParagraph([]types.Run{
				plain("Use "), code("go test"), plain(" for "), italic("fast"), plain(" "), bold("feedback"),
			})},
		},
		{
			name: "unmatched delimiter stays plain",
			line: "price ** rises",
			want: []types.Element{types.NewParagraph([]types.Run{plain("price ** rises")})},
		},
		{
			name: "markdown link text kept",
			line: "See [the repo](https://example.com/repo) now",
			want: []types.Element{types.NewParagraph([]types.Run{plain("See the repo now")})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collect([]string{tt.line})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestElements_RenderedHTML(t *testing.T) {
	lines := []string{
		`<h1 id="m21">M2.1 &amp; friends</h1>`,
		`<p>Plain <strong>strong</strong> and <em>soft</em> with <code>x &lt; y</code></p>`,
		`<ul>`,
		`<li>first</li>`,
		`</ul>`,
		`<p>&gt; not a tag</p>`,
		`<hr />`,
	}

	want := []types.Element{
		types.NewHeading("M2.1 & friends", 1),
		types.NewParagraph([]types.Run{
			plain("Plain "), bold("strong"), plain(" and "), italic("soft"), plain(" with "), code("x < y"),
		}),
		types.NewListItem("first"),
		types.NewQuote("not a tag"),
	}

	got := Collect(lines)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestElements_CodeRegionTakesPrecedence(t *testing.T) {
	lines := []string{
		"```",
		"# not a heading",
		"- not a list",
		"  > indented &amp; raw",
		"",
		"```",
		"- after",
	}

	got := Collect(lines)
	require.Len(t, got, 2)

	assert.Equal(t, types.KindCodeBlock, got[0].Kind)
	assert.Empty(t, got[0].Language)
	assert.Equal(t, lines[1:5], got[0].Lines)
	assert.Equal(t, types.NewListItem("after"), got[1])
}

func TestElements_CodeBodyRoundTrip(t *testing.T) {
	body := []string{"func main() {", "\tfmt.Println(\"**not bold**\")", "", "}"}
	lines := append([]string{"```go"}, body...)
	lines = append(lines, "```")

	got := Collect(lines)
	require.Len(t, got, 1)
	assert.Equal(t, "go", got[0].Language)
	assert.Equal(t, strings.Join(body, "\n"), got[0].Body())
}

func TestElements_HeadingInvariants(t *testing.T) {
	lines := []string{"# a", "## b ##", "###c", "####   d   ####", "####### e", "#\tf"}
	for el := range Elements(lines) {
		require.Equal(t, types.KindHeading, el.Kind)
		assert.GreaterOrEqual(t, el.Level, 1)
		assert.LessOrEqual(t, el.Level, types.MaxHeadingLevel)
		assert.Equal(t, strings.Trim(el.Text, "# \t"), el.Text, "heading %q keeps markers", el.Text)
	}
}

func TestElements_PlainParagraphIdempotent(t *testing.T) {
	first := Collect([]string{"Just some words, nothing else."})
	require.Len(t, first, 1)
	require.Equal(t, []types.Run{plain("Just some words, nothing else.")}, first[0].Runs)

	second := Collect([]string{first[0].Text})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reclassification changed the paragraph (-first +second):\n%s", diff)
	}
}

func TestElements_StopsWhenConsumerStops(t *testing.T) {
	var seen int
	for range Elements([]string{"a", "b", "c"}) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

// recordingSink records sink calls and optionally fails on one of them.
type recordingSink struct {
	calls  []string
	failOn string
	err    error
}

func (r *recordingSink) record(call string) error {
	r.calls = append(r.calls, call)
	if call == r.failOn {
		return r.err
	}
	return nil
}

func (r *recordingSink) AddHeading(text string, level int) error {
	return r.record("heading:" + text)
}

func (r *recordingSink) AddParagraph(runs []types.Run) error {
	return r.record("paragraph:" + types.NewParagraph(runs).Text)
}

func (r *recordingSink) AddListItem(text string) error {
	return r.record("list:" + text)
}

func (r *recordingSink) AddQuote(text string) error {
	return r.record("quote:" + text)
}

func (r *recordingSink) AddCodeBlock(language, body string) error {
	return r.record("code:" + language + ":" + body)
}

func TestEmit_Order(t *testing.T) {
	sink := &recordingSink{}
	input := "# Intro\n\nSome text\n- one\n> wise\n```sh\nls -la\n```\n"

	require.NoError(t, Emit(Lines(input), sink))
	assert.Equal(t, []string{
		"heading:Intro",
		"paragraph:Some text",
		"list:one",
		"quote:wise",
		"code:sh:ls -la",
	}, sink.calls)
}

func TestEmit_SinkErrorPropagatesUnmodified(t *testing.T) {
	sinkErr := errors.New("disk full")
	sink := &recordingSink{failOn: "list:two", err: sinkErr}

	err := Emit([]string{"- one", "- two", "- three"}, sink)

	assert.Same(t, sinkErr, err)
	assert.Equal(t, []string{"list:one", "list:two"}, sink.calls)
}
