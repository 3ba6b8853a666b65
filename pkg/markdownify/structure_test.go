package markdownify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/markdownify/pkg/inspect"
)

// These tests parse converter output with a CommonMark + GFM parser to
// check the structure survives, independent of exact spacing.

func convertAndInspect(t *testing.T, html string, opts ...Option) *inspect.Report {
	t.Helper()
	out, err := Convert(html, opts...)
	require.NoError(t, err)
	return inspect.Inspect(out)
}

func TestStructure_Tables(t *testing.T) {
	for _, fixture := range []string{"table.html", "table_head_body.html", "table_html_content.html", "table_colspan.html"} {
		t.Run(fixture, func(t *testing.T) {
			r := convertAndInspect(t, readTestdata(t, fixture))
			require.Len(t, r.Tables, 1)
			assert.Equal(t, inspect.Table{Columns: 3, Rows: 2}, r.Tables[0])
		})
	}

	t.Run("missing head keeps all rows", func(t *testing.T) {
		r := convertAndInspect(t, readTestdata(t, "table_missing_head.html"))
		require.Len(t, r.Tables, 1)
		assert.Equal(t, inspect.Table{Columns: 3, Rows: 3}, r.Tables[0])
	})

	t.Run("inferred head", func(t *testing.T) {
		r := convertAndInspect(t, readTestdata(t, "table_missing_head.html"), WithTableInferHeader(true))
		require.Len(t, r.Tables, 1)
		assert.Equal(t, inspect.Table{Columns: 3, Rows: 2}, r.Tables[0])
	})
}

func TestStructure_NestedLists(t *testing.T) {
	tests := []struct {
		fixture string
		ordered bool
	}{
		{"nested_ul.html", false},
		{"nested_ol.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			r := convertAndInspect(t, readTestdata(t, tt.fixture))
			require.Len(t, r.Lists, 3)
			for depth, l := range r.Lists {
				assert.Equal(t, tt.ordered, l.Ordered)
				assert.Equal(t, depth, l.Depth)
				assert.Equal(t, 3, l.Items)
			}
		})
	}
}

func TestStructure_Headings(t *testing.T) {
	src := "<h1>One</h1><p>x</p><h2>Two</h2><p>y</p><h3>Three</h3>"

	for _, style := range []HeadingStyle{HeadingUnderlined, HeadingATX, HeadingATXClosed} {
		t.Run(string(style), func(t *testing.T) {
			r := convertAndInspect(t, src, WithHeadingStyle(style))
			assert.Equal(t, []inspect.Heading{{Level: 1, Text: "One"}, {Level: 2, Text: "Two"}, {Level: 3, Text: "Three"}}, r.Headings)
			assert.Equal(t, 2, r.Paragraphs)
		})
	}
}

func TestStructure_CodeBlocks(t *testing.T) {
	r := convertAndInspect(t, "<pre>a := 1\nb := 2</pre><p>see <code>a</code></p>", WithCodeLanguage("go"))

	require.Len(t, r.CodeBlocks, 1)
	assert.Equal(t, inspect.CodeBlock{Fenced: true, Language: "go", Lines: 2}, r.CodeBlocks[0])
	assert.Equal(t, 1, r.CodeSpans)
}

func TestStructure_LineBreaks(t *testing.T) {
	for _, style := range []NewlineStyle{NewlineSpaces, NewlineBackslash} {
		t.Run(string(style), func(t *testing.T) {
			r := convertAndInspect(t, "<p>a<br>b<br>c</p>", WithNewlineStyle(style))
			assert.Equal(t, 2, r.HardBreaks)
			assert.Equal(t, 1, r.Paragraphs)
		})
	}
}

func TestStructure_EscapedTextStaysText(t *testing.T) {
	r := convertAndInspect(t, "<p>*not em* _nor this_</p><p># not a heading [or](a link)</p>", WithEscapeMisc(true))

	assert.Zero(t, r.Emphasis)
	assert.Empty(t, r.Headings)
	assert.Zero(t, r.Links)
	assert.Equal(t, 2, r.Paragraphs)
}

func TestStructure_InlineMarkup(t *testing.T) {
	r := convertAndInspect(t, `<blockquote><p><b>b</b> <i>i</i> <del>d</del> <a href="https://x.test">l</a> <img src="p.png" alt="p"></p></blockquote><hr>`)

	assert.Equal(t, 1, r.Blockquotes)
	assert.Equal(t, 1, r.Strong)
	assert.Equal(t, 1, r.Emphasis)
	assert.Equal(t, 1, r.Strikethrough)
	assert.Equal(t, 1, r.Links)
	assert.Equal(t, 1, r.Images)
	assert.Equal(t, 1, r.ThematicBreaks)
}
