package markdownify

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jmylchreest/markdownify/internal/logger"
)

func TestConvert_TagFilters(t *testing.T) {
	link := `<a href="https://github.com/WqyJh">Some Text</a>`

	runCases(t, []conversionCase{
		{name: "strip a", html: link, opts: []Option{WithStrip("a")}, want: "Some Text"},
		{name: "strip nothing", html: link, opts: []Option{WithStrip()}, want: "[Some Text](https://github.com/WqyJh)"},
		{name: "convert a", html: link, opts: []Option{WithConvert("a")}, want: "[Some Text](https://github.com/WqyJh)"},
		{name: "convert nothing", html: link, opts: []Option{WithConvert()}, want: "Some Text"},
		{name: "strip keeps other tags", html: "<b>x</b> " + link, opts: []Option{WithStrip("a")}, want: "**x** Some Text"},
		{name: "convert drops other tags", html: "<b>x</b> " + link, opts: []Option{WithConvert("a")}, want: "x [Some Text](https://github.com/WqyJh)"},
	})
}

func TestNew_ConflictingTagFilters(t *testing.T) {
	_, err := New(WithStrip("a"), WithConvert("b"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflictingTagFilters))

	// Empty but set lists still conflict.
	_, err = New(WithStrip(), WithConvert())
	assert.ErrorIs(t, err, ErrConflictingTagFilters)

	_, err = Convert("<p>x</p>", WithStrip("a"), WithConvert("b"))
	assert.ErrorIs(t, err, ErrConflictingTagFilters)
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"heading style", WithHeadingStyle("fancy")},
		{"newline style", WithNewlineStyle("crlf")},
		{"strip document", WithStripDocument("both")},
		{"strip pre", WithStripPre(StripLeft)},
		{"negative wrap width", WithWrap(true, -1)},
		{"negative max depth", WithMaxDepth(-1)},
		{"no bullets", WithBullets("")},
		{"no strong symbol", WithStrongEmSymbol("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestNew_AcceptsUppercaseEnums(t *testing.T) {
	_, err := New(
		WithHeadingStyle("ATX_CLOSED"),
		WithNewlineStyle("BACKSLASH"),
		WithStripDocument("LSTRIP"),
		WithStripPre("STRIP_ONE"),
	)
	assert.NoError(t, err)
}

func TestConvert_StripDocument(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"default", nil, "Hello"},
		{"lstrip", []Option{WithStripDocument(StripLeft)}, "Hello\n\n"},
		{"rstrip", []Option{WithStripDocument(StripRight)}, "\n\nHello"},
		{"strip", []Option{WithStripDocument(StripBoth)}, "Hello"},
		{"none", []Option{WithStripDocument(StripNone)}, "\n\nHello\n\n"},
		{"unset", []Option{WithStripDocument("")}, "\n\nHello\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert("<p>Hello</p>", tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_StripPre(t *testing.T) {
	src := "<pre>  \n  \n  Hello  \n  \n  </pre>"

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"default", nil, "```\n  Hello\n```"},
		{"strip", []Option{WithStripPre(StripBoth)}, "```\n  Hello\n```"},
		{"strip one", []Option{WithStripPre(StripOne)}, "```\n  \n  Hello  \n  \n```"},
		{"none", []Option{WithStripPre(StripNone)}, "```\n  \n  \n  Hello  \n  \n  \n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(src, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_CustomRenderers(t *testing.T) {
	img, ok := Builtin("img")
	require.True(t, ok)

	opts := []Option{
		WithRenderer("img", RendererFunc(func(c *Converter, n Node, text string, ctx Context) string {
			return img.Render(c, n, text, ctx) + "\n\n"
		})),
		WithRenderer("custom-tag", RendererFunc(func(_ *Converter, _ Node, text string, _ Context) string {
			return "convert_custom_tag(): " + text
		})),
		WithRenderer("h1", RendererFunc(func(_ *Converter, _ Node, text string, _ Context) string {
			return "convert_h1: " + text
		})),
		WithHeadingRenderer(HeadingRendererFunc(func(_ *Converter, level int, _ Node, text string, _ Context) string {
			return "convert_hN(" + strconv.Itoa(level) + "): " + text
		})),
	}

	tests := []struct {
		name string
		html string
		want string
	}{
		{"decorated img", `<img src="/path/to/img.jpg" alt="Alt text" title="Optional title" />text`, "![Alt text](/path/to/img.jpg \"Optional title\")\n\ntext"},
		{"decorated img without title", `<img src="/path/to/img.jpg" alt="Alt text" />text`, "![Alt text](/path/to/img.jpg)\n\ntext"},
		{"tag with dash", "<custom-tag>text</custom-tag>", "convert_custom_tag(): text"},
		{"specific heading wins", "<h1>text</h1>", "convert_h1: text"},
		{"generic heading", "<h3>text</h3>", "convert_hN(3): text"},
		{"generic heading out of range", "<h9>text</h9>", "convert_hN(9): text"},
	}

	c, err := New(opts...)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_CustomRendererRespectsFilters(t *testing.T) {
	got, err := Convert("<custom-tag>text</custom-tag>",
		WithRenderer("custom-tag", RendererFunc(func(_ *Converter, _ Node, text string, _ Context) string {
			return "[" + text + "]"
		})),
		WithStrip("custom-tag"),
	)
	require.NoError(t, err)
	assert.Equal(t, "text", got)
}

func TestNew_NormalisesRendererKeys(t *testing.T) {
	r := RendererFunc(func(_ *Converter, _ Node, text string, _ Context) string { return "<" + text + ">" })

	c, err := New(WithOptions(Options{
		Bullets:        "*",
		StrongEmSymbol: "*",
		HeadingStyle:   HeadingATX,
		NewlineStyle:   NewlineSpaces,
		Renderers:      map[string]Renderer{"My-Tag": r},
	}))
	require.NoError(t, err)

	got, err := c.Convert("<my-tag>x</my-tag>")
	require.NoError(t, err)
	assert.Equal(t, "<x>", got)
}

func TestRendererKey(t *testing.T) {
	tests := map[string]string{
		"a":          "a",
		"custom-tag": "custom_tag",
		"My:Tag":     "my_tag",
		"h1":         "h1",
		"x.y-z":      "x_y_z",
	}
	for in, want := range tests {
		assert.Equal(t, want, RendererKey(in), "RendererKey(%q)", in)
	}
}

func TestBuiltin(t *testing.T) {
	for _, tag := range []string{"a", "p", "td", "h2", "h12", "Custom-Tag"} {
		_, ok := Builtin(tag)
		assert.Equal(t, tag != "Custom-Tag", ok, "Builtin(%q)", tag)
	}
}

func TestConverter_ConvertHTMLNode(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<b>test</b>"))
	require.NoError(t, err)

	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, "**test**", c.ConvertHTMLNode(doc))
	assert.Equal(t, "", c.ConvertHTMLNode(nil))
}

func TestConverter_ConvertNodeKeepsSpacing(t *testing.T) {
	root, err := Parse("<p>x</p>")
	require.NoError(t, err)

	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, "\n\nx\n\n", c.ConvertNode(root))
	assert.Equal(t, "", c.ConvertNode(nil))
}

func TestConverter_ConvertSelection(t *testing.T) {
	page := `<html><body>
		<nav><a href="/">Home</a></nav>
		<article><h1>Title</h1><p>One</p></article>
		<p>Two</p>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	c, err := New(WithHeadingStyle(HeadingATX))
	require.NoError(t, err)

	assert.Equal(t, "# Title\n\nOne", c.ConvertSelection(doc.Find("article")))
	assert.Equal(t, "One\n\nTwo", c.ConvertSelection(doc.Find("p")))
	assert.Equal(t, "", c.ConvertSelection(doc.Find("table")))
	assert.Equal(t, "", c.ConvertSelection(nil))
}

func TestConvert_MaxDepth(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Options{Output: &buf})
	defer logger.Init(logger.Options{})

	src := "<div><div><div><b>deep</b> *text*<script>x</script></div></div></div>"

	got := md(t, src, WithMaxDepth(2))
	assert.Equal(t, "\n\ndeep \\*text\\*\n\n", got)
	assert.Contains(t, buf.String(), "nesting limit reached")

	buf.Reset()
	got = md(t, src, WithMaxDepth(0))
	assert.Equal(t, "\n\n**deep** \\*text\\*\n\n", got)
	assert.Empty(t, buf.String())
}

func TestConvert_DeepNesting(t *testing.T) {
	const depth = 200
	src := strings.Repeat("<span>", depth) + "x" + strings.Repeat("</span>", depth)

	got := md(t, src, WithMaxDepth(50))
	assert.Equal(t, "x", got)
}

func TestConverter_ConcurrentUse(t *testing.T) {
	c, err := New(WithHeadingStyle(HeadingATX))
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	results := make([]string, workers)
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.Convert(fmt.Sprintf("<h2>Part %d</h2><ul><li>a</li><li><code>b</code></li></ul>", i))
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("## Part %d\n\n* a\n* `b`", i), results[i])
	}
}

func TestConverter_OptionsIsACopy(t *testing.T) {
	c, err := New(WithBullets("-"))
	require.NoError(t, err)

	opts := c.Options()
	opts.Bullets = "+"

	assert.Equal(t, "-", c.Options().Bullets)
}

func TestWrapHTML(t *testing.T) {
	assert.Nil(t, WrapHTML(nil))

	n := &html.Node{Type: html.ElementNode, Data: "DIV"}
	wrapped := WrapHTML(n)
	assert.Equal(t, ElementNode, wrapped.Kind())
	assert.Equal(t, "div", wrapped.Tag())
	assert.Same(t, n, Unwrap(wrapped))
	assert.Equal(t, wrapped, WrapHTML(n))
	assert.Nil(t, wrapped.Parent())
}
