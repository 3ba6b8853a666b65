package markdownify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert_OrderedLists(t *testing.T) {
	runCases(t, []conversionCase{
		{name: "basic", html: "<ol><li>a</li><li>b</li></ol>", want: "\n\n1. a\n2. b\n"},
		{name: "comment and stray element", html: "<ol><!--comment--><li>a</li><span/><li>b</li></ol>", want: "\n\n1. a\n2. b\n"},
		{name: "start", html: `<ol start="3"><li>a</li><li>b</li></ol>`, want: "\n\n3. a\n4. b\n"},
		{name: "start zero", html: `<ol start="0"><li>a</li><li>b</li></ol>`, want: "\n\n0. a\n1. b\n"},
		{name: "negative start", html: `<ol start="-1"><li>a</li><li>b</li></ol>`, want: "\n\n1. a\n2. b\n"},
		{name: "non-numeric start", html: `<ol start="foo"><li>a</li><li>b</li></ol>`, want: "\n\n1. a\n2. b\n"},
		{
			name: "paragraphs",
			html: `<ol start="1234"><li><p>first para</p><p>second para</p></li><li><p>third para</p><p>fourth para</p></li></ol>`,
			want: "\n\n1234. first para\n\n      second para\n1235. third para\n\n      fourth para\n",
		},
		{name: "empty item", html: "<ol><li></li><li>b</li></ol>", want: "\n\n\n2. b\n"},
	})
}

func TestConvert_OrderedListStartInText(t *testing.T) {
	out := md(t, `foo<ol start="3"><li>a</li><li>b</li></ol>bar`)
	assert.Contains(t, out, "3. a")
	assert.Contains(t, out, "4. b")
	assert.Equal(t, "foo\n\n3. a\n4. b\n\nbar", out)
}

func TestConvert_UnorderedLists(t *testing.T) {
	runCases(t, []conversionCase{
		{name: "basic", html: "<ul><li>a</li><li>b</li></ul>", want: "\n\n* a\n* b\n"},
		{
			name: "whitespace",
			html: "<ul>\n     <li>\n             a\n     </li>\n     <li> b </li>\n     <li>   c\n     </li>\n </ul>",
			want: "\n\n* a\n* b\n* c\n",
		},
		{
			name: "paragraphs",
			html: "<ul><li><p>first para</p><p>second para</p></li><li><p>third para</p><p>fourth para</p></li></ul>",
			want: "\n\n* first para\n\n  second para\n* third para\n\n  fourth para\n",
		},
		{
			name: "between paragraphs",
			html: "<p>foo</p><ul><li>a</li><li>b</li></ul><p>bar</p>",
			want: "\n\nfoo\n\n* a\n* b\n\nbar\n\n",
		},
		{name: "between text", html: "foo<ul><li>bar</li></ul>baz", want: "foo\n\n* bar\n\nbaz"},
		{
			name: "inline content",
			html: `<ul><li>foo <a href="#">bar</a></li><li>foo bar  </li><li>foo <b>bar</b>   <i>space</i>.</ul>`,
			want: "\n\n* foo [bar](#)\n* foo bar\n* foo **bar** *space*.\n",
		},
		{name: "sibling lists", html: "<div><ul><li>a</li></ul><ul><li>b</li></ul></div>", want: "\n\n* a\n\n* b\n\n"},
	})
}

func TestConvert_NestedLists(t *testing.T) {
	uls := readTestdata(t, "nested_ul.html")
	ols := readTestdata(t, "nested_ol.html")

	runCases(t, []conversionCase{
		{
			name: "ordered",
			html: ols,
			want: "\n\n1. 1\n   1. a\n      1. I\n      2. II\n      3. III\n   2. b\n   3. c\n2. 2\n3. 3\n",
		},
		{
			name: "unordered cycles bullets",
			html: uls,
			want: "\n\n* 1\n  + a\n    - I\n    - II\n    - III\n  + b\n  + c\n* 2\n* 3\n",
		},
		{
			name: "single bullet",
			html: uls,
			opts: []Option{WithBullets("-")},
			want: "\n\n- 1\n  - a\n    - I\n    - II\n    - III\n  - b\n  - c\n- 2\n- 3\n",
		},
		{
			name: "bullets wrap around",
			html: uls,
			opts: []Option{WithBullets("*+")},
			want: "\n\n* 1\n  + a\n    * I\n    * II\n    * III\n  + b\n  + c\n* 2\n* 3\n",
		},
	})
}
