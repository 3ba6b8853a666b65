// Package inspect parses Markdown with a CommonMark + GFM parser and
// reports its block and inline structure. It is used to check that
// converter output means what the source HTML meant: a table really is a
// table, a list really is a list.
package inspect

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a heading found in the document.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// List is a top-level or nested list.
type List struct {
	Ordered bool `json:"ordered" yaml:"ordered"`
	Start   int  `json:"start,omitempty" yaml:"start,omitempty"`
	Items   int  `json:"items" yaml:"items"`
	Depth   int  `json:"depth" yaml:"depth"`
}

// Table is a GFM table. Rows excludes the header row.
type Table struct {
	Columns int `json:"columns" yaml:"columns"`
	Rows    int `json:"rows" yaml:"rows"`
}

// CodeBlock is a fenced or indented code block.
type CodeBlock struct {
	Fenced   bool   `json:"fenced" yaml:"fenced"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Lines    int    `json:"lines" yaml:"lines"`
}

// Report summarises a Markdown document.
type Report struct {
	Bytes int `json:"bytes" yaml:"bytes"`
	Lines int `json:"lines" yaml:"lines"`

	Headings   []Heading   `json:"headings,omitempty" yaml:"headings,omitempty"`
	Lists      []List      `json:"lists,omitempty" yaml:"lists,omitempty"`
	Tables     []Table     `json:"tables,omitempty" yaml:"tables,omitempty"`
	CodeBlocks []CodeBlock `json:"code_blocks,omitempty" yaml:"code_blocks,omitempty"`

	Paragraphs     int `json:"paragraphs" yaml:"paragraphs"`
	Blockquotes    int `json:"blockquotes" yaml:"blockquotes"`
	ThematicBreaks int `json:"thematic_breaks" yaml:"thematic_breaks"`
	HTMLBlocks     int `json:"html_blocks" yaml:"html_blocks"`

	Links         int `json:"links" yaml:"links"`
	Images        int `json:"images" yaml:"images"`
	Emphasis      int `json:"emphasis" yaml:"emphasis"`
	Strong        int `json:"strong" yaml:"strong"`
	CodeSpans     int `json:"code_spans" yaml:"code_spans"`
	Strikethrough int `json:"strikethrough" yaml:"strikethrough"`
	HardBreaks    int `json:"hard_breaks" yaml:"hard_breaks"`
}

// Inspect parses markdown and reports its structure.
func Inspect(markdown string) *Report {
	src := []byte(markdown)
	r := &Report{Bytes: len(src)}
	if markdown != "" {
		r.Lines = strings.Count(strings.TrimRight(markdown, "\n"), "\n") + 1
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		r.visit(n, src)
		return ast.WalkContinue, nil
	})
	return r
}

func (r *Report) visit(n ast.Node, src []byte) {
	switch n := n.(type) {
	case *ast.Heading:
		r.Headings = append(r.Headings, Heading{Level: n.Level, Text: plainText(n, src)})
	case *ast.List:
		l := List{Ordered: n.IsOrdered(), Items: n.ChildCount(), Depth: listDepth(n)}
		if l.Ordered {
			l.Start = n.Start
		}
		r.Lists = append(r.Lists, l)
	case *east.Table:
		t := Table{Columns: len(n.Alignments)}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if _, ok := c.(*east.TableRow); ok {
				t.Rows++
			}
		}
		r.Tables = append(r.Tables, t)
	case *ast.FencedCodeBlock:
		r.CodeBlocks = append(r.CodeBlocks, CodeBlock{
			Fenced:   true,
			Language: string(n.Language(src)),
			Lines:    n.Lines().Len(),
		})
	case *ast.CodeBlock:
		r.CodeBlocks = append(r.CodeBlocks, CodeBlock{Lines: n.Lines().Len()})
	case *ast.Paragraph:
		r.Paragraphs++
	case *ast.Blockquote:
		r.Blockquotes++
	case *ast.ThematicBreak:
		r.ThematicBreaks++
	case *ast.HTMLBlock:
		r.HTMLBlocks++
	case *ast.Link, *ast.AutoLink:
		r.Links++
	case *ast.Image:
		r.Images++
	case *ast.Emphasis:
		if n.Level >= 2 {
			r.Strong++
		} else {
			r.Emphasis++
		}
	case *ast.CodeSpan:
		r.CodeSpans++
	case *east.Strikethrough:
		r.Strikethrough++
	case *ast.Text:
		if n.HardLineBreak() {
			r.HardBreaks++
		}
	}
}

// listDepth counts the lists enclosing l, so a top-level list is 0.
func listDepth(l *ast.List) int {
	depth := 0
	for p := l.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.List); ok {
			depth++
		}
	}
	return depth
}

// plainText concatenates the literal text below n.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(src))
			if c.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// ListItems returns the number of list items across all lists.
func (r *Report) ListItems() int {
	n := 0
	for _, l := range r.Lists {
		n += l.Items
	}
	return n
}

// String renders the report for terminals.
func (r *Report) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Size: %s, %d lines\n", humanize.Bytes(uint64(r.Bytes)), r.Lines)

	if len(r.Headings) > 0 {
		sb.WriteString("Headings:\n")
		for _, h := range r.Headings {
			fmt.Fprintf(&sb, "  %s %s\n", strings.Repeat("#", h.Level), h.Text)
		}
	}

	fmt.Fprintf(&sb, "Blocks: %d paragraphs, %d lists (%d items), %d tables, %d code blocks, %d blockquotes, %d rules\n",
		r.Paragraphs, len(r.Lists), r.ListItems(), len(r.Tables), len(r.CodeBlocks), r.Blockquotes, r.ThematicBreaks)

	for i, t := range r.Tables {
		fmt.Fprintf(&sb, "  table %d: %d columns x %d rows\n", i+1, t.Columns, t.Rows)
	}
	for i, c := range r.CodeBlocks {
		lang := c.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(&sb, "  code %d: %s, %d lines\n", i+1, lang, c.Lines)
	}

	fmt.Fprintf(&sb, "Inline: %d links, %d images, %d emphasis, %d strong, %d code spans, %d strikethrough",
		r.Links, r.Images, r.Emphasis, r.Strong, r.CodeSpans, r.Strikethrough)
	if r.HTMLBlocks > 0 {
		fmt.Fprintf(&sb, "\nRaw HTML blocks: %d", r.HTMLBlocks)
	}
	sb.WriteString("\n")

	return sb.String()
}
