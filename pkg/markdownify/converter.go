// Package markdownify converts HTML into Markdown.
//
// A Converter walks a parsed tree depth first. Text is whitespace-normalised
// and escaped, child results are merged so that block boundaries collapse to
// at most one blank line, and every element is handed to a per-tag Renderer.
// Built-in renderers can be replaced and new tags added through Options.
package markdownify

import (
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/markdownify/internal/logger"
)

// Converter converts HTML to Markdown. It is safe for concurrent use.
type Converter struct {
	opts Options

	mu    sync.RWMutex
	cache map[string]Renderer
}

// New creates a Converter from DefaultOptions with opts applied.
func New(opts ...Option) (*Converter, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if len(o.Renderers) > 0 {
		normalized := make(map[string]Renderer, len(o.Renderers))
		for tag, r := range o.Renderers {
			normalized[RendererKey(tag)] = r
		}
		o.Renderers = normalized
	}

	return &Converter{
		opts:  o,
		cache: make(map[string]Renderer),
	}, nil
}

// Convert converts html with a one-off converter.
func Convert(html string, opts ...Option) (string, error) {
	c, err := New(opts...)
	if err != nil {
		return "", err
	}
	return c.Convert(html)
}

// Options returns a copy of the converter's options.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert parses html and renders it as Markdown, applying StripDocument.
func (c *Converter) Convert(html string) (string, error) {
	root, err := Parse(html)
	if err != nil {
		return "", err
	}
	logger.Debug("converting", "root", root.Tag(), "input_bytes", len(html))
	return c.stripDocument(c.ConvertNode(root)), nil
}

// ConvertNode renders any node (document, element or text) with an empty
// context. StripDocument is not applied.
func (c *Converter) ConvertNode(n Node) string {
	if n == nil {
		return ""
	}
	return c.render(n, Context{})
}

// ConvertHTMLNode renders an x/net/html node. StripDocument is not applied.
func (c *Converter) ConvertHTMLNode(n *html.Node) string {
	return c.ConvertNode(WrapHTML(n))
}

// ConvertSelection renders every node of a goquery selection and joins them
// like top-level blocks, then applies StripDocument.
func (c *Converter) ConvertSelection(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	var parts []string
	for _, n := range sel.Nodes {
		if s := c.ConvertHTMLNode(n); s != "" {
			parts = append(parts, s)
		}
	}
	return c.stripDocument(joinBlocks(parts))
}

func (c *Converter) stripDocument(text string) string {
	switch normalizeStrip(c.opts.StripDocument) {
	case StripBoth:
		return trimASCII(text)
	case StripLeft:
		return trimLeftASCII(text)
	case StripRight:
		return trimRightASCII(text)
	default:
		return text
	}
}
