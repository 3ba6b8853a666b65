package cleaner

import (
	"github.com/jmylchreest/markdownify/pkg/markdownify"
)

// MarkdownCleaner converts HTML to Markdown with markdownify.
type MarkdownCleaner struct {
	conv *markdownify.Converter
}

// NewMarkdown creates a Markdown cleaner. Options are validated here, so a
// conflicting configuration fails before any document is processed.
func NewMarkdown(opts ...markdownify.Option) (*MarkdownCleaner, error) {
	conv, err := markdownify.New(opts...)
	if err != nil {
		return nil, err
	}
	return &MarkdownCleaner{conv: conv}, nil
}

// Clean converts HTML to Markdown.
func (c *MarkdownCleaner) Clean(html string) (string, error) {
	return c.conv.Convert(html)
}

// Converter exposes the underlying converter, e.g. for ConvertSelection.
func (c *MarkdownCleaner) Converter() *markdownify.Converter {
	return c.conv
}

// Name returns the cleaner type.
func (c *MarkdownCleaner) Name() string {
	return "markdownify"
}
