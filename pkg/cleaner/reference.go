package cleaner

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ReferenceCleaner converts HTML to Markdown with html-to-markdown. It is
// a second opinion for `markdownify compare`, not part of the conversion
// path.
type ReferenceCleaner struct{}

// NewReference creates a reference Markdown cleaner.
func NewReference() *ReferenceCleaner {
	return &ReferenceCleaner{}
}

// Clean converts HTML to Markdown.
func (c *ReferenceCleaner) Clean(html string) (string, error) {
	markdown, err := md.ConvertString(html)
	if err != nil {
		return "", err
	}
	return cleanWhitespace(markdown), nil
}

// Name returns the cleaner type.
func (c *ReferenceCleaner) Name() string {
	return "html-to-markdown"
}

// cleanWhitespace collapses runs of blank lines to one and trims the
// result, matching markdownify's default document stripping.
func cleanWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	blank := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank <= 1 {
				result = append(result, "")
			}
			continue
		}
		blank = 0
		result = append(result, line)
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
