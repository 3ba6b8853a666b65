package prune

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/jmylchreest/markdownify/internal/logger"
)

// Cleaner prunes HTML according to a Config. It implements cleaner.Cleaner.
type Cleaner struct {
	config *Config
}

// New creates a Cleaner. A nil config means DefaultConfig().
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Cleaner{config: config}
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "prune"
}

// Clean returns the pruned HTML. Failures degrade to the input unchanged,
// so Clean never returns an error.
func (c *Cleaner) Clean(input string) (string, error) {
	result := c.CleanWithStats(input)
	for _, w := range result.Warnings {
		logger.Warn("prune warning", "warning", w.String())
	}
	return result.Content, nil
}

// CleanWithStats prunes the input and reports what was removed.
func (c *Cleaner) CleanWithStats(input string) *Result {
	start := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.InputBytes = len(input)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		result.Content = input
		result.AddWarning("parse", "HTML parse failed, returning original", err.Error())
		result.Stats.OutputBytes = len(input)
		result.Stats.Duration = time.Since(start)
		return result
	}

	c.transform(doc, result)

	out, err := doc.Find("body").Html()
	if err != nil {
		result.Content = input
		result.AddWarning("output", "HTML render failed, returning original", err.Error())
	} else {
		result.Content = strings.TrimSpace(out)
	}
	result.Stats.OutputBytes = len(result.Content)
	result.Stats.Duration = time.Since(start)

	logger.Debug("pruned document",
		"removed", result.Stats.TotalElementsRemoved(),
		"reduction", result.Stats.ReductionPercent())
	return result
}

func (c *Cleaner) transform(doc *goquery.Document, result *Result) {
	// Unwrap first so that selectors and hidden checks see the fallback markup.
	if c.config.UnwrapNoscript {
		c.unwrapNoscript(doc, result)
	}

	c.removeBySelectors(doc, result)

	if c.config.StripScripts {
		c.removeElements(doc, "script, style, template", result)
	}
	if c.config.StripSVG {
		c.removeElements(doc, "svg", result)
	}
	if c.config.StripIframes {
		c.removeElements(doc, "iframe", result)
	}
	if c.config.StripHiddenElements {
		c.removeHiddenElements(doc, result)
	}
	if c.config.StripComments {
		for _, n := range doc.Nodes {
			result.Stats.CommentsRemoved += removeComments(n)
		}
	}
}

func (c *Cleaner) removeElements(doc *goquery.Document, selector string, result *Result) {
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if c.shouldKeep(s) {
			return
		}
		result.Stats.RecordRemoval(goquery.NodeName(s))
		s.Remove()
	})
}

func (c *Cleaner) removeBySelectors(doc *goquery.Document, result *Result) {
	for _, selector := range c.config.RemoveSelectors {
		m, err := cascadia.Compile(selector)
		if err != nil {
			result.AddWarning("transform", "invalid selector skipped", selector)
			continue
		}
		removed := 0
		doc.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
			if c.shouldKeep(s) {
				return
			}
			result.Stats.RecordRemoval(goquery.NodeName(s))
			s.Remove()
			removed++
		})
		if removed > 0 {
			result.Stats.RecordSelectorMatch(selector, removed)
		}
	}
}

func (c *Cleaner) shouldKeep(s *goquery.Selection) bool {
	for _, selector := range c.config.KeepSelectors {
		if s.Is(selector) || s.Find(selector).Length() > 0 {
			return true
		}
	}
	return false
}

func (c *Cleaner) removeHiddenElements(doc *goquery.Document, result *Result) {
	doc.Find("[hidden], [aria-hidden='true'], [style]").Each(func(_ int, s *goquery.Selection) {
		if !isHidden(s) || c.shouldKeep(s) {
			return
		}
		result.Stats.HiddenElementRemovals++
		result.Stats.RecordRemoval(goquery.NodeName(s))
		s.Remove()
	})
}

func isHidden(s *goquery.Selection) bool {
	if _, ok := s.Attr("hidden"); ok {
		return true
	}
	if v, _ := s.Attr("aria-hidden"); v == "true" {
		return true
	}
	style := strings.ToLower(strings.Join(strings.Fields(s.AttrOr("style", "")), ""))
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

func (c *Cleaner) unwrapNoscript(doc *goquery.Document, result *Result) {
	doc.Find("noscript").Each(func(_ int, s *goquery.Selection) {
		// Scripting-enabled parsing leaves noscript content as a raw text node.
		s.ReplaceWithHtml(s.Text())
		result.Stats.NoscriptUnwrapped++
	})
}

// removeComments detaches every comment below n and returns how many
// were removed.
func removeComments(n *html.Node) int {
	removed := 0
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if child.Type == html.CommentNode {
			n.RemoveChild(child)
			removed++
		} else {
			removed += removeComments(child)
		}
		child = next
	}
	return removed
}
