package markdownify

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/markdownify/internal/logger"
)

var reTagLike = regexp.MustCompile(`<[^>]*>`)

// render dispatches on node kind.
func (c *Converter) render(n Node, ctx Context) string {
	switch n.Kind() {
	case DocumentNode:
		return c.renderDocument(n)
	case ElementNode:
		return c.renderElement(n, ctx)
	case TextNode:
		return c.renderText(n, ctx)
	default:
		return ""
	}
}

// renderDocument renders each top-level child with an empty context and
// joins the results.
func (c *Converter) renderDocument(n Node) string {
	var parts []string
	for _, child := range n.Children() {
		if s := c.render(child, Context{}); s != "" {
			parts = append(parts, s)
		}
	}
	return joinBlocks(parts)
}

// joinBlocks concatenates rendered blocks, collapsing a "\n\n" + "\n\n"
// boundary into a single blank line.
func joinBlocks(parts []string) string {
	var sb strings.Builder
	for i, part := range parts {
		if i > 0 && strings.HasSuffix(sb.String(), "\n\n") && strings.HasPrefix(part, "\n\n") {
			part = part[2:]
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func (c *Converter) renderText(n Node, ctx Context) string {
	text := n.Text()
	if t := strings.TrimSpace(text); strings.HasPrefix(t, "<!DOCTYPE") || strings.HasPrefix(t, "<![CDATA[") {
		return ""
	}

	text = c.normalizeText(text, ctx)
	text = c.escape(text, ctx)

	if n.Parent() != nil {
		text = trimAgainstSiblings(n, text)
	}
	return text
}

func (c *Converter) renderElement(n Node, ctx Context) string {
	tag := n.Tag()

	if c.opts.MaxDepth > 0 && ctx.Depth() >= c.opts.MaxDepth {
		logger.Warn("nesting limit reached, rendering subtree as text", "tag", tag, "depth", ctx.Depth())
		return c.flatten(n, ctx)
	}

	inside := removesWhitespaceInside(n)
	childCtx := ctx.descend(tag)

	var parts []string
	for _, child := range n.Children() {
		if canIgnore(child, inside) {
			continue
		}
		if s := c.render(child, childCtx); s != "" {
			parts = append(parts, s)
		}
	}

	var text string
	if tag == "pre" || ctx.Has("pre") {
		text = strings.Join(parts, "")
	} else {
		text = mergeNewlines(parts)
	}

	if tag == "pre" && strings.Contains(text, "<") && strings.Contains(text, ">") {
		if mp, ok := n.(markupParser); !ok || !mp.parsesPreMarkup() {
			text = reTagLike.ReplaceAllString(text, "")
		}
	}

	if r := c.renderer(tag); r != nil {
		text = r.Render(c, n, text, ctx)
	}
	return text
}

// mergeNewlines joins child results so that the newline runs meeting at
// each boundary collapse to at most one blank line.
func mergeNewlines(parts []string) string {
	pieces := []string{""}
	for _, part := range parts {
		lead, content, trail := splitNewlines(part)
		last := pieces[len(pieces)-1]
		if last != "" && lead != "" {
			n := min(2, max(len(last), len(lead)))
			pieces[len(pieces)-1] = strings.Repeat("\n", n)
			pieces = append(pieces, content, trail)
			continue
		}
		pieces = append(pieces, lead, content, trail)
	}
	return strings.Join(pieces, "")
}

// splitNewlines separates the leading and trailing newline runs of s from
// its core. A string of only newlines is all lead.
func splitNewlines(s string) (lead, content, trail string) {
	rest := strings.TrimLeft(s, "\n")
	lead = s[:len(s)-len(rest)]
	content = strings.TrimRight(rest, "\n")
	trail = rest[len(content):]
	return lead, content, trail
}

// flatten renders the text below n without recursion. It is the fallback
// for trees nested deeper than MaxDepth.
func (c *Converter) flatten(n Node, ctx Context) string {
	var sb strings.Builder
	stack := []Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch cur.Kind() {
		case TextNode:
			sb.WriteString(cur.Text())
		case ElementNode:
			switch cur.Tag() {
			case "script", "style":
				continue
			}
			children := cur.Children()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
	return c.escape(c.normalizeText(sb.String(), ctx), ctx)
}
