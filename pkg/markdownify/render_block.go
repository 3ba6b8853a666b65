package markdownify

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	rePreLeading     = regexp.MustCompile(`^[ \n]*\n`)
	rePreTrailing    = regexp.MustCompile(`[ \n]*$`)
	rePreLeadingOne  = regexp.MustCompile(`^ *\n`)
	rePreTrailingOne = regexp.MustCompile(`\n *$`)
)

func renderNothing(*Converter, Node, string, Context) string { return "" }

func renderRule(*Converter, Node, string, Context) string { return "\n\n---\n\n" }

func renderDiv(_ *Converter, _ Node, text string, ctx Context) string {
	text = strings.TrimSpace(text)
	if ctx.Inline() {
		return " " + text + " "
	}
	if text == "" {
		return ""
	}
	return "\n\n" + text + "\n\n"
}

func renderBlockquote(_ *Converter, _ Node, text string, ctx Context) string {
	text = trimASCII(text)
	if ctx.Inline() {
		return " " + text + " "
	}
	if text == "" {
		return "\n"
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line = trimASCII(line); line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return "\n" + strings.Join(lines, "\n") + "\n\n"
}

func renderDefinition(_ *Converter, _ Node, text string, ctx Context) string {
	text = strings.TrimSpace(text)
	if ctx.Inline() {
		return " " + text + " "
	}
	if text == "" {
		return "\n"
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case line == "":
		case i == 0:
			lines[i] = ":   " + line
		default:
			lines[i] = "    " + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func renderTerm(_ *Converter, _ Node, text string, ctx Context) string {
	text = reAllWhitespace.ReplaceAllString(strings.TrimSpace(text), " ")
	if ctx.Inline() {
		return " " + text + " "
	}
	if text == "" {
		return "\n"
	}
	return "\n\n" + text + "\n"
}

func renderHeading(c *Converter, level int, _ Node, text string, ctx Context) string {
	if ctx.Inline() {
		return text
	}
	level = max(1, min(6, level))
	style := c.opts.headingStyle()
	text = strings.TrimSpace(text)

	if style == HeadingUnderlined && level <= 2 {
		if text == "" {
			return ""
		}
		pad := "="
		if level == 2 {
			pad = "-"
		}
		return "\n\n" + text + "\n" + strings.Repeat(pad, utf8.RuneCountInString(text)) + "\n\n"
	}

	text = reAllWhitespace.ReplaceAllString(text, " ")
	hashes := strings.Repeat("#", level)
	if style == HeadingATXClosed {
		return "\n\n" + hashes + " " + text + " " + hashes + "\n\n"
	}
	return "\n\n" + hashes + " " + text + "\n\n"
}

func renderList(_ *Converter, n Node, text string, ctx Context) string {
	if ctx.Has("li") {
		return "\n" + trimRightASCII(text)
	}
	beforeParagraph := false
	if next := nextContentSibling(n); next != nil && !isTag(next, "ul", "ol") {
		beforeParagraph = true
	}
	if beforeParagraph {
		return "\n\n" + text + "\n"
	}
	return "\n\n" + text
}

// nextContentSibling skips comments and whitespace-only text.
func nextContentSibling(n Node) Node {
	for s := n.NextSibling(); s != nil; s = s.NextSibling() {
		switch s.Kind() {
		case ElementNode:
			return s
		case TextNode:
			if strings.TrimSpace(s.Text()) != "" {
				return s
			}
		}
	}
	return nil
}

func renderListItem(c *Converter, n Node, text string, _ Context) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "\n"
	}

	bullet := c.bulletFor(n) + " "
	indent := strings.Repeat(" ", utf8.RuneCountInString(bullet))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	text = strings.Join(lines, "\n")
	return bullet + text[len(indent):] + "\n"
}

// bulletFor returns "N." inside an ordered list, otherwise the bullet for
// the item's unordered nesting depth.
func (c *Converter) bulletFor(li Node) string {
	parent := li.Parent()
	if isTag(parent, "ol") {
		start := 1
		if v, ok := parent.Attr("start"); ok {
			if s, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && s >= 0 {
				start = s
			}
		}
		index := 0
		for _, sib := range childElements(parent, "li") {
			if sib == li {
				break
			}
			index++
		}
		return strconv.Itoa(start+index) + "."
	}

	depth := -1
	for cur := li; cur != nil; cur = cur.Parent() {
		if isTag(cur, "ul") {
			depth++
		}
	}
	bullets := []rune(c.opts.Bullets)
	return string(bullets[max(depth, 0)%len(bullets)])
}

func renderParagraph(c *Converter, _ Node, text string, ctx Context) string {
	if ctx.Inline() {
		return " " + trimASCII(text) + " "
	}
	text = trimASCII(text)
	if c.opts.Wrap {
		segments := strings.Split(text, "  \n")
		for i, seg := range segments {
			segments[i] = c.wrapText(seg)
		}
		text = strings.Join(segments, "  \n")
	}
	if text == "" {
		return ""
	}
	return "\n\n" + text + "\n\n"
}

// wrapText greedily packs the words of each line into WrapWidth columns.
func (c *Converter) wrapText(text string) string {
	width := c.opts.WrapWidth
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = trimASCII(line)
		if utf8.RuneCountInString(line) <= width {
			lines[i] = line
			continue
		}

		var wrapped, current strings.Builder
		for _, word := range strings.Split(line, " ") {
			if utf8.RuneCountInString(current.String())+utf8.RuneCountInString(word) > width {
				if current.Len() > 0 {
					wrapped.WriteString(trimASCII(current.String()))
					wrapped.WriteString("\n")
				}
				current.Reset()
			}
			current.WriteString(word)
			current.WriteString(" ")
		}
		wrapped.WriteString(trimASCII(current.String()))
		lines[i] = wrapped.String()
	}
	return strings.Join(lines, "\n")
}

func renderPre(c *Converter, n Node, text string, _ Context) string {
	if text == "" {
		return ""
	}

	lang := c.opts.CodeLanguage
	if c.opts.CodeLanguageCallback != nil {
		if l := c.opts.CodeLanguageCallback(n); l != "" {
			lang = l
		}
	}

	switch normalizeStrip(c.opts.StripPre) {
	case StripBoth:
		text = rePreLeading.ReplaceAllString(text, "")
		text = rePreTrailing.ReplaceAllString(text, "")
	case StripOne:
		text = rePreLeadingOne.ReplaceAllString(text, "")
		text = rePreTrailingOne.ReplaceAllString(text, "")
	}
	return "\n\n```" + lang + "\n" + text + "\n```\n\n"
}
