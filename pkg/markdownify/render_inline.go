package markdownify

import (
	"slices"
	"strings"
)

// inline wraps chomped text in markup. An HTML-style opener such as <sub>
// is closed with </sub>; anything else closes with itself.
func inline(markup string, text string, ctx Context) string {
	if ctx.NoFormat() {
		return text
	}
	closer := markup
	if strings.HasPrefix(markup, "<") && strings.HasSuffix(markup, ">") {
		closer = "</" + markup[1:]
	}
	prefix, suffix, core := chomp(text)
	if core == "" {
		return ""
	}
	return prefix + markup + core + closer + suffix
}

func renderStrong(c *Converter, _ Node, text string, ctx Context) string {
	return inline(strings.Repeat(c.opts.StrongEmSymbol, 2), text, ctx)
}

func renderEmphasis(c *Converter, _ Node, text string, ctx Context) string {
	return inline(c.opts.StrongEmSymbol, text, ctx)
}

func renderStrikethrough(_ *Converter, _ Node, text string, ctx Context) string {
	return inline("~~", text, ctx)
}

func renderSub(c *Converter, _ Node, text string, ctx Context) string {
	return inline(c.opts.SubSymbol, text, ctx)
}

func renderSup(c *Converter, _ Node, text string, ctx Context) string {
	return inline(c.opts.SupSymbol, text, ctx)
}

func titlePart(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}

func renderLink(c *Converter, n Node, text string, ctx Context) string {
	if ctx.NoFormat() {
		return text
	}
	prefix, suffix, core := chomp(text)
	if core == "" {
		return ""
	}

	href := attrOr(n, "href", "")
	title := attrOr(n, "title", "")

	if c.opts.Autolinks && strings.ReplaceAll(core, `\_`, "_") == href && title == "" && !c.opts.DefaultTitle {
		return "<" + href + ">"
	}
	if c.opts.DefaultTitle && title == "" {
		title = href
	}
	if href == "" {
		return core
	}
	return prefix + "[" + core + "](" + href + titlePart(title) + ")" + suffix
}

func renderCode(_ *Converter, _ Node, text string, ctx Context) string {
	if ctx.NoFormat() {
		return text
	}
	prefix, suffix, core := chomp(text)
	if core == "" {
		return ""
	}

	longest, run := 0, 0
	for _, r := range core {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	delim := strings.Repeat("`", longest+1)
	if longest > 0 {
		core = " " + core + " "
	}
	return prefix + delim + core + delim + suffix
}

func renderQuote(_ *Converter, _ Node, text string, _ Context) string {
	return `"` + text + `"`
}

func renderBreak(c *Converter, _ Node, _ string, ctx Context) string {
	if ctx.Inline() {
		return " "
	}
	if c.opts.newlineStyle() == NewlineBackslash {
		return "\\\n"
	}
	return "  \n"
}

// collapsesMedia reports whether an image or video inside an inline
// context should lose its markup.
func (c *Converter) collapsesMedia(n Node, ctx Context) bool {
	if !ctx.Inline() {
		return false
	}
	parent := n.Parent()
	if !isElement(parent) {
		return false
	}
	return !slices.Contains(c.opts.KeepInlineImagesIn, parent.Tag())
}

func renderImage(c *Converter, n Node, _ string, ctx Context) string {
	alt := attrOr(n, "alt", "")
	if c.collapsesMedia(n, ctx) {
		return alt
	}
	src := attrOr(n, "src", "")
	return "![" + alt + "](" + src + titlePart(attrOr(n, "title", "")) + ")"
}

func renderVideo(c *Converter, n Node, text string, ctx Context) string {
	if c.collapsesMedia(n, ctx) {
		return text
	}

	src := attrOr(n, "src", "")
	if src == "" {
		for _, source := range childElements(n, "source") {
			if s := attrOr(source, "src", ""); s != "" {
				src = s
				break
			}
		}
	}
	poster := attrOr(n, "poster", "")

	switch {
	case src != "" && poster != "":
		return "[![" + text + "](" + poster + ")](" + src + ")"
	case src != "":
		return "[" + text + "](" + src + ")"
	case poster != "":
		return "![" + text + "](" + poster + ")"
	default:
		return text
	}
}
