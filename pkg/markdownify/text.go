package markdownify

import (
	"regexp"
	"strings"
)

var (
	reAllWhitespace     = regexp.MustCompile(`[\t \r\n]+`)
	reNewlineWhitespace = regexp.MustCompile(`[\t \r\n]*[\r\n][\t \r\n]*`)
	reTabs              = regexp.MustCompile(`\t+`)
	reSpaces            = regexp.MustCompile(` +`)

	reEscapeMiscChars    = regexp.MustCompile("([\\\\&<>`~=+|])")
	reEscapeMiscDashes   = regexp.MustCompile(`(\s|^)(-+(?:\s|$))`)
	reEscapeMiscHashes   = regexp.MustCompile(`(\s|^)(#{1,6}(?:\s|$))`)
	reEscapeMiscListItem = regexp.MustCompile(`((?:\s|^)[0-9]{1,9})([.)](?:\s|$))`)
)

// asciiSpace is the whitespace set used by the trim policy. Non-breaking
// spaces are content, not layout.
const asciiSpace = " \t\r\n"

func trimASCII(s string) string      { return strings.Trim(s, asciiSpace) }
func trimLeftASCII(s string) string  { return strings.TrimLeft(s, asciiSpace) }
func trimRightASCII(s string) string { return strings.TrimRight(s, asciiSpace) }

// normalizeText collapses whitespace in flowing text. Preformatted text is
// returned unchanged.
func (c *Converter) normalizeText(text string, ctx Context) string {
	if ctx.Has("pre") {
		return text
	}
	if c.opts.Wrap {
		return reAllWhitespace.ReplaceAllString(text, " ")
	}
	text = reNewlineWhitespace.ReplaceAllString(text, "\n")
	text = reTabs.ReplaceAllString(text, " ")
	return reSpaces.ReplaceAllString(text, " ")
}

// escape backslash-escapes Markdown-significant characters unless the text
// sits in a code-like region.
func (c *Converter) escape(text string, ctx Context) string {
	if text == "" {
		return ""
	}
	if ctx.NoFormat() || ctx.Has("code") || ctx.Has("kbd") || ctx.Has("samp") {
		return text
	}
	if c.opts.EscapeMisc {
		text = reEscapeMiscChars.ReplaceAllString(text, `\${1}`)
		text = reEscapeMiscDashes.ReplaceAllString(text, `${1}\${2}`)
		text = reEscapeMiscHashes.ReplaceAllString(text, `${1}\${2}`)
		text = reEscapeMiscListItem.ReplaceAllString(text, `${1}\${2}`)
		text = strings.NewReplacer("[", `\[`, "]", `\]`).Replace(text)
	}
	if c.opts.EscapeAsterisks {
		text = strings.ReplaceAll(text, "*", `\*`)
	}
	if c.opts.EscapeUnderscores {
		text = strings.ReplaceAll(text, "_", `\_`)
	}
	return text
}

var blockTags = map[string]struct{}{
	"p": {}, "blockquote": {}, "article": {}, "div": {}, "section": {},
	"ol": {}, "ul": {}, "li": {}, "dl": {}, "dt": {}, "dd": {},
	"table": {}, "thead": {}, "tbody": {}, "tfoot": {}, "tr": {}, "td": {}, "th": {},
}

// removesWhitespaceInside reports whether leading and trailing whitespace
// inside n is layout only.
func removesWhitespaceInside(n Node) bool {
	if !isElement(n) {
		return false
	}
	tag := n.Tag()
	if isHeadingTag(tag) {
		return true
	}
	_, ok := blockTags[tag]
	return ok
}

// removesWhitespaceOutside reports whether whitespace next to n is layout
// only.
func removesWhitespaceOutside(n Node) bool {
	return removesWhitespaceInside(n) || isTag(n, "pre")
}

// canIgnore reports whether child may be dropped before rendering. Only
// comments, doctypes and layout whitespace between blocks are ignorable.
func canIgnore(child Node, inside bool) bool {
	switch child.Kind() {
	case ElementNode:
		return false
	case TextNode:
		if strings.TrimSpace(child.Text()) != "" {
			return false
		}
		prev, next := child.PrevSibling(), child.NextSibling()
		if inside && (prev == nil || next == nil) {
			return true
		}
		return removesWhitespaceOutside(prev) || removesWhitespaceOutside(next)
	default:
		return true
	}
}

// trimAgainstSiblings strips whitespace at the edges of a text node where
// it touches a block boundary.
func trimAgainstSiblings(n Node, text string) string {
	parent := n.Parent()
	inside := removesWhitespaceInside(parent)
	prev, next := n.PrevSibling(), n.NextSibling()

	if removesWhitespaceOutside(prev) || (parent != nil && inside && prev == nil) {
		text = trimLeftASCII(text)
	}
	if removesWhitespaceOutside(next) || (parent != nil && inside && next == nil) {
		text = trimRightASCII(text)
	}
	return text
}

// chomp splits off a single leading and trailing space so inline markup
// can be wrapped around the trimmed core.
func chomp(text string) (prefix, suffix, core string) {
	if strings.HasPrefix(text, " ") {
		prefix = " "
	}
	if strings.HasSuffix(text, " ") {
		suffix = " "
	}
	return prefix, suffix, strings.TrimSpace(text)
}
