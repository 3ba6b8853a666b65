package markdownify

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jmylchreest/markdownify/internal/logger"
)

// Renderer turns an element and the already-rendered text of its children
// into Markdown. ctx is the context of the element itself (its ancestors),
// not the context its children were rendered with.
type Renderer interface {
	Render(c *Converter, n Node, text string, ctx Context) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(c *Converter, n Node, text string, ctx Context) string

func (f RendererFunc) Render(c *Converter, n Node, text string, ctx Context) string {
	return f(c, n, text, ctx)
}

// HeadingRenderer renders hN elements. level is the number in the tag name,
// unclamped.
type HeadingRenderer interface {
	RenderHeading(c *Converter, level int, n Node, text string, ctx Context) string
}

// HeadingRendererFunc adapts a function to HeadingRenderer.
type HeadingRendererFunc func(c *Converter, level int, n Node, text string, ctx Context) string

func (f HeadingRendererFunc) RenderHeading(c *Converter, level int, n Node, text string, ctx Context) string {
	return f(c, level, n, text, ctx)
}

var (
	reRendererKey = regexp.MustCompile(`[^a-z0-9_]`)
	reHeading     = regexp.MustCompile(`^h(\d+)$`)
)

// RendererKey normalises a tag name into a registry key: lowercased, with
// every character outside [a-z0-9_] replaced by an underscore.
func RendererKey(tag string) string {
	return reRendererKey.ReplaceAllString(strings.ToLower(tag), "_")
}

func isHeadingTag(tag string) bool {
	return reHeading.MatchString(tag)
}

func headingLevel(tag string) (int, bool) {
	m := reHeading.FindStringSubmatch(tag)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// More digits than an int holds; clamped to h6 later anyway.
		return 6, true
	}
	return n, true
}

// builtins maps registry keys to the built-in renderers.
var builtins = map[string]Renderer{
	"a":          RendererFunc(renderLink),
	"b":          RendererFunc(renderStrong),
	"strong":     RendererFunc(renderStrong),
	"em":         RendererFunc(renderEmphasis),
	"i":          RendererFunc(renderEmphasis),
	"del":        RendererFunc(renderStrikethrough),
	"s":          RendererFunc(renderStrikethrough),
	"sub":        RendererFunc(renderSub),
	"sup":        RendererFunc(renderSup),
	"code":       RendererFunc(renderCode),
	"kbd":        RendererFunc(renderCode),
	"samp":       RendererFunc(renderCode),
	"q":          RendererFunc(renderQuote),
	"br":         RendererFunc(renderBreak),
	"img":        RendererFunc(renderImage),
	"video":      RendererFunc(renderVideo),
	"blockquote": RendererFunc(renderBlockquote),
	"div":        RendererFunc(renderDiv),
	"section":    RendererFunc(renderDiv),
	"article":    RendererFunc(renderDiv),
	"dl":         RendererFunc(renderDiv),
	"dd":         RendererFunc(renderDefinition),
	"dt":         RendererFunc(renderTerm),
	"hr":         RendererFunc(renderRule),
	"ul":         RendererFunc(renderList),
	"ol":         RendererFunc(renderList),
	"li":         RendererFunc(renderListItem),
	"p":          RendererFunc(renderParagraph),
	"pre":        RendererFunc(renderPre),
	"script":     RendererFunc(renderNothing),
	"style":      RendererFunc(renderNothing),
	"table":      RendererFunc(renderTable),
	"caption":    RendererFunc(renderCaption),
	"figcaption": RendererFunc(renderFigcaption),
	"td":         RendererFunc(renderCell),
	"th":         RendererFunc(renderCell),
	"tr":         RendererFunc(renderRow),
}

// Builtin returns the built-in renderer for tag, so an override can
// decorate it.
func Builtin(tag string) (Renderer, bool) {
	key := RendererKey(tag)
	if r, ok := builtins[key]; ok {
		return r, true
	}
	if level, ok := headingLevel(key); ok {
		return headingAt(level, builtinHeading), true
	}
	return nil, false
}

var builtinHeading = HeadingRendererFunc(renderHeading)

// headingAt binds a heading renderer to a level.
func headingAt(level int, h HeadingRenderer) Renderer {
	return RendererFunc(func(c *Converter, n Node, text string, ctx Context) string {
		return h.RenderHeading(c, level, n, text, ctx)
	})
}

// shouldConvert applies the Strip/Convert tag filters.
func (c *Converter) shouldConvert(tag string) bool {
	switch {
	case c.opts.Strip != nil:
		return !slices.Contains(c.opts.Strip, tag)
	case c.opts.Convert != nil:
		return slices.Contains(c.opts.Convert, tag)
	default:
		return true
	}
}

// renderer returns the renderer for tag, or nil when the children's text
// should pass through unchanged. Lookups are cached per converter.
func (c *Converter) renderer(tag string) Renderer {
	c.mu.RLock()
	r, ok := c.cache[tag]
	c.mu.RUnlock()
	if ok {
		return r
	}

	r = c.resolve(tag)

	c.mu.Lock()
	c.cache[tag] = r
	c.mu.Unlock()
	return r
}

func (c *Converter) resolve(tag string) Renderer {
	tag = strings.ToLower(tag)
	if !c.shouldConvert(tag) {
		logger.Debug("tag filtered, passing text through", "tag", tag)
		return nil
	}

	key := RendererKey(tag)
	if r, ok := c.opts.Renderers[key]; ok {
		return r
	}
	if r, ok := builtins[key]; ok {
		return r
	}
	if level, ok := headingLevel(tag); ok {
		if c.opts.HeadingRenderer != nil {
			return headingAt(level, c.opts.HeadingRenderer)
		}
		return headingAt(level, builtinHeading)
	}

	logger.Debug("no renderer for tag, passing text through", "tag", tag)
	return nil
}
