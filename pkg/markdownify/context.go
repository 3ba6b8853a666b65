package markdownify

// Synthetic context markers.
const (
	// MarkerInline is set inside headings and table cells, where block
	// spacing is not allowed.
	MarkerInline = "_inline"
	// MarkerNoFormat is set inside pre, code, kbd and samp, where text is
	// not escaped and inline markup is not applied.
	MarkerNoFormat = "_noformat"
)

// Context is the set of ancestor tag names (plus synthetic markers) seen on
// the way down to a node. It is a value: descending copies it, so siblings
// never observe each other's additions.
type Context struct {
	tags  map[string]struct{}
	depth int
}

// Has reports whether tag (or marker) is in the context.
func (c Context) Has(tag string) bool {
	_, ok := c.tags[tag]
	return ok
}

// Inline reports whether block spacing is suppressed.
func (c Context) Inline() bool { return c.Has(MarkerInline) }

// NoFormat reports whether escaping and inline markup are suppressed.
func (c Context) NoFormat() bool { return c.Has(MarkerNoFormat) }

// Depth is the number of elements between the conversion root and the node.
func (c Context) Depth() int { return c.depth }

// Tags returns the context contents in no particular order.
func (c Context) Tags() []string {
	out := make([]string, 0, len(c.tags))
	for t := range c.tags {
		out = append(out, t)
	}
	return out
}

// With returns a copy of c extended with tags.
func (c Context) With(tags ...string) Context {
	next := Context{
		tags:  make(map[string]struct{}, len(c.tags)+len(tags)),
		depth: c.depth,
	}
	for t := range c.tags {
		next.tags[t] = struct{}{}
	}
	for _, t := range tags {
		next.tags[t] = struct{}{}
	}
	return next
}

// descend builds the context for the children of an element named tag.
func (c Context) descend(tag string) Context {
	add := []string{tag}
	if isHeadingTag(tag) || tag == "td" || tag == "th" {
		add = append(add, MarkerInline)
	}
	switch tag {
	case "pre", "code", "kbd", "samp":
		add = append(add, MarkerNoFormat)
	}
	next := c.With(add...)
	next.depth = c.depth + 1
	return next
}
