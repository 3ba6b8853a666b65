package markdownify

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// NodeKind classifies a Node.
type NodeKind int

const (
	OtherNode NodeKind = iota
	DocumentNode
	ElementNode
	TextNode
)

// Node is the read-only view of a parsed HTML tree the converter walks.
// Any parser can be plugged in by implementing it. Methods returning a Node
// return a nil interface when there is no such node, and two Nodes for the
// same underlying node must compare equal with ==.
type Node interface {
	Kind() NodeKind
	// Tag is the lowercased element name, or "" for non-elements.
	Tag() string
	Attr(name string) (string, bool)
	Children() []Node
	// Text is the raw content of a text node.
	Text() string
	Parent() Node
	PrevSibling() Node
	NextSibling() Node
}

// markupParser is implemented by nodes whose parser always turns markup
// inside <pre> into elements, so no raw tags can reach the pre renderer.
type markupParser interface {
	parsesPreMarkup() bool
}

// htmlNode adapts *html.Node. It is a comparable value so two wrappers of
// the same underlying node are equal.
type htmlNode struct {
	n *html.Node
}

// WrapHTML exposes an x/net/html node through the Node interface.
func WrapHTML(n *html.Node) Node {
	if n == nil {
		return nil
	}
	return htmlNode{n: n}
}

// Unwrap returns the underlying x/net/html node, or nil if n was not
// produced by WrapHTML.
func Unwrap(n Node) *html.Node {
	if h, ok := n.(htmlNode); ok {
		return h.n
	}
	return nil
}

func (h htmlNode) Kind() NodeKind {
	switch h.n.Type {
	case html.DocumentNode:
		return DocumentNode
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	default:
		return OtherNode
	}
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(dom.NodeName(h.n))
}

func (h htmlNode) Attr(name string) (string, bool) {
	return dom.GetAttribute(h.n, name)
}

func (h htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, htmlNode{n: c})
	}
	return out
}

func (h htmlNode) Text() string {
	if h.n.Type != html.TextNode {
		return ""
	}
	return h.n.Data
}

func (h htmlNode) Parent() Node      { return WrapHTML(h.n.Parent) }
func (h htmlNode) PrevSibling() Node { return WrapHTML(h.n.PrevSibling) }
func (h htmlNode) NextSibling() Node { return WrapHTML(h.n.NextSibling) }

func (h htmlNode) parsesPreMarkup() bool { return true }

// Helpers over the Node contract.

func isElement(n Node) bool {
	return n != nil && n.Kind() == ElementNode
}

func isTag(n Node, tags ...string) bool {
	if !isElement(n) {
		return false
	}
	name := n.Tag()
	for _, t := range tags {
		if name == t {
			return true
		}
	}
	return false
}

func attrOr(n Node, name, fallback string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return fallback
}

func prevElement(n Node) Node {
	for s := n.PrevSibling(); s != nil; s = s.PrevSibling() {
		if isElement(s) {
			return s
		}
	}
	return nil
}

func childElements(n Node, tags ...string) []Node {
	var out []Node
	for _, c := range n.Children() {
		if len(tags) == 0 && isElement(c) || isTag(c, tags...) {
			out = append(out, c)
		}
	}
	return out
}
