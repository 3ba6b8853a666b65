package markdownify

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	reSelfClosing = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9:_-]*)([^>]*)/>`)
	reFullDoc     = regexp.MustCompile(`(?i)<(html|body)[\s>]`)
)

// voidElements may legitimately be written self-closed.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {},
	"track": {}, "wbr": {},
}

// expandSelfClosing rewrites <span/> as <span></span>. An HTML5 parser
// ignores the slash and would otherwise nest all following siblings inside
// the element.
func expandSelfClosing(src string) string {
	return reSelfClosing.ReplaceAllStringFunc(src, func(m string) string {
		sub := reSelfClosing.FindStringSubmatch(m)
		if _, ok := voidElements[strings.ToLower(sub[1])]; ok {
			return m
		}
		return "<" + sub[1] + sub[2] + "></" + sub[1] + ">"
	})
}

// Parse parses src with x/net/html and returns the conversion root: the
// body element of a full document, or a document node holding the parsed
// fragment.
func Parse(src string) (Node, error) {
	src = expandSelfClosing(src)

	if reFullDoc.MatchString(src) {
		doc, err := html.Parse(strings.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		if body := findBody(doc); body != nil {
			return WrapHTML(body), nil
		}
		return WrapHTML(doc), nil
	}

	bodyCtx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), bodyCtx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	doc := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		doc.AppendChild(n)
	}
	return WrapHTML(doc), nil
}

// findBody looks for body at the top level or directly under <html>.
func findBody(doc *html.Node) *html.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Body {
			return c
		}
		if c.DataAtom == atom.Html {
			for b := c.FirstChild; b != nil; b = b.NextSibling {
				if b.Type == html.ElementNode && b.DataAtom == atom.Body {
					return b
				}
			}
		}
	}
	return nil
}
