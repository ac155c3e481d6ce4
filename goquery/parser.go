// Package goquery provides an HTML implementation of surflink.Parser backed
// by goquery and golang.org/x/net/html.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/surflink"
	"golang.org/x/net/html"
)

// Ensure Parser implements surflink.Parser at compile time.
var _ surflink.Parser = (*Parser)(nil)

// Parser parses HTML into a goquery-backed tree.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads HTML from r. The HTML5 parsing algorithm recovers from
// malformed markup, so only read failures are returned.
func (p *Parser) Parse(r io.Reader) (surflink.Tree, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, surflink.Errorf(surflink.EINVALID, "failed to parse HTML: %v", err)
	}
	return NewTree(goquery.NewDocumentFromNode(root).Selection), nil
}

// Ensure Tree implements surflink.Tree at compile time.
var _ surflink.Tree = (*Tree)(nil)

// Tree is the set of descendants of a goquery selection.
type Tree struct {
	sel *goquery.Selection
}

// NewTree returns a tree over the descendants of sel.
func NewTree(sel *goquery.Selection) *Tree {
	return &Tree{sel: sel}
}

// FindFirst returns the first descendant element with the given tag name.
func (t *Tree) FindFirst(tag string) (surflink.Element, bool) {
	tag = strings.ToLower(tag)
	sel := t.sel.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return goquery.NodeName(s) == tag
	}).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &Element{node: sel.Get(0)}, true
}

// Select returns, in document order, every descendant element carrying at
// least one of attrs. Attributes are matched by name rather than by CSS
// selector so that namespaced names like xlink:href work.
func (t *Tree) Select(attrs []string) []surflink.Element {
	var elements []surflink.Element
	t.sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		el := &Element{node: s.Get(0)}
		for _, attr := range attrs {
			if _, ok := el.Attr(attr); ok {
				elements = append(elements, el)
				return
			}
		}
	})
	return elements
}

// Ensure Element implements surflink.Element at compile time.
var _ surflink.Element = (*Element)(nil)

// Element wraps an HTML element node.
type Element struct {
	node *html.Node
}

// TagName returns the lower-cased tag name.
func (e *Element) TagName() string {
	return strings.ToLower(e.node.Data)
}

// Attr returns the value of the named attribute. Attributes of foreign
// content carry their namespace prefix, e.g. "xlink:href".
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if strings.EqualFold(attrName(a), name) {
			return a.Val, true
		}
	}
	return "", false
}

// AttrNames returns the attribute names in markup order.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.node.Attr))
	for _, a := range e.node.Attr {
		names = append(names, attrName(a))
	}
	return names
}

// Subtree returns the tree of the element's descendants.
func (e *Element) Subtree() surflink.Tree {
	return NewTree(goquery.NewDocumentFromNode(e.node).Selection)
}

func attrName(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}
