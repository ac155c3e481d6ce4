// Package etree provides an XML implementation of surflink.Parser backed by
// github.com/beevik/etree.
package etree

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/surflink"
)

// Ensure Parser implements surflink.Parser at compile time.
var _ surflink.Parser = (*Parser)(nil)

// Parser parses XML documents such as feeds, sitemaps and XHTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads an XML document from r.
func (p *Parser) Parse(r io.Reader) (surflink.Tree, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, surflink.Errorf(surflink.EINVALID, "failed to parse XML: %v", err)
	}
	return &Tree{root: &doc.Element}, nil
}

// Ensure Tree implements surflink.Tree at compile time.
var _ surflink.Tree = (*Tree)(nil)

// Tree is the set of descendants of an XML element.
type Tree struct {
	root *etree.Element
}

// FindFirst returns the first descendant element, in document order, whose
// local name matches tag case-insensitively.
func (t *Tree) FindFirst(tag string) (surflink.Element, bool) {
	var found *etree.Element
	walk(t.root, func(el *etree.Element) bool {
		if strings.EqualFold(el.Tag, tag) {
			found = el
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return &Element{el: found}, true
}

// Select returns, in document order, every descendant element carrying at
// least one of attrs.
func (t *Tree) Select(attrs []string) []surflink.Element {
	var elements []surflink.Element
	walk(t.root, func(el *etree.Element) bool {
		e := &Element{el: el}
		for _, attr := range attrs {
			if _, ok := e.Attr(attr); ok {
				elements = append(elements, e)
				break
			}
		}
		return true
	})
	return elements
}

// walk visits the descendants of root in pre-order until fn returns false.
func walk(root *etree.Element, fn func(*etree.Element) bool) bool {
	for _, child := range root.ChildElements() {
		if !fn(child) || !walk(child, fn) {
			return false
		}
	}
	return true
}

// Ensure Element implements surflink.Element at compile time.
var _ surflink.Element = (*Element)(nil)

// Element wraps an XML element.
type Element struct {
	el *etree.Element
}

// TagName returns the lower-cased local name of the element.
func (e *Element) TagName() string {
	return strings.ToLower(e.el.Tag)
}

// Attr returns the value of the named attribute. Prefixed attributes are
// matched by their full name, e.g. "xlink:href".
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.el.Attr {
		if strings.EqualFold(a.FullKey(), name) {
			return a.Value, true
		}
	}
	return "", false
}

// AttrNames returns the attribute names in markup order.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.el.Attr))
	for _, a := range e.el.Attr {
		names = append(names, a.FullKey())
	}
	return names
}

// Subtree returns the tree of the element's descendants.
func (e *Element) Subtree() surflink.Tree {
	return &Tree{root: e.el}
}
