package mock

import (
	"io"

	"github.com/fwojciec/surflink"
)

var _ surflink.Parser = (*Parser)(nil)

// Parser is a mock implementation of surflink.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (surflink.Tree, error)
}

func (p *Parser) Parse(r io.Reader) (surflink.Tree, error) {
	return p.ParseFn(r)
}

var _ surflink.Tree = (*Tree)(nil)

// Tree is a mock implementation of surflink.Tree.
type Tree struct {
	FindFirstFn func(tag string) (surflink.Element, bool)
	SelectFn    func(attrs []string) []surflink.Element
}

func (t *Tree) FindFirst(tag string) (surflink.Element, bool) {
	return t.FindFirstFn(tag)
}

func (t *Tree) Select(attrs []string) []surflink.Element {
	return t.SelectFn(attrs)
}

var _ surflink.Element = (*Element)(nil)

// Element is a static implementation of surflink.Element. Attrs are kept in
// markup order; Children is the element's subtree.
type Element struct {
	Tag      string
	Attrs    [][2]string
	Children surflink.Tree
}

func (e *Element) TagName() string {
	return e.Tag
}

func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a[0] == name {
			return a[1], true
		}
	}
	return "", false
}

func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.Attrs))
	for _, a := range e.Attrs {
		names = append(names, a[0])
	}
	return names
}

func (e *Element) Subtree() surflink.Tree {
	return e.Children
}
