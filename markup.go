package surflink

import "io"

// Parser turns raw markup into a navigable element tree.
type Parser interface {
	// Parse reads markup from r and returns the root of the element tree.
	// Only unrecoverable parse failures are returned as errors.
	Parse(r io.Reader) (Tree, error)
}

// Tree is a parsed markup tree, or a subtree of one.
type Tree interface {
	// FindFirst returns the first element in document order with the given
	// tag name. The bool result is false if no such element exists.
	FindFirst(tag string) (Element, bool)

	// Select returns, in document order, every element that carries at
	// least one of the given attributes.
	Select(attrs []string) []Element
}

// Element is a single tagged node in a markup tree.
type Element interface {
	// TagName returns the lower-cased tag name.
	TagName() string

	// Attr returns the value of the named attribute.
	// The bool result is false if the attribute is absent.
	Attr(name string) (string, bool)

	// AttrNames returns the element's attribute names in markup order.
	AttrNames() []string

	// Subtree returns the tree of the element's descendants.
	Subtree() Tree
}
