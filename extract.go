package surflink

// DefaultAttrs are the attributes searched for links when none are configured.
// Earlier attributes take priority.
var DefaultAttrs = []string{"src", "href"}

// Extraction is an element carrying a link, along with the attribute that
// supplied it.
type Extraction struct {
	Element Element
	Attr    string
	Value   string
}

// Extract returns, in document order, every element in tree that carries one
// of attrs. When an element has several, the first attribute in attrs order
// wins. If startTag is set, only the descendants of the first element with
// that tag are searched; ENOTFOUND is returned if there is no such element.
func Extract(tree Tree, attrs []string, startTag string) ([]Extraction, error) {
	if len(attrs) == 0 {
		attrs = DefaultAttrs
	}

	if startTag != "" {
		start, ok := tree.FindFirst(startTag)
		if !ok {
			return nil, Errorf(ENOTFOUND, "tag %q not found in markup", startTag)
		}
		tree = start.Subtree()
	}

	elements := tree.Select(attrs)
	extractions := make([]Extraction, 0, len(elements))
	for _, el := range elements {
		for _, attr := range attrs {
			if value, ok := el.Attr(attr); ok {
				extractions = append(extractions, Extraction{Element: el, Attr: attr, Value: value})
				break
			}
		}
	}
	return extractions, nil
}
