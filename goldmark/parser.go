// Package goldmark provides a Markdown implementation of surflink.Parser.
// Markdown is rendered to HTML with github.com/yuin/goldmark and the result
// is parsed as HTML.
package goldmark

import (
	"bytes"
	"io"

	"github.com/fwojciec/surflink"
	"github.com/fwojciec/surflink/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Ensure Parser implements surflink.Parser at compile time.
var _ surflink.Parser = (*Parser)(nil)

// Parser renders Markdown to HTML and parses the HTML.
type Parser struct {
	md   goldmark.Markdown
	html surflink.Parser
}

// NewParser creates a new Parser. GitHub Flavored Markdown is enabled, so
// bare URLs become links, and raw HTML in the Markdown is kept.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		html: goquery.NewParser(),
	}
}

// Parse reads Markdown from r.
func (p *Parser) Parse(r io.Reader) (surflink.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, surflink.Errorf(surflink.EINVALID, "failed to read Markdown: %v", err)
	}

	var buf bytes.Buffer
	if err := p.md.Convert(src, &buf); err != nil {
		return nil, surflink.Errorf(surflink.EINVALID, "failed to render Markdown: %v", err)
	}
	return p.html.Parse(&buf)
}
