package surflink

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Config configures how a Document is built from markup.
type Config struct {
	// Attrs lists the attributes searched for links, highest priority first.
	// Defaults to DefaultAttrs.
	Attrs []string `yaml:"attrs" json:"attrs,omitempty"`

	// StartTag limits extraction to the descendants of the first element with
	// this tag name.
	StartTag string `yaml:"start_tag" json:"startTag,omitempty"`

	// Unique drops links whose raw value was already seen.
	Unique bool `yaml:"unique" json:"unique,omitempty"`

	// Absolutize makes Link.URL return the link resolved against the base.
	Absolutize bool `yaml:"absolutize" json:"absolutize,omitempty"`

	// RequireBase makes Absolutize fail with ENOBASEURL when no base URL can
	// be resolved. Without it links keep their raw value.
	RequireBase bool `yaml:"require_base" json:"requireBase,omitempty"`

	// Strict disables extension-based content type guessing.
	Strict bool `yaml:"strict" json:"strict,omitempty"`

	// BaseURL overrides any <base href> found in the markup.
	BaseURL string `yaml:"base_url" json:"baseUrl,omitempty"`
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	for _, attr := range c.Attrs {
		if strings.TrimSpace(attr) == "" {
			return Errorf(EINVALID, "attribute names must not be empty")
		}
	}
	if c.StartTag != "" && strings.ContainsAny(c.StartTag, " \t\n<>") {
		return Errorf(EINVALID, "invalid start tag %q", c.StartTag)
	}
	return nil
}

// DocumentBuilder builds Documents from markup.
type DocumentBuilder interface {
	// Build parses markup, which must be a string, []byte or io.Reader, and
	// returns its classified links. Returns EMARKUP for other markup types,
	// EINVALID for an invalid configuration, ENOTFOUND if the start tag is
	// missing and ENOBASEURL if a required base URL is missing.
	Build(markup any, cfg Config) (*Document, error)
}

// Ensure Builder implements DocumentBuilder at compile time.
var _ DocumentBuilder = (*Builder)(nil)

// Builder builds Documents using a markup parser and a URL resolver.
// It holds no per-document state and is safe for concurrent use when its
// Parser and URLs are.
type Builder struct {
	Parser Parser
	URLs   URLResolver
}

// NewBuilder creates a new Builder.
func NewBuilder(parser Parser, urls URLResolver) *Builder {
	return &Builder{Parser: parser, URLs: urls}
}

// Build parses markup and returns its classified links. Construction is
// atomic: on error no Document is returned.
func (b *Builder) Build(markup any, cfg Config) (*Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.BaseURL != "" && !b.URLs.IsValidURL(cfg.BaseURL) {
		return nil, Errorf(EINVALID, "invalid base URL %q", cfg.BaseURL)
	}
	cfg.Attrs = append([]string(nil), cfg.Attrs...)
	if len(cfg.Attrs) == 0 {
		cfg.Attrs = append(cfg.Attrs, DefaultAttrs...)
	}

	r, err := markupReader(markup)
	if err != nil {
		return nil, err
	}
	tree, err := b.Parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	base := cfg.BaseURL
	if base == "" {
		base = findBaseLink(tree)
	}
	if cfg.Absolutize && cfg.RequireBase && base == "" {
		return nil, Errorf(ENOBASEURL, "absolutization requires a base URL but none was found")
	}

	extractions, err := Extract(tree, cfg.Attrs, cfg.StartTag)
	if err != nil {
		return nil, err
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	links := make([]*Link, 0, len(extractions))
	for _, ex := range extractions {
		if cfg.Unique && !seen.Add(ex.Value) {
			continue
		}
		links = append(links, NewLink(LinkParams{
			Raw:        ex.Value,
			TagName:    ex.Element.TagName(),
			Attr:       ex.Attr,
			Type:       optionalAttr(ex.Element, "type"),
			Rel:        optionalAttr(ex.Element, "rel"),
			BaseLink:   base,
			Strict:     cfg.Strict,
			Absolutize: cfg.Absolutize,
		}, b.URLs))
	}

	return &Document{
		links:  &Links{links: links},
		base:   base,
		config: cfg,
	}, nil
}

// markupReader returns a reader over textual or binary markup.
func markupReader(markup any) (io.Reader, error) {
	switch m := markup.(type) {
	case string:
		return strings.NewReader(m), nil
	case []byte:
		return bytes.NewReader(m), nil
	case io.Reader:
		if m != nil && !isNilReader(m) {
			return m, nil
		}
	}
	return nil, Errorf(EMARKUP, "markup must be a string, []byte or io.Reader, got %T", markup)
}

// isNilReader reports whether r is a typed nil, such as (*bytes.Buffer)(nil).
func isNilReader(r io.Reader) bool {
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// findBaseLink returns the href of the first <base> element carrying a
// non-empty href, or "".
func findBaseLink(tree Tree) string {
	for _, el := range tree.Select([]string{"href"}) {
		if !strings.EqualFold(el.TagName(), "base") {
			continue
		}
		if href, _ := el.Attr("href"); strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href)
		}
	}
	return ""
}

func optionalAttr(el Element, name string) *string {
	if v, ok := el.Attr(name); ok {
		return &v
	}
	return nil
}

// Document is the read-only result of extracting links from one markup
// input. It is safe for concurrent reads.
type Document struct {
	links  *Links
	base   string
	config Config
}

// Links returns the document's links in document order.
func (d *Document) Links() *Links { return d.links }

// BaseLink returns the URL the document's links are resolved against.
// The bool result is false if the document has no base.
func (d *Document) BaseLink() (string, bool) { return d.base, d.base != "" }

// Config returns the configuration the document was built with, with
// defaults applied.
func (d *Document) Config() Config {
	cfg := d.config
	cfg.Attrs = append([]string(nil), d.config.Attrs...)
	return cfg
}

// FilterBy returns the document's links satisfying the predicate named by kind.
func (d *Document) FilterBy(kind Kind) (*Links, error) {
	return d.links.FilterBy(kind)
}
