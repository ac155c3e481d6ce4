// Package url provides a surflink.URLResolver built on the WHATWG URL
// standard, so that references resolve the way browsers resolve them.
package url

import (
	"mime"
	"net/url"
	"path"
	"strings"
	"unicode"

	"github.com/fwojciec/surflink"
	whatwgurl "github.com/nlnwa/whatwg-url/url"
)

// Ensure Resolver implements surflink.URLResolver at compile time.
var _ surflink.URLResolver = (*Resolver)(nil)

var urlParser = whatwgurl.NewParser(whatwgurl.WithPercentEncodeSinglePercentSign())

// pageSchemes are schemes whose extensionless paths are assumed to be webpages.
// The empty scheme covers relative references.
var pageSchemes = map[string]bool{
	"":      true,
	"http":  true,
	"https": true,
	"ftp":   true,
	"file":  true,
}

// Resolver implements surflink.URLResolver. It is stateless and safe for
// concurrent use.
type Resolver struct {
	types map[string]string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithContentType maps a file extension (with leading dot) to a content type,
// overriding the built-in table.
func WithContentType(ext, contentType string) Option {
	return func(r *Resolver) {
		r.types[strings.ToLower(ext)] = contentType
	}
}

// NewResolver creates a new Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{types: make(map[string]string, len(ContentTypes))}
	for ext, t := range ContentTypes {
		r.types[ext] = t
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsValidURL reports whether s is a syntactically valid, scheme-qualified URL.
func (r *Resolver) IsValidURL(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	parsed, err := urlParser.Parse(s)
	if err != nil {
		return false
	}
	u, err := url.Parse(parsed.Href(false))
	if err != nil {
		return false
	}
	return u.Scheme != ""
}

// GuessContentType guesses a content type from the extension of the URL path.
// Extensions are looked up in the resolver's table first, then in the
// system MIME database.
func (r *Resolver) GuessContentType(rawURL string, strict bool) string {
	p, scheme, ok := splitPath(rawURL)
	if !ok {
		return ""
	}

	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		if !strict && pageSchemes[scheme] {
			return surflink.TypeHTML
		}
		return ""
	}

	if t, ok := r.types[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mediaType, _, err := mime.ParseMediaType(t); err == nil {
			return mediaType
		}
	}
	return ""
}

// splitPath returns the path and lower-cased scheme of rawURL. Opaque URLs
// such as mailto: and javascript: have no path and report false.
func splitPath(rawURL string) (string, string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		// Fall back to cutting the query and fragment by hand.
		p, _, _ := strings.Cut(rawURL, "#")
		p, _, _ = strings.Cut(p, "?")
		return p, "", true
	}
	if u.Opaque != "" {
		return "", u.Scheme, false
	}
	return u.Path, u.Scheme, true
}

// Join resolves ref against base. An already absolute ref is returned
// unchanged, as is any ref that cannot be resolved. A relative base yields
// a relative result, so "/static/" and "a.png" join to "/static/a.png".
func (r *Resolver) Join(base, ref string) string {
	refURL, err := url.Parse(ref)
	if err == nil && refURL.IsAbs() {
		return ref
	}
	base = strings.TrimSpace(base)
	if baseURL, perr := url.Parse(base); perr == nil && !baseURL.IsAbs() {
		if err != nil {
			return ref
		}
		return joinRelative(baseURL, refURL, base)
	}
	resolved, err := urlParser.ParseRef(base, ref)
	if err != nil {
		return ref
	}
	return resolved.Href(false)
}

// joinRelative resolves ref against a base that has no scheme.
func joinRelative(baseURL, refURL *url.URL, base string) string {
	if refURL.Host != "" {
		// Scheme-relative refs like //cdn.example.net/x carry their own host.
		return refURL.String()
	}
	joined := baseURL.ResolveReference(refURL).String()
	if baseURL.Host == "" && !strings.HasPrefix(base, "/") && base != "" {
		// ResolveReference roots the path; keep a path-relative base relative.
		joined = strings.TrimPrefix(joined, "/")
	}
	return joined
}

// Scheme returns the lower-cased scheme of the URL, or "".
func (r *Resolver) Scheme(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

// Hostname returns the host of the URL without port, or "".
func (r *Resolver) Hostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return u.Hostname()
}
