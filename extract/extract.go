// Package extract provides single-call helpers for pulling URL strings out of
// HTML. Each helper builds a surflink.Document with the default configuration
// and returns the raw values of the links it asks for.
package extract

import (
	"strings"

	"github.com/fwojciec/surflink"
	"github.com/fwojciec/surflink/goquery"
	"github.com/fwojciec/surflink/url"
)

var (
	resolver = url.NewResolver()
	builder  = surflink.NewBuilder(goquery.NewParser(), resolver)
)

// URLs returns the raw values of the links in markup that satisfy kind.
func URLs(markup any, kind surflink.Kind, cfg surflink.Config) ([]string, error) {
	doc, err := builder.Build(markup, cfg)
	if err != nil {
		return nil, err
	}
	links, err := doc.FilterBy(kind)
	if err != nil {
		return nil, err
	}
	return links.RawURLs(), nil
}

func rawURLs(markup any, kind surflink.Kind) ([]string, error) {
	return URLs(markup, kind, surflink.Config{})
}

// AllURLs returns every link in markup.
func AllURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindAll) }

// ScriptURLs returns links to scripts.
func ScriptURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindScript) }

// ResourceURLs returns links loaded as part of the page.
func ResourceURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindResource) }

// HyperlinkURLs returns anchor links.
func HyperlinkURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindHyperlink) }

// WeblinkURLs returns http, https and ftp links. Relative links count only
// when the markup declares a base URL.
func WeblinkURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindWeblink) }

// WebpageURLs returns links to webpages.
func WebpageURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindWebpage) }

// StylesheetURLs returns links to stylesheets.
func StylesheetURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindStylesheet) }

// VideoURLs returns links to videos.
func VideoURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindVideo) }

// ImageURLs returns links to images.
func ImageURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindImage) }

// AudioURLs returns links to audio.
func AudioURLs(markup any) ([]string, error) { return rawURLs(markup, surflink.KindAudio) }

// BaseURL returns the href of the first <base> element in markup, or "".
func BaseURL(markup any) (string, error) {
	doc, err := builder.Build(markup, surflink.Config{})
	if err != nil {
		return "", err
	}
	base, _ := doc.BaseLink()
	return base, nil
}

// FilterRawValidURLs returns the URLs that are loosely valid, as links taken
// straight from markup are. Relative references are kept.
func FilterRawValidURLs(urls []string) []string {
	return surflink.LinksFromURLs(urls, resolver, false).Valid(false).RawURLs()
}

// FilterValidURLs returns the URLs that are valid scheme-qualified URLs.
func FilterValidURLs(urls []string) []string {
	return surflink.LinksFromURLs(urls, resolver, true).Valid(true).RawURLs()
}

// FilterURLsByScheme returns the URLs whose scheme matches scheme, ignoring case.
func FilterURLsByScheme(urls []string, scheme string) []string {
	scheme = strings.ToLower(scheme)
	var out []string
	for _, u := range urls {
		if resolver.Scheme(u) == scheme {
			out = append(out, u)
		}
	}
	return out
}

// MakeURLAbsolute resolves u against base. Absolute URLs are returned unchanged.
func MakeURLAbsolute(base, u string) string {
	return resolver.Join(base, u)
}

// MakeURLsAbsolute resolves each URL against base.
func MakeURLsAbsolute(base string, urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, MakeURLAbsolute(base, u))
	}
	return out
}
