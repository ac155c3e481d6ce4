package surflink

import mapset "github.com/deckarep/golang-set/v2"

// Kind names a link classification predicate.
type Kind string

// Supported kinds.
const (
	KindAll        Kind = "all"
	KindResource   Kind = "resource"
	KindHyperlink  Kind = "hyperlink"
	KindLinked     Kind = "linked"
	KindScript     Kind = "script"
	KindJavaScript Kind = "javascript"
	KindStylesheet Kind = "stylesheet"
	KindImage      Kind = "image"
	KindAudio      Kind = "audio"
	KindVideo      Kind = "video"
	KindWeblink    Kind = "weblink"
	KindHTML       Kind = "html"
	KindWebpage    Kind = "webpage"
	KindValid      Kind = "valid"
)

// roleKinds lists the role predicates reported by Link.Kinds.
var roleKinds = []Kind{
	KindResource,
	KindHyperlink,
	KindLinked,
	KindScript,
	KindJavaScript,
	KindStylesheet,
	KindImage,
	KindAudio,
	KindVideo,
	KindWeblink,
	KindHTML,
	KindWebpage,
}

// Kinds returns every supported kind.
func Kinds() []Kind {
	kinds := []Kind{KindAll}
	kinds = append(kinds, roleKinds...)
	return append(kinds, KindValid)
}

// ParseKind returns the kind with the given name.
// Returns EINVALID if the name is not a supported kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", Errorf(EINVALID, "unknown link kind %q", name)
}

// Links is an ordered collection of links. It is never modified after
// construction; filters return new collections.
type Links struct {
	links []*Link
}

// NewLinks returns a collection holding links in the given order.
func NewLinks(links ...*Link) *Links {
	l := make([]*Link, len(links))
	copy(l, links)
	return &Links{links: l}
}

// LinksFromURLs wraps bare URL strings as links with no provenance, so that
// the validity and type predicates can be applied to them.
func LinksFromURLs(urls []string, r URLResolver, strict bool) *Links {
	links := make([]*Link, 0, len(urls))
	for _, u := range urls {
		links = append(links, NewLink(LinkParams{Raw: u, Strict: strict}, r))
	}
	return &Links{links: links}
}

// Len returns the number of links.
func (ls *Links) Len() int { return len(ls.links) }

// At returns the link at index i.
func (ls *Links) At(i int) *Link { return ls.links[i] }

// All returns a copy of the links in order.
func (ls *Links) All() []*Link {
	out := make([]*Link, len(ls.links))
	copy(out, ls.links)
	return out
}

// Filter returns the links for which keep returns true, in order.
func (ls *Links) Filter(keep func(*Link) bool) *Links {
	var out []*Link
	for _, l := range ls.links {
		if keep(l) {
			out = append(out, l)
		}
	}
	return &Links{links: out}
}

// FilterBy returns the links satisfying the predicate named by kind.
// Returns EINVALID if kind is not supported.
func (ls *Links) FilterBy(kind Kind) (*Links, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	return ls.Filter(func(l *Link) bool { return l.Is(kind) }), nil
}

// Unique returns the links with duplicate raw values removed. The first
// occurrence of each raw value is kept.
func (ls *Links) Unique() *Links {
	seen := mapset.NewThreadUnsafeSet[string]()
	return ls.Filter(func(l *Link) bool { return seen.Add(l.raw) })
}

// RawURLs returns the raw value of every link.
func (ls *Links) RawURLs() []string {
	return ls.strings((*Link).Raw)
}

// URLs returns the URL of every link: absolute if absolutization was
// requested, raw otherwise.
func (ls *Links) URLs() []string {
	return ls.strings((*Link).URL)
}

// AbsoluteURLs returns the absolute link of every link.
func (ls *Links) AbsoluteURLs() []string {
	return ls.strings((*Link).AbsoluteLink)
}

func (ls *Links) strings(fn func(*Link) string) []string {
	out := make([]string, 0, len(ls.links))
	for _, l := range ls.links {
		out = append(out, fn(l))
	}
	return out
}

// Resources returns links loaded as part of the document.
func (ls *Links) Resources() *Links { return ls.Filter((*Link).IsResource) }

// Hyperlinks returns anchor links.
func (ls *Links) Hyperlinks() *Links { return ls.Filter((*Link).IsHyperlink) }

// Linked returns links from link tags.
func (ls *Links) Linked() *Links { return ls.Filter((*Link).IsLinked) }

// Scripts returns script links.
func (ls *Links) Scripts() *Links { return ls.Filter((*Link).IsScript) }

// JavaScripts returns links serving JavaScript.
func (ls *Links) JavaScripts() *Links { return ls.Filter((*Link).IsJavaScript) }

// Stylesheets returns links serving CSS.
func (ls *Links) Stylesheets() *Links { return ls.Filter((*Link).IsStylesheet) }

// Images returns image links.
func (ls *Links) Images() *Links { return ls.Filter((*Link).IsImage) }

// Audios returns audio links.
func (ls *Links) Audios() *Links { return ls.Filter((*Link).IsAudio) }

// Videos returns video links.
func (ls *Links) Videos() *Links { return ls.Filter((*Link).IsVideo) }

// Weblinks returns links using http, https or ftp.
func (ls *Links) Weblinks() *Links { return ls.Filter((*Link).IsWeblink) }

// HTMLs returns links with an HTML content type.
func (ls *Links) HTMLs() *Links { return ls.Filter((*Link).IsHTML) }

// Webpages returns links to webpages.
func (ls *Links) Webpages() *Links { return ls.Filter((*Link).IsWebpage) }

// Valid returns links whose raw value is valid under the given mode.
func (ls *Links) Valid(strict bool) *Links {
	return ls.Filter(func(l *Link) bool { return l.IsValid(strict) })
}
