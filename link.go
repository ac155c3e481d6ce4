package surflink

import (
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
)

// Content types the predicates compare against.
const (
	TypeHTML       = "text/html"
	TypeCSS        = "text/css"
	TypeJavaScript = "application/javascript"
)

// ImpliedTypes maps tag names to the content type their references imply.
// A type ending in "/*" names a family that a more specific extension guess
// may refine.
var ImpliedTypes = map[string]string{
	"img":    "image/*",
	"video":  "video/*",
	"audio":  "audio/*",
	"iframe": TypeHTML,
	"script": TypeJavaScript,
}

// HeadTags are tags whose references are conventionally loaded as document
// metadata rather than shown to the reader.
var HeadTags = mapset.NewThreadUnsafeSet("link", "script")

// WebSchemes are the schemes of World Wide Web links.
var WebSchemes = mapset.NewThreadUnsafeSet("http", "https", "ftp")

// rawInvalidChars may not appear in a loosely valid raw link.
const rawInvalidChars = "<>^`{|}"

// TypeOrigin records how a link's content type was determined.
type TypeOrigin int

// Content type origins, in inference priority order.
const (
	OriginUnknown   TypeOrigin = iota // no type could be determined
	OriginDeclared                    // taken from the element's type attribute
	OriginRel                         // implied by rel="stylesheet"
	OriginExtension                   // tag family confirmed by the URL extension
	OriginImplied                     // implied by the tag name
	OriginGuessed                     // guessed from the URL alone
)

// LinkParams holds the inputs of a Link. Type and Rel are nil when the
// element has no such attribute. An empty BaseLink means no base.
type LinkParams struct {
	Raw        string
	TagName    string
	Attr       string
	Type       *string
	Rel        *string
	BaseLink   string
	Strict     bool
	Absolutize bool
}

// Link is a reference discovered in markup together with its provenance and
// derived content type. All fields are set once by NewLink; a Link is safe
// for concurrent reads.
type Link struct {
	raw          string
	tag          string
	attr         string
	declaredType string
	hasType      bool
	rel          string
	hasRel       bool
	base         string
	strict       bool

	contentType string
	origin      TypeOrigin
	absolute    string
	absolutized bool

	urls URLResolver
}

// NewLink builds a Link and infers its content type. It never fails: missing
// information degrades the content type to "".
func NewLink(p LinkParams, urls URLResolver) *Link {
	l := &Link{
		raw:         p.Raw,
		tag:         strings.ToLower(p.TagName),
		attr:        strings.ToLower(p.Attr),
		base:        p.BaseLink,
		strict:      p.Strict,
		absolutized: p.Absolutize,
		urls:        urls,
	}
	if p.Type != nil {
		l.declaredType, l.hasType = *p.Type, true
	}
	if p.Rel != nil {
		l.rel, l.hasRel = *p.Rel, true
	}

	l.contentType, l.origin = l.inferContentType()

	l.absolute = l.raw
	if l.base != "" {
		l.absolute = urls.Join(l.base, l.raw)
	}
	return l
}

func (l *Link) inferContentType() (string, TypeOrigin) {
	if l.hasDeclaredType() {
		return l.declaredType, OriginDeclared
	}
	if l.isStylesheetRel() {
		return TypeCSS, OriginRel
	}
	if implied, ok := ImpliedTypes[l.tag]; ok {
		if family, ok := strings.CutSuffix(implied, "/*"); ok {
			guessed := l.urls.GuessContentType(l.raw, true)
			if guessed != "" && typeFamily(guessed) == family {
				return guessed, OriginExtension
			}
		}
		return implied, OriginImplied
	}
	if l.strict {
		return "", OriginUnknown
	}
	if guessed := l.urls.GuessContentType(l.raw, false); guessed != "" {
		return guessed, OriginGuessed
	}
	return "", OriginUnknown
}

// typeFamily returns the top-level type of a content type ("image" for "image/png").
func typeFamily(contentType string) string {
	family, _, _ := strings.Cut(contentType, "/")
	return strings.ToLower(family)
}

func (l *Link) hasDeclaredType() bool {
	return l.hasType && l.declaredType != ""
}

func (l *Link) isStylesheetRel() bool {
	return l.hasRel && strings.EqualFold(strings.TrimSpace(l.rel), "stylesheet")
}

func (l *Link) isHeadTag() bool {
	return HeadTags.Contains(l.tag)
}

// Raw returns the attribute value exactly as found in markup.
func (l *Link) Raw() string { return l.raw }

// TagName returns the lower-cased tag name of the element.
func (l *Link) TagName() string { return l.tag }

// Attr returns the name of the attribute that supplied the raw value.
func (l *Link) Attr() string { return l.attr }

// Type returns the element's type attribute.
func (l *Link) Type() (string, bool) { return l.declaredType, l.hasType }

// Rel returns the element's rel attribute.
func (l *Link) Rel() (string, bool) { return l.rel, l.hasRel }

// BaseLink returns the URL relative references are resolved against.
func (l *Link) BaseLink() (string, bool) { return l.base, l.base != "" }

// Strict reports whether the link was classified in strict mode.
func (l *Link) Strict() bool { return l.strict }

// ContentType returns the inferred content type, or "" if unknown.
func (l *Link) ContentType() string { return l.contentType }

// TypeOrigin returns how the content type was determined.
func (l *Link) TypeOrigin() TypeOrigin { return l.origin }

// AbsoluteLink returns the raw value resolved against the base link. Without
// a base link the raw value is returned unchanged.
func (l *Link) AbsoluteLink() string { return l.absolute }

// URL returns the absolute link if absolutization was requested when the
// link was built, and the raw value otherwise.
func (l *Link) URL() string {
	if l.absolutized {
		return l.absolute
	}
	return l.raw
}

// String returns the URL of the link.
func (l *Link) String() string { return l.URL() }

// IsResource reports whether the link is loaded as part of the document:
// it comes from a src attribute or a head tag.
func (l *Link) IsResource() bool {
	return l.attr == "src" || l.isHeadTag()
}

// IsHyperlink reports whether the link comes from an anchor.
func (l *Link) IsHyperlink() bool {
	return l.tag == "a"
}

// IsLinked reports whether the link comes from a link tag.
func (l *Link) IsLinked() bool {
	return l.tag == "link"
}

// IsScript reports whether the link comes from a script tag or, outside
// strict mode, has a JavaScript content type.
func (l *Link) IsScript() bool {
	if l.tag == "script" {
		return true
	}
	return !l.strict && strings.HasPrefix(l.contentType, TypeJavaScript)
}

// IsJavaScript reports whether the link serves JavaScript. An untyped script
// is assumed to be JavaScript. In strict mode the link must be a script.
func (l *Link) IsJavaScript() bool {
	js := (!l.hasDeclaredType() && l.IsScript()) || strings.HasPrefix(l.contentType, TypeJavaScript)
	if l.strict {
		return l.IsScript() && js
	}
	return js
}

// IsStylesheet reports whether the link serves CSS. In strict mode the link
// must come from a link tag.
func (l *Link) IsStylesheet() bool {
	if l.strict && !l.IsLinked() {
		return false
	}
	if l.isStylesheetRel() {
		return true
	}
	return strings.HasPrefix(l.contentType, TypeCSS)
}

// IsImage reports whether the content type is an image type.
func (l *Link) IsImage() bool {
	return strings.HasPrefix(l.contentType, "image/")
}

// IsAudio reports whether the content type is an audio type.
func (l *Link) IsAudio() bool {
	return strings.HasPrefix(l.contentType, "audio/")
}

// IsVideo reports whether the content type is a video type.
func (l *Link) IsVideo() bool {
	return strings.HasPrefix(l.contentType, "video/")
}

// IsWeblink reports whether the absolute link uses a web scheme.
func (l *Link) IsWeblink() bool {
	return WebSchemes.Contains(l.urls.Scheme(l.absolute))
}

// IsHTML reports whether the content type is HTML. A head tag whose type was
// not declared counts as HTML only if its extension says so, so extensionless
// script and link URLs are not mistaken for pages.
func (l *Link) IsHTML() bool {
	if !strings.HasPrefix(l.contentType, TypeHTML) {
		return false
	}
	if l.isHeadTag() && l.origin != OriginDeclared {
		return strings.HasPrefix(l.urls.GuessContentType(l.raw, true), TypeHTML)
	}
	return true
}

// IsWebpage reports whether the link points to an HTML page that is not
// loaded as document metadata.
func (l *Link) IsWebpage() bool {
	return l.IsHTML() && !l.isHeadTag()
}

// IsValid reports whether the raw value is a usable link. With strict set it
// must be a valid scheme-qualified URL. Otherwise it must be non-empty, free
// of whitespace and of the characters <>^`{|}, and must not be a fragment or
// a javascript: link; clean relative paths are valid.
func (l *Link) IsValid(strict bool) bool {
	if strict {
		return l.urls.IsValidURL(l.raw)
	}
	if l.raw == "" || strings.ContainsAny(l.raw, rawInvalidChars) {
		return false
	}
	if strings.IndexFunc(l.raw, unicode.IsSpace) >= 0 {
		return false
	}
	if strings.HasPrefix(l.raw, "#") {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(l.raw), "javascript:")
}

// Is reports whether the link satisfies the predicate named by kind.
// KindValid uses the link's own strict flag.
func (l *Link) Is(kind Kind) bool {
	switch kind {
	case KindAll:
		return true
	case KindResource:
		return l.IsResource()
	case KindHyperlink:
		return l.IsHyperlink()
	case KindLinked:
		return l.IsLinked()
	case KindScript:
		return l.IsScript()
	case KindJavaScript:
		return l.IsJavaScript()
	case KindStylesheet:
		return l.IsStylesheet()
	case KindImage:
		return l.IsImage()
	case KindAudio:
		return l.IsAudio()
	case KindVideo:
		return l.IsVideo()
	case KindWeblink:
		return l.IsWeblink()
	case KindHTML:
		return l.IsHTML()
	case KindWebpage:
		return l.IsWebpage()
	case KindValid:
		return l.IsValid(l.strict)
	}
	return false
}

// Kinds returns every role kind the link satisfies, in Kinds order.
// KindAll and KindValid are not included.
func (l *Link) Kinds() []Kind {
	var kinds []Kind
	for _, k := range roleKinds {
		if l.Is(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
