package surflink

// URLResolver provides the URL operations the classification engine relies on.
// Implementations must be pure: the same input always yields the same result.
type URLResolver interface {
	// IsValidURL reports whether s is a syntactically valid, scheme-qualified URL.
	IsValidURL(s string) bool

	// GuessContentType guesses a content type from the extension of the URL's
	// path. With strict set, only a recognized extension yields a type. Without
	// it, a path with no file extension is assumed to be a webpage and yields
	// "text/html". Unknown extensions yield "".
	GuessContentType(u string, strict bool) string

	// Join resolves ref against base. If ref cannot be resolved, it is
	// returned unchanged.
	Join(base, ref string) string

	// Scheme returns the lower-cased scheme of the URL, or "".
	Scheme(u string) string

	// Hostname returns the host of the URL without port, or "".
	Hostname(u string) string
}
