package surflink

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// Format names a markup language.
type Format string

// Supported formats.
const (
	FormatHTML     Format = "html"
	FormatXML      Format = "xml"
	FormatMarkdown Format = "markdown"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatHTML, FormatXML, FormatMarkdown}
}

// ParseFormat returns the format with the given name.
// Returns EINVALID if the name is not a supported format.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}
	return "", Errorf(EINVALID, "unknown markup format %q", name)
}

// formatExtensions maps file extensions to the format of their content.
var formatExtensions = map[string]Format{
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".xhtml":    FormatHTML,
	".xml":      FormatXML,
	".rss":      FormatXML,
	".atom":     FormatXML,
	".svg":      FormatXML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
}

// FormatFromPath returns the format implied by the extension of path and
// whether the extension is known.
func FormatFromPath(path string) (Format, bool) {
	f, ok := formatExtensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// StdinName is the source name that denotes standard input.
const StdinName = "-"

// Source is a named markup input.
type Source struct {
	// Name identifies the source, typically a file path.
	Name string

	// Format is the markup language of the source.
	Format Format

	// Open returns a reader over the markup. The caller closes it.
	Open func() (io.ReadCloser, error)
}

// SourceService finds markup sources.
type SourceService interface {
	// FindSources returns a source for each path. Directories are walked for
	// files with a known markup extension. StdinName denotes standard input.
	// Returns ENOTFOUND if a path does not exist.
	FindSources(ctx context.Context, paths []string) ([]*Source, error)
}
