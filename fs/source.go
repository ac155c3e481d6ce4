// Package fs provides file-based markup sources and report output.
package fs

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/surflink"
)

// Ensure SourceService implements surflink.SourceService at compile time.
var _ surflink.SourceService = (*SourceService)(nil)

// SourceService finds markup sources on the local filesystem.
type SourceService struct {
	// Stdin is read for the StdinName path. Defaults to os.Stdin.
	Stdin io.Reader

	// Format overrides the format derived from file extensions when set.
	Format surflink.Format
}

// NewSourceService creates a new SourceService reading standard input from stdin.
func NewSourceService(stdin io.Reader) *SourceService {
	return &SourceService{Stdin: stdin}
}

// FindSources returns a source for each path. Files are returned whatever
// their extension; directories contribute only files with a known markup
// extension, in lexical order. Hidden directories are skipped.
func (s *SourceService) FindSources(ctx context.Context, paths []string) ([]*surflink.Source, error) {
	var sources []*surflink.Source
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if path == surflink.StdinName {
			sources = append(sources, s.stdinSource())
			continue
		}

		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, surflink.Errorf(surflink.ENOTFOUND, "path %q does not exist", path)
		} else if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			sources = append(sources, s.fileSource(path))
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := surflink.FormatFromPath(p); ok {
				sources = append(sources, s.fileSource(p))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return sources, nil
}

func (s *SourceService) fileSource(path string) *surflink.Source {
	format := s.Format
	if format == "" {
		format, _ = surflink.FormatFromPath(path)
	}
	if format == "" {
		format = surflink.FormatHTML
	}
	return &surflink.Source{
		Name:   path,
		Format: format,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

func (s *SourceService) stdinSource() *surflink.Source {
	format := s.Format
	if format == "" {
		format = surflink.FormatHTML
	}
	stdin := s.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	return &surflink.Source{
		Name:   surflink.StdinName,
		Format: format,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(stdin), nil
		},
	}
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
