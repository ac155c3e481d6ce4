package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/surflink"
)

// ReportStore writes reports as JSON files with atomic update semantics.
// Reports are saved to a temporary directory, then moved into place on Commit.
type ReportStore struct {
	baseDir string
	name    string
}

// NewReportStore creates a new ReportStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewReportStore(baseDir, name string) *ReportStore {
	return &ReportStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ReportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ReportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes report to the temporary directory.
func (s *ReportStore) Save(ctx context.Context, report *surflink.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), SourceToPath(report.Source))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, append(data, '\n'), 0644)
}

// Commit replaces the output directory with the saved reports.
func (s *ReportStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved reports.
func (s *ReportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// SourceToPath converts a source name to a relative report file path.
// Example: site/docs/index.html → site/docs/index.html.links.json
func SourceToPath(source string) string {
	if source == surflink.StdinName {
		return "stdin.links.json"
	}

	p := filepath.ToSlash(filepath.Clean(source))
	p = strings.TrimLeft(p, "/")

	// Keep reports inside the output directory.
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part == ".." || part == "." || part == "" {
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "index.links.json"
	}
	return filepath.Join(parts...) + ".links.json"
}
