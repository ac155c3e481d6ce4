package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/surflink"
	"github.com/fwojciec/surflink/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Report Output
// Reports are written to a temp directory and moved into place on commit.

func testReport(source string) *surflink.Report {
	return &surflink.Report{
		Source: source,
		Links: []surflink.LinkRecord{
			{Position: 0, Raw: "/about", URL: "/about", Absolute: "/about", Tag: "a", Attr: "href", ContentType: "text/html"},
		},
	}
}

func TestReportStore_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	base := t.TempDir()
	store := fs.NewReportStore(base, "out")

	// When I save a report
	err := store.Save(context.Background(), testReport("site/index.html"))

	// Then the file exists in the temp directory only
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "out.tmp", "site", "index.html.links.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "out"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestReportStore_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	// Given a store with a stale output directory and a saved report
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "out", "stale.links.json"), "{}")
	store := fs.NewReportStore(base, "out")
	require.NoError(t, store.Save(context.Background(), testReport("index.html")))

	// When I commit
	require.NoError(t, store.Commit())

	// Then the report replaces the old output
	data, err := os.ReadFile(filepath.Join(base, "out", "index.html.links.json"))
	require.NoError(t, err)
	var got surflink.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "index.html", got.Source)
	require.Len(t, got.Links, 1)
	assert.Equal(t, "/about", got.Links[0].Raw)

	_, err = os.Stat(filepath.Join(base, "out", "stale.links.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(base, "out.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestReportStore_AbortRemovesTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewReportStore(base, "out")
	require.NoError(t, store.Save(context.Background(), testReport("index.html")))

	require.NoError(t, store.Abort())

	_, err := os.Stat(filepath.Join(base, "out.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestReportStore_SaveRejectsInvalidReport(t *testing.T) {
	t.Parallel()

	err := fs.NewReportStore(t.TempDir(), "out").Save(context.Background(), &surflink.Report{})

	assert.Equal(t, surflink.EINVALID, surflink.ErrorCode(err))
}

func TestSourceToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   string
	}{
		{source: "index.html", want: "index.html.links.json"},
		{source: "site/docs/guide.md", want: filepath.Join("site", "docs", "guide.md.links.json")},
		{source: "/abs/path/page.html", want: filepath.Join("abs", "path", "page.html.links.json")},
		{source: "../../escape.html", want: "escape.html.links.json"},
		{source: "-", want: "stdin.links.json"},
		{source: "/", want: "index.links.json"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fs.SourceToPath(tt.source), tt.source)
	}
}
