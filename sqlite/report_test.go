package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/surflink"
	"github.com/fwojciec/surflink/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newReport(source string) *surflink.Report {
	return &surflink.Report{
		Source:   source,
		BaseLink: "https://example.com/",
		Config:   surflink.Config{Attrs: []string{"src", "href"}, Unique: true},
		Links: []surflink.LinkRecord{
			{
				Position:    0,
				Raw:         "/css/site.css",
				URL:         "/css/site.css",
				Absolute:    "https://example.com/css/site.css",
				Tag:         "link",
				Attr:        "href",
				Rel:         strPtr("stylesheet"),
				ContentType: "text/css",
				Kinds:       []surflink.Kind{surflink.KindResource, surflink.KindLinked, surflink.KindStylesheet, surflink.KindWeblink},
			},
			{
				Position:    1,
				Raw:         "/about",
				URL:         "/about",
				Absolute:    "https://example.com/about",
				Tag:         "a",
				Attr:        "href",
				Type:        strPtr(""),
				ContentType: "text/html",
				Kinds:       []surflink.Kind{surflink.KindHyperlink, surflink.KindWeblink, surflink.KindHTML, surflink.KindWebpage},
			},
		},
	}
}

func TestReportService_CreateReport(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)

		report := newReport("index.html")
		err := svc.CreateReport(context.Background(), report)
		require.NoError(t, err)

		assert.NotEmpty(t, report.ID, "ID should be generated")
		assert.Len(t, report.ContentHash, 16, "ContentHash should be a hex xxhash")
		assert.False(t, report.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns error for invalid report", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)

		err := svc.CreateReport(context.Background(), &surflink.Report{})
		require.Error(t, err)
		assert.Equal(t, surflink.EINVALID, surflink.ErrorCode(err))
	})

	t.Run("hashes equal links equally", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		a, b := newReport("a.html"), newReport("b.html")
		require.NoError(t, svc.CreateReport(ctx, a))
		require.NoError(t, svc.CreateReport(ctx, b))
		assert.Equal(t, a.ContentHash, b.ContentHash)

		c := newReport("c.html")
		c.Links = c.Links[:1]
		require.NoError(t, svc.CreateReport(ctx, c))
		assert.NotEqual(t, a.ContentHash, c.ContentHash)
	})
}

func TestReportService_FindReportByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips report and links", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		report := newReport("site/index.html")
		require.NoError(t, svc.CreateReport(ctx, report))

		found, err := svc.FindReportByID(ctx, report.ID)
		require.NoError(t, err)

		assert.Equal(t, report.ID, found.ID)
		assert.Equal(t, "site/index.html", found.Source)
		assert.Equal(t, "https://example.com/", found.BaseLink)
		assert.Equal(t, report.ContentHash, found.ContentHash)
		assert.Equal(t, report.Config, found.Config)
		assert.True(t, report.CreatedAt.Equal(found.CreatedAt))
		assert.Equal(t, report.Links, found.Links)
	})

	t.Run("returns ENOTFOUND for missing report", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)

		_, err := svc.FindReportByID(context.Background(), "nonexistent")
		assert.Equal(t, surflink.ENOTFOUND, surflink.ErrorCode(err))
	})

	t.Run("returns empty links for report without links", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		report := &surflink.Report{Source: "empty.html"}
		require.NoError(t, svc.CreateReport(ctx, report))

		found, err := svc.FindReportByID(ctx, report.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Links)
	})
}

func TestReportService_FindReports(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*sqlite.ReportService, []*surflink.Report) {
		t.Helper()
		svc := sqlite.NewReportService(setupTestDB(t))
		var reports []*surflink.Report
		for i := range 4 {
			r := newReport(fmt.Sprintf("page%d.html", i))
			require.NoError(t, svc.CreateReport(context.Background(), r))
			reports = append(reports, r)
		}
		return svc, reports
	}

	t.Run("returns newest first without links", func(t *testing.T) {
		t.Parallel()

		svc, reports := setup(t)

		found, err := svc.FindReports(context.Background(), surflink.ReportFilter{})
		require.NoError(t, err)
		require.Len(t, found, 4)
		assert.Equal(t, reports[3].ID, found[0].ID)
		assert.Equal(t, reports[0].ID, found[3].ID)
		for _, r := range found {
			assert.Nil(t, r.Links)
		}
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		svc, reports := setup(t)

		found, err := svc.FindReports(context.Background(), surflink.ReportFilter{Source: strPtr("page2.html")})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, reports[2].ID, found[0].ID)
	})

	t.Run("filters by ID and content hash", func(t *testing.T) {
		t.Parallel()

		svc, reports := setup(t)

		byID, err := svc.FindReports(context.Background(), surflink.ReportFilter{ID: &reports[1].ID})
		require.NoError(t, err)
		require.Len(t, byID, 1)

		byHash, err := svc.FindReports(context.Background(), surflink.ReportFilter{ContentHash: &reports[1].ContentHash})
		require.NoError(t, err)
		assert.Len(t, byHash, 4)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc, reports := setup(t)

		page, err := svc.FindReports(context.Background(), surflink.ReportFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, reports[2].ID, page[0].ID)
		assert.Equal(t, reports[1].ID, page[1].ID)

		rest, err := svc.FindReports(context.Background(), surflink.ReportFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, reports[0].ID, rest[0].ID)
	})
}

func TestReportService_DeleteReport(t *testing.T) {
	t.Parallel()

	t.Run("deletes report and its links", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		report := newReport("index.html")
		require.NoError(t, svc.CreateReport(ctx, report))

		require.NoError(t, svc.DeleteReport(ctx, report.ID))

		_, err := svc.FindReportByID(ctx, report.ID)
		assert.Equal(t, surflink.ENOTFOUND, surflink.ErrorCode(err))

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM links WHERE report_id = ?", report.ID).Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("returns ENOTFOUND for missing report", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)

		err := svc.DeleteReport(context.Background(), "nonexistent")
		assert.Equal(t, surflink.ENOTFOUND, surflink.ErrorCode(err))
	})
}
