package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/surflink"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ surflink.ReportService = (*ReportService)(nil)

// ReportService implements surflink.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// hashLinks computes the xxHash of the report's links and returns a hex
// string. Reports with the same links in the same order hash equally.
func hashLinks(links []surflink.LinkRecord) string {
	d := xxhash.New()
	for _, l := range links {
		d.WriteString(l.Tag)
		d.WriteString("\x00")
		d.WriteString(l.Attr)
		d.WriteString("\x00")
		d.WriteString(l.Raw)
		d.WriteString("\x00")
		d.WriteString(l.ContentType)
		d.WriteString("\n")
	}
	return hex.EncodeToString(d.Sum(nil))
}

// CreateReport stores a new report and its links in a single transaction.
func (s *ReportService) CreateReport(ctx context.Context, report *surflink.Report) (err error) {
	if err := report.Validate(); err != nil {
		return err
	}

	config, err := json.Marshal(report.Config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id := uuid.New().String()
	createdAt := time.Now().UTC().Truncate(time.Second)
	hash := hashLinks(report.Links)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports (id, source, base_link, content_hash, config, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, report.Source, report.BaseLink, hash, string(config), createdAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for _, l := range report.Links {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO links (report_id, position, raw, url, absolute, tag, attr, type, rel, content_type, kinds)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, l.Position, l.Raw, l.URL, l.Absolute, l.Tag, l.Attr,
			nullString(l.Type), nullString(l.Rel), l.ContentType, joinKinds(l.Kinds)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	report.ID = id
	report.ContentHash = hash
	report.CreatedAt = createdAt
	return nil
}

// FindReportByID retrieves a report and its links by ID.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*surflink.Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, base_link, content_hash, config, created_at
		FROM reports
		WHERE id = ?
	`, id)

	report, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, surflink.Errorf(surflink.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}

	report.Links, err = s.findLinks(ctx, id)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) findLinks(ctx context.Context, reportID string) ([]surflink.LinkRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, raw, url, absolute, tag, attr, type, rel, content_type, kinds
		FROM links
		WHERE report_id = ?
		ORDER BY position ASC
	`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []surflink.LinkRecord{}
	for rows.Next() {
		var l surflink.LinkRecord
		var typ, rel sql.NullString
		var kinds string
		if err := rows.Scan(&l.Position, &l.Raw, &l.URL, &l.Absolute, &l.Tag, &l.Attr,
			&typ, &rel, &l.ContentType, &kinds); err != nil {
			return nil, err
		}
		l.Type = stringPtr(typ)
		l.Rel = stringPtr(rel)
		l.Kinds = splitKinds(kinds)
		links = append(links, l)
	}
	return links, rows.Err()
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter surflink.ReportFilter) ([]*surflink.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, base_link, content_hash, config, created_at FROM reports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*surflink.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// DeleteReport permanently removes a report and its links.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return surflink.Errorf(surflink.ENOTFOUND, "report not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*surflink.Report, error) {
	var report surflink.Report
	var config, createdAt string

	if err := row.Scan(&report.ID, &report.Source, &report.BaseLink, &report.ContentHash, &config, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(config), &report.Config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	var err error
	report.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &report, nil
}
