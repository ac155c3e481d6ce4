package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/surflink"
)

// Ensure LoggingReportService implements surflink.ReportService.
var _ surflink.ReportService = (*LoggingReportService)(nil)

// LoggingReportService wraps a ReportService with logging.
type LoggingReportService struct {
	next   surflink.ReportService
	logger *slog.Logger
}

// NewLoggingReportService creates a new LoggingReportService.
func NewLoggingReportService(next surflink.ReportService, logger *slog.Logger) *LoggingReportService {
	return &LoggingReportService{next: next, logger: logger}
}

func (s *LoggingReportService) CreateReport(ctx context.Context, report *surflink.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create report",
			"id", report.ID,
			"source", report.Source,
			"links", len(report.Links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateReport(ctx, report)
}

func (s *LoggingReportService) FindReportByID(ctx context.Context, id string) (report *surflink.Report, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReportByID(ctx, id)
}

func (s *LoggingReportService) FindReports(ctx context.Context, filter surflink.ReportFilter) (reports []*surflink.Report, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find reports",
			"count", len(reports),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReports(ctx, filter)
}

func (s *LoggingReportService) DeleteReport(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteReport(ctx, id)
}
