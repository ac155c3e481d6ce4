package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/surflink"
)

// Ensure LoggingBuilder implements surflink.DocumentBuilder.
var _ surflink.DocumentBuilder = (*LoggingBuilder)(nil)

// LoggingBuilder wraps a DocumentBuilder with logging.
type LoggingBuilder struct {
	next   surflink.DocumentBuilder
	logger *slog.Logger
}

// NewLoggingBuilder creates a new LoggingBuilder.
func NewLoggingBuilder(next surflink.DocumentBuilder, logger *slog.Logger) *LoggingBuilder {
	return &LoggingBuilder{next: next, logger: logger}
}

// Build delegates to the wrapped builder and logs the link count and base.
func (b *LoggingBuilder) Build(markup any, cfg surflink.Config) (doc *surflink.Document, err error) {
	defer func(begin time.Time) {
		var count int
		var base string
		if doc != nil {
			count = doc.Links().Len()
			base, _ = doc.BaseLink()
		}
		b.logger.Info("build document",
			"links", count,
			"base", base,
			"strict", cfg.Strict,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Build(markup, cfg)
}
