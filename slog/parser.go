// Package slog provides log/slog decorators for surflink services.
package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/surflink"
)

// Ensure LoggingParser implements surflink.Parser.
var _ surflink.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   surflink.Parser
	format surflink.Format
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser. format labels the log lines.
func NewLoggingParser(next surflink.Parser, format surflink.Format, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, format: format, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(r io.Reader) (tree surflink.Tree, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse markup",
			"format", p.format,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(r)
}
