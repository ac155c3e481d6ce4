package surflink

import (
	"context"
	"time"
)

// Report is a stored snapshot of the links extracted from one markup source.
type Report struct {
	ID          string       `json:"id"`
	Source      string       `json:"source"`
	BaseLink    string       `json:"baseLink,omitempty"`
	ContentHash string       `json:"contentHash"`
	Config      Config       `json:"config"`
	Links       []LinkRecord `json:"links"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// LinkRecord is the serializable form of a Link.
type LinkRecord struct {
	Position    int     `json:"position"`
	Raw         string  `json:"raw"`
	URL         string  `json:"url"`
	Absolute    string  `json:"absolute"`
	Tag         string  `json:"tag"`
	Attr        string  `json:"attr"`
	Type        *string `json:"type,omitempty"`
	Rel         *string `json:"rel,omitempty"`
	ContentType string  `json:"contentType"`
	Kinds       []Kind  `json:"kinds"`
}

// NewLinkRecord returns the serializable form of l at the given position.
func NewLinkRecord(l *Link, position int) LinkRecord {
	rec := LinkRecord{
		Position:    position,
		Raw:         l.Raw(),
		URL:         l.URL(),
		Absolute:    l.AbsoluteLink(),
		Tag:         l.TagName(),
		Attr:        l.Attr(),
		ContentType: l.ContentType(),
		Kinds:       l.Kinds(),
	}
	if t, ok := l.Type(); ok {
		rec.Type = &t
	}
	if r, ok := l.Rel(); ok {
		rec.Rel = &r
	}
	return rec
}

// NewReport returns a report of the links of doc read from source that
// satisfy kind. Records keep their position in the document.
// Returns EINVALID if kind is not supported.
func NewReport(source string, doc *Document, kind Kind) (*Report, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	base, _ := doc.BaseLink()
	records := []LinkRecord{}
	for i, l := range doc.Links().All() {
		if l.Is(kind) {
			records = append(records, NewLinkRecord(l, i))
		}
	}
	return &Report{
		Source:   source,
		BaseLink: base,
		Config:   doc.Config(),
		Links:    records,
	}, nil
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "report source required")
	}
	return nil
}

// ReportService represents a service for managing reports.
type ReportService interface {
	// CreateReport stores a new report, assigning its ID, content hash and
	// creation time.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report and its links by ID.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	// Links are not loaded.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)

	// DeleteReport permanently removes a report and its links.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ID          *string `json:"id"`
	Source      *string `json:"source"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
