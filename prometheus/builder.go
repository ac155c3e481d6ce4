// Package prometheus records document build metrics with the Prometheus
// client library.
package prometheus

import (
	"time"

	"github.com/fwojciec/surflink"
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "surflink"

// Metrics holds the document build metrics. One Metrics may be shared by
// the builders of several markup formats.
type Metrics struct {
	buildDuration *prom.HistogramVec
	buildOutcome  *prom.CounterVec
	links         *prom.CounterVec
}

// NewMetrics constructs the build metrics and registers them with reg.
// A nil reg uses a private registry.
func NewMetrics(reg prom.Registerer) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of document builds",
			Buckets:   prom.DefBuckets,
		}, []string{"format"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Document builds by format and outcome",
		}, []string{"format", "outcome"}),
		links: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_total",
			Help:      "Links found by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.buildDuration, m.buildOutcome, m.links)
	return m
}

// Wrap returns a Builder recording metrics for builds of format by next.
func (m *Metrics) Wrap(next surflink.DocumentBuilder, format surflink.Format) *Builder {
	return &Builder{next: next, format: string(format), metrics: m}
}

// Ensure Builder implements surflink.DocumentBuilder at compile time.
var _ surflink.DocumentBuilder = (*Builder)(nil)

// Builder wraps a DocumentBuilder and records build outcomes, durations and
// the number of links found per kind.
type Builder struct {
	next    surflink.DocumentBuilder
	format  string
	metrics *Metrics
}

// Build delegates to the wrapped builder. The outcome label is "success" or
// the error code of the failure.
func (b *Builder) Build(markup any, cfg surflink.Config) (*surflink.Document, error) {
	m := b.metrics
	begin := time.Now()
	doc, err := b.next.Build(markup, cfg)
	m.buildDuration.WithLabelValues(b.format).Observe(time.Since(begin).Seconds())

	if err != nil {
		m.buildOutcome.WithLabelValues(b.format, surflink.ErrorCode(err)).Inc()
		return nil, err
	}
	m.buildOutcome.WithLabelValues(b.format, "success").Inc()

	links := doc.Links()
	m.links.WithLabelValues(string(surflink.KindAll)).Add(float64(links.Len()))
	for _, l := range links.All() {
		for _, k := range l.Kinds() {
			m.links.WithLabelValues(string(k)).Inc()
		}
	}
	return doc, nil
}

// WriteTextfile writes the metrics gathered by g to path in the text
// exposition format, for the node exporter textfile collector.
func WriteTextfile(path string, g prom.Gatherer) error {
	return prom.WriteToTextfile(path, g)
}
