package mock

import "github.com/fwojciec/surflink"

var _ surflink.DocumentBuilder = (*DocumentBuilder)(nil)

// DocumentBuilder is a mock implementation of surflink.DocumentBuilder.
type DocumentBuilder struct {
	BuildFn func(markup any, cfg surflink.Config) (*surflink.Document, error)
}

func (b *DocumentBuilder) Build(markup any, cfg surflink.Config) (*surflink.Document, error) {
	return b.BuildFn(markup, cfg)
}
