package mock

import (
	"context"

	"github.com/fwojciec/surflink"
)

var _ surflink.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of surflink.SourceService.
type SourceService struct {
	FindSourcesFn func(ctx context.Context, paths []string) ([]*surflink.Source, error)
}

func (s *SourceService) FindSources(ctx context.Context, paths []string) ([]*surflink.Source, error) {
	return s.FindSourcesFn(ctx, paths)
}
