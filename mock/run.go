package mock

import (
	"context"

	"github.com/fwojciec/vanity"
)

var _ vanity.RunService = (*RunService)(nil)

// RunService is a mock implementation of vanity.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *vanity.Run) error
	FindRunsFn  func(ctx context.Context, filter vanity.RunFilter) ([]*vanity.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *vanity.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRuns(ctx context.Context, filter vanity.RunFilter) ([]*vanity.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
