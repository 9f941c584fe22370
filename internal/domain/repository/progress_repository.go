package repository

import (
	"context"

	"daxlearn/internal/domain/entity"
)

// ProgressRepository is the atomic storage boundary for the per-learner
// Progress aggregate. Mutations never use unguarded read-modify-write:
// Mutate runs the supplied function against a consistent snapshot and
// commits it conditionally, retrying on write contention before
// surfacing a conflict.
type ProgressRepository interface {
	// GetOrCreate returns the learner's aggregate, lazily initializing
	// it with defaults on first access.
	GetOrCreate(ctx context.Context, userID string) (*entity.Progress, error)

	// Get returns the aggregate or a not-found error, without creating.
	Get(ctx context.Context, userID string) (*entity.Progress, error)

	// Mutate atomically applies mutate to the learner's aggregate
	// (creating it first if absent) and returns the committed state.
	// An error returned by mutate aborts the update unchanged.
	Mutate(ctx context.Context, userID string, mutate func(*entity.Progress) error) (*entity.Progress, error)

	// ListTop returns up to limit aggregates ordered by points descending.
	ListTop(ctx context.Context, limit int) ([]entity.Progress, error)
}
