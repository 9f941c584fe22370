package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"daxlearn/internal/domain/entity"
	"daxlearn/internal/domain/repository"
	apperrors "daxlearn/pkg/errors"
)

// memoryMutateRetries bounds the compare-and-swap loop before the
// update is surfaced as a conflict.
const memoryMutateRetries = 5

type versionedProgress struct {
	progress *entity.Progress
	version  uint64
}

// memoryProgressRepository keeps aggregates in process and mimics the
// storage layer's optimistic concurrency: Mutate works on a snapshot
// and commits only if the version is unchanged. Used by unit tests and
// local development without a Firestore project.
type memoryProgressRepository struct {
	mu      sync.Mutex
	byUser  map[string]*versionedProgress
	userIDs []string
}

func NewMemoryProgressRepository() repository.ProgressRepository {
	return &memoryProgressRepository{
		byUser: make(map[string]*versionedProgress),
	}
}

func (r *memoryProgressRepository) snapshot(userID string, create bool) (*entity.Progress, uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vp, ok := r.byUser[userID]
	if !ok {
		if !create {
			return nil, 0, false
		}
		vp = &versionedProgress{progress: entity.NewProgress(userID, time.Now())}
		r.byUser[userID] = vp
		r.userIDs = append(r.userIDs, userID)
	}

	return vp.progress.Clone(), vp.version, true
}

func (r *memoryProgressRepository) Get(ctx context.Context, userID string) (*entity.Progress, error) {
	progress, _, ok := r.snapshot(userID, false)
	if !ok {
		return nil, apperrors.NotFound("Progress", nil)
	}
	return progress, nil
}

func (r *memoryProgressRepository) GetOrCreate(ctx context.Context, userID string) (*entity.Progress, error) {
	progress, _, _ := r.snapshot(userID, true)
	return progress, nil
}

func (r *memoryProgressRepository) Mutate(ctx context.Context, userID string, mutate func(*entity.Progress) error) (*entity.Progress, error) {
	for attempt := 0; attempt < memoryMutateRetries; attempt++ {
		snapshot, version, _ := r.snapshot(userID, true)

		if err := mutate(snapshot); err != nil {
			return nil, err
		}

		r.mu.Lock()
		vp := r.byUser[userID]
		if vp.version == version {
			vp.progress = snapshot
			vp.version++
			r.mu.Unlock()
			return snapshot.Clone(), nil
		}
		r.mu.Unlock()
	}

	return nil, apperrors.Conflict("progress update contention, retry the operation", nil)
}

func (r *memoryProgressRepository) ListTop(ctx context.Context, limit int) ([]entity.Progress, error) {
	r.mu.Lock()
	results := make([]entity.Progress, 0, len(r.byUser))
	for _, userID := range r.userIDs {
		vp := r.byUser[userID]
		if vp.progress.Points > 0 {
			results = append(results, *vp.progress.Clone())
		}
	}
	r.mu.Unlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Points > results[j].Points
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}
