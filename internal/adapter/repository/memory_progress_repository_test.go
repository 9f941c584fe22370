package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daxlearn/internal/domain/entity"
	apperrors "daxlearn/pkg/errors"
)

func TestMemoryProgressGetBeforeCreate(t *testing.T) {
	repo := NewMemoryProgressRepository()

	_, err := repo.Get(context.Background(), "user-1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))
}

func TestMemoryProgressGetOrCreate(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()

	created, err := repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, 1, created.Level)

	again, err := repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, again.CreatedAt)
}

func TestMemoryProgressMutatePersists(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()

	updated, err := repo.Mutate(ctx, "user-1", func(p *entity.Progress) error {
		p.Points = 40
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Points)

	stored, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 40, stored.Points)
}

func TestMemoryProgressMutateErrorDiscardsChanges(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()

	_, err := repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	wantErr := fmt.Errorf("boom")
	_, err = repo.Mutate(ctx, "user-1", func(p *entity.Progress) error {
		p.Points = 9999
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	stored, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Points)
}

func TestMemoryProgressMutateSnapshotIsolation(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	// Mutating a returned snapshot must not leak into the store.
	first.Points = 500

	stored, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Points)
}

func TestMemoryProgressConcurrentMutate(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()

	const writers = 4
	const perWriter = 25

	var wg sync.WaitGroup
	conflicts := 0
	var mu sync.Mutex
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_, err := repo.Mutate(ctx, "user-1", func(p *entity.Progress) error {
					p.Points++
					return nil
				})
				if err != nil {
					mu.Lock()
					conflicts++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	stored, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)

	// Every successful mutate lands exactly once.
	assert.Equal(t, writers*perWriter-conflicts, stored.Points)
}

func TestMemoryProgressListTop(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()

	points := map[string]int{"user-a": 30, "user-b": 90, "user-c": 0, "user-d": 60}
	for userID, p := range points {
		amount := p
		_, err := repo.Mutate(ctx, userID, func(pr *entity.Progress) error {
			pr.Points = amount
			return nil
		})
		require.NoError(t, err)
	}

	top, err := repo.ListTop(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "user-b", top[0].UserID)
	assert.Equal(t, "user-d", top[1].UserID)

	// Zero-point learners never rank.
	all, err := repo.ListTop(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
