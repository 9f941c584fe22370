package repository

import (
	"context"
	"sync"
	"time"

	"daxlearn/internal/domain/entity"
	"daxlearn/internal/domain/repository"
	apperrors "daxlearn/pkg/errors"
)

type memoryUserRepository struct {
	mu   sync.RWMutex
	byID map[string]*entity.User
}

func NewMemoryUserRepository() repository.UserRepository {
	return &memoryUserRepository{
		byID: make(map[string]*entity.User),
	}
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("User", nil)
	}

	cp := *user
	return &cp, nil
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	cp := *user
	r.byID[user.ID] = &cp
	return nil
}
