package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is the in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]User)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[user.ID]
	if ok {
		user.CreatedAt = existing.CreatedAt
		if user.PlanTier == "" {
			user.PlanTier = existing.PlanTier
		}
	} else {
		user.CreatedAt = now
		if user.PlanTier == "" {
			user.PlanTier = "free"
		}
	}
	user.UpdatedAt = now
	r.data[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.data[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

var _ Repo = (*MemoryRepo)(nil)
