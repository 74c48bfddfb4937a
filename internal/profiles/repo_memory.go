package profiles

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is the in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Profile)}
}

func (r *MemoryRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	profile.UpdatedAt = time.Now().UTC()
	r.data[profile.UserID] = profile
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
