package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"users-api/internal/domain"
	"users-api/pkg/utils"
)

// MemoryUserRepo keeps users in process memory. It backs tests and the
// "memory" driver for running without a database.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users []domain.User
	now   func() time.Time
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{now: time.Now}
}

func (r *MemoryUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = utils.NewID()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now().UTC().Truncate(time.Millisecond)
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *MemoryUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	out := append(make([]domain.User, 0, len(r.users)), r.users...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryUserRepo) Ping(context.Context) error { return nil }

func (r *MemoryUserRepo) Close(context.Context) error { return nil }
