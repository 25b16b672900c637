package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/domain"
)

func TestMemoryUserRepo_CreateAssignsIDAndTimestamp(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()

	u := &domain.User{ID: "caller-supplied", Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, r.Create(ctx, u))

	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "caller-supplied", u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, u.CreatedAt.Location())
}

func TestMemoryUserRepo_ListEmpty(t *testing.T) {
	users, err := NewMemoryUserRepo().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestMemoryUserRepo_ListOrderedByCreatedAt(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.Create(ctx, &domain.User{Name: "late", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, r.Create(ctx, &domain.User{Name: "early", CreatedAt: base}))
	require.NoError(t, r.Create(ctx, &domain.User{Name: "middle", CreatedAt: base.Add(time.Minute)}))

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"early", "middle", "late"}, []string{users[0].Name, users[1].Name, users[2].Name})
}

func TestMemoryUserRepo_ListReturnsCopy(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &domain.User{Name: "a"}))

	users, err := r.List(ctx)
	require.NoError(t, err)
	users[0].Name = "mutated"

	again, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Name)
}

func TestMemoryUserRepo_ConcurrentCreateUniqueIDs(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Create(ctx, &domain.User{Name: "x", Email: "x@example.com"})
		}()
	}
	wg.Wait()

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, n)
	seen := map[string]bool{}
	for _, u := range users {
		assert.False(t, seen[u.ID], "duplicate id %s", u.ID)
		seen[u.ID] = true
	}
}
