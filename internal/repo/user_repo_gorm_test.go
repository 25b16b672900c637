package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/core/database"
	"users-api/internal/domain"
)

// Nothing listens on port 1: opening must still succeed, calls must fail.
func TestUserRepo_UnreachablePostgres(t *testing.T) {
	db, err := database.NewGorm(database.Opts{
		Driver:       "postgres",
		DSN:          "host=127.0.0.1 port=1 user=app dbname=users sslmode=disable connect_timeout=1",
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	r := NewUserRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Error(t, r.Ping(ctx))
	_, err = r.List(ctx)
	assert.Error(t, err)

	u := &domain.User{Name: "John Doe", Email: "john@example.com"}
	assert.Error(t, r.Create(ctx, u))
	assert.NotEmpty(t, u.ID, "id is assigned before the insert is attempted")
	assert.NoError(t, r.Close(ctx))
}

func openSQLiteRepo(t *testing.T) *UserRepo {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "users.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	r := NewUserRepo(db)
	require.NoError(t, r.Migrate(context.Background()))
	t.Cleanup(func() { _ = r.Close(context.Background()) })
	return r
}

func TestUserRepo_CreateThenListInInsertionOrder(t *testing.T) {
	r := openSQLiteRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Ping(ctx))

	empty, err := r.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	in := []domain.User{
		{Name: "John Doe", Email: "john@example.com"},
		{Name: "Jane Smith", Email: "jane@example.com"},
		{Name: "John Doe", Email: "john@example.com"},
	}
	for i := range in {
		require.NoError(t, r.Create(ctx, &in[i]))
		assert.Len(t, in[i].ID, 26)
		assert.False(t, in[i].CreatedAt.IsZero())
	}

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	seen := map[string]bool{}
	for i, u := range got {
		assert.Equal(t, in[i].ID, u.ID)
		assert.Equal(t, in[i].Name, u.Name)
		assert.Equal(t, in[i].Email, u.Email)
		assert.True(t, in[i].CreatedAt.Equal(u.CreatedAt))
		assert.Equal(t, time.UTC, u.CreatedAt.Location())
		assert.False(t, seen[u.ID], "ids are unique")
		seen[u.ID] = true
	}
}

func TestUserRepo_ListOrdersByCreatedAtThenID(t *testing.T) {
	r := openSQLiteRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	later := &domain.User{Name: "later", CreatedAt: base.Add(time.Second)}
	first := &domain.User{Name: "first", CreatedAt: base}
	second := &domain.User{Name: "second", CreatedAt: base}
	require.NoError(t, r.Create(ctx, later))
	require.NoError(t, r.Create(ctx, first))
	require.NoError(t, r.Create(ctx, second))

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"first", "second", "later"}, []string{got[0].Name, got[1].Name, got[2].Name})
}
