package repo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/core/cache"
	"users-api/internal/domain"
)

type failingStore struct{ err error }

func (s failingStore) Create(context.Context, *domain.User) error  { return s.err }
func (s failingStore) List(context.Context) ([]domain.User, error) { return nil, s.err }
func (s failingStore) Ping(context.Context) error                  { return s.err }
func (s failingStore) Close(context.Context) error                 { return nil }

// nothing listens on port 1, so every redis call fails fast
func unreachableCache() *cache.Cache {
	return cache.New(cache.Opts{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
}

func TestCachedUserRepo_FallsBackToStoreWhenRedisDown(t *testing.T) {
	mem := NewMemoryUserRepo()
	r := NewCachedUserRepo(mem, unreachableCache(), time.Minute, nil)
	ctx := context.Background()

	u := &domain.User{Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, r.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)
	assert.Error(t, r.PingCache(ctx))
	assert.NoError(t, r.Ping(ctx))
}

func TestCachedUserRepo_StoreErrorsPassThrough(t *testing.T) {
	storeErr := errors.New("connection refused")
	r := NewCachedUserRepo(failingStore{err: storeErr}, unreachableCache(), time.Minute, nil)
	ctx := context.Background()

	_, err := r.List(ctx)
	assert.ErrorIs(t, err, storeErr)

	err = r.Create(ctx, &domain.User{})
	assert.ErrorIs(t, err, storeErr)
}

// countingStore counts List calls that reach the store.
type countingStore struct {
	domain.UserStore
	lists atomic.Int32
}

func (s *countingStore) List(ctx context.Context) ([]domain.User, error) {
	s.lists.Add(1)
	return s.UserStore.List(ctx)
}

// stallingStore holds its first List after reading rows until released.
type stallingStore struct {
	domain.UserStore
	loaded  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stallingStore) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.UserStore.List(ctx)
	s.once.Do(func() {
		close(s.loaded)
		<-s.release
	})
	return users, err
}

func redisCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	c := cache.New(cache.Opts{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCachedUserRepo_ServesRepeatListsFromRedis(t *testing.T) {
	c, mr := redisCache(t)
	store := &countingStore{UserStore: NewMemoryUserRepo()}
	r := NewCachedUserRepo(store, c, time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &domain.User{Name: "John Doe", Email: "john@example.com"}))

	first, err := r.List(ctx)
	require.NoError(t, err)
	second, err := r.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), store.lists.Load())
	assert.True(t, mr.Exists("users:list:1"))
	assert.Equal(t, time.Minute, mr.TTL("users:list:1"))
}

func TestCachedUserRepo_CreateShowsUpInNextList(t *testing.T) {
	c, _ := redisCache(t)
	r := NewCachedUserRepo(NewMemoryUserRepo(), c, time.Minute, nil)
	ctx := context.Background()

	users, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	u := &domain.User{Name: "Jane Smith", Email: "jane@example.com"}
	require.NoError(t, r.Create(ctx, u))

	users, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)
}

func TestCachedUserRepo_ListLoadedBeforeCreateIsNotServedAfterIt(t *testing.T) {
	c, _ := redisCache(t)
	store := &stallingStore{
		UserStore: NewMemoryUserRepo(),
		loaded:    make(chan struct{}),
		release:   make(chan struct{}),
	}
	r := NewCachedUserRepo(store, c, time.Minute, nil)
	ctx := context.Background()

	stale := make(chan []domain.User, 1)
	go func() {
		users, err := r.List(ctx)
		assert.NoError(t, err)
		stale <- users
	}()

	<-store.loaded
	u := &domain.User{Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, r.Create(ctx, u))
	close(store.release)
	assert.Empty(t, <-stale, "the slow reader saw the rows from before the insert")

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)
}

func TestCachedUserRepo_RedisGoingAwayFallsBackToStore(t *testing.T) {
	c, mr := redisCache(t)
	r := NewCachedUserRepo(NewMemoryUserRepo(), c, time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &domain.User{Name: "John Doe", Email: "john@example.com"}))
	mr.Close()

	require.NoError(t, r.Create(ctx, &domain.User{Name: "Jane Smith", Email: "jane@example.com"}))
	users, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
