package repo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"users-api/internal/core/cache"
	"users-api/internal/domain"
)

const usersListKey = "users:list"

// CachedUserRepo reads List through redis and moves the list to a new
// generation after every successful Create, so a list computed before the
// insert is never served after it. Redis trouble never fails a call.
type CachedUserRepo struct {
	next  domain.UserStore
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedUserRepo(next domain.UserStore, c *cache.Cache, ttl time.Duration, l *zap.Logger) *CachedUserRepo {
	if l == nil {
		l = zap.NewNop()
	}
	return &CachedUserRepo{next: next, cache: c, ttl: ttl, log: l}
}

func (r *CachedUserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.next.Create(ctx, u); err != nil {
		return err
	}
	if err := r.cache.Bump(ctx, usersListKey); err != nil {
		r.log.Warn("users cache bump failed", zap.Error(err))
	}
	return nil
}

func (r *CachedUserRepo) List(ctx context.Context) ([]domain.User, error) {
	key, err := r.cache.Generation(ctx, usersListKey)
	if err != nil {
		r.log.Warn("users cache read failed, using store", zap.Error(err))
		return r.next.List(ctx)
	}
	var storeErr error
	users, err := cache.GetOrLoadJSON(r.cache, ctx, key, r.ttl, func(ctx context.Context) ([]domain.User, error) {
		u, e := r.next.List(ctx)
		storeErr = e
		return u, e
	})
	if err == nil {
		return users, nil
	}
	if storeErr != nil {
		return nil, storeErr
	}
	r.log.Warn("users cache read failed, using store", zap.Error(err))
	return r.next.List(ctx)
}

func (r *CachedUserRepo) Ping(ctx context.Context) error { return r.next.Ping(ctx) }

// PingCache reports redis health separately so readiness can show both.
func (r *CachedUserRepo) PingCache(ctx context.Context) error { return r.cache.Ping(ctx) }

func (r *CachedUserRepo) Close(ctx context.Context) error {
	err := r.next.Close(ctx)
	if cerr := r.cache.Close(); err == nil {
		err = cerr
	}
	return err
}
