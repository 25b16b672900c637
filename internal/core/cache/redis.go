package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
}

type Opts struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	MaxRetries  int // -1 disables retries
}

func New(o Opts) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{
			Addr:        o.Addr,
			Password:    o.Password,
			DB:          o.DB,
			DialTimeout: o.DialTimeout,
			MaxRetries:  o.MaxRetries,
		}),
	}
}

// GetOrLoad serves key from redis, otherwise runs load once per key across
// concurrent callers and stores the result. Redis failures are not returned:
// they only mean the loader runs.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Generation returns base suffixed with its current generation, e.g.
// "users:list:3". A load that started before a Bump writes under the old
// generation, which no reader asks for again; it just expires.
func (c *Cache) Generation(ctx context.Context, base string) (string, error) {
	n, err := c.RDB.Get(ctx, base+":gen").Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return base + ":" + strconv.FormatInt(n, 10), nil
}

// Bump moves readers of base to a fresh generation.
func (c *Cache) Bump(ctx context.Context, base string) error {
	return c.RDB.Incr(ctx, base+":gen").Err()
}

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }
