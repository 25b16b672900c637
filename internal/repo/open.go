package repo

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"users-api/internal/core/cache"
	"users-api/internal/core/config"
	"users-api/internal/core/database"
	"users-api/internal/core/logger"
	"users-api/internal/domain"
)

// OpenUserStore builds the store selected by cfg.DB.Driver, wrapped in the
// redis cache when enabled. An unreachable database is logged, not returned:
// requests fail one by one until it comes back.
func OpenUserStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (domain.UserStore, error) {
	var store domain.UserStore
	timeout := time.Duration(cfg.DB.ConnectTimeoutSec) * time.Second

	switch cfg.DB.Driver {
	case "mongo", "mongodb":
		client, dbName, err := database.NewMongo(database.MongoOpts{
			URI:            cfg.DB.URI,
			Database:       cfg.DB.Database,
			AppName:        cfg.App.Name,
			ConnectTimeout: timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("mongo client: %w", err)
		}
		store = NewMongoUserRepo(client.Database(dbName).Collection(cfg.DB.Collection))
		l.Info("store configured", zap.String("driver", "mongo"), zap.String("database", dbName), zap.String("collection", cfg.DB.Collection))

	case "postgres", "mysql", "sqlite":
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			Username:           cfg.DB.Username,
			Password:           cfg.DB.Password,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
			Logger:             logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel),
		})
		if err != nil {
			return nil, fmt.Errorf("gorm open: %w", err)
		}
		r := NewUserRepo(db)
		if cfg.DB.AutoMigrate {
			mctx, cancel := context.WithTimeout(ctx, timeout)
			if err := r.Migrate(mctx); err != nil {
				l.Error("users table bootstrap failed", zap.Error(err))
			}
			cancel()
		}
		store = r
		l.Info("store configured", zap.String("driver", cfg.DB.Driver), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))

	case "memory":
		store = NewMemoryUserRepo()
		l.Warn("store configured", zap.String("driver", "memory"), zap.String("note", "records are lost on exit"))

	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, cfg.DB.Driver)
	}

	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := store.Ping(pctx); err != nil {
		l.Error("store unreachable at startup", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	} else {
		l.Info("store connected", zap.String("driver", cfg.DB.Driver))
	}

	if cfg.Redis.Enable {
		c := cache.New(cache.Opts{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := c.Ping(pctx); err != nil {
			l.Warn("redis unreachable, list cache will miss", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		store = NewCachedUserRepo(store, c, time.Duration(cfg.Redis.TTLSec)*time.Second, l.Named("cache"))
	}
	return store, nil
}
