package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"users-api/internal/core/config"
	"users-api/internal/core/logger"
	"users-api/internal/domain"
	"users-api/internal/repo"
)

var samples = []domain.User{
	{Name: "John Doe", Email: "john@example.com"},
	{Name: "Jane Smith", Email: "jane@example.com"},
	{Name: "Docker User", Email: "docker@example.com"},
}

func main() { os.Exit(run()) }

func run() int {
	skipExisting := flag.Bool("skip-existing", true, "do nothing when the store already holds users")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Parse(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := repo.OpenUserStore(ctx, cfg, log)
	if err != nil {
		log.Error("store setup failed", zap.Error(err))
		return 1
	}
	defer store.Close(context.Background())

	n, err := seed(ctx, store, *skipExisting, log)
	if err != nil {
		log.Error("seed failed", zap.Int("inserted", n), zap.Error(err))
		return 1
	}
	log.Info("seed done", zap.Int("inserted", n))
	return 0
}

func seed(ctx context.Context, store domain.UserStore, skipExisting bool, log *zap.Logger) (int, error) {
	if skipExisting {
		existing, err := store.List(ctx)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			log.Info("store already has users, skipping", zap.Int("count", len(existing)))
			return 0, nil
		}
	}
	for i := range samples {
		u := samples[i]
		if err := store.Create(ctx, &u); err != nil {
			return i, err
		}
		log.Info("user inserted", zap.String("id", u.ID), zap.String("name", u.Name), zap.String("email", u.Email))
	}
	return len(samples), nil
}
