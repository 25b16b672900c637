package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"users-api/internal/core/config"
	"users-api/internal/core/logger"
	"users-api/internal/core/server"
	"users-api/internal/feature/user"
	"users-api/internal/repo"
	"users-api/internal/transport/http/handler"
	"users-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log.Named("std"), zapcore.InfoLevel)()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := repo.OpenUserStore(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("store setup failed", zap.Error(err))
	}

	checks := map[string]handler.Pinger{"store": store}
	if c, ok := store.(*repo.CachedUserRepo); ok {
		checks["cache"] = handler.PingFunc(c.PingCache)
	}
	r := router.NewAPIEngine(router.Deps{
		Log:    log,
		Limits: cfg.Limits,
		Modules: []any{
			handler.NewSystemHandler(cfg.App.Name, cfg.App.Env, checks),
			handler.NewUserHandler(user.NewService(store, cfg.Validation.Strict)),
		},
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "localhost"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("users api starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("health", baseURL+"/api/health"),
		zap.String("users", baseURL+"/api/users"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("users api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := store.Close(ctx); err != nil {
		log.Warn("store close", zap.Error(err))
	}
	log.Info("users api stopped gracefully")
}
