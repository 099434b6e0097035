package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"todo_backend/internal/config"
	"todo_backend/internal/db"
	httpServer "todo_backend/internal/http"
	"todo_backend/internal/http/middleware"
	"todo_backend/internal/logger"
	"todo_backend/internal/repository"
	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	repo, closeStore := openStore(cfg)
	defer closeStore()

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedisRateLimiter()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	tasks := service.NewTaskService(repo)
	r := httpServer.NewEngine(httpServer.Deps{
		Tasks:      tasks,
		Store:      tasks,
		Version:    cfg.AppVersion,
		RateLimit:  cfg.APIRateLimit,
		RateWindow: cfg.APIRateWindow,
	}, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "store", cfg.StoreDriver, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// openStore builds the configured repository and returns a func that releases it.
func openStore(cfg *config.Config) (repository.TaskRepository, func()) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool := db.ConnectPostgres(cfg.DatabaseURL)
		return repository.NewPostgresTaskRepository(pool), pool.Close

	case config.StoreMemory:
		logger.Warn("using in-memory store; tasks are lost on restart")
		return repository.NewMemoryTaskRepository(), func() {}

	default:
		client, coll := db.ConnectMongo(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		repo := repository.NewMongoTaskRepository(coll)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to ensure mongo indexes", "error", err)
		}

		return repo, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				logger.Error("mongo disconnect failed", "error", err)
			}
		}
	}
}
