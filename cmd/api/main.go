package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/synapsehq/synapse-backend/api/routes"
	"github.com/synapsehq/synapse-backend/internal/chat"
	"github.com/synapsehq/synapse-backend/internal/files"
	"github.com/synapsehq/synapse-backend/internal/meetings"
	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/internal/projects"
	"github.com/synapsehq/synapse-backend/internal/realtime"
	"github.com/synapsehq/synapse-backend/internal/tasks"
	"github.com/synapsehq/synapse-backend/internal/users"
	"github.com/synapsehq/synapse-backend/pkg/auth/session"
	"github.com/synapsehq/synapse-backend/pkg/config"
	"github.com/synapsehq/synapse-backend/pkg/db"
	"github.com/synapsehq/synapse-backend/pkg/logger"
	"github.com/synapsehq/synapse-backend/pkg/migrate"
	"github.com/synapsehq/synapse-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	hub, err := realtime.NewHub(redisClient, realtime.NewRegistry(), cfg.Realtime.ChannelName, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create realtime hub", err)
		os.Exit(1)
	}

	membershipService, err := memberships.NewService(memberships.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create membership service", err)
		os.Exit(1)
	}

	projectService, err := projects.NewService(projects.NewRepository(dbClient.DB()), membershipService)
	if err != nil {
		logg.Error(context.Background(), "failed to create projects service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	chatService, err := chat.NewService(chat.NewRepository(dbClient.DB()), membershipService, hub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	fileService, err := files.NewService(files.NewRepository(dbClient.DB()), membershipService)
	if err != nil {
		logg.Error(context.Background(), "failed to create files service", err)
		os.Exit(1)
	}

	taskService, err := tasks.NewService(tasks.NewRepository(dbClient.DB()), membershipService)
	if err != nil {
		logg.Error(context.Background(), "failed to create tasks service", err)
		os.Exit(1)
	}

	meetingService, err := meetings.NewService(meetings.NewRepository(dbClient.DB()), membershipService)
	if err != nil {
		logg.Error(context.Background(), "failed to create meetings service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := hub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "realtime hub stopped unexpectedly", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			membershipService,
			projectService,
			userService,
			chatService,
			fileService,
			taskService,
			meetingService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}
