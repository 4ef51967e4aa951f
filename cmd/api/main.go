package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	backend "github.com/kavyanair/mindhaven/backend"
	"github.com/kavyanair/mindhaven/backend/internal/analysis/mood"
	"github.com/kavyanair/mindhaven/backend/internal/analysis/safety"
	"github.com/kavyanair/mindhaven/backend/internal/config"
	"github.com/kavyanair/mindhaven/backend/internal/handler"
	authhandler "github.com/kavyanair/mindhaven/backend/internal/handler/auth"
	chathandler "github.com/kavyanair/mindhaven/backend/internal/handler/chat"
	"github.com/kavyanair/mindhaven/backend/internal/repository"
	chatservice "github.com/kavyanair/mindhaven/backend/internal/service/chat"
	"github.com/kavyanair/mindhaven/backend/internal/service/generation"
	userservice "github.com/kavyanair/mindhaven/backend/internal/service/user"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := repository.NewPool(ctx, cfg.DB.URL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	migrationsFS, err := fs.Sub(backend.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DB.URL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	users := repository.NewPostgresUserStore(pool)
	records := repository.NewPostgresConversationStore(pool)

	client, err := cfg.AI.NewClient(ctx)
	if err != nil {
		slog.Error("failed to build generation client", "error", err)
		os.Exit(1)
	}
	generator := generation.NewGenerator(client, cfg.AI.Timeout)
	slog.Info("generation backend ready",
		"backend", cfg.AI.Backend,
		"model", cfg.AI.Model,
		"timeout", cfg.AI.Timeout,
	)

	classifier := mood.NewClassifier(mood.NewVaderScorer())
	pipeline := chatservice.NewPipeline(safety.Detect, classifier, generator, users, records)
	accounts := userservice.NewService(users)

	router := handler.NewRouter(chathandler.New(pipeline), authhandler.New(accounts))

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("backend listening", "addr", addr)
	if err := runServer(ctx, srv); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
