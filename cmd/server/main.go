package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/tutortrack/internal/crypto"
	"github.com/iudanet/tutortrack/internal/curriculum"
	"github.com/iudanet/tutortrack/internal/server"
	"github.com/iudanet/tutortrack/internal/server/config"
	"github.com/iudanet/tutortrack/internal/server/handlers"
	"github.com/iudanet/tutortrack/internal/server/middleware"
	"github.com/iudanet/tutortrack/internal/server/progress"
	"github.com/iudanet/tutortrack/internal/server/storage"
	"github.com/iudanet/tutortrack/internal/server/storage/filestore"
	"github.com/iudanet/tutortrack/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:], config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	logger := cfg.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	opts := server.Options{
		Logger:  logger,
		Service: progress.NewService(store, curriculum.Default(), logger),
		Store:   store,
		Version: Version,
	}

	if cfg.AdminEnabled() {
		admin, err := adminOptions(cfg, logger)
		if err != nil {
			return err
		}
		opts.Admin = admin
	} else {
		logger.Warn("ADMIN_PASSWORD is not set, progress report is readable without authentication")
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute, logger)
		defer limiter.Stop()
		opts.Limiter = limiter
	}

	httpServer := server.NewHTTPServer(cfg.Address, server.NewHandler(opts), logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("tutortrack server starting",
			slog.String("address", cfg.Address),
			slog.String("storage", cfg.Storage),
			slog.String("version", Version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// openStorage открывает выбранный backend хранилища
func openStorage(ctx context.Context, cfg *config.Config) (storage.ProgressStorage, error) {
	switch cfg.Storage {
	case config.StorageFile:
		store, err := filestore.New(ctx, cfg.DataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		return store, nil
	default:
		store, err := sqlite.New(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return store, nil
	}
}

func adminOptions(cfg *config.Config, logger *slog.Logger) (*server.AdminOptions, error) {
	hash, err := crypto.PreparePassword(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare admin password: %w", err)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Токены перестанут действовать после перезапуска
		secret, err = crypto.GenerateSecretBase64()
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		logger.Warn("JWT_SECRET is not set, using a random secret")
	}

	return &server.AdminOptions{
		PasswordHash: hash,
		JWT: handlers.JWTConfig{
			Secret:         []byte(secret),
			AccessTokenTTL: cfg.AdminTokenTTL,
		},
	}, nil
}

func printVersion() {
	fmt.Printf("TutorTrack Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
