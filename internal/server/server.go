// Package server собирает HTTP API агрегатора прогресса.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/tutortrack/internal/server/handlers"
	"github.com/iudanet/tutortrack/internal/server/middleware"
)

// Маршруты API
const (
	TrackPath  = "/api/v1/progress/track"
	LoginPath  = "/api/v1/admin/login"
	HealthPath = "/api/v1/health"
)

// Options описывает зависимости HTTP API
type Options struct {
	Logger  *slog.Logger
	Service handlers.ProgressService
	Store   handlers.Pinger
	Version string
	Admin   *AdminOptions           // nil = отчет доступен без авторизации
	Limiter *middleware.RateLimiter // nil = прием событий без ограничений
}

// AdminOptions настройки входа администратора
type AdminOptions struct {
	PasswordHash string
	JWT          handlers.JWTConfig
}

// NewHandler создает корневой http.Handler со всеми маршрутами и middleware
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger

	progressHandler := handlers.NewProgressHandler(logger, opts.Service)
	healthHandler := handlers.NewHealthHandler(logger, opts.Store, opts.Version)

	var track http.Handler = http.HandlerFunc(progressHandler.Track)
	if opts.Limiter != nil {
		track = middleware.RateLimitMiddleware(opts.Limiter, logger)(track)
	}

	var report http.Handler = http.HandlerFunc(progressHandler.Report)

	mux := http.NewServeMux()
	mux.Handle("POST "+TrackPath, track)
	mux.HandleFunc("GET "+HealthPath, healthHandler.Health)

	if opts.Admin != nil {
		adminHandler := handlers.NewAdminHandler(logger, opts.Admin.PasswordHash, opts.Admin.JWT)
		report = middleware.AdminAuthMiddleware(logger, opts.Admin.JWT)(report)
		mux.HandleFunc("POST "+LoginPath, adminHandler.Login)
	}
	mux.Handle("GET "+TrackPath, report)

	var root http.Handler = mux
	root = middleware.LoggingMiddleware(logger, HealthPath)(root)
	root = middleware.RecoveryMiddleware(logger)(root)

	return root
}

// NewHTTPServer создает http.Server с таймаутами
func NewHTTPServer(addr string, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
}
