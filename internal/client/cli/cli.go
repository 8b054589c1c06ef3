// Package cli реализует команды клиента tutor.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/tutortrack/internal/client/api"
	"github.com/iudanet/tutortrack/internal/client/auth"
	"github.com/iudanet/tutortrack/internal/client/identity"
	"github.com/iudanet/tutortrack/internal/client/iocli"
	"github.com/iudanet/tutortrack/internal/client/progress"
	"github.com/iudanet/tutortrack/internal/client/storage/boltdb"
	"github.com/iudanet/tutortrack/internal/curriculum"
)

// AdminPasswordEnv переменная окружения с паролем администратора для отчета
const AdminPasswordEnv = "TUTORTRACK_ADMIN_PASSWORD"

// Settings содержит глобальные настройки клиента
type Settings struct {
	ServerURL     string
	DBPath        string
	ChaptersFile  string
	ReportTimeout time.Duration
	Verbose       bool
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() Settings {
	return Settings{
		ServerURL:     "http://localhost:8080",
		DBPath:        "tutortrack-client.db",
		ReportTimeout: identity.DefaultReportTimeout,
	}
}

// Cli хранит зависимости одной команды
type Cli struct {
	io        iocli.IO
	logger    *slog.Logger
	settings  Settings
	store     *boltdb.Storage
	apiClient api.ClientAPI
	auth      *auth.Service
	resolver  *identity.Resolver
	reporter  *identity.Reporter
	tracker   *progress.Tracker
	table     *curriculum.Table
}

// New создает Cli, пишущий в io
func New(io iocli.IO) *Cli {
	return &Cli{
		io:       io,
		settings: DefaultSettings(),
	}
}

// open открывает локальное хранилище и собирает сервисы
func (c *Cli) open(ctx context.Context) error {
	level := slog.LevelWarn
	if c.settings.Verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	table := curriculum.Default()
	if c.settings.ChaptersFile != "" {
		t, err := curriculum.Load(c.settings.ChaptersFile)
		if err != nil {
			return err
		}
		table = t
	}
	c.table = table

	store, err := boltdb.New(ctx, c.settings.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.store = store

	c.apiClient = api.NewClient(c.settings.ServerURL)
	c.auth = auth.NewService(c.apiClient, store, c.settings.ServerURL, c.logger)
	c.resolver = identity.NewResolver(store, c.logger)
	c.reporter = identity.NewReporter(c.resolver, c.apiClient, c.settings.ReportTimeout, c.logger)
	c.tracker = progress.NewTracker(ctx, store, c.reporter, c.logger)

	return nil
}

// close дожидается отправки отчетов и закрывает хранилище
func (c *Cli) close() {
	if c.reporter != nil {
		c.reporter.Wait()
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.logger.Error("failed to close database", slog.Any("error", err))
		}
	}
}

// withSession выполняет fn с открытым хранилищем
func (c *Cli) withSession(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.open(ctx); err != nil {
		return err
	}
	defer c.close()
	return fn(ctx)
}

// completedSet возвращает пройденные шаги в виде множества для гейта
func (c *Cli) completedSet() curriculum.StepSet {
	return curriculum.NewStepSet(c.tracker.CompletedSteps()...)
}

// parseChapter принимает номер главы или путь вида /tutorial/chapter-3
func (c *Cli) parseChapter(arg string) (int, error) {
	n, ok := curriculum.ParseChapterPath(arg)
	if !ok {
		v, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return 0, fmt.Errorf("invalid chapter %q: want a number or /tutorial/chapter-N", arg)
		}
		n = v
	}
	if _, ok := c.table.Chapter(n); !ok {
		return 0, fmt.Errorf("unknown chapter %d", n)
	}
	return n, nil
}

// getAdminPassword retrieves the admin password with priority:
// 1. Environment variable TUTORTRACK_ADMIN_PASSWORD
// 2. File given by --password-file
// 3. Interactive prompt (fallback)
func (c *Cli) getAdminPassword(passwordFile string) (string, error) {
	if envPassword := os.Getenv(AdminPasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if passwordFile != "" {
		content, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", errors.New("password file is empty")
		}
		return password, nil
	}

	password, err := c.io.ReadPassword("Admin password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}
