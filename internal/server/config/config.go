// Package config загружает настройки сервера из флагов, окружения и .env файла.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Поддерживаемые backend-ы хранилища
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// DefaultEnvFile файл с переменными окружения по умолчанию
const DefaultEnvFile = ".env"

// Config содержит настройки сервера
type Config struct {
	Address       string
	Storage       string
	DatabasePath  string
	DataFile      string
	AdminPassword string // пароль в открытом виде или bcrypt хеш; пусто = отчет без авторизации
	JWTSecret     string
	LogLevel      string
	LogFormat     string
	AdminTokenTTL time.Duration
	RateLimit     int // запросов в минуту с одного IP на прием событий; 0 = без ограничений
	ShowVersion   bool
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Address:       ":8080",
		Storage:       StorageSQLite,
		DatabasePath:  "tutortrack.db",
		DataFile:      "data/user-progress.json",
		AdminTokenTTL: time.Hour,
		RateLimit:     120,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load собирает конфигурацию. Приоритет: флаги, затем окружение, затем envFile.
// Отсутствующий envFile не считается ошибкой.
func Load(args []string, envFile string) (*Config, error) {
	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		dotenv = map[string]string{}
	}

	env := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	fset := flag.NewFlagSet("server", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	fset.StringVar(&cfg.Address, "a", cfg.Address, "HTTP server address")
	fset.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend: sqlite or file")
	fset.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fset.StringVar(&cfg.DataFile, "f", cfg.DataFile, "JSON data file for the file backend")
	fset.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fset.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fset.DurationVar(&cfg.AdminTokenTTL, "token-ttl", cfg.AdminTokenTTL, "admin access token lifetime")
	fset.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "track requests per minute per IP, 0 disables")
	fset.BoolVar(&cfg.ShowVersion, "version", false, "show version information")

	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(env func(string) (string, bool)) error {
	setString := func(key string, dst *string) {
		if v, ok := env(key); ok && v != "" {
			*dst = v
		}
	}

	setString("SERVER_ADDRESS", &c.Address)
	setString("STORAGE", &c.Storage)
	setString("DATABASE_PATH", &c.DatabasePath)
	setString("DATA_FILE", &c.DataFile)
	setString("ADMIN_PASSWORD", &c.AdminPassword)
	setString("JWT_SECRET", &c.JWTSecret)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)

	if v, ok := env("ADMIN_TOKEN_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ADMIN_TOKEN_TTL %q: %w", v, err)
		}
		c.AdminTokenTTL = ttl
	}

	if v, ok := env("RATE_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT %q: %w", v, err)
		}
		c.RateLimit = n
	}

	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path is required for %s storage", StorageSQLite)
		}
	case StorageFile:
		if c.DataFile == "" {
			return fmt.Errorf("data file is required for %s storage", StorageFile)
		}
	default:
		return fmt.Errorf("unknown storage %q: want %s or %s", c.Storage, StorageSQLite, StorageFile)
	}

	if c.AdminTokenTTL <= 0 {
		return fmt.Errorf("admin token TTL must be positive, got %s", c.AdminTokenTTL)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative, got %d", c.RateLimit)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q: want text or json", c.LogFormat)
	}

	return nil
}

// Level возвращает уровень логирования slog
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("unknown log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// NewLogger создает логгер в формате и с уровнем из конфигурации
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// AdminEnabled сообщает, защищен ли отчет паролем администратора
func (c *Config) AdminEnabled() bool {
	return c.AdminPassword != ""
}
