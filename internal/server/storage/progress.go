package storage

import (
	"context"
	"time"

	"github.com/iudanet/tutortrack/internal/models"
)

// UpsertFunc получает текущую запись пользователя (nil, если ее еще нет)
// и возвращает запись, которую нужно сохранить.
type UpsertFunc func(existing *models.UserRecord) (*models.UserRecord, error)

// ProgressStorage defines interface for the server-side progress aggregate
type ProgressStorage interface {
	// UpsertUser atomically reads the record indexed by nameKey, passes it to fn
	// and stores the result together with analytics.lastUpdated = updatedAt.
	// If fn returns an error nothing is written.
	UpsertUser(ctx context.Context, nameKey string, fn UpsertFunc, updatedAt time.Time) (*models.UserRecord, error)

	// GetUser returns the record indexed by nameKey
	// Returns ErrUserNotFound if no such user exists
	GetUser(ctx context.Context, nameKey string) (*models.UserRecord, error)

	// ListUsers returns copies of all records in no particular order
	ListUsers(ctx context.Context) ([]*models.UserRecord, error)

	// GetAnalytics returns the aggregate counters.
	// TotalUsers always equals the number of stored records
	GetAnalytics(ctx context.Context) (*models.Analytics, error)

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error

	// Close releases backend resources
	Close() error
}
