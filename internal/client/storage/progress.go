package storage

import (
	"context"

	"github.com/iudanet/tutortrack/internal/models"
)

//go:generate moq -out progress_mock.go . ProgressStorage

// ProgressStorage defines interface for persisting the learner's local progress.
// The whole record is stored under a single key and rewritten on every change.
type ProgressStorage interface {
	// SaveProgress stores the full progress record, replacing the previous one
	SaveProgress(ctx context.Context, p *models.LocalProgress) error

	// GetProgress retrieves the stored record.
	// Returns ErrProgressNotFound if nothing was saved and
	// ErrCorruptProgress if the stored bytes cannot be decoded
	GetProgress(ctx context.Context) (*models.LocalProgress, error)

	// DeleteProgress removes the stored record (full reset)
	DeleteProgress(ctx context.Context) error
}
