package storage

import "context"

//go:generate moq -out identity_mock.go . IdentityStorage

// IdentityStorage defines interface for persisting the learner's display name
type IdentityStorage interface {
	// SaveDisplayName stores the display name, overwriting the previous one
	SaveDisplayName(ctx context.Context, name string) error

	// GetDisplayName returns ErrNameNotFound if no name has been set
	GetDisplayName(ctx context.Context) (string, error)
}
