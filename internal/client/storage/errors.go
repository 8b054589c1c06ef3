package storage

import "errors"

// Common client storage errors
var (
	// ErrProgressNotFound indicates that no progress record has been saved yet
	ErrProgressNotFound = errors.New("progress not found")

	// ErrCorruptProgress indicates that the saved progress record cannot be decoded
	ErrCorruptProgress = errors.New("progress record is corrupt")

	// ErrNameNotFound indicates that no display name has been set
	ErrNameNotFound = errors.New("display name not found")

	// ErrSessionNotFound indicates that no admin session is cached
	ErrSessionNotFound = errors.New("admin session not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
