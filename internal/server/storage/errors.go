package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that another record already owns the name key
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrNameKeyMismatch indicates that an upsert returned a record for a different identity
	ErrNameKeyMismatch = errors.New("record name key does not match")
)
