package storage

import "context"

// AdminSession представляет сохраненный токен администратора
type AdminSession struct {
	ServerURL   string `json:"server_url"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // Unix timestamp
}

// SessionStorage defines interface for caching the admin session between runs
type SessionStorage interface {
	// SaveSession replaces the cached session
	SaveSession(ctx context.Context, session *AdminSession) error

	// GetSession returns ErrSessionNotFound if no session is cached
	GetSession(ctx context.Context) (*AdminSession, error)

	// DeleteSession removes the cached session; missing session is not an error
	DeleteSession(ctx context.Context) error
}
