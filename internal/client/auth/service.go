// Package auth хранит сессию администратора между запусками клиента.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/tutortrack/internal/client/storage"
)

// expiryMargin: токен, истекающий раньше этого запаса, считается истекшим
const expiryMargin = 30 * time.Second

// Service управляет токеном администратора для одного сервера
type Service struct {
	loginer   Loginer
	store     storage.SessionStorage
	logger    *slog.Logger
	now       func() time.Time
	serverURL string
}

// NewService creates a new auth Service bound to serverURL
func NewService(loginer Loginer, store storage.SessionStorage, serverURL string, logger *slog.Logger) *Service {
	return &Service{
		loginer:   loginer,
		store:     store,
		logger:    logger,
		now:       time.Now,
		serverURL: serverURL,
	}
}

// Login выполняет вход администратора и сохраняет токен
func (s *Service) Login(ctx context.Context, password string) (*storage.AdminSession, error) {
	resp, err := s.loginer.AdminLogin(ctx, password)
	if err != nil {
		return nil, err
	}

	session := &storage.AdminSession{
		ServerURL:   s.serverURL,
		AccessToken: resp.AccessToken,
		ExpiresAt:   s.now().Unix() + resp.ExpiresIn,
	}

	// Без кэша вход все равно удался, просто спросим пароль в следующий раз
	if err := s.store.SaveSession(ctx, session); err != nil {
		s.logger.Warn("failed to save admin session", slog.Any("error", err))
	}

	return session, nil
}

// Token возвращает сохраненный токен, если он выдан этим сервером и еще действует
func (s *Service) Token(ctx context.Context) (string, bool) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			s.logger.Warn("failed to read admin session", slog.Any("error", err))
		}
		return "", false
	}

	if session.ServerURL != s.serverURL {
		return "", false
	}
	if s.now().Add(expiryMargin).Unix() >= session.ExpiresAt {
		return "", false
	}

	return session.AccessToken, true
}

// IsAuthenticated checks if a usable admin token is cached
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// Logout удаляет сохраненную сессию
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete admin session: %w", err)
	}
	return nil
}
