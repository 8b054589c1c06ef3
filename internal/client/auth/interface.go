package auth

import (
	"context"

	"github.com/iudanet/tutortrack/pkg/api"
)

//go:generate moq -out loginer_mock.go . Loginer

// Loginer обменивает пароль администратора на токен
type Loginer interface {
	AdminLogin(ctx context.Context, password string) (*api.AdminTokenResponse, error)
}
