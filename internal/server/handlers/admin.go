package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/tutortrack/internal/crypto"
	"github.com/iudanet/tutortrack/pkg/api"
)

// AdminHandler выдает токены для доступа к отчету
type AdminHandler struct {
	logger       *slog.Logger
	now          func() time.Time
	passwordHash string
	jwtConfig    JWTConfig
}

// NewAdminHandler создает handler входа администратора.
// passwordHash: bcrypt хеш общего пароля.
func NewAdminHandler(logger *slog.Logger, passwordHash string, jwtConfig JWTConfig) *AdminHandler {
	return &AdminHandler{
		logger:       logger,
		now:          time.Now,
		passwordHash: passwordHash,
		jwtConfig:    jwtConfig,
	}
}

// Login обрабатывает POST /api/v1/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode admin login request", slog.Any("error", err))
		sendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Password == "" {
		sendError(w, h.logger, "password is required", http.StatusBadRequest)
		return
	}

	if err := crypto.VerifyPassword(req.Password, h.passwordHash); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			h.logger.WarnContext(ctx, "admin login failed: wrong password")
			sendError(w, h.logger, "invalid password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to verify admin password", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, h.now())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "admin logged in")

	sendJSON(w, h.logger, api.AdminTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}
