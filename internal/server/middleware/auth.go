package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/tutortrack/internal/server/handlers"
)

// AdminAuthMiddleware пропускает только запросы с действующим токеном администратора
func AdminAuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "missing Authorization header", slog.String("path", r.URL.Path))
				writeError(w, logger, "unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				// Сам заголовок не логируем, в нем может быть токен
				logger.WarnContext(ctx, "invalid Authorization header format")
				writeError(w, logger, "unauthorized: invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, token)
			if err != nil {
				logger.WarnContext(ctx, "invalid access token", slog.Any("error", err))
				writeError(w, logger, "unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			logger.DebugContext(ctx, "admin authenticated", slog.String("subject", claims.Subject))

			next.ServeHTTP(w, r)
		})
	}
}
