package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/tutortrack/pkg/api"
)

// writeError отправляет ошибку в том же JSON формате, что и handlers
func writeError(w http.ResponseWriter, logger *slog.Logger, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Error: message}); err != nil {
		logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
