package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/tutortrack/internal/client/storage"
	"github.com/iudanet/tutortrack/internal/validation"
)

// Resolver хранит отображаемое имя ученика. По имени сервер сопоставляет
// отчеты с разных устройств, поэтому других идентификаторов у клиента нет.
type Resolver struct {
	store  storage.IdentityStorage
	logger *slog.Logger
}

// NewResolver создает Resolver поверх хранилища имени
func NewResolver(store storage.IdentityStorage, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:  store,
		logger: logger,
	}
}

// SetDisplayName trims and stores the name, replacing any previous one.
// Returns the stored value.
func (r *Resolver) SetDisplayName(ctx context.Context, name string) (string, error) {
	name, err := validation.ValidateDisplayName(name)
	if err != nil {
		return "", err
	}

	if err := r.store.SaveDisplayName(ctx, name); err != nil {
		return "", fmt.Errorf("failed to save display name: %w", err)
	}

	r.logger.Debug("display name set", "name", name)
	return name, nil
}

// DisplayName returns the stored name, or false if none is set.
// Storage errors are logged and treated as an unset name.
func (r *Resolver) DisplayName(ctx context.Context) (string, bool) {
	name, err := r.store.GetDisplayName(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNameNotFound) {
			r.logger.Warn("failed to read display name", "error", err)
		}
		return "", false
	}
	return name, true
}
