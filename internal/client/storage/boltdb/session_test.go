package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tutortrack/internal/client/storage"
)

func TestSession_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	session := &storage.AdminSession{
		ServerURL:   "http://localhost:8080",
		AccessToken: "token-1",
		ExpiresAt:   1740823200,
	}
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	require.NoError(t, store.DeleteSession(ctx))
	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// Повторное удаление не ошибка
	assert.NoError(t, store.DeleteSession(ctx))
}

func TestSession_NilRejected(t *testing.T) {
	store := newTestStorage(t)
	assert.Error(t, store.SaveSession(context.Background(), nil))
}

func TestSession_IndependentOfProgress(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveSession(ctx, &storage.AdminSession{AccessToken: "t"}))
	require.NoError(t, store.DeleteProgress(ctx))

	_, err := store.GetSession(ctx)
	assert.NoError(t, err, "resetting progress keeps the admin session")
}

func TestSession_Closed(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Close())

	_, err := store.GetSession(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
