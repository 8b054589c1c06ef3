package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/tutortrack/internal/client/storage"
	"github.com/iudanet/tutortrack/internal/models"
)

func TestGetProgress_NotFound(t *testing.T) {
	store := newTestStorage(t)

	p, err := store.GetProgress(context.Background())
	assert.ErrorIs(t, err, storage.ErrProgressNotFound)
	assert.Nil(t, p)
}

func TestSaveAndGetProgress(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	visited := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := models.NewLocalProgress()
	p.CompletedSteps["html-basics"] = true
	p.CompletedSections["intro"] = true
	p.CurrentCode["html-basics"] = "<h1>Hi</h1>"
	p.LastVisited = &visited

	require.NoError(t, store.SaveProgress(ctx, p))

	got, err := store.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSaveProgress_Overwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	first := models.NewLocalProgress()
	first.CompletedSteps["a"] = true
	require.NoError(t, store.SaveProgress(ctx, first))

	second := models.NewLocalProgress()
	second.CompletedSteps["b"] = true
	require.NoError(t, store.SaveProgress(ctx, second))

	got, err := store.GetProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"b": true}, got.CompletedSteps)
}

func TestGetProgress_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProgress).Put([]byte(keyProgress), []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = store.GetProgress(ctx)
	assert.ErrorIs(t, err, storage.ErrCorruptProgress)
}

func TestGetProgress_NormalizesLegacyRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// Запись без currentCode и completedSections
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProgress).Put([]byte(keyProgress), []byte(`{"completedSteps":{"a":true}}`))
	})
	require.NoError(t, err)

	got, err := store.GetProgress(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got.CompletedSections)
	assert.NotNil(t, got.CurrentCode)
	assert.True(t, got.CompletedSteps["a"])
	assert.Nil(t, got.LastVisited)
}

func TestDeleteProgress(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveProgress(ctx, models.NewLocalProgress()))
	require.NoError(t, store.DeleteProgress(ctx))

	_, err := store.GetProgress(ctx)
	assert.ErrorIs(t, err, storage.ErrProgressNotFound)

	// Удаление отсутствующей записи не ошибка
	assert.NoError(t, store.DeleteProgress(ctx))
}

func TestProgress_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketProgress)
	})
	require.NoError(t, err)

	err = store.SaveProgress(ctx, models.NewLocalProgress())
	assert.ErrorContains(t, err, "progress bucket not found")

	_, err = store.GetProgress(ctx)
	assert.ErrorContains(t, err, "progress bucket not found")
}
