// Package storagetest содержит общие тесты для реализаций storage.ProgressStorage.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tutortrack/internal/models"
	"github.com/iudanet/tutortrack/internal/server/storage"
)

// Factory создает пустое хранилище для одного теста
type Factory func(t *testing.T) storage.ProgressStorage

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func event(name, step, chapter string, offset time.Duration) *models.ProgressEvent {
	return &models.ProgressEvent{
		Name:      name,
		StepID:    step,
		ChapterID: chapter,
		Timestamp: base.Add(offset),
	}
}

// applyEvent возвращает UpsertFunc, создающую запись с id при первом событии
func applyEvent(id string, ev *models.ProgressEvent) storage.UpsertFunc {
	return func(existing *models.UserRecord) (*models.UserRecord, error) {
		rec := existing
		if rec == nil {
			rec = models.NewUserRecord(id, ev, ev.Timestamp)
		}
		rec.Apply(ev)
		return rec, nil
	}
}

func upsert(t *testing.T, s storage.ProgressStorage, id string, ev *models.ProgressEvent) *models.UserRecord {
	t.Helper()
	rec, err := s.UpsertUser(context.Background(), models.NormalizeName(ev.Name), applyEvent(id, ev), ev.Timestamp)
	require.NoError(t, err)
	return rec
}

// Run запускает общий набор сценариев над хранилищем
func Run(t *testing.T, newStorage Factory) {
	t.Run("empty aggregate", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)

		a, err := s.GetAnalytics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, a.TotalUsers)
		assert.True(t, a.LastUpdated.IsZero())

		_, err = s.GetUser(ctx, "sarah")
		assert.ErrorIs(t, err, storage.ErrUserNotFound)

		assert.NoError(t, s.Ping(ctx))
	})

	t.Run("first event creates user", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		got := upsert(t, s, "sarah-1", event("Sarah", "html-basics", "1", 0))

		want := &models.UserRecord{
			ID:              "sarah-1",
			Name:            "Sarah",
			NameKey:         "sarah",
			LastStep:        "html-basics",
			LastChapter:     "1",
			LastActivity:    base,
			CreatedAt:       base,
			StepsCompleted:  []string{"html-basics"},
			StepTimestamps:  map[string]time.Time{"html-basics": base},
			ChaptersStarted: map[string]time.Time{"1": base},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("upsert result mismatch (-want +got):\n%s", diff)
		}

		stored, err := s.GetUser(ctx, "sarah")
		require.NoError(t, err)
		if diff := cmp.Diff(want, stored); diff != "" {
			t.Errorf("stored record mismatch (-want +got):\n%s", diff)
		}

		a, err := s.GetAnalytics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, a.TotalUsers)
		assert.True(t, base.Equal(a.LastUpdated))
	})

	t.Run("event without chapter", func(t *testing.T) {
		s := newStorage(t)

		got := upsert(t, s, "terry-1", event("Terry", "intro", "", 0))
		assert.Equal(t, models.UnknownChapter, got.LastChapter)
		assert.Empty(t, got.ChaptersStarted)
	})

	t.Run("case insensitive identity", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		upsert(t, s, "sarah-1", event("Sarah", "html-basics", "1", 0))
		got := upsert(t, s, "sarah-2", event("  sarah ", "add-subtitle", "1", time.Minute))

		assert.Equal(t, "sarah-1", got.ID)
		assert.Equal(t, "Sarah", got.Name)
		assert.Equal(t, []string{"html-basics", "add-subtitle"}, got.StepsCompleted)

		a, err := s.GetAnalytics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, a.TotalUsers)
	})

	t.Run("repeated step keeps order and updates time", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		upsert(t, s, "sarah-1", event("Sarah", "s1", "1", 0))
		upsert(t, s, "sarah-1", event("Sarah", "s2", "2", time.Minute))
		upsert(t, s, "sarah-1", event("Sarah", "s1", "1", 2*time.Minute))

		got, err := s.GetUser(ctx, "sarah")
		require.NoError(t, err)
		assert.Equal(t, []string{"s1", "s2"}, got.StepsCompleted)
		assert.True(t, base.Add(2*time.Minute).Equal(got.StepTimestamps["s1"]))
		assert.Equal(t, "s1", got.LastStep)
		assert.Equal(t, "1", got.LastChapter)
	})

	t.Run("chapter start is written once", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		upsert(t, s, "sarah-1", event("Sarah", "a", "3", 0))
		upsert(t, s, "sarah-1", event("Sarah", "b", "3", time.Hour))

		got, err := s.GetUser(ctx, "sarah")
		require.NoError(t, err)
		assert.True(t, base.Equal(got.ChaptersStarted["3"]))
		assert.True(t, base.Add(time.Hour).Equal(got.LastActivity))
	})

	t.Run("distinct identities", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		upsert(t, s, "sarah-1", event("Sarah", "a", "1", 0))
		upsert(t, s, "terry-1", event("Terry", "a", "1", time.Minute))

		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)

		names := []string{users[0].Name, users[1].Name}
		assert.ElementsMatch(t, []string{"Sarah", "Terry"}, names)

		a, err := s.GetAnalytics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, a.TotalUsers)
		assert.True(t, base.Add(time.Minute).Equal(a.LastUpdated))
	})

	t.Run("failed update writes nothing", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		upsert(t, s, "sarah-1", event("Sarah", "a", "1", 0))

		boom := errors.New("boom")
		_, err := s.UpsertUser(ctx, "sarah", func(existing *models.UserRecord) (*models.UserRecord, error) {
			existing.Apply(event("Sarah", "b", "2", time.Hour))
			return nil, boom
		}, base.Add(time.Hour))
		assert.ErrorIs(t, err, boom)

		got, err := s.GetUser(ctx, "sarah")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got.StepsCompleted)

		a, err := s.GetAnalytics(ctx)
		require.NoError(t, err)
		assert.True(t, base.Equal(a.LastUpdated))
	})

	t.Run("name key mismatch", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		ev := event("Sarah", "a", "1", 0)
		_, err := s.UpsertUser(ctx, "terry", applyEvent("sarah-1", ev), ev.Timestamp)
		assert.ErrorIs(t, err, storage.ErrNameKeyMismatch)

		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		got := upsert(t, s, "sarah-1", event("Sarah", "a", "1", 0))
		got.StepsCompleted = append(got.StepsCompleted, "tampered")
		got.StepTimestamps["tampered"] = base

		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		users[0].ChaptersStarted["9"] = base

		stored, err := s.GetUser(ctx, "sarah")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, stored.StepsCompleted)
		assert.NotContains(t, stored.ChaptersStarted, "9")
	})
}
