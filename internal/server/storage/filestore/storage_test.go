package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tutortrack/internal/models"
	"github.com/iudanet/tutortrack/internal/server/storage"
	"github.com/iudanet/tutortrack/internal/server/storage/storagetest"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progress-data.json")
	s, err := New(context.Background(), path)
	require.NoError(t, err)
	return s, path
}

func TestStorage_Conformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.ProgressStorage {
		s, _ := newTestStorage(t)
		return s
	})
}

func createUser(t *testing.T, s *Storage, id string, ev *models.ProgressEvent) {
	t.Helper()
	_, err := s.UpsertUser(context.Background(), models.NormalizeName(ev.Name), func(existing *models.UserRecord) (*models.UserRecord, error) {
		rec := existing
		if rec == nil {
			rec = models.NewUserRecord(id, ev, ev.Timestamp)
		}
		rec.Apply(ev)
		return rec, nil
	}, ev.Timestamp)
	require.NoError(t, err)
}

func TestNew_MissingFileIsEmpty(t *testing.T) {
	s, path := newTestStorage(t)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	// Файл создается только при первой записи
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNew_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress-data.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	s, err := New(context.Background(), path)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestWrite_OriginalLayout(t *testing.T) {
	s, path := newTestStorage(t)
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	createUser(t, s, "sarah-1", &models.ProgressEvent{Name: "Sarah", StepID: "html-basics", ChapterID: "1", Timestamp: ts})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw struct {
		Users     map[string]map[string]any `json:"users"`
		Analytics map[string]any            `json:"analytics"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Contains(t, raw.Users, "sarah-1")
	user := raw.Users["sarah-1"]
	assert.Equal(t, "Sarah", user["name"])
	assert.Equal(t, "html-basics", user["lastStep"])
	assert.Equal(t, "1", user["lastChapter"])
	assert.Equal(t, "2025-03-01T10:00:00Z", user["lastActivity"])
	assert.Equal(t, []any{"html-basics"}, user["stepsCompleted"])
	assert.Contains(t, user, "stepTimestamps")
	assert.Contains(t, user, "chaptersStarted")
	assert.NotContains(t, user, "id")

	assert.Equal(t, float64(1), raw.Analytics["totalUsers"])
	assert.Equal(t, "2025-03-01T10:00:00Z", raw.Analytics["lastUpdated"])

	// Временных файлов не остается
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNew_LoadsLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress-data.json")
	legacy := `{
  "users": {
    "sarah-abc": {
      "name": "Sarah",
      "lastStep": "add-subtitle",
      "lastChapter": "1",
      "lastActivity": "2025-03-01T10:00:00.000Z",
      "stepsCompleted": ["html-basics", "add-subtitle"],
      "chaptersStarted": {"1": "2025-03-01T09:00:00.000Z"}
    }
  },
  "analytics": {"totalUsers": 7, "lastUpdated": "2025-03-01T10:00:00.000Z"}
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	s, err := New(context.Background(), path)
	require.NoError(t, err)

	rec, err := s.GetUser(context.Background(), "sarah")
	require.NoError(t, err)
	assert.Equal(t, "sarah-abc", rec.ID)
	assert.Equal(t, []string{"html-basics", "add-subtitle"}, rec.StepsCompleted)
	assert.NotNil(t, rec.StepTimestamps)

	// totalUsers пересчитывается по числу записей
	a, err := s.GetAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, a.TotalUsers)

	// Новое событие от "SARAH" попадает в ту же запись
	createUser(t, s, "sarah-new", &models.ProgressEvent{
		Name: "SARAH", StepID: "simple-form", ChapterID: "2",
		Timestamp: time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
	})
	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "sarah-abc", users[0].ID)
	assert.Len(t, users[0].StepsCompleted, 3)
}

func TestStorage_SurvivesRestart(t *testing.T) {
	s, path := newTestStorage(t)
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	createUser(t, s, "terry-1", &models.ProgressEvent{Name: "Terry", StepID: "a", Timestamp: ts})

	reopened, err := New(context.Background(), path)
	require.NoError(t, err)

	rec, err := reopened.GetUser(context.Background(), "terry")
	require.NoError(t, err)
	assert.Equal(t, "terry-1", rec.ID)
	assert.Equal(t, models.UnknownChapter, rec.LastChapter)
}

func TestUpsertUser_WriteFailureKeepsCache(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")

	s, err := New(context.Background(), filepath.Join(blocker, "progress-data.json"))
	require.NoError(t, err)

	// Каталог подменяется обычным файлом, запись становится невозможной
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	ev := &models.ProgressEvent{Name: "Sarah", StepID: "a", Timestamp: time.Now().UTC()}
	_, err = s.UpsertUser(context.Background(), "sarah", func(existing *models.UserRecord) (*models.UserRecord, error) {
		rec := models.NewUserRecord("sarah-1", ev, ev.Timestamp)
		rec.Apply(ev)
		return rec, nil
	}, ev.Timestamp)
	require.Error(t, err)

	_, err = s.GetUser(context.Background(), "sarah")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	a, err := s.GetAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, a.TotalUsers)
}

func TestUpsertUser_RejectsSecondRecordForName(t *testing.T) {
	s, _ := newTestStorage(t)
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	createUser(t, s, "sarah-1", &models.ProgressEvent{Name: "Sarah", StepID: "a", Timestamp: ts})

	_, err := s.UpsertUser(context.Background(), "sarah", func(existing *models.UserRecord) (*models.UserRecord, error) {
		ev := &models.ProgressEvent{Name: "Sarah", StepID: "b", Timestamp: ts}
		rec := models.NewUserRecord("sarah-2", ev, ts)
		rec.Apply(ev)
		return rec, nil
	}, ts)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}
