package progress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/tutortrack/internal/curriculum"
	"github.com/iudanet/tutortrack/internal/models"
	"github.com/iudanet/tutortrack/internal/server/storage"
	"github.com/iudanet/tutortrack/internal/server/storage/filestore"
	"github.com/iudanet/tutortrack/internal/server/storage/sqlite"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := filestore.New(context.Background(), filepath.Join(t.TempDir(), "progress-data.json"))
	require.NoError(t, err)

	svc := NewService(store, curriculum.Default(), setupTestLogger())
	svc.now = func() time.Time { return base.Add(time.Hour) }
	return svc
}

func ev(name, step, chapter string, offset time.Duration) *models.ProgressEvent {
	return &models.ProgressEvent{Name: name, StepID: step, ChapterID: chapter, Timestamp: base.Add(offset)}
}

func TestRecord_CaseInsensitiveIdentity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	id1, err := svc.Record(ctx, ev("Sarah", "html-basics", "1", 0))
	require.NoError(t, err)
	id2, err := svc.Record(ctx, ev("sarah", "add-subtitle", "1", time.Minute))
	require.NoError(t, err)

	assert.Equal(t, id1, id2)

	report, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Analytics.TotalUsers)
	require.Len(t, report.Users, 1)
	assert.Equal(t, "Sarah", report.Users[0].Name)
	assert.Equal(t, 2, report.Users[0].StepsCompleted)
}

func TestRecord_NewUserID(t *testing.T) {
	svc := newTestService(t)

	id, err := svc.Record(context.Background(), ev("Mary Ann", "intro", "", 0))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^mary-ann-[0-9a-f]{8}$`), id)
}

func TestRecord_SetsLastUpdatedFromServerClock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Record(ctx, ev("Sarah", "a", "1", 0))
	require.NoError(t, err)

	report, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.True(t, base.Add(time.Hour).Equal(report.Analytics.LastUpdated))
}

func TestRecord_ConcurrentSameUserLosesNothing(t *testing.T) {
	ctx := context.Background()
	for name, store := range map[string]storage.ProgressStorage{
		"file":   mustFileStore(t),
		"sqlite": mustSQLiteStore(t),
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewService(store, curriculum.Default(), setupTestLogger())

			const n = 25
			g, gctx := errgroup.WithContext(ctx)
			for i := 0; i < n; i++ {
				g.Go(func() error {
					// Разный регистр имени, одна личность
					names := []string{"Sarah", "SARAH", "sarah"}
					_, err := svc.Record(gctx, ev(names[i%3], fmt.Sprintf("step-%02d", i), "1", time.Duration(i)*time.Second))
					return err
				})
			}
			require.NoError(t, g.Wait())

			report, err := svc.Report(ctx)
			require.NoError(t, err)
			require.Len(t, report.Users, 1)
			assert.Equal(t, n, report.Users[0].StepsCompleted)
			assert.Len(t, report.Users[0].StepDetails, n)
			assert.Equal(t, 0, svc.locks.size())
		})
	}
}

func mustFileStore(t *testing.T) storage.ProgressStorage {
	t.Helper()
	s, err := filestore.New(context.Background(), filepath.Join(t.TempDir(), "progress-data.json"))
	require.NoError(t, err)
	return s
}

func mustSQLiteStore(t *testing.T) storage.ProgressStorage {
	t.Helper()
	s, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestReport_Summaries(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	steps := []*models.ProgressEvent{
		ev("Sarah", "html-basics", "1", 0),
		ev("Sarah", "add-subtitle", "1", 10*time.Minute),
		ev("Sarah", "add-basic-styles", "3", 20*time.Minute),
		ev("Sarah", "html-basics", "1", 30*time.Minute),
		ev("Terry", "intro", "", 5*time.Minute),
	}
	for _, e := range steps {
		_, err := svc.Record(ctx, e)
		require.NoError(t, err)
	}

	report, err := svc.Report(ctx)
	require.NoError(t, err)
	require.Len(t, report.Users, 2)

	// Сортировка по последней активности, сначала свежие
	sarah, terry := report.Users[0], report.Users[1]
	assert.Equal(t, "Sarah", sarah.Name)
	assert.Equal(t, "Terry", terry.Name)

	assert.Equal(t, "html-basics", sarah.LastStep)
	assert.Equal(t, "1", sarah.LastChapter)
	assert.True(t, base.Add(30*time.Minute).Equal(sarah.LastActivity))
	assert.Equal(t, 3, sarah.StepsCompleted)
	assert.Equal(t, 2, sarah.ChaptersStartedCount)
	assert.True(t, base.Equal(sarah.FirstChapterStart))
	assert.True(t, base.Add(20*time.Minute).Equal(sarah.ChaptersStarted["3"]))

	require.Len(t, sarah.StepDetails, 3)
	assert.Equal(t, "html-basics", sarah.StepDetails[0].StepID)
	assert.Equal(t, "add-basic-styles", sarah.StepDetails[1].StepID)
	assert.Equal(t, "add-subtitle", sarah.StepDetails[2].StepID)

	// Без глав firstChapterStart равен последней активности
	assert.Equal(t, models.UnknownChapter, terry.LastChapter)
	assert.True(t, terry.LastActivity.Equal(terry.FirstChapterStart))
	assert.Equal(t, 0, terry.ChaptersStartedCount)

	assert.Equal(t, 2, report.ActiveUsers)
	assert.Equal(t, 2, report.Analytics.TotalUsers)
}

func TestReport_EmptyAggregate(t *testing.T) {
	svc := newTestService(t)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Users)
	assert.NotNil(t, report.Users)
	assert.Equal(t, 0, report.Analytics.TotalUsers)
	assert.True(t, base.Add(time.Hour).Equal(report.Analytics.LastUpdated))
}

func TestReport_ActiveUsersWindow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Record(ctx, ev("Old", "a", "1", 0))
	require.NoError(t, err)
	_, err = svc.Record(ctx, ev("Fresh", "a", "1", 6*24*time.Hour))
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(8 * 24 * time.Hour) }

	report, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ActiveUsers)
}

func TestReport_TiesSortedByName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, name := range []string{"Zed", "Amy", "Kim"} {
		_, err := svc.Record(ctx, ev(name, "a", "1", 0))
		require.NoError(t, err)
	}

	report, err := svc.Report(ctx)
	require.NoError(t, err)
	require.Len(t, report.Users, 3)
	assert.Equal(t, "Amy", report.Users[0].Name)
	assert.Equal(t, "Kim", report.Users[1].Name)
	assert.Equal(t, "Zed", report.Users[2].Name)
}

func TestSummarize_ProgressPercent(t *testing.T) {
	rec := models.NewUserRecord("u", ev("U", "a", "1", 0), base)
	for i := 0; i < 5; i++ {
		rec.Apply(ev("U", fmt.Sprintf("s%d", i), "1", time.Duration(i)*time.Minute))
	}

	assert.InDelta(t, 25.0, Summarize(rec, 20).ProgressPercent, 0.001)
	assert.InDelta(t, 100.0, Summarize(rec, 3).ProgressPercent, 0.001)
}

// failingStore возвращает ошибку на любую операцию
type failingStore struct {
	storage.ProgressStorage
	err error
}

func (f *failingStore) UpsertUser(context.Context, string, storage.UpsertFunc, time.Time) (*models.UserRecord, error) {
	return nil, f.err
}

func (f *failingStore) ListUsers(context.Context) ([]*models.UserRecord, error) {
	return nil, f.err
}

func TestService_StorageErrors(t *testing.T) {
	diskErr := errors.New("disk full")
	svc := NewService(&failingStore{err: diskErr}, curriculum.Default(), setupTestLogger())

	_, err := svc.Record(context.Background(), ev("Sarah", "a", "1", 0))
	assert.ErrorIs(t, err, diskErr)

	_, err = svc.Report(context.Background())
	assert.ErrorIs(t, err, diskErr)
}

func TestNewUserID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"Sarah", "sarah-"},
		{"  Mary   Ann ", "mary-ann-"},
		{"O'Neil!", "o-neil-"},
		{"Алиса", "user-"},
		{"", "user-"},
		{"R2D2", "r2d2-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewUserID(tt.name)
			assert.True(t, len(id) == len(tt.prefix)+8, id)
			assert.Equal(t, tt.prefix, id[:len(tt.prefix)])
		})
	}

	assert.NotEqual(t, NewUserID("Sarah"), NewUserID("Sarah"))
}
