// Package progress агрегирует события прогресса учеников на сервере.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/iudanet/tutortrack/internal/curriculum"
	"github.com/iudanet/tutortrack/internal/models"
	"github.com/iudanet/tutortrack/internal/server/storage"
)

const (
	// ActiveWindow задает, кого считать активным в отчете
	ActiveWindow = 7 * 24 * time.Hour

	// fallbackTotalSteps используется, если таблица глав пуста
	fallbackTotalSteps = 20
)

// Report is the admin roll-up returned by Service.Report
type Report struct {
	Analytics   models.Analytics
	Users       []models.UserSummary
	ActiveUsers int
}

// Service принимает события прогресса и строит отчет
type Service struct {
	store  storage.ProgressStorage
	table  *curriculum.Table
	logger *slog.Logger
	locks  *keyLocks
	now    func() time.Time
	newID  func(name string) string
}

// NewService создает сервис агрегации
func NewService(store storage.ProgressStorage, table *curriculum.Table, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		table:  table,
		logger: logger,
		locks:  newKeyLocks(),
		now:    time.Now,
		newID:  NewUserID,
	}
}

// Record merges one validated event into the aggregate and returns the user id.
// Events for the same name are applied one at a time; different names proceed in parallel.
func (s *Service) Record(ctx context.Context, ev *models.ProgressEvent) (string, error) {
	key := models.NormalizeName(ev.Name)

	unlock := s.locks.Lock(key)
	defer unlock()

	created := false
	rec, err := s.store.UpsertUser(ctx, key, func(existing *models.UserRecord) (*models.UserRecord, error) {
		if existing == nil {
			created = true
			existing = models.NewUserRecord(s.newID(ev.Name), ev, s.now())
		}
		existing.Apply(ev)
		return existing, nil
	}, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to record progress: %w", err)
	}

	if created {
		s.logger.Info("new learner", "user_id", rec.ID, "name", rec.Name)
	}
	s.logger.Debug("progress recorded",
		"user_id", rec.ID,
		"step_id", ev.StepID,
		"chapter_id", ev.ChapterID,
	)

	return rec.ID, nil
}

// Report builds per-user summaries sorted by last activity, most recent first
func (s *Service) Report(ctx context.Context) (*Report, error) {
	records, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	analytics, err := s.store.GetAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get analytics: %w", err)
	}

	now := s.now()
	total := s.totalSteps()

	report := &Report{
		Analytics: *analytics,
		Users:     make([]models.UserSummary, 0, len(records)),
	}
	if report.Analytics.LastUpdated.IsZero() {
		report.Analytics.LastUpdated = now
	}

	for _, rec := range records {
		report.Users = append(report.Users, Summarize(rec, total))
		if now.Sub(rec.LastActivity) <= ActiveWindow {
			report.ActiveUsers++
		}
	}

	slices.SortFunc(report.Users, func(a, b models.UserSummary) int {
		if c := b.LastActivity.Compare(a.LastActivity); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return report, nil
}

func (s *Service) totalSteps() int {
	if s.table == nil {
		return fallbackTotalSteps
	}
	if n := s.table.TotalSteps(); n > 0 {
		return n
	}
	return fallbackTotalSteps
}

// Summarize builds the read-only view of one record.
// totalSteps is the size of the whole course and must be positive.
func Summarize(rec *models.UserRecord, totalSteps int) models.UserSummary {
	details := make([]models.StepDetail, 0, len(rec.StepTimestamps))
	for stepID, ts := range rec.StepTimestamps {
		details = append(details, models.StepDetail{StepID: stepID, Timestamp: ts})
	}
	slices.SortFunc(details, func(a, b models.StepDetail) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.StepID, b.StepID)
	})

	// Без начатых глав берется последняя активность
	firstStart := rec.LastActivity
	seen := false
	for _, ts := range rec.ChaptersStarted {
		if !seen || ts.Before(firstStart) {
			firstStart = ts
			seen = true
		}
	}

	chapters := make(map[string]time.Time, len(rec.ChaptersStarted))
	for k, v := range rec.ChaptersStarted {
		chapters[k] = v
	}

	percent := float64(len(rec.StepsCompleted)) / float64(totalSteps) * 100
	if percent > 100 {
		percent = 100
	}

	return models.UserSummary{
		ID:                   rec.ID,
		Name:                 rec.Name,
		LastStep:             rec.LastStep,
		LastChapter:          rec.LastChapter,
		LastActivity:         rec.LastActivity,
		StepsCompleted:       len(rec.StepsCompleted),
		ChaptersStartedCount: len(rec.ChaptersStarted),
		FirstChapterStart:    firstStart,
		StepDetails:          details,
		ChaptersStarted:      chapters,
		ProgressPercent:      percent,
	}
}

// NewUserID builds an id like "sarah-1f2e3d4c" from a display name
func NewUserID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "user"
	}

	return slug + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
