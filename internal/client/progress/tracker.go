// Package progress хранит прогресс ученика локально и сообщает о нем серверу.
package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/tutortrack/internal/client/storage"
	"github.com/iudanet/tutortrack/internal/models"
)

//go:generate moq -out reporter_mock.go . Reporter

// Reporter отправляет событие прогресса на сервер без ожидания результата
type Reporter interface {
	Report(ctx context.Context, stepID, chapterID string)
}

// Tracker is the learner's local progress store.
//
// Every mutation is written to storage before the method returns. When storage
// fails the change is kept in memory and a warning is logged.
type Tracker struct {
	store    storage.ProgressStorage
	reporter Reporter
	logger   *slog.Logger
	now      func() time.Time
	progress *models.LocalProgress
	mu       sync.RWMutex
}

// NewTracker loads saved progress and returns a ready Tracker.
// A missing or unreadable record starts an empty one. reporter may be nil.
func NewTracker(ctx context.Context, store storage.ProgressStorage, reporter Reporter, logger *slog.Logger) *Tracker {
	t := &Tracker{
		store:    store,
		reporter: reporter,
		logger:   logger,
		now:      time.Now,
	}
	t.progress = t.load(ctx)
	return t
}

func (t *Tracker) load(ctx context.Context) *models.LocalProgress {
	p, err := t.store.GetProgress(ctx)
	switch {
	case err == nil:
		return p
	case errors.Is(err, storage.ErrProgressNotFound):
		return models.NewLocalProgress()
	case errors.Is(err, storage.ErrCorruptProgress):
		t.logger.Warn("saved progress is corrupt, starting fresh", "error", err)
		return models.NewLocalProgress()
	default:
		t.logger.Warn("failed to load progress, continuing in memory", "error", err)
		return models.NewLocalProgress()
	}
}

// persist сохраняет текущее состояние; вызывается под t.mu
func (t *Tracker) persist(ctx context.Context) {
	if err := t.store.SaveProgress(ctx, t.progress.Clone()); err != nil {
		t.logger.Warn("failed to persist progress, continuing in memory", "error", err)
	}
}

func (t *Tracker) touch() {
	now := t.now()
	t.progress.LastVisited = &now
}

// MarkStepComplete records a step as done and reports it to the server.
// Repeating a step changes nothing but LastVisited and is still reported.
// chapterID may be empty.
func (t *Tracker) MarkStepComplete(ctx context.Context, stepID, chapterID string) {
	t.mu.Lock()
	t.progress.CompletedSteps[stepID] = true
	t.touch()
	t.persist(ctx)
	t.mu.Unlock()

	t.report(ctx, stepID, chapterID)
}

// MarkSectionComplete records a section as done. The server receives it as a
// plain step event without a chapter.
func (t *Tracker) MarkSectionComplete(ctx context.Context, sectionID string) {
	t.mu.Lock()
	t.progress.CompletedSections[sectionID] = true
	t.touch()
	t.persist(ctx)
	t.mu.Unlock()

	t.report(ctx, sectionID, "")
}

func (t *Tracker) report(ctx context.Context, stepID, chapterID string) {
	if t.reporter == nil {
		return
	}
	t.reporter.Report(ctx, stepID, chapterID)
}

// SaveCode overwrites the learner's code for a step
func (t *Tracker) SaveCode(ctx context.Context, stepID, code string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress.CurrentCode[stepID] = code
	t.touch()
	t.persist(ctx)
}

// Code returns the saved code for a step
func (t *Tracker) Code(stepID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	code, ok := t.progress.CurrentCode[stepID]
	return code, ok
}

// IsStepComplete reports whether the step has been completed
func (t *Tracker) IsStepComplete(stepID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.progress.CompletedSteps[stepID]
}

// IsSectionComplete reports whether the section has been completed
func (t *Tracker) IsSectionComplete(sectionID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.progress.CompletedSections[sectionID]
}

// CompletedStepCount returns the number of distinct completed steps
func (t *Tracker) CompletedStepCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.progress.CompletedSteps)
}

// CompletedSteps returns completed step ids in sorted order
func (t *Tracker) CompletedSteps() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	steps := make([]string, 0, len(t.progress.CompletedSteps))
	for id, done := range t.progress.CompletedSteps {
		if done {
			steps = append(steps, id)
		}
	}
	slices.Sort(steps)
	return steps
}

// LastVisited returns the time of the last recorded activity
func (t *Tracker) LastVisited() (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.progress.LastVisited == nil {
		return time.Time{}, false
	}
	return *t.progress.LastVisited, true
}

// Reset clears all local progress. This cannot be undone.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress = models.NewLocalProgress()
	if err := t.store.DeleteProgress(ctx); err != nil {
		t.logger.Warn("failed to delete saved progress", "error", err)
	}
}

// ExportSnapshot returns the full local state as indented JSON
func (t *Tracker) ExportSnapshot() (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	data, err := json.MarshalIndent(t.progress, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImportSnapshot replaces the whole local state with a snapshot produced by
// ExportSnapshot. It returns false and keeps the current state when the
// snapshot cannot be decoded.
func (t *Tracker) ImportSnapshot(ctx context.Context, snapshot string) bool {
	p, err := decodeSnapshot(snapshot)
	if err != nil {
		t.logger.Warn("failed to import progress snapshot", "error", err)
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress = p
	t.persist(ctx)
	return true
}

var errNotObject = errors.New("snapshot must be a JSON object")

func decodeSnapshot(snapshot string) (*models.LocalProgress, error) {
	data := bytes.TrimSpace([]byte(snapshot))
	if len(data) == 0 || data[0] != '{' {
		return nil, errNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	p := &models.LocalProgress{}
	if err := dec.Decode(p); err != nil {
		return nil, err
	}

	// После объекта ничего быть не должно
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after snapshot")
	}

	p.Normalize()
	return p, nil
}
