package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/tutortrack/internal/models"
	"github.com/iudanet/tutortrack/internal/server/storage"
)

// queryer общий интерфейс *sql.DB и *sql.Tx для чтения
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UpsertUser reads, updates and writes one user record in a single transaction
func (s *Storage) UpsertUser(ctx context.Context, nameKey string, fn storage.UpsertFunc, updatedAt time.Time) (*models.UserRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	existing, err := getUser(ctx, tx, nameKey)
	if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		return nil, err
	}

	rec, err := fn(existing)
	if err != nil {
		return nil, err
	}
	if rec.NameKey != nameKey {
		return nil, fmt.Errorf("%w: got %q, want %q", storage.ErrNameKeyMismatch, rec.NameKey, nameKey)
	}

	if err := saveUser(ctx, tx, rec); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO analytics (id, last_updated) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET last_updated = excluded.last_updated
	`
	if _, err := tx.ExecContext(ctx, query, formatTime(updatedAt)); err != nil {
		return nil, fmt.Errorf("failed to update analytics: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rec.Clone(), nil
}

// saveUser записывает запись целиком: строку users, шаги и начатые главы
func saveUser(ctx context.Context, tx *sql.Tx, rec *models.UserRecord) error {
	query := `
		INSERT INTO users (id, name, name_key, last_step, last_chapter, last_activity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_step = excluded.last_step,
			last_chapter = excluded.last_chapter,
			last_activity = excluded.last_activity
	`
	_, err := tx.ExecContext(ctx, query,
		rec.ID,
		rec.Name,
		rec.NameKey,
		rec.LastStep,
		rec.LastChapter,
		formatTime(rec.LastActivity),
		formatTime(rec.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.name_key") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	stepQuery := `
		INSERT INTO user_steps (user_id, step_id, seq, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, step_id) DO UPDATE SET completed_at = excluded.completed_at
	`
	for i, stepID := range rec.StepsCompleted {
		// Шаг без отметки времени бывает только в старых записях
		completedAt, ok := rec.StepTimestamps[stepID]
		if !ok {
			completedAt = rec.LastActivity
		}
		if _, err := tx.ExecContext(ctx, stepQuery, rec.ID, stepID, i, formatTime(completedAt)); err != nil {
			return fmt.Errorf("failed to save step %q: %w", stepID, err)
		}
	}

	// Время начала главы не перезаписывается
	chapterQuery := `
		INSERT INTO user_chapters (user_id, chapter_id, started_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, chapter_id) DO NOTHING
	`
	for chapterID, startedAt := range rec.ChaptersStarted {
		if _, err := tx.ExecContext(ctx, chapterQuery, rec.ID, chapterID, formatTime(startedAt)); err != nil {
			return fmt.Errorf("failed to save chapter %q: %w", chapterID, err)
		}
	}

	return nil
}

// GetUser retrieves user by normalized name
func (s *Storage) GetUser(ctx context.Context, nameKey string) (*models.UserRecord, error) {
	return getUser(ctx, s.db, nameKey)
}

func getUser(ctx context.Context, q queryer, nameKey string) (*models.UserRecord, error) {
	query := `
		SELECT id, name, name_key, last_step, last_chapter, last_activity, created_at
		FROM users
		WHERE name_key = ?
	`

	rec, err := scanUser(q.QueryRowContext(ctx, query, nameKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	byID := map[string]*models.UserRecord{rec.ID: rec}
	if err := loadSteps(ctx, q, byID, "WHERE user_id = ?", rec.ID); err != nil {
		return nil, err
	}
	if err := loadChapters(ctx, q, byID, "WHERE user_id = ?", rec.ID); err != nil {
		return nil, err
	}

	return rec, nil
}

// ListUsers returns all user records
func (s *Storage) ListUsers(ctx context.Context) ([]*models.UserRecord, error) {
	query := `
		SELECT id, name, name_key, last_step, last_chapter, last_activity, created_at
		FROM users
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var users []*models.UserRecord
	byID := make(map[string]*models.UserRecord)
	for rows.Next() {
		rec, err := scanUser(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, rec)
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	// Соединение одно, поэтому курсор закрываем до следующего запроса
	_ = rows.Close()

	if err := loadSteps(ctx, s.db, byID, ""); err != nil {
		return nil, err
	}
	if err := loadChapters(ctx, s.db, byID, ""); err != nil {
		return nil, err
	}

	return users, nil
}

// GetAnalytics returns the aggregate counters
func (s *Storage) GetAnalytics(ctx context.Context) (*models.Analytics, error) {
	a := &models.Analytics{}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&a.TotalUsers); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var lastUpdated string
	err := s.db.QueryRowContext(ctx, `SELECT last_updated FROM analytics WHERE id = 1`).Scan(&lastUpdated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Событий еще не было
	case err != nil:
		return nil, fmt.Errorf("failed to get analytics: %w", err)
	default:
		if a.LastUpdated, err = parseTime(lastUpdated); err != nil {
			return nil, err
		}
	}

	return a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.UserRecord, error) {
	rec := &models.UserRecord{}
	var lastActivity, createdAt string

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.NameKey,
		&rec.LastStep,
		&rec.LastChapter,
		&lastActivity,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if rec.LastActivity, err = parseTime(lastActivity); err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	rec.Normalize()

	return rec, nil
}

// loadSteps дописывает шаги в записи из byID в порядке их первого прохождения
func loadSteps(ctx context.Context, q queryer, byID map[string]*models.UserRecord, where string, args ...any) error {
	query := `SELECT user_id, step_id, completed_at FROM user_steps ` + where + ` ORDER BY user_id, seq`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load steps: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var userID, stepID, completedAt string
		if err := rows.Scan(&userID, &stepID, &completedAt); err != nil {
			return fmt.Errorf("failed to scan step: %w", err)
		}
		rec, ok := byID[userID]
		if !ok {
			continue
		}
		ts, err := parseTime(completedAt)
		if err != nil {
			return err
		}
		rec.StepsCompleted = append(rec.StepsCompleted, stepID)
		rec.StepTimestamps[stepID] = ts
	}

	return rows.Err()
}

func loadChapters(ctx context.Context, q queryer, byID map[string]*models.UserRecord, where string, args ...any) error {
	query := `SELECT user_id, chapter_id, started_at FROM user_chapters ` + where

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load chapters: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var userID, chapterID, startedAt string
		if err := rows.Scan(&userID, &chapterID, &startedAt); err != nil {
			return fmt.Errorf("failed to scan chapter: %w", err)
		}
		rec, ok := byID[userID]
		if !ok {
			continue
		}
		ts, err := parseTime(startedAt)
		if err != nil {
			return err
		}
		rec.ChaptersStarted[chapterID] = ts
	}

	return rows.Err()
}

// Время хранится строкой RFC 3339 в UTC
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored time %q: %w", s, err)
	}
	return t, nil
}
