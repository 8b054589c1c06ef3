// Package filestore хранит весь агрегат прогресса в одном JSON файле.
// Формат файла совместим с исходным progress-data.json:
//
//	{"users": {"<userId>": {...}}, "analytics": {"totalUsers": N, "lastUpdated": "..."}}
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/iudanet/tutortrack/internal/models"
	"github.com/iudanet/tutortrack/internal/server/storage"
)

type document struct {
	Users     map[string]*models.UserRecord `json:"users"`
	Analytics models.Analytics              `json:"analytics"`
}

// Storage represents file-backed storage implementation
type Storage struct {
	doc   *document
	index map[string]string // name key -> user id
	path  string
	mu    sync.RWMutex
}

var _ storage.ProgressStorage = (*Storage)(nil)

// New loads the aggregate from path. A missing file is an empty aggregate;
// an unreadable one is an error so that it is never overwritten.
func New(ctx context.Context, path string) (*Storage, error) {
	s := &Storage{path: path}

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	s.doc = doc
	s.index = buildIndex(doc.Users)

	return s, nil
}

func (s *Storage) read() (*document, error) {
	doc := &document{Users: make(map[string]*models.UserRecord)}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode data file %s: %w", s.path, err)
	}
	if doc.Users == nil {
		doc.Users = make(map[string]*models.UserRecord)
	}
	for id, rec := range doc.Users {
		if rec == nil {
			delete(doc.Users, id)
			continue
		}
		rec.ID = id
		rec.Normalize()
	}
	doc.Analytics.TotalUsers = len(doc.Users)

	return doc, nil
}

// buildIndex строит индекс имя -> id. Если в старом файле несколько записей
// с одинаковым именем, побеждает наименьший id.
func buildIndex(users map[string]*models.UserRecord) map[string]string {
	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	index := make(map[string]string, len(users))
	for _, id := range ids {
		key := users[id].NameKey
		if _, ok := index[key]; !ok {
			index[key] = id
		}
	}
	return index
}

// write атомарно заменяет файл: пишем во временный и переименовываем
func (s *Storage) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	return nil
}

// UpsertUser updates one record and rewrites the whole file
func (s *Storage) UpsertUser(ctx context.Context, nameKey string, fn storage.UpsertFunc, updatedAt time.Time) (*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing *models.UserRecord
	existingID, found := s.index[nameKey]
	if found {
		existing = s.doc.Users[existingID].Clone()
	}

	rec, err := fn(existing)
	if err != nil {
		return nil, err
	}
	if rec.NameKey != nameKey {
		return nil, fmt.Errorf("%w: got %q, want %q", storage.ErrNameKeyMismatch, rec.NameKey, nameKey)
	}
	if found && rec.ID != existingID {
		return nil, storage.ErrUserAlreadyExists
	}
	if other, ok := s.doc.Users[rec.ID]; ok && other.NameKey != nameKey {
		return nil, storage.ErrUserAlreadyExists
	}

	// Новый документ собираем рядом, чтобы ошибка записи не испортила кэш
	users := make(map[string]*models.UserRecord, len(s.doc.Users)+1)
	for id, u := range s.doc.Users {
		users[id] = u
	}
	users[rec.ID] = rec.Clone()

	next := &document{
		Users: users,
		Analytics: models.Analytics{
			TotalUsers:  len(users),
			LastUpdated: updatedAt,
		},
	}
	if err := s.write(next); err != nil {
		return nil, err
	}

	s.doc = next
	s.index[nameKey] = rec.ID

	return rec.Clone(), nil
}

// GetUser retrieves user by normalized name
func (s *Storage) GetUser(ctx context.Context, nameKey string) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.index[nameKey]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return s.doc.Users[id].Clone(), nil
}

// ListUsers returns all user records
func (s *Storage) ListUsers(ctx context.Context) ([]*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.UserRecord, 0, len(s.doc.Users))
	for _, u := range s.doc.Users {
		users = append(users, u.Clone())
	}
	return users, nil
}

// GetAnalytics returns the aggregate counters
func (s *Storage) GetAnalytics(ctx context.Context) (*models.Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.doc.Analytics
	a.TotalUsers = len(s.doc.Users)
	return &a, nil
}

// Ping checks that the data directory is reachable
func (s *Storage) Ping(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	return nil
}

// Close is a no-op; every update is already on disk
func (s *Storage) Close() error {
	return nil
}
