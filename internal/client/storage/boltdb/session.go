package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/tutortrack/internal/client/storage"
)

const keyCurrentSession = "current"

// SaveSession saves the admin session to BoltDB
func (s *Storage) SaveSession(ctx context.Context, session *storage.AdminSession) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		if err := bucket.Put([]byte(keyCurrentSession), data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		return nil
	})
}

// GetSession retrieves the cached admin session from BoltDB
func (s *Storage) GetSession(ctx context.Context) (*storage.AdminSession, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var session storage.AdminSession
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get([]byte(keyCurrentSession))
		if data == nil {
			return storage.ErrSessionNotFound
		}

		if err := json.Unmarshal(data, &session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// DeleteSession removes the cached admin session from BoltDB
func (s *Storage) DeleteSession(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Delete([]byte(keyCurrentSession)); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		return nil
	})
}
