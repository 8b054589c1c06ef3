package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/tutortrack/internal/client/storage"
)

const keyDisplayName = "display_name"

// SaveDisplayName stores the learner's display name
func (s *Storage) SaveDisplayName(ctx context.Context, name string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketIdentity)
		if bucket == nil {
			return fmt.Errorf("identity bucket not found")
		}

		if err := bucket.Put([]byte(keyDisplayName), []byte(name)); err != nil {
			return fmt.Errorf("failed to save display name: %w", err)
		}

		return nil
	})
}

// GetDisplayName returns the stored display name
func (s *Storage) GetDisplayName(ctx context.Context) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}

	var name string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketIdentity)
		if bucket == nil {
			return fmt.Errorf("identity bucket not found")
		}

		raw := bucket.Get([]byte(keyDisplayName))
		if len(raw) == 0 {
			return storage.ErrNameNotFound
		}

		name = string(raw)
		return nil
	})
	if err != nil {
		return "", err
	}

	return name, nil
}
