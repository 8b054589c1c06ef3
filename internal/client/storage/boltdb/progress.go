package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/tutortrack/internal/client/storage"
	"github.com/iudanet/tutortrack/internal/models"
)

// keyProgress совпадает с ключом, под которым прогресс хранился в браузере
const keyProgress = "ba-tutorial-progress"

// SaveProgress stores the full progress record as JSON
func (s *Storage) SaveProgress(ctx context.Context, p *models.LocalProgress) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProgress)
		if bucket == nil {
			return fmt.Errorf("progress bucket not found")
		}

		if err := bucket.Put([]byte(keyProgress), data); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}

		return nil
	})
}

// GetProgress retrieves the stored progress record
func (s *Storage) GetProgress(ctx context.Context) (*models.LocalProgress, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProgress)
		if bucket == nil {
			return fmt.Errorf("progress bucket not found")
		}

		raw := bucket.Get([]byte(keyProgress))
		if raw == nil {
			return storage.ErrProgressNotFound
		}

		// Срез валиден только внутри транзакции
		data = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	p := models.NewLocalProgress()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrCorruptProgress, err)
	}
	p.Normalize()

	return p, nil
}

// DeleteProgress removes the stored progress record
func (s *Storage) DeleteProgress(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProgress)
		if bucket == nil {
			return fmt.Errorf("progress bucket not found")
		}

		if err := bucket.Delete([]byte(keyProgress)); err != nil {
			return fmt.Errorf("failed to delete progress: %w", err)
		}

		return nil
	})
}
