package record

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Store implements create/update of OCR records on top of a Repository.
type Store struct {
	repo Repository
	log  logrus.FieldLogger
}

func NewStore(repo Repository, log logrus.FieldLogger) *Store {
	return &Store{repo: repo, log: log}
}

// Create registers a new object key with an empty result.
func (s *Store) Create(ctx context.Context, objectKey string) (*Record, error) {
	rec := &Record{ObjectKey: objectKey}
	err := s.repo.Transact(ctx, func(repo Repository) error {
		_, err := repo.FindByObjectKey(ctx, objectKey)
		if err == nil {
			return ErrDuplicateKey
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		return repo.Create(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("object_key", objectKey).Info("created ocr record")
	return rec, nil
}

// Update stores text as the OCR result of objectKey. It returns ErrNotFound
// when the key was never registered.
func (s *Store) Update(ctx context.Context, objectKey, text string) (*Record, error) {
	var updated *Record
	err := s.repo.Transact(ctx, func(repo Repository) error {
		rec, err := repo.FindByObjectKey(ctx, objectKey)
		if err != nil {
			return err
		}
		rec.OcrResult = &text
		if err := repo.Save(ctx, rec); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("object_key", objectKey).Info("updated ocr record")
	return updated, nil
}

func (s *Store) Get(ctx context.Context, objectKey string) (*Record, error) {
	return s.repo.FindByObjectKey(ctx, objectKey)
}
