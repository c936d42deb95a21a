package record

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the persistence interface behind Store.
type Repository interface {
	FindByObjectKey(ctx context.Context, objectKey string) (*Record, error)
	Create(ctx context.Context, rec *Record) error
	Save(ctx context.Context, rec *Record) error
	// Transact runs fn against a repository bound to a single transaction.
	Transact(ctx context.Context, fn func(repo Repository) error) error
}

var _ Repository = &GormRepository{}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindByObjectKey(ctx context.Context, objectKey string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Where("object_key = ?", objectKey).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find ocr record %q: %w", objectKey, err)
	}
	return &rec, nil
}

func (r *GormRepository) Create(ctx context.Context, rec *Record) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("create ocr record %q: %w", rec.ObjectKey, err)
	}
	return nil
}

func (r *GormRepository) Save(ctx context.Context, rec *Record) error {
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("save ocr record %q: %w", rec.ObjectKey, err)
	}
	return nil
}

func (r *GormRepository) Transact(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}
