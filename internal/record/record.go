package record

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no record exists for an object key.
	ErrNotFound = errors.New("ocr record not found")

	// ErrDuplicateKey is returned when a record already exists for an object key.
	ErrDuplicateKey = errors.New("ocr record already exists")
)

// Record is the persisted OCR result of one uploaded image.
type Record struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ObjectKey string    `gorm:"uniqueIndex;not null" json:"objectKey"`
	OcrResult *string   `gorm:"type:text" json:"ocrResult"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Record) TableName() string {
	return "ocr_data"
}
