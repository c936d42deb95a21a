package db

import (
	"fmt"

	"github.com/naseer2426/clova-ocr/internal/record"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migrations for all models.
func AutoMigrate(database *gorm.DB) error {
	if err := database.AutoMigrate(&record.Record{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
