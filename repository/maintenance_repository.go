package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/voigt-garten/gartenbackend/models"
)

// MaintenanceRepository handles database operations for the maintenance log
type MaintenanceRepository struct {
	DB *gorm.DB
}

// NewMaintenanceRepository creates a new instance of MaintenanceRepository
func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{DB: db}
}

// Create records the completion of a maintenance task
func (r *MaintenanceRepository) Create(entry *models.MaintenanceEntry) error {
	if entry.CompletedAt == 0 {
		entry.CompletedAt = time.Now().Unix()
	}

	if err := r.DB.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create maintenance entry for task %d: %w", entry.TaskID, err)
	}
	return nil
}

// ListRecent returns the most recent maintenance entries
func (r *MaintenanceRepository) ListRecent(limit int) ([]models.MaintenanceEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.MaintenanceEntry
	err := r.DB.Order("completed_at DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance entries: %w", err)
	}
	return entries, nil
}
