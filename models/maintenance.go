package models

// MaintenanceEntry records the completion of a maintenance task.
// It corresponds to the 'maintenance_log' table.
type MaintenanceEntry struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID        int     `gorm:"not null;index" json:"task_id"`
	CompletedBy   string  `gorm:"not null" json:"completed_by"`
	CompletedAt   int64   `gorm:"not null" json:"completed_at"`     // Unix timestamp
	Notes         *string `gorm:"" json:"notes,omitempty"`          // Nullable
	PhotoFilename *string `gorm:"" json:"photo_filename,omitempty"` // Nullable, gallery path fragment
}

// TableName explicitly sets the table name for GORM.
func (MaintenanceEntry) TableName() string {
	return "maintenance_log"
}
