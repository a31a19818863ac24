package models

// ServiceProvider represents an external contractor (gardener, plumber, ...)
// kept on file for the property. It corresponds to the 'service_providers'
// table.
type ServiceProvider struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Category string  `gorm:"not null;index" json:"category"`
	Name     string  `gorm:"not null" json:"name"`
	Email    *string `gorm:"" json:"email,omitempty"` // Nullable
	Phone    *string `gorm:"" json:"phone,omitempty"` // Nullable
	Rating   int     `gorm:"not null;default:0" json:"rating"`
	Notes    *string `gorm:"" json:"notes,omitempty"` // Nullable
	Verified bool    `gorm:"not null;default:false" json:"verified"`
}

// TableName explicitly sets the table name for GORM.
func (ServiceProvider) TableName() string {
	return "service_providers"
}
