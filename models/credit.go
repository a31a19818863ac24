package models

// Credit represents a credit entry earned or spent by a guest.
// It corresponds to the 'credits' table.
type Credit struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	GuestEmail string  `gorm:"not null;index" json:"guest_email"`
	Amount     float64 `gorm:"not null" json:"amount"`
	Reason     string  `gorm:"not null" json:"reason"`
	Type       string  `gorm:"not null;default:'earned'" json:"type"`
	CreatedAt  int64   `gorm:"not null" json:"created_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Credit) TableName() string {
	return "credits"
}
