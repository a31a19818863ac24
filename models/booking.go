package models

// Booking represents a guest booking request.
// It corresponds to the 'bookings' table.
type Booking struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	GuestName    string  `gorm:"not null" json:"guest_name"`
	GuestEmail   string  `gorm:"not null;index" json:"guest_email"`
	GuestPhone   *string `gorm:"" json:"guest_phone,omitempty"` // Nullable
	CheckIn      string  `gorm:"not null" json:"check_in"`      // ISO date
	CheckOut     string  `gorm:"not null" json:"check_out"`     // ISO date
	Guests       int     `gorm:"not null;default:2" json:"guests"`
	HasPets      bool    `gorm:"not null;default:false" json:"has_pets"`
	TotalPrice   float64 `gorm:"not null" json:"total_price"`
	DiscountCode *string `gorm:"" json:"discount_code,omitempty"` // Nullable
	Notes        *string `gorm:"" json:"notes,omitempty"`         // Nullable
	Status       string  `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt    int64   `gorm:"not null" json:"created_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Booking) TableName() string {
	return "bookings"
}

// Booking statuses considered to block calendar dates.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)
