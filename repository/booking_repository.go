package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/voigt-garten/gartenbackend/models"
)

// BookingRepository handles database operations for Booking entities
type BookingRepository struct {
	DB *gorm.DB
}

// NewBookingRepository creates a new instance of BookingRepository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

// Create inserts a new booking request
func (r *BookingRepository) Create(booking *models.Booking) error {
	if booking.CreatedAt == 0 {
		booking.CreatedAt = time.Now().Unix()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	if booking.Guests == 0 {
		booking.Guests = 2
	}

	if err := r.DB.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking for %s: %w", booking.GuestEmail, err)
	}
	return nil
}

// GetByID retrieves a booking by its ID
func (r *BookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.DB.First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get booking by ID %d: %w", id, err)
	}
	return &booking, nil
}

// BookedRange is a check-in/check-out pair blocking calendar dates.
type BookedRange struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// ListBlockedRanges returns the date ranges of pending and confirmed bookings
func (r *BookingRepository) ListBlockedRanges() ([]BookedRange, error) {
	var bookings []models.Booking
	err := r.DB.Where("status IN ?", []string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Select("check_in", "check_out").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked booking ranges: %w", err)
	}

	ranges := make([]BookedRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, BookedRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut})
	}
	return ranges, nil
}

// UpdateStatus changes a booking's status
func (r *BookingRepository) UpdateStatus(id uint, status string) error {
	result := r.DB.Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update booking %d status: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
