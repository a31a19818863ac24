package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/voigt-garten/gartenbackend/models"
)

// CreditRepository handles database operations for Credit entities
type CreditRepository struct {
	DB *gorm.DB
}

// NewCreditRepository creates a new instance of CreditRepository
func NewCreditRepository(db *gorm.DB) *CreditRepository {
	return &CreditRepository{DB: db}
}

// Create inserts a new credit entry
func (r *CreditRepository) Create(credit *models.Credit) error {
	if credit.CreatedAt == 0 {
		credit.CreatedAt = time.Now().Unix()
	}
	if credit.Type == "" {
		credit.Type = "earned"
	}

	if err := r.DB.Create(credit).Error; err != nil {
		return fmt.Errorf("failed to create credit for %s: %w", credit.GuestEmail, err)
	}
	return nil
}

// ListRecentByGuest returns the most recent credit entries for a guest
func (r *CreditRepository) ListRecentByGuest(guestEmail string, limit int) ([]models.Credit, error) {
	if limit <= 0 {
		limit = 20
	}
	var credits []models.Credit
	err := r.DB.Where("guest_email = ?", guestEmail).
		Order("created_at DESC").Limit(limit).Find(&credits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list credits for %s: %w", guestEmail, err)
	}
	return credits, nil
}
