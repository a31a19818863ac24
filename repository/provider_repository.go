package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/voigt-garten/gartenbackend/models"
)

// ProviderRepository handles database operations for ServiceProvider entities
type ProviderRepository struct {
	DB *gorm.DB
}

// NewProviderRepository creates a new instance of ProviderRepository
func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{DB: db}
}

// Create inserts a new service provider
func (r *ProviderRepository) Create(provider *models.ServiceProvider) error {
	if err := r.DB.Create(provider).Error; err != nil {
		return fmt.Errorf("failed to create service provider %s: %w", provider.Name, err)
	}
	return nil
}

// ListAll retrieves all service providers, optionally filtered by category
func (r *ProviderRepository) ListAll(category string) ([]models.ServiceProvider, error) {
	var providers []models.ServiceProvider
	query := r.DB.Order("rating DESC, name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("failed to list service providers: %w", err)
	}
	return providers, nil
}

// Delete removes a service provider by ID
func (r *ProviderRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.ServiceProvider{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete service provider %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
