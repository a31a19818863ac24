package repository

import (
	"github.com/voigt-garten/gartenbackend/models"
)

// AssetRepositoryInterface defines the methods for gallery asset data
// operations. It satisfies media.AssetRepository plus the category listing
// the HTTP layer needs.
type AssetRepositoryInterface interface {
	Create(asset *models.Asset) error
	GetByID(id string) (*models.Asset, error)
	ListAll() ([]models.Asset, error)
	ListByCategory(category string) ([]models.Asset, error)
	ListCategories() ([]string, error)
	Delete(id string) error
}

// BookingRepositoryInterface defines the methods for booking data operations
type BookingRepositoryInterface interface {
	Create(booking *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	ListBlockedRanges() ([]BookedRange, error)
	UpdateStatus(id uint, status string) error
}

// CreditRepositoryInterface defines the methods for credit data operations
type CreditRepositoryInterface interface {
	Create(credit *models.Credit) error
	ListRecentByGuest(guestEmail string, limit int) ([]models.Credit, error)
}

// MaintenanceRepositoryInterface defines the methods for maintenance log
// operations
type MaintenanceRepositoryInterface interface {
	Create(entry *models.MaintenanceEntry) error
	ListRecent(limit int) ([]models.MaintenanceEntry, error)
}

// ProviderRepositoryInterface defines the methods for service provider data
// operations
type ProviderRepositoryInterface interface {
	Create(provider *models.ServiceProvider) error
	ListAll(category string) ([]models.ServiceProvider, error)
	Delete(id uint) error
}

// UserRepository defines the methods for user data operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	CountUsers() (int64, error)
}
