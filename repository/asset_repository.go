package repository

import (
	"errors"
	"fmt"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/voigt-garten/gartenbackend/media"
	"github.com/voigt-garten/gartenbackend/models"
)

// AssetRepository handles database operations for gallery Asset entities
type AssetRepository struct {
	DB *gorm.DB
}

// NewAssetRepository creates a new instance of AssetRepository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{DB: db}
}

// Create inserts a new asset record. Path fragments are normalized to
// forward slashes before the write.
func (r *AssetRepository) Create(asset *models.Asset) error {
	asset.FileName = filepath.ToSlash(asset.FileName)
	asset.OriginalPath = filepath.ToSlash(asset.OriginalPath)
	if asset.Category == "" {
		asset.Category = media.DefaultCategory
	}

	if err := r.DB.Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create asset %s: %w", asset.ID, err)
	}
	return nil
}

// GetByID retrieves an asset by its ID. Unknown ids map to media.ErrNotFound.
func (r *AssetRepository) GetByID(id string) (*models.Asset, error) {
	var asset models.Asset
	err := r.DB.Where("id = ?", id).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, media.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get asset by ID %s: %w", id, err)
	}
	return &asset, nil
}

// ListAll retrieves all assets, newest first
func (r *AssetRepository) ListAll() ([]models.Asset, error) {
	var assets []models.Asset
	err := r.DB.Order("uploaded_at DESC").Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// ListByCategory retrieves all assets in one category, newest first
func (r *AssetRepository) ListByCategory(category string) ([]models.Asset, error) {
	var assets []models.Asset
	err := r.DB.Where("category = ?", category).Order("uploaded_at DESC").Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assets for category %s: %w", category, err)
	}
	return assets, nil
}

// ListCategories returns the distinct categories currently in use.
func (r *AssetRepository) ListCategories() ([]string, error) {
	var categories []string
	err := r.DB.Model(&models.Asset{}).Distinct("category").Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Delete removes an asset record by ID. Deleting an already-absent row maps
// to media.ErrNotFound.
func (r *AssetRepository) Delete(id string) error {
	result := r.DB.Where("id = ?", id).Delete(&models.Asset{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete asset %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return media.ErrNotFound
	}
	return nil
}
