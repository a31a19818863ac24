package models

// Asset represents one logical uploaded gallery item and its derivatives.
// It corresponds to the 'gallery_assets' table.
//
// Path fields are fragments relative to the gallery root, normally of the
// form "{category}/{name}.{ext}". FileName is what a normal client displays
// by default: the optimized derivative when one exists, else the original.
type Asset struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	FileName     string  `gorm:"not null" json:"filename"`
	OriginalName string  `gorm:"" json:"original_name,omitempty"`
	DisplayName  *string `gorm:"" json:"name,omitempty"`        // Nullable
	Description  *string `gorm:"" json:"description,omitempty"` // Nullable
	Category     string  `gorm:"not null;default:'sonstiges';index" json:"category"`
	Kind         string  `gorm:"not null;default:'image'" json:"type"` // "image" or "video"
	SizeBytes    int64   `gorm:"" json:"size"`
	UploadedAt   int64   `gorm:"not null;index" json:"uploaded_at"` // Unix timestamp
	UploadedBy   string  `gorm:"" json:"uploaded_by,omitempty"`

	ThumbnailPath  *string `gorm:"" json:"thumbnail_path,omitempty"`  // Nullable, small square preview
	DerivativePath *string `gorm:"" json:"derivative_path,omitempty"` // Nullable, web image or optimized video
	OriginalPath   string  `gorm:"not null" json:"original_path"`     // untouched uploaded bytes, always kept

	// EXIF enrichment, populated for images when the source carries it
	TakenAt     *int64  `gorm:"" json:"taken_at,omitempty"`     // Nullable, Unix timestamp
	CameraMake  *string `gorm:"" json:"camera_make,omitempty"`  // Nullable
	CameraModel *string `gorm:"" json:"camera_model,omitempty"` // Nullable
}

// TableName explicitly sets the table name for GORM.
func (Asset) TableName() string {
	return "gallery_assets"
}

// AllPaths returns every non-empty path fragment referenced by the asset,
// deduplicated. Used by deletion and the orphan sweep.
func (a *Asset) AllPaths() []string {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	add(a.FileName)
	if a.ThumbnailPath != nil {
		add(*a.ThumbnailPath)
	}
	if a.DerivativePath != nil {
		add(*a.DerivativePath)
	}
	add(a.OriginalPath)
	return paths
}
