package media

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/voigt-garten/gartenbackend/metrics"
	"github.com/voigt-garten/gartenbackend/models"
	"github.com/voigt-garten/gartenbackend/utils"
)

// DefaultCategory is the catch-all grouping for uploads that name none.
const DefaultCategory = "sonstiges"

// AssetRepository is the narrow metadata-store surface the orchestrator
// needs. GetByID must return ErrNotFound for unknown ids.
type AssetRepository interface {
	Create(asset *models.Asset) error
	GetByID(id string) (*models.Asset, error)
	ListAll() ([]models.Asset, error)
	ListByCategory(category string) ([]models.Asset, error)
	Delete(id string) error
}

// ImageConverter generates web-format images and square thumbnails.
// Failure is a boolean, not an error: the caller falls back to the original.
type ImageConverter interface {
	ToWebFormat(srcPath, dstPath string, quality int) bool
	ToThumbnail(srcPath, dstPath string, boxSize, quality int) bool
}

// VideoTranscoder generates streaming-optimized videos and poster frames.
type VideoTranscoder interface {
	Optimize(ctx context.Context, srcPath, dstPath string) bool
	Poster(ctx context.Context, srcPath, dstPath string, boxSize, quality int) bool
}

// IngestorOptions carries the derivative-generation policy values.
type IngestorOptions struct {
	ThumbnailSize    int
	WebImageQuality  int
	ThumbnailQuality int
}

// Ingestor sequences validation, original storage, collision-safe naming,
// derivative generation, and metadata persistence, plus the inverse teardown
// on retirement. All work is synchronous within the calling request.
type Ingestor struct {
	store  Store
	repo   AssetRepository
	images ImageConverter
	videos VideoTranscoder
	opts   IngestorOptions
}

func NewIngestor(store Store, repo AssetRepository, images ImageConverter, videos VideoTranscoder, opts IngestorOptions) *Ingestor {
	return &Ingestor{
		store:  store,
		repo:   repo,
		images: images,
		videos: videos,
		opts:   opts,
	}
}

// AssetView is the listing shape handed to clients, an asset row plus its
// resolved public URLs.
type AssetView struct {
	models.Asset
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	OriginalURL  string `json:"originalUrl,omitempty"`
}

// Ingest accepts an upload and drives it to a persisted asset. Validation
// failures reject before any filesystem write; derivative failures degrade
// to the original artifact; only a metadata write failure after storage
// succeeded surfaces as ErrPersistence.
func (ing *Ingestor) Ingest(ctx context.Context, up Upload) (*IngestResult, error) {
	// Received -> Validated
	if strings.TrimSpace(up.FileName) == "" || len(up.Data) == 0 {
		return nil, fmt.Errorf("%w: missing file", ErrValidation)
	}
	sanitizedName := SanitizeFilename(up.FileName)
	if sanitizedName == "" {
		return nil, fmt.Errorf("%w: unusable filename %q", ErrValidation, up.FileName)
	}
	kind, allowed := KindForFilename(sanitizedName)
	if !allowed {
		return nil, fmt.Errorf("%w: file type %q not allowed", ErrValidation, filepath.Ext(sanitizedName))
	}

	category := Slugify(up.Category)
	if category == "" {
		category = DefaultCategory
	}

	// Validated -> OriginalStored
	id := newAssetID(sanitizedName)
	ext := strings.ToLower(filepath.Ext(sanitizedName))
	originalFragment := fmt.Sprintf("%s/%s_original%s", category, id, ext)
	if _, err := ing.store.Save(originalFragment, bytes.NewReader(up.Data)); err != nil {
		return nil, fmt.Errorf("failed to store original upload: %w", err)
	}

	// OriginalStored -> NamesResolved
	derivExt := WebImageExt
	if kind == KindVideo {
		derivExt = OptimizedVideoExt
	}
	baseName := Slugify(up.DisplayName)
	if baseName == "" {
		baseName = id
	}
	categoryDir, err := ing.store.CategoryDir(category)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category directory: %w", err)
	}
	baseName = ResolveCollision(categoryDir, baseName, derivExt)

	// NamesResolved -> DerivativesAttempted
	originalFull, err := ing.store.FullPath(originalFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve original path: %w", err)
	}

	fileName := originalFragment // canonical falls back to the original
	var derivativePath, thumbnailPath *string

	derivFragment := fmt.Sprintf("%s/%s%s", category, baseName, derivExt)
	thumbFragment := fmt.Sprintf("%s/%s%s%s", category, baseName, ThumbnailSuffix, WebImageExt)
	derivFull, _ := ing.store.FullPath(derivFragment)
	thumbFull, _ := ing.store.FullPath(thumbFragment)

	switch kind {
	case KindImage:
		if ing.images != nil && ing.images.ToWebFormat(originalFull, derivFull, ing.opts.WebImageQuality) {
			derivativePath = &derivFragment
			fileName = derivFragment
			log.Printf("ingest: converted %s to %s", originalFragment, derivFragment)
		} else {
			metrics.DerivativeFailures.WithLabelValues("web_image").Inc()
			log.Printf("ingest: web conversion failed, using original: %s", originalFragment)
		}
		if ing.images != nil && ing.images.ToThumbnail(originalFull, thumbFull, ing.opts.ThumbnailSize, ing.opts.ThumbnailQuality) {
			thumbnailPath = &thumbFragment
			log.Printf("ingest: created thumbnail %s", thumbFragment)
		} else {
			metrics.DerivativeFailures.WithLabelValues("thumbnail").Inc()
		}
	case KindVideo:
		if ing.videos != nil && ing.videos.Optimize(ctx, originalFull, derivFull) {
			derivativePath = &derivFragment
			fileName = derivFragment
			log.Printf("ingest: optimized video %s to %s", originalFragment, derivFragment)
		} else {
			metrics.DerivativeFailures.WithLabelValues("optimized_video").Inc()
			log.Printf("ingest: video optimization failed, using original: %s", originalFragment)
		}
		if ing.videos != nil && ing.videos.Poster(ctx, originalFull, thumbFull, ing.opts.ThumbnailSize, ing.opts.ThumbnailQuality) {
			thumbnailPath = &thumbFragment
			log.Printf("ingest: created video poster %s", thumbFragment)
		} else {
			metrics.DerivativeFailures.WithLabelValues("poster").Inc()
		}
	}

	// DerivativesAttempted -> Persisted
	asset := &models.Asset{
		ID:             id,
		FileName:       fileName,
		OriginalName:   sanitizedName,
		Category:       category,
		Kind:           string(kind),
		SizeBytes:      int64(len(up.Data)),
		UploadedAt:     time.Now().Unix(),
		UploadedBy:     up.UploadedBy,
		ThumbnailPath:  thumbnailPath,
		DerivativePath: derivativePath,
		OriginalPath:   originalFragment,
	}
	if up.DisplayName != "" {
		asset.DisplayName = &up.DisplayName
	}
	if up.Description != "" {
		asset.Description = &up.Description
	}
	if kind == KindImage {
		if info, err := utils.GetImageExif(originalFull); err == nil && info != nil {
			asset.TakenAt = info.TakenAt
			asset.CameraMake = info.CameraMake
			asset.CameraModel = info.CameraModel
		}
	}

	if err := ing.repo.Create(asset); err != nil {
		// the stored files are left for an out-of-band sweep; removing them
		// here would be best-effort and could mask the real failure
		metrics.IngestsTotal.WithLabelValues(string(kind), "persistence_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	outcome := "ok"
	if derivativePath == nil || thumbnailPath == nil {
		outcome = "degraded"
	}
	metrics.IngestsTotal.WithLabelValues(string(kind), outcome).Inc()
	log.Printf("ingest: persisted asset %s (%s, %d bytes)", id, fileName, asset.SizeBytes)

	result := &IngestResult{
		ID:        id,
		FileName:  fileName,
		URL:       PublicURL(fileName, category),
		SizeBytes: asset.SizeBytes,
	}
	if thumbnailPath != nil {
		result.ThumbnailURL = PublicURL(*thumbnailPath, category)
	}
	return result, nil
}

// Retire removes every artifact referenced by the asset, then its row.
// File removal is best-effort; the row is removed even when a file delete
// fails, so listings never reference a half-retired asset.
func (ing *Ingestor) Retire(ctx context.Context, id string) error {
	asset, err := ing.repo.GetByID(id)
	if err != nil {
		return err
	}

	for _, fragment := range asset.AllPaths() {
		if err := ing.store.Delete(fragment); err != nil {
			log.Printf("retire: failed to delete %s for asset %s: %v", fragment, id, err)
		}
	}

	if err := ing.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete asset record %s: %w", id, err)
	}
	metrics.RetiresTotal.Inc()
	log.Printf("retire: removed asset %s", id)
	return nil
}

// List returns all assets, optionally filtered by category, newest first,
// with public URLs resolved.
func (ing *Ingestor) List(category string) ([]AssetView, error) {
	var (
		assets []models.Asset
		err    error
	)
	if category != "" && category != "all" {
		assets, err = ing.repo.ListByCategory(category)
	} else {
		assets, err = ing.repo.ListAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	views := make([]AssetView, 0, len(assets))
	for _, a := range assets {
		view := AssetView{
			Asset: a,
			URL:   PublicURL(a.FileName, a.Category),
		}
		if a.ThumbnailPath != nil {
			view.ThumbnailURL = PublicURL(*a.ThumbnailPath, a.Category)
		} else {
			view.ThumbnailURL = view.URL // fall back to the main artifact
		}
		if a.OriginalPath != "" {
			view.OriginalURL = PublicURL(a.OriginalPath, a.Category)
		}
		views = append(views, view)
	}
	return views, nil
}

// newAssetID derives a 12-hex-char identifier from a time seed and the
// sanitized name. Collision-avoidant, not cryptographically secure, and not
// predictable from the name alone.
func newAssetID(sanitizedName string) string {
	seed := time.Now().Format(time.RFC3339Nano) + sanitizedName
	sum := md5.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])[:12]
}
