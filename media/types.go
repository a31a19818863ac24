package media

import (
	"errors"
	"path/filepath"
	"strings"
)

// Kind classifies an uploaded file, decided once at ingestion from the
// extension and never changed.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Derivative containers. The web image format is JPEG; imaging has no webp
// encoder and the pipeline always falls back to the original on decode
// failure anyway.
const (
	WebImageExt       = ".jpg"
	OptimizedVideoExt = ".mp4"
	ThumbnailSuffix   = "_thumb"
)

var allowedImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true, ".heif": true,
}

var allowedVideoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true, ".avi": true,
}

// KindForFilename partitions the allow-list into images and videos.
// The second return is false for disallowed extensions.
func KindForFilename(filename string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case allowedImageExtensions[ext]:
		return KindImage, true
	case allowedVideoExtensions[ext]:
		return KindVideo, true
	default:
		return "", false
	}
}

// Upload is the validated multipart payload handed over by the HTTP layer.
// Authentication and authorization have already happened upstream.
type Upload struct {
	FileName    string
	Data        []byte
	Category    string
	DisplayName string
	Description string
	UploadedBy  string
}

// IngestResult is what a successful ingestion returns to the caller.
type IngestResult struct {
	ID           string
	FileName     string // canonical path fragment
	ThumbnailURL string
	URL          string
	SizeBytes    int64
}

// Error taxonomy. Derivative failures are deliberately absent: they are
// booleans on the generator contracts and never propagate as errors.
var (
	// ErrValidation rejects bad input before any filesystem write.
	ErrValidation = errors.New("invalid upload")
	// ErrNotFound signals an unknown asset id at retire/read time.
	ErrNotFound = errors.New("asset not found")
	// ErrPersistence marks a metadata write failure after filesystem writes
	// succeeded. The orphaned file is intentionally left in place.
	ErrPersistence = errors.New("metadata persistence failed")
)
