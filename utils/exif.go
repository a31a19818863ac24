package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// ExifInfo holds the subset of EXIF data the gallery records on an asset.
type ExifInfo struct {
	TakenAt     *int64
	CameraMake  *string
	CameraModel *string
}

// GetImageExif extracts capture time and camera identity from an image file.
// A file without EXIF data yields an empty (non-nil) ExifInfo, not an error.
func GetImageExif(filePath string) (*ExifInfo, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("exif: failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	exifData, err := exif.Decode(file)
	if err != nil {
		// not necessarily a problem, the file might just lack EXIF data
		log.Printf("exif: no EXIF data for %s: %v", filePath, err)
		return &ExifInfo{}, nil
	}

	info := &ExifInfo{
		CameraMake:  getStringTag(exifData, exif.Make),
		CameraModel: getStringTag(exifData, exif.Model),
	}

	if taken, err := exifData.DateTime(); err == nil {
		ts := taken.Unix()
		info.TakenAt = &ts
	}

	return info, nil
}

func getStringTag(exifData *exif.Exif, field exif.FieldName) *string {
	tag, err := exifData.Get(field)
	if err != nil {
		return nil
	}
	val, err := tag.StringVal()
	if err != nil || val == "" {
		return nil
	}
	return &val
}
