package media

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Store defines the interface for saving, probing, and deleting gallery
// artifacts. Path fragments are slash-separated and relative to the gallery
// root, of the form "{category}/{name}.{ext}".
type Store interface {
	// Save writes data to the fragment's location, creating the category
	// directory as needed, and returns the normalized fragment.
	Save(fragment string, data io.Reader) (string, error)
	// Delete removes an artifact; a missing file is not an error.
	Delete(fragment string) error
	// Exists reports whether a file is present at the fragment.
	Exists(fragment string) bool
	// FullPath returns the absolute filesystem path for a fragment after a
	// containment check against the gallery root.
	FullPath(fragment string) (string, error)
	// CategoryDir ensures the category subdirectory exists and returns its
	// absolute path.
	CategoryDir(category string) (string, error)
	// Root returns the absolute gallery root.
	Root() string
}

// GalleryStorage implements Store on the local filesystem.
type GalleryStorage struct {
	basePath string // absolute path to the gallery root
}

// NewGalleryStorage creates a local filesystem store rooted at basePath.
func NewGalleryStorage(basePath string) (*GalleryStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid gallery path '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create gallery directory '%s': %w", absBasePath, err)
	}

	log.Printf("media.store: Initialized gallery storage at %s", absBasePath)
	return &GalleryStorage{basePath: absBasePath}, nil
}

func (gs *GalleryStorage) Root() string {
	return gs.basePath
}

// CategoryDir resolves and creates the subdirectory for a category after
// checking it does not escape the gallery root.
func (gs *GalleryStorage) CategoryDir(category string) (string, error) {
	dirPath := filepath.Join(gs.basePath, category)
	if !strings.HasPrefix(filepath.Clean(dirPath), gs.basePath) {
		return "", fmt.Errorf("category '%s' resolves outside gallery root", category)
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure category directory '%s': %w", dirPath, err)
	}
	return dirPath, nil
}

// Save writes data to the fragment's target, removing a partial file on
// write failure.
func (gs *GalleryStorage) Save(fragment string, data io.Reader) (string, error) {
	fullPath, err := gs.FullPath(fragment)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for '%s': %w", fragment, err)
	}

	outFile, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file '%s': %w", fullPath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, data); err != nil {
		outFile.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write data to '%s': %w", fullPath, err)
	}

	relativePath, err := filepath.Rel(gs.basePath, fullPath)
	if err != nil {
		return "", fmt.Errorf("internal error calculating relative path: %w", err)
	}

	return filepath.ToSlash(relativePath), nil
}

// Exists reports whether a file is present at the fragment. Fragments that
// fail the containment check are reported as absent.
func (gs *GalleryStorage) Exists(fragment string) bool {
	fullPath, err := gs.FullPath(fragment)
	if err != nil {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && !info.IsDir()
}

// Delete removes an artifact file
func (gs *GalleryStorage) Delete(fragment string) error {
	fullPath, err := gs.FullPath(fragment)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) { // ignore "not exist" errors
		return fmt.Errorf("failed to delete artifact '%s': %w", fragment, err)
	}
	if err == nil {
		log.Printf("media.store: Deleted artifact %s", fullPath)
	}
	return nil
}

// FullPath calculates the absolute path and performs the security check
func (gs *GalleryStorage) FullPath(fragment string) (string, error) {
	// clean the relative path first to prevent simple traversal tricks
	cleanRelativePath := filepath.Clean(fragment)

	fullPath := filepath.Join(gs.basePath, cleanRelativePath)

	absFullPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", fragment, err)
	}

	if !strings.HasPrefix(absFullPath, gs.basePath) {
		return "", fmt.Errorf("invalid path: access denied for '%s'", fragment)
	}

	return absFullPath, nil
}
