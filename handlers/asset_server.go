package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/voigt-garten/gartenbackend/media"
)

// GalleryAssetServer serves gallery artifacts from the gallery root.
// Mounted at /images/gallery/* so the stored URL fragments resolve directly.
func GalleryAssetServer(galleryDir string) http.HandlerFunc {
	cleanGalleryDir := filepath.Clean(galleryDir)
	log.Printf("Serving gallery assets for '%s*' from directory: %s", media.GalleryURLPrefix, cleanGalleryDir)

	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := strings.TrimPrefix(r.URL.Path, media.GalleryURLPrefix)

		if relativePath == "" || strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid asset path", http.StatusBadRequest)
			return
		}

		requestedPath := filepath.Join(cleanGalleryDir, relativePath)
		cleanedPath := filepath.Clean(requestedPath)

		if !strings.HasPrefix(cleanedPath, cleanGalleryDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			log.Printf("SECURITY: Attempted asset access outside gallery root: Request='%s', Resolved='%s'", r.URL.Path, cleanedPath)
			return
		}

		if _, err := os.Stat(cleanedPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			log.Printf("Error stating asset file %s: %v", cleanedPath, err)
			return
		}

		cacheDuration := 24 * time.Hour
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheDuration.Seconds())))
		w.Header().Set("Expires", time.Now().Add(cacheDuration).Format(http.TimeFormat))

		http.ServeFile(w, r, cleanedPath)
	}
}
