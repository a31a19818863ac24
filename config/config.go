package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultCategory       = "sonstiges"
	DefaultGallerySubPath = "public/images/gallery"
)

const (
	defaultThumbnailSize    = 200
	defaultWebImageQuality  = 85
	defaultThumbnailQuality = 80
	defaultVideoTimeoutSec  = 300
	defaultPosterTimeoutSec = 30
	defaultMaxUploadMB      = 50
)

type Config struct {
	// gallery storage root (one subdirectory per category)
	GalleryDir string

	// database path
	DatabasePath string

	// transcoder binary, usually just "ffmpeg" on PATH
	FFmpegPath string

	// derivative generation settings
	ThumbnailSize    int
	WebImageQuality  int
	ThumbnailQuality int

	// subprocess wall-clock bounds (seconds)
	VideoTimeoutSec  int
	PosterTimeoutSec int

	// upload limit in megabytes
	MaxUploadMB int

	// auth
	JWTSecret string

	// email (Resend); empty API key disables sending
	ResendAPIKey string
	FromEmail    string
	AdminEmail   string

	// CORS
	AllowedOrigins []string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	galleryDir := getEnvOrDefault("GALLERY_DIR", filepath.Join(".", DefaultGallerySubPath))
	absGalleryDir, err := filepath.Abs(galleryDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for gallery directory '%s': %w", galleryDir, err)
	}

	dbPath := getEnvOrDefault("DATABASE_PATH", "gallery.db")

	origin := getEnvOrDefault("FRONTEND_ORIGIN", "http://localhost:4321")

	cfg := Config{
		GalleryDir:       absGalleryDir,
		DatabasePath:     dbPath,
		FFmpegPath:       getEnvOrDefault("FFMPEG_PATH", "ffmpeg"),
		ThumbnailSize:    getEnvIntOrDefault("THUMBNAIL_SIZE", defaultThumbnailSize),
		WebImageQuality:  getEnvIntOrDefault("WEB_IMAGE_QUALITY", defaultWebImageQuality),
		ThumbnailQuality: getEnvIntOrDefault("THUMBNAIL_QUALITY", defaultThumbnailQuality),
		VideoTimeoutSec:  getEnvIntOrDefault("VIDEO_TIMEOUT_SEC", defaultVideoTimeoutSec),
		PosterTimeoutSec: getEnvIntOrDefault("POSTER_TIMEOUT_SEC", defaultPosterTimeoutSec),
		MaxUploadMB:      getEnvIntOrDefault("MAX_UPLOAD_MB", defaultMaxUploadMB),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", ""),
		ResendAPIKey:     getEnvOrDefault("RESEND_API_KEY", ""),
		FromEmail:        getEnvOrDefault("FROM_EMAIL", "Voigt-Garten <garten@example.org>"),
		AdminEmail:       getEnvOrDefault("ADMIN_EMAIL", ""),
		AllowedOrigins:   []string{origin, "http://localhost:5055"},
	}

	if cfg.JWTSecret == "" {
		log.Printf("Warning: JWT_SECRET is not set; login tokens will be signed with an empty key")
	}

	return cfg, nil
}
