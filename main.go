package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/voigt-garten/gartenbackend/config"
	"github.com/voigt-garten/gartenbackend/database"
	"github.com/voigt-garten/gartenbackend/email"
	"github.com/voigt-garten/gartenbackend/handlers"
	"github.com/voigt-garten/gartenbackend/media"
	"github.com/voigt-garten/gartenbackend/models"
	"github.com/voigt-garten/gartenbackend/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.GalleryDir, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	gormDB, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(gormDB); err != nil {
		log.Fatalf("FATAL: Failed to run database migrations: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to access underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	galleryStore, err := media.NewGalleryStorage(cfg.GalleryDir)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize gallery storage: %v", err)
	}

	assetRepo := repository.NewAssetRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	creditRepo := repository.NewCreditRepository(gormDB)
	maintenanceRepo := repository.NewMaintenanceRepository(gormDB)
	providerRepo := repository.NewProviderRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)

	imageGen := media.NewImageGenerator()
	videoGen := media.NewVideoGenerator(
		cfg.FFmpegPath,
		time.Duration(cfg.VideoTimeoutSec)*time.Second,
		time.Duration(cfg.PosterTimeoutSec)*time.Second,
		imageGen,
	)
	ingestor := media.NewIngestor(galleryStore, assetRepo, imageGen, videoGen, media.IngestorOptions{
		ThumbnailSize:    cfg.ThumbnailSize,
		WebImageQuality:  cfg.WebImageQuality,
		ThumbnailQuality: cfg.ThumbnailQuality,
	})

	mailer := email.NewSender(cfg.ResendAPIKey, cfg.FromEmail, cfg.AdminEmail)

	bootstrapAdminUser(userRepo)

	galleryHandler := handlers.NewGalleryHandler(ingestor, assetRepo, cfg)
	bookingHandler := handlers.NewBookingHandler(bookingRepo, mailer)
	creditHandler := handlers.NewCreditHandler(creditRepo, sqlDB)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceRepo, creditRepo)
	providerHandler := handlers.NewProviderHandler(providerRepo)
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	adminHandler := handlers.NewAdminHandler(sqlDB, ingestor)
	healthHandler := handlers.NewHealthHandler(sqlDB)

	requireAuth := handlers.AuthMiddleware(userRepo, []byte(cfg.JWTSecret))

	log.Printf("Serving gallery files from: %s", cfg.GalleryDir)
	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Thumbnail box size: %dpx", cfg.ThumbnailSize)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))
	r.Use(corsHandler.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", galleryHandler.List)
			r.Post("/upload", galleryHandler.Upload)
			r.Get("/categories", galleryHandler.Categories)
			r.With(requireAuth).Delete("/{asset_id}", galleryHandler.Delete)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", bookingHandler.ListBlocked)
			r.Post("/", bookingHandler.Create)
		})

		r.Get("/credits", creditHandler.Get)

		r.Route("/maintenance", func(r chi.Router) {
			r.Post("/complete", maintenanceHandler.Complete)
			r.Get("/log", maintenanceHandler.RecentLog)
		})

		r.Route("/providers", func(r chi.Router) {
			r.Get("/", providerHandler.List)
			r.Post("/", providerHandler.Create)
			r.With(requireAuth).Delete("/{provider_id}", providerHandler.Delete)
		})

		r.Post("/auth/login", authHandler.Login)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/stats", adminHandler.Stats)
			r.Get("/gallery/orphans", adminHandler.Orphans)
		})
	})

	r.Get("/images/gallery/*", handlers.GalleryAssetServer(cfg.GalleryDir))
	log.Printf("Registered gallery asset server at /images/gallery/*")

	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

// bootstrapAdminUser creates the initial administrator account when the users
// table is empty and ADMIN_USERNAME/ADMIN_PASSWORD are set.
func bootstrapAdminUser(userRepo repository.UserRepository) {
	count, err := userRepo.CountUsers()
	if err != nil {
		log.Printf("Warning: could not count users for admin bootstrap: %v", err)
		return
	}
	if count > 0 {
		return
	}
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Printf("No users exist and ADMIN_USERNAME/ADMIN_PASSWORD are unset; admin endpoints will be unreachable")
		return
	}
	user := &models.User{Username: username, IsAdmin: true}
	if err := user.SetPassword(password); err != nil {
		log.Printf("Warning: could not hash bootstrap admin password: %v", err)
		return
	}
	if err := userRepo.Create(user); err != nil {
		log.Printf("Warning: could not create bootstrap admin user: %v", err)
		return
	}
	log.Printf("Created bootstrap admin user %q", username)
}
