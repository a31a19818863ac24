package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/facette/natsort"
	"github.com/go-chi/chi/v5"

	"github.com/voigt-garten/gartenbackend/config"
	"github.com/voigt-garten/gartenbackend/media"
	"github.com/voigt-garten/gartenbackend/repository"
)

// GalleryHandler exposes the media ingestion pipeline over HTTP.
type GalleryHandler struct {
	Ingestor  *media.Ingestor
	AssetRepo repository.AssetRepositoryInterface
	Cfg       config.Config
}

func NewGalleryHandler(ingestor *media.Ingestor, assetRepo repository.AssetRepositoryInterface, cfg config.Config) *GalleryHandler {
	return &GalleryHandler{Ingestor: ingestor, AssetRepo: assetRepo, Cfg: cfg}
}

// Upload handles a multipart file upload with automatic derivative generation.
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.Cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Keine Datei")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("gallery: failed to read upload body: %v", err)
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	uploadedBy := r.FormValue("uploaded_by")
	if uploadedBy == "" {
		uploadedBy = "anonymous"
	}

	upload := media.Upload{
		FileName:    header.Filename,
		Data:        data,
		Category:    r.FormValue("category"),
		DisplayName: r.FormValue("name"),
		Description: r.FormValue("description"),
		UploadedBy:  uploadedBy,
	}

	result, err := h.Ingestor.Ingest(r.Context(), upload)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, media.ErrPersistence):
			log.Printf("gallery: persistence failure for %s: %v", header.Filename, err)
			writeError(w, http.StatusInternalServerError, "Failed to save upload metadata")
		default:
			log.Printf("gallery: ingestion failed for %s: %v", header.Filename, err)
			writeError(w, http.StatusInternalServerError, "Upload failed")
		}
		return
	}

	resp := map[string]interface{}{
		"success":  true,
		"id":       result.ID,
		"filename": result.FileName,
		"url":      result.URL,
		"message":  "Datei erfolgreich hochgeladen!",
	}
	if result.ThumbnailURL != "" {
		resp["thumbnailUrl"] = result.ThumbnailURL
	} else {
		resp["thumbnailUrl"] = nil
	}
	writeJSON(w, http.StatusOK, resp)
}

// List returns all gallery assets with resolved URLs, optionally filtered by
// the category query parameter.
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	items, err := h.Ingestor.List(category)
	if err != nil {
		log.Printf("gallery: listing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list gallery")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": len(items),
	})
}

// Delete retires a gallery asset: artifacts first, then the metadata row.
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "asset_id")

	err := h.Ingestor.Retire(r.Context(), id)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Bild nicht gefunden")
		} else {
			log.Printf("gallery: retire failed for %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Failed to delete asset")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Bild gelöscht"})
}

// Categories returns the distinct categories in use, in natural order.
func (h *GalleryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.AssetRepo.ListCategories()
	if err != nil {
		log.Printf("gallery: category listing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	natsort.Sort(categories)
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
