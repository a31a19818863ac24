package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/voigt-garten/gartenbackend/models"
	"github.com/voigt-garten/gartenbackend/repository"
)

// ProviderHandler exposes the service provider directory.
type ProviderHandler struct {
	ProviderRepo repository.ProviderRepositoryInterface
}

func NewProviderHandler(providerRepo repository.ProviderRepositoryInterface) *ProviderHandler {
	return &ProviderHandler{ProviderRepo: providerRepo}
}

// List returns providers, optionally filtered by category.
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.ProviderRepo.ListAll(r.URL.Query().Get("category"))
	if err != nil {
		log.Printf("providers: listing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list service providers")
		return
	}
	if providers == nil {
		providers = []models.ServiceProvider{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"providers": providers})
}

// Create adds a provider to the directory.
func (h *ProviderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var provider models.ServiceProvider
	if err := json.NewDecoder(r.Body).Decode(&provider); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if provider.Name == "" || provider.Category == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: name, category")
		return
	}

	if err := h.ProviderRepo.Create(&provider); err != nil {
		log.Printf("providers: create failed for %s: %v", provider.Name, err)
		writeError(w, http.StatusInternalServerError, "Failed to create service provider")
		return
	}
	writeJSON(w, http.StatusCreated, provider)
}

// Delete removes a provider from the directory.
func (h *ProviderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "provider_id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}

	if err := h.ProviderRepo.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Provider not found")
		} else {
			log.Printf("providers: delete failed for %d: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Failed to delete service provider")
		}
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
