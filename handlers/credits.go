package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/voigt-garten/gartenbackend/database"
	"github.com/voigt-garten/gartenbackend/models"
	"github.com/voigt-garten/gartenbackend/repository"
)

// CreditHandler exposes the guest credit ledger.
type CreditHandler struct {
	CreditRepo repository.CreditRepositoryInterface
	SQLDB      *sql.DB // raw handle for the aggregate total
}

func NewCreditHandler(creditRepo repository.CreditRepositoryInterface, sqlDB *sql.DB) *CreditHandler {
	return &CreditHandler{CreditRepo: creditRepo, SQLDB: sqlDB}
}

// Get returns the most recent credit entries and the summed balance for one
// guest.
func (h *CreditHandler) Get(w http.ResponseWriter, r *http.Request) {
	guestEmail := r.URL.Query().Get("email")
	if guestEmail == "" {
		writeError(w, http.StatusBadRequest, "Email erforderlich")
		return
	}

	credits, err := h.CreditRepo.ListRecentByGuest(guestEmail, 20)
	if err != nil {
		log.Printf("credits: listing failed for %s: %v", guestEmail, err)
		writeError(w, http.StatusInternalServerError, "Failed to list credits")
		return
	}
	if credits == nil {
		credits = []models.Credit{}
	}

	total, err := database.GetCreditTotalForGuest(h.SQLDB, guestEmail)
	if err != nil {
		log.Printf("credits: total query failed for %s: %v", guestEmail, err)
		writeError(w, http.StatusInternalServerError, "Failed to compute credit total")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"credits": credits,
		"total":   total,
	})
}
