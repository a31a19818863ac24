package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/voigt-garten/gartenbackend/database"
	"github.com/voigt-garten/gartenbackend/media"
)

// AdminHandler serves the statistics and reconciliation endpoints behind
// authentication.
type AdminHandler struct {
	SQLDB    *sql.DB
	Ingestor *media.Ingestor
}

func NewAdminHandler(sqlDB *sql.DB, ingestor *media.Ingestor) *AdminHandler {
	return &AdminHandler{SQLDB: sqlDB, Ingestor: ingestor}
}

// Stats aggregates per-category gallery usage and credit totals.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	galleryStats, err := database.GetGalleryStats(h.SQLDB)
	if err != nil {
		log.Printf("admin: gallery stats query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Statistiken konnten nicht geladen werden")
		return
	}

	creditTotals, err := database.GetCreditTotals(h.SQLDB)
	if err != nil {
		log.Printf("admin: credit totals query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Statistiken konnten nicht geladen werden")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"gallery": galleryStats,
		"credits": creditTotals,
	})
}

// Orphans reports gallery files no database row claims. The sweep is
// read-only, deletion stays a manual decision.
func (h *AdminHandler) Orphans(w http.ResponseWriter, r *http.Request) {
	report, err := h.Ingestor.SweepOrphans()
	if err != nil {
		log.Printf("admin: orphan sweep failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Verwaiste Dateien konnten nicht ermittelt werden")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
