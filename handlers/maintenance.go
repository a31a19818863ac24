package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/voigt-garten/gartenbackend/models"
	"github.com/voigt-garten/gartenbackend/repository"
)

// MaintenanceHandler records completed maintenance tasks and books credits
// for them.
type MaintenanceHandler struct {
	MaintenanceRepo repository.MaintenanceRepositoryInterface
	CreditRepo      repository.CreditRepositoryInterface
}

func NewMaintenanceHandler(maintenanceRepo repository.MaintenanceRepositoryInterface, creditRepo repository.CreditRepositoryInterface) *MaintenanceHandler {
	return &MaintenanceHandler{MaintenanceRepo: maintenanceRepo, CreditRepo: creditRepo}
}

// Complete marks a maintenance task as done; a positive creditValue also
// books a credit for the worker.
func (h *MaintenanceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID        int     `json:"taskId"`
		CompletedBy   string  `json:"completedBy"`
		Notes         *string `json:"notes"`
		PhotoFilename *string `json:"photoFilename"`
		CreditValue   float64 `json:"creditValue"`
		TaskTitle     string  `json:"taskTitle"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.CompletedBy == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: completedBy")
		return
	}

	entry := &models.MaintenanceEntry{
		TaskID:        req.TaskID,
		CompletedBy:   req.CompletedBy,
		Notes:         req.Notes,
		PhotoFilename: req.PhotoFilename,
	}
	if err := h.MaintenanceRepo.Create(entry); err != nil {
		log.Printf("maintenance: create failed for task %d: %v", req.TaskID, err)
		writeError(w, http.StatusInternalServerError, "Failed to record maintenance completion")
		return
	}

	if req.CreditValue > 0 {
		reason := req.TaskTitle
		if reason == "" {
			reason = "Wartungsarbeit"
		}
		credit := &models.Credit{
			GuestEmail: req.CompletedBy,
			Amount:     req.CreditValue,
			Reason:     reason,
			Type:       "earned",
		}
		if err := h.CreditRepo.Create(credit); err != nil {
			// the log entry stands; the missing credit is recoverable by hand
			log.Printf("maintenance: credit booking failed for %s: %v", req.CompletedBy, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// RecentLog returns the latest maintenance entries.
func (h *MaintenanceHandler) RecentLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.MaintenanceRepo.ListRecent(50)
	if err != nil {
		log.Printf("maintenance: listing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list maintenance log")
		return
	}
	if entries == nil {
		entries = []models.MaintenanceEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
