package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/voigt-garten/gartenbackend/database"
	"github.com/voigt-garten/gartenbackend/models"
	"github.com/voigt-garten/gartenbackend/repository"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitGormDB: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		t.Fatalf("AutoMigrateModels: %v", err)
	}
	return db
}

func TestBookingCreateAndListBlocked(t *testing.T) {
	db := newHandlerTestDB(t)
	handler := NewBookingHandler(repository.NewBookingRepository(db), nil)

	payload := map[string]interface{}{
		"name":     "Anna Muster",
		"email":    "anna@example.org",
		"checkIn":  "2026-06-01",
		"checkOut": "2026-06-07",
		"guests":   3,
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}
	var createResp struct {
		Success   bool `json:"success"`
		BookingID uint `json:"bookingId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &createResp); err != nil {
		t.Fatal(err)
	}
	if !createResp.Success || createResp.BookingID == 0 {
		t.Fatalf("create response %+v", createResp)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec = httptest.NewRecorder()
	handler.ListBlocked(rec, req)

	var listResp struct {
		Bookings []repository.BookedRange `json:"bookings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatal(err)
	}
	if len(listResp.Bookings) != 1 {
		t.Fatalf("got %d blocked ranges, want 1", len(listResp.Bookings))
	}
	if listResp.Bookings[0].CheckIn != "2026-06-01" || listResp.Bookings[0].CheckOut != "2026-06-07" {
		t.Errorf("blocked range %+v", listResp.Bookings[0])
	}
}

func TestBookingCreateMissingFields(t *testing.T) {
	db := newHandlerTestDB(t)
	handler := NewBookingHandler(repository.NewBookingRepository(db), nil)

	body, _ := json.Marshal(map[string]string{"name": "Anna"})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestBookingCancelledRangesNotBlocked(t *testing.T) {
	db := newHandlerTestDB(t)
	repo := repository.NewBookingRepository(db)
	handler := NewBookingHandler(repo, nil)

	booking := &models.Booking{
		GuestName:  "Max",
		GuestEmail: "max@example.org",
		CheckIn:    "2026-07-01",
		CheckOut:   "2026-07-03",
	}
	if err := repo.Create(booking); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateStatus(booking.ID, models.BookingStatusCancelled); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	handler.ListBlocked(rec, req)

	var listResp struct {
		Bookings []repository.BookedRange `json:"bookings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatal(err)
	}
	if len(listResp.Bookings) != 0 {
		t.Errorf("cancelled booking still blocks dates: %+v", listResp.Bookings)
	}
}
