package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/voigt-garten/gartenbackend/email"
	"github.com/voigt-garten/gartenbackend/models"
	"github.com/voigt-garten/gartenbackend/repository"
)

// BookingHandler exposes the booking CRUD surface.
type BookingHandler struct {
	BookingRepo repository.BookingRepositoryInterface
	Mailer      *email.Sender
}

func NewBookingHandler(bookingRepo repository.BookingRepositoryInterface, mailer *email.Sender) *BookingHandler {
	return &BookingHandler{BookingRepo: bookingRepo, Mailer: mailer}
}

// Create accepts a booking request and fires confirmation mails.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		Email        string  `json:"email"`
		Phone        *string `json:"phone"`
		CheckIn      string  `json:"checkIn"`
		CheckOut     string  `json:"checkOut"`
		Guests       int     `json:"guests"`
		Pets         bool    `json:"pets"`
		TotalPrice   float64 `json:"totalPrice"`
		DiscountCode *string `json:"discountCode"`
		Notes        *string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.CheckIn == "" || req.CheckOut == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: name, email, checkIn, checkOut")
		return
	}

	booking := &models.Booking{
		GuestName:    req.Name,
		GuestEmail:   req.Email,
		GuestPhone:   req.Phone,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		Guests:       req.Guests,
		HasPets:      req.Pets,
		TotalPrice:   req.TotalPrice,
		DiscountCode: req.DiscountCode,
		Notes:        req.Notes,
	}

	if err := h.BookingRepo.Create(booking); err != nil {
		log.Printf("bookings: create failed for %s: %v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	if h.Mailer != nil {
		h.Mailer.SendBookingConfirmation(booking)
		h.Mailer.SendBookingNotification(booking)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "bookingId": booking.ID})
}

// ListBlocked returns the booked date ranges for the calendar.
func (h *BookingHandler) ListBlocked(w http.ResponseWriter, r *http.Request) {
	ranges, err := h.BookingRepo.ListBlockedRanges()
	if err != nil {
		log.Printf("bookings: listing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}
	if ranges == nil {
		ranges = []repository.BookedRange{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookings": ranges})
}
