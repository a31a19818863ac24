package email

import (
	"testing"

	"github.com/voigt-garten/gartenbackend/models"
)

func TestSenderNoOpWithoutAPIKey(t *testing.T) {
	sender := NewSender("", "Voigt-Garten <garten@example.org>", "admin@example.org")

	booking := &models.Booking{
		GuestName:  "Anna",
		GuestEmail: "anna@example.org",
		CheckIn:    "2026-06-01",
		CheckOut:   "2026-06-07",
		Guests:     2,
		TotalPrice: 240,
	}

	// with no API key send must be a silent no-op, never a network call
	sender.SendBookingConfirmation(booking)
	sender.SendBookingNotification(booking)

	if err := sender.send(resendPayload{Subject: "test"}); err != nil {
		t.Errorf("send without API key returned error: %v", err)
	}
}

func TestNotificationSkippedWithoutAdminEmail(t *testing.T) {
	sender := NewSender("", "Voigt-Garten <garten@example.org>", "")

	// must return without attempting anything
	sender.SendBookingNotification(&models.Booking{GuestEmail: "anna@example.org"})
}
