package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/voigt-garten/gartenbackend/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// Sender delivers transactional mails through the Resend HTTP API. With no
// API key configured every send is a logged no-op; email must never be a
// hard dependency of the booking flow.
type Sender struct {
	apiKey     string
	fromEmail  string
	adminEmail string
	client     *http.Client
}

func NewSender(apiKey, fromEmail, adminEmail string) *Sender {
	return &Sender{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

func (s *Sender) send(p resendPayload) error {
	if s.apiKey == "" {
		log.Printf("email: RESEND_API_KEY not configured, skipping %q", p.Subject)
		return nil
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}
	return nil
}

// SendBookingConfirmation mails the guest that their request was received.
// Failures are logged and swallowed.
func (s *Sender) SendBookingConfirmation(booking *models.Booking) {
	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
<h1 style="color: #16a34a;">Voigt-Garten</h1>
<h2>Hallo %s!</h2>
<p>Vielen Dank für deine Buchungsanfrage!</p>
<div style="background: #f0fdf4; padding: 20px; border-radius: 10px;">
<p><strong>Anreise:</strong> %s</p>
<p><strong>Abreise:</strong> %s</p>
<p><strong>Personen:</strong> %d</p>
<p><strong>Gesamtpreis:</strong> %.2f EUR</p>
</div>
<p>Nach Zahlungseingang erhältst du eine Bestätigung mit allen Infos zur Anreise.</p>
<p style="color: #666;">Liebe Grüße,<br/>Familie Voigt</p>
</div>`, booking.GuestName, booking.CheckIn, booking.CheckOut, booking.Guests, booking.TotalPrice)

	err := s.send(resendPayload{
		From:    s.fromEmail,
		To:      []string{booking.GuestEmail},
		Subject: "Buchungsanfrage eingegangen - Voigt-Garten",
		HTML:    html,
		ReplyTo: s.adminEmail,
	})
	if err != nil {
		log.Printf("email: booking confirmation to %s failed: %v", booking.GuestEmail, err)
	}
}

// SendBookingNotification mails the admin about a new booking request.
// Failures are logged and swallowed.
func (s *Sender) SendBookingNotification(booking *models.Booking) {
	if s.adminEmail == "" {
		return
	}
	html := fmt.Sprintf(`<div style="font-family: sans-serif;">
<h2>Neue Buchungsanfrage</h2>
<p><strong>Gast:</strong> %s (%s)</p>
<p><strong>Zeitraum:</strong> %s bis %s</p>
<p><strong>Personen:</strong> %d</p>
<p><strong>Gesamtpreis:</strong> %.2f EUR</p>
</div>`, booking.GuestName, booking.GuestEmail, booking.CheckIn, booking.CheckOut, booking.Guests, booking.TotalPrice)

	err := s.send(resendPayload{
		From:    s.fromEmail,
		To:      []string{s.adminEmail},
		Subject: fmt.Sprintf("Neue Buchung: %s bis %s", booking.CheckIn, booking.CheckOut),
		HTML:    html,
	})
	if err != nil {
		log.Printf("email: admin notification failed: %v", err)
	}
}
