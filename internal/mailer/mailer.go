package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"carehub/internal/config"
)

// Notifier sends transactional email. Services hold this interface so
// tests can swap in a recorder.
type Notifier interface {
	Send(ctx context.Context, to, toName, subject, htmlContent string) error
}

type party struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type payload struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

// Mailer delivers mail through an HTTP transactional-email API.
type Mailer struct {
	cfg    config.EmailConfig
	client *http.Client
}

func New(cfg config.EmailConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts one message to the email API. The API answers 201 on
// acceptance; anything else is an error.
func (m *Mailer) Send(ctx context.Context, to, toName, subject, htmlContent string) error {
	body, err := json.Marshal(payload{
		Sender:      party{Email: m.cfg.SenderID, Name: m.cfg.SenderName},
		To:          []party{{Email: to, Name: toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", m.cfg.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}
	log.Debug().Str("to", to).Str("subject", subject).Msg("email dispatched")
	return nil
}
