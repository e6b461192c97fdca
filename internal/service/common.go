// Package service holds the business rules between the HTTP handlers
// and the repositories. Each service accepts validated request DTOs and
// returns response DTOs, never raw models.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"carehub/internal/mailer"
	"carehub/internal/ws"
	"carehub/pkg/apperr"
)

const dateLayout = "2006-01-02"

// Publisher pushes care-record events to connected dashboards. Satisfied
// by *ws.Hub; tests substitute a recorder.
type Publisher interface {
	Publish(event ws.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(ws.Event) {}

// NopPublisher discards events. Used when no hub is wired, e.g. in tests.
func NopPublisher() Publisher { return noopPublisher{} }

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperr.FieldErrors(map[string]string{field: "must be a date in YYYY-MM-DD format"})
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperr.FieldErrors(map[string]string{field: "must be a valid UUID"})
	}
	return id, nil
}

func parseOptionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// sendMail dispatches one message on a background goroutine. Delivery is
// best effort: a failing email provider must not fail the request that
// triggered the notification.
func sendMail(notifier mailer.Notifier, to, toName, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := notifier.Send(ctx, to, toName, subject, body); err != nil {
			log.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("email delivery failed")
		}
	}()
}
