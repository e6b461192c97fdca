package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carehub/internal/config"
)

func TestSend(t *testing.T) {
	var (
		gotPath   string
		gotAPIKey string
		gotBody   payload
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("api-key")
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	mailer := New(config.EmailConfig{
		APIURL:     server.URL + "/v3/smtp/email",
		APIKey:     "test-api-key",
		SenderID:   "noreply@carehub.example",
		SenderName: "CareHub",
	})

	err := mailer.Send(context.Background(), "jane.doe@example.com", "Jane Doe", "Welcome", "<p>Hello Jane</p>")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/v3/smtp/email" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAPIKey != "test-api-key" {
		t.Errorf("api-key = %q", gotAPIKey)
	}
	if gotBody.Sender.Email != "noreply@carehub.example" || gotBody.Sender.Name != "CareHub" {
		t.Errorf("sender = %+v", gotBody.Sender)
	}
	if len(gotBody.To) != 1 || gotBody.To[0].Email != "jane.doe@example.com" || gotBody.To[0].Name != "Jane Doe" {
		t.Errorf("to = %+v", gotBody.To)
	}
	if gotBody.Subject != "Welcome" || gotBody.HTMLContent != "<p>Hello Jane</p>" {
		t.Errorf("subject/content = %q / %q", gotBody.Subject, gotBody.HTMLContent)
	}
}

func TestSendNonCreatedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	mailer := New(config.EmailConfig{APIURL: server.URL, APIKey: "bad-key"})
	err := mailer.Send(context.Background(), "jane.doe@example.com", "Jane Doe", "Welcome", "<p>Hi</p>")
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should name the status: %v", err)
	}
}

func TestSendUnreachableAPI(t *testing.T) {
	mailer := New(config.EmailConfig{APIURL: "http://127.0.0.1:1/email"})
	if err := mailer.Send(context.Background(), "jane.doe@example.com", "Jane Doe", "Welcome", "<p>Hi</p>"); err == nil {
		t.Fatal("expected a transport error")
	}
}

func TestTemplatesMentionRecipient(t *testing.T) {
	subject, body := Welcome("Jane Doe", "jane.doe@example.com", "s3cret-pass")
	if subject == "" {
		t.Error("welcome subject empty")
	}
	if !strings.Contains(body, "Jane Doe") || !strings.Contains(body, "s3cret-pass") {
		t.Error("welcome body must carry the name and the initial password")
	}

	_, body = RecordReviewed("Jane Doe", "Chart", "Ada Resident", "declined", "missing detail")
	if !strings.Contains(body, "missing detail") {
		t.Error("declined review body must carry the reason")
	}

	_, body = AssessmentDue("Sam Admin", "Ada Resident", "assessment", "2026-09-08")
	if !strings.Contains(body, "Ada Resident") || !strings.Contains(body, "2026-09-08") {
		t.Error("assessment-due body must carry the resident and the date")
	}
}
