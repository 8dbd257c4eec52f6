package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmailSenderPostsExpectedPayload(t *testing.T) {
	var captured []byte
	var contentType string
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		captured, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer endpoint.Close()

	sender, err := NewEmailSender(EmailSenderConfig{
		Endpoint:    endpoint.URL,
		FromAddress: "noreply@uzeuro.eu",
		FromName:    "UZEURO Association",
		To:          "info@uzeuro.eu",
	})
	if err != nil {
		t.Fatalf("failed to build sender: %v", err)
	}

	if err := sender.Send(context.Background(), "New membership application", "<h2>Hello</h2>"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if contentType != "application/json" {
		t.Fatalf("expected json content type, got %q", contentType)
	}

	var payload struct {
		Personalizations []struct {
			To []struct {
				Email string `json:"email"`
			} `json:"to"`
		} `json:"personalizations"`
		From struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"from"`
		Subject string `json:"subject"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	if len(payload.Personalizations) != 1 || len(payload.Personalizations[0].To) != 1 {
		t.Fatalf("unexpected personalizations: %s", captured)
	}
	if got := payload.Personalizations[0].To[0].Email; got != "info@uzeuro.eu" {
		t.Fatalf("expected admin recipient, got %q", got)
	}
	if payload.From.Email != "noreply@uzeuro.eu" || payload.From.Name != "UZEURO Association" {
		t.Fatalf("unexpected from: %+v", payload.From)
	}
	if payload.Subject != "New membership application" {
		t.Fatalf("unexpected subject %q", payload.Subject)
	}
	if len(payload.Content) != 1 || payload.Content[0].Type != "text/html" || payload.Content[0].Value != "<h2>Hello</h2>" {
		t.Fatalf("unexpected content: %+v", payload.Content)
	}
}

func TestEmailSenderReportsEndpointErrors(t *testing.T) {
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rejected", http.StatusForbidden)
	}))
	defer endpoint.Close()

	sender, err := NewEmailSender(EmailSenderConfig{
		Endpoint:    endpoint.URL,
		FromAddress: "noreply@uzeuro.eu",
		To:          "info@uzeuro.eu",
	})
	if err != nil {
		t.Fatalf("failed to build sender: %v", err)
	}

	if err := sender.Send(context.Background(), "subject", "body"); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestEmailSenderRequiresConfiguration(t *testing.T) {
	if _, err := NewEmailSender(EmailSenderConfig{FromAddress: "a@b", To: "c@d"}); !errors.Is(err, errMissingEmailConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if _, err := NewEmailSender(EmailSenderConfig{Endpoint: "https://example.test", To: "c@d"}); !errors.Is(err, errMissingEmailConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}
