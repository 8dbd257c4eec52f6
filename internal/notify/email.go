package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var errMissingEmailConfig = errors.New("notify: endpoint, from address and recipient are required")

// EmailSenderConfig configures the transactional-email webhook channel.
type EmailSenderConfig struct {
	Endpoint    string
	FromAddress string
	FromName    string
	To          string
	HTTPClient  *http.Client
}

// EmailSender posts a MailChannels-shaped JSON payload to the configured
// send endpoint.
type EmailSender struct {
	endpoint string
	from     string
	fromName string
	to       string
	client   *http.Client
}

// NewEmailSender constructs the email channel.
func NewEmailSender(cfg EmailSenderConfig) (*EmailSender, error) {
	if cfg.Endpoint == "" || cfg.FromAddress == "" || cfg.To == "" {
		return nil, errMissingEmailConfig
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &EmailSender{
		endpoint: cfg.Endpoint,
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		to:       cfg.To,
		client:   client,
	}, nil
}

// Name identifies the channel in logs.
func (s *EmailSender) Name() string {
	return "email"
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type emailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type emailPayload struct {
	Personalizations []struct {
		To []emailAddress `json:"to"`
	} `json:"personalizations"`
	From    emailAddress   `json:"from"`
	Subject string         `json:"subject"`
	Content []emailContent `json:"content"`
}

// Send delivers one HTML email to the administrative mailbox.
func (s *EmailSender) Send(ctx context.Context, subject, htmlBody string) error {
	payload := emailPayload{
		From:    emailAddress{Email: s.from, Name: s.fromName},
		Subject: subject,
		Content: []emailContent{{Type: "text/html", Value: htmlBody}},
	}
	payload.Personalizations = append(payload.Personalizations, struct {
		To []emailAddress `json:"to"`
	}{To: []emailAddress{{Email: s.to}}})

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: encode email payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build email request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("notify: send email: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notify: email endpoint returned %d", response.StatusCode)
	}
	return nil
}
