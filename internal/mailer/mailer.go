// Package mailer delivers transactional email through a Resend-style
// HTTP API. There is no retry: a failed send surfaces to the caller,
// who asks the user to try again.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Sender is what the handlers depend on.
type Sender interface {
	Send(ctx context.Context, to, subject, text string) error
}

const defaultBaseURL = "https://api.resend.com"

type Resend struct {
	BaseURL string
	APIKey  string
	From    string
	Client  *http.Client
}

func NewResend(apiKey, from string) *Resend {
	return &Resend{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		From:    from,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (m *Resend) Send(ctx context.Context, to, subject, text string) error {
	payload, err := json.Marshal(sendRequest{
		From:    m.From,
		To:      []string{to},
		Subject: subject,
		Text:    text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mailer: status %d: %s", resp.StatusCode, body)
	}

	log.Printf("Email sent to %s", to)
	return nil
}
