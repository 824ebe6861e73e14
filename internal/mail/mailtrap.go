// Package mail sends transactional email through the Mailtrap API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers credential-setup and recovery mail. The no-op sender is
// used when no mail backend is configured.
type Sender interface {
	SendCredentialReset(ctx context.Context, toEmail, toName, resetToken string) error
}

type MailtrapSender struct {
	url    string
	apiKey string
	from   string
	client *http.Client
}

func NewMailtrapSender(url, apiKey, from string) *MailtrapSender {
	return &MailtrapSender{
		url:    url,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type emailRequest struct {
	From     recipient   `json:"from"`
	To       []recipient `json:"to"`
	Subject  string      `json:"subject"`
	Text     string      `json:"text"`
	Category string      `json:"category,omitempty"`
}

func (m *MailtrapSender) SendCredentialReset(ctx context.Context, toEmail, toName, resetToken string) error {
	body := fmt.Sprintf(`Hello %s,

An account was prepared for you at our clinic. Use the token below to set
your password. It expires in 1 hour.

%s

If you did not expect this message, please ignore it.
`, toName, resetToken)

	return m.send(ctx, emailRequest{
		From:     recipient{Email: m.from, Name: "PhysioCare Clinic"},
		To:       []recipient{{Email: toEmail, Name: toName}},
		Subject:  "Set up your clinic account password",
		Text:     body,
		Category: "credential_reset",
	})
}

func (m *MailtrapSender) send(ctx context.Context, emailReq emailRequest) error {
	payload, err := json.Marshal(emailReq)
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mailtrap API returned status: %d", resp.StatusCode)
	}

	return nil
}

// Discard is a Sender that drops mail, for deployments without a mail
// backend and for tests.
type Discard struct{}

func (Discard) SendCredentialReset(context.Context, string, string, string) error { return nil }
