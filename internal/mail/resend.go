package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"smart-fuel-crm/internal/logger"
)

var ErrNotConfigured = errors.New("RESEND_API_KEY is not set")

// Attachment is sent by reference: Resend fetches Path itself.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type Message struct {
	To          string
	CC          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Sender delivers one message and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type resendPayload struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	CC          []string     `json:"cc,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type Resend struct {
	from   string
	apiKey string
	client *resty.Client
}

func NewResend(baseURL, apiKey, from string) *Resend {
	return &Resend{
		from:   from,
		apiKey: apiKey,
		client: resty.New().SetBaseURL(strings.TrimRight(baseURL, "/")),
	}
}

func (r *Resend) Send(ctx context.Context, msg Message) (string, error) {
	if r.apiKey == "" {
		return "", ErrNotConfigured
	}
	if msg.To == "" || msg.Subject == "" || msg.Body == "" {
		return "", errors.New("missing required fields: to, subject, body")
	}

	payload := resendPayload{
		From:        r.from,
		To:          []string{msg.To},
		Subject:     msg.Subject,
		HTML:        strings.ReplaceAll(msg.Body, "\n", "<br>"),
		Attachments: msg.Attachments,
	}
	if msg.CC != "" {
		payload.CC = []string{msg.CC}
	}

	var out resendResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetAuthToken(r.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Post("/emails")
	if err != nil {
		logger.Errorw("resend request failed", "to", msg.To, "error", err)
		return "", fmt.Errorf("resend request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		logger.Errorw("resend rejected email", "to", msg.To, "status", resp.StatusCode(), "body", resp.String())
		if out.Message != "" {
			return "", errors.New(out.Message)
		}
		return "", fmt.Errorf("failed to send email via Resend: status %d", resp.StatusCode())
	}
	return out.ID, nil
}
