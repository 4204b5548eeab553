package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mikey/news-agent/internal/core"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a rejected response is logged
const maxErrorBody = 4096

// ResendMailer delivers emails through the Resend HTTP API
type ResendMailer struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     *zap.Logger
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NewResendMailer creates a new Resend mailer
func NewResendMailer(httpClient *http.Client, endpoint, apiKey string, logger *zap.Logger) *ResendMailer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ResendMailer{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Send posts the email once. Any status other than 200 is logged as a failed
// delivery and is not returned as an error.
func (m *ResendMailer) Send(ctx context.Context, email *core.Email) error {
	payload, err := json.Marshal(resendRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach email API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		m.logger.Warn("Failed to read email API response", zap.Error(err))
	}

	if resp.StatusCode != http.StatusOK {
		m.logger.Error("Email failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", body),
			zap.Strings("to", email.To))
		return nil
	}

	m.logger.Info("Email sent successfully",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}
