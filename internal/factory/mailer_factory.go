package factory

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikey/news-agent/internal/adapters/mail"
	"github.com/mikey/news-agent/internal/config"
	"github.com/mikey/news-agent/internal/core"
	"go.uber.org/zap"
)

// MailerFactory creates mailers based on configuration
type MailerFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	preview io.Writer
}

// NewMailerFactory creates a new mailer factory. Previews are written to preview.
func NewMailerFactory(cfg *config.Config, logger *zap.Logger, preview io.Writer) *MailerFactory {
	return &MailerFactory{
		cfg:     cfg,
		logger:  logger,
		preview: preview,
	}
}

// CreateMailer creates a mailer for the configured delivery provider
func (f *MailerFactory) CreateMailer() (core.Mailer, error) {
	delivery := f.cfg.GetDelivery()

	switch delivery.Provider {
	case "resend":
		return mail.NewResendMailer(
			&http.Client{Timeout: 30 * time.Second},
			delivery.Endpoint,
			delivery.APIKey,
			f.logger,
		), nil
	case "smtp":
		return mail.NewSMTPMailer(f.cfg.GetSMTP(), f.logger), nil
	case "preview":
		return mail.NewPreviewMailer(f.preview, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported delivery provider: %s", delivery.Provider)
	}
}

// CreateEnvelope returns the sender, recipient and subject prefix of the briefing
func (f *MailerFactory) CreateEnvelope() core.Envelope {
	delivery := f.cfg.GetDelivery()
	return core.Envelope{
		From:          delivery.From,
		Recipient:     delivery.Recipient,
		SubjectPrefix: delivery.SubjectPrefix,
	}
}
