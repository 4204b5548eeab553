package mail

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mikey/news-agent/internal/core"
	"go.uber.org/zap"
)

// PreviewMailer prints the email instead of sending it
type PreviewMailer struct {
	out    io.Writer
	logger *zap.Logger
}

// NewPreviewMailer creates a new preview mailer writing to out
func NewPreviewMailer(out io.Writer, logger *zap.Logger) *PreviewMailer {
	return &PreviewMailer{
		out:    out,
		logger: logger,
	}
}

// Send writes the envelope and HTML body
func (m *PreviewMailer) Send(ctx context.Context, email *core.Email) error {
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(m.out, rule)
	fmt.Fprintln(m.out, "EMAIL PREVIEW:")
	fmt.Fprintln(m.out, rule)
	fmt.Fprintf(m.out, "From: %s\n", email.From)
	fmt.Fprintf(m.out, "To: %s\n", strings.Join(email.To, ", "))
	fmt.Fprintf(m.out, "Subject: %s\n\n", email.Subject)
	fmt.Fprintln(m.out, email.HTML)
	fmt.Fprintln(m.out, rule)

	m.logger.Info("Email preview written, nothing was sent", zap.Int("html_size", len(email.HTML)))
	return nil
}
