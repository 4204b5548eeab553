package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/mikey/news-agent/internal/config"
	"github.com/mikey/news-agent/internal/core"
	"go.uber.org/zap"
)

// SMTPMailer delivers emails through an SMTP relay
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Send relays the email. Rejections by the server are logged and not
// returned; failing to connect is.
func (m *SMTPMailer) Send(ctx context.Context, email *core.Email) error {
	err := m.send(ctx, email)

	var smtpErr *smtp.SMTPError
	if errors.As(err, &smtpErr) {
		m.logger.Error("Email failed",
			zap.Int("status", smtpErr.Code),
			zap.String("response", smtpErr.Message),
			zap.Strings("to", email.To))
		return nil
	}
	if err != nil {
		return err
	}

	m.logger.Info("Email sent successfully",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

func (m *SMTPMailer) send(ctx context.Context, email *core.Email) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	// Connect to the server with a timeout
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	// Set a deadline for the connection
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if m.cfg.StartTLS {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			return fmt.Errorf("server %s does not support STARTTLS", addr)
		}
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	if m.cfg.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", m.cfg.Username, m.cfg.Password)); err != nil {
			return fmt.Errorf("AUTH failed: %w", err)
		}
	}

	if err := c.Mail(email.From, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	for _, recipient := range email.To {
		if err := c.Rcpt(recipient, nil); err != nil {
			return fmt.Errorf("RCPT TO %s failed: %w", recipient, err)
		}
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := bytes.NewReader(buildMessage(email, m.now())).WriteTo(wc); err != nil {
		wc.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("message rejected: %w", err)
	}

	return c.Quit()
}
