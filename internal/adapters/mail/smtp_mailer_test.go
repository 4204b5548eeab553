package mail

import (
	"bytes"
	"context"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/go-playground/assert/v2"
	"github.com/mikey/news-agent/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordedMessage struct {
	from string
	to   []string
	data []byte
}

type testBackend struct {
	mu         sync.Mutex
	messages   []recordedMessage
	rejectRcpt bool
}

func (b *testBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &testSession{backend: b}, nil
}

type testSession struct {
	backend *testBackend
	msg     recordedMessage
}

func (s *testSession) AuthPlain(username, password string) error {
	return smtp.ErrAuthUnsupported
}

func (s *testSession) Mail(from string, opts *smtp.MailOptions) error {
	s.msg.from = from
	return nil
}

func (s *testSession) Rcpt(to string, opts *smtp.RcptOptions) error {
	if s.backend.rejectRcpt {
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 1, 1},
			Message:      "mailbox unavailable",
		}
	}
	s.msg.to = append(s.msg.to, to)
	return nil
}

func (s *testSession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.msg.data = data
	s.backend.mu.Lock()
	s.backend.messages = append(s.backend.messages, s.msg)
	s.backend.mu.Unlock()
	return nil
}

func (s *testSession) Reset() {
	s.msg = recordedMessage{}
}

func (s *testSession) Logout() error {
	return nil
}

func startSMTPServer(t *testing.T, backend *testBackend) config.SMTPConfig {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	srv := smtp.NewServer(backend)
	srv.Domain = "localhost"
	srv.ReadTimeout = 5 * time.Second
	srv.WriteTimeout = 5 * time.Second
	go srv.Serve(l)
	t.Cleanup(func() { srv.Close() })

	host, port, _ := net.SplitHostPort(l.Addr().String())
	p, _ := strconv.Atoi(port)
	return config.SMTPConfig{Host: host, Port: p}
}

func TestSMTPSendDeliversMessage(t *testing.T) {
	backend := &testBackend{}
	cfg := startSMTPServer(t, backend)
	obs, logs := observer.New(zapcore.InfoLevel)

	err := NewSMTPMailer(cfg, zap.New(obs)).Send(context.Background(), sampleEmail())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, logs.FilterMessage("Email sent successfully").Len())

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, 1, len(backend.messages))
	msg := backend.messages[0]
	assert.Equal(t, "agent@example.com", msg.from)
	assert.Equal(t, []string{"reader@example.com"}, msg.to)
	assert.Equal(t, true, bytes.Contains(msg.data, []byte("Content-Type: text/html; charset=UTF-8")))
	assert.Equal(t, true, bytes.Contains(msg.data, []byte("<p>report</p>")))
}

func TestSMTPRejectionIsLoggedNotReturned(t *testing.T) {
	backend := &testBackend{rejectRcpt: true}
	cfg := startSMTPServer(t, backend)
	obs, logs := observer.New(zapcore.InfoLevel)

	err := NewSMTPMailer(cfg, zap.New(obs)).Send(context.Background(), sampleEmail())

	assert.Equal(t, nil, err)
	failures := logs.FilterMessage("Email failed").All()
	assert.Equal(t, 1, len(failures))
	assert.Equal(t, int64(550), failures[0].ContextMap()["status"])
}

func TestSMTPUnreachableReturnsError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	host, port, _ := net.SplitHostPort(l.Addr().String())
	l.Close()
	p, _ := strconv.Atoi(port)

	err = NewSMTPMailer(config.SMTPConfig{Host: host, Port: p}, zap.NewNop()).Send(context.Background(), sampleEmail())

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "failed to connect"))
}

func TestBuildMessage(t *testing.T) {
	email := sampleEmail()
	email.HTML = "<p>line one</p>\n<p>line two</p>"

	msg := string(buildMessage(email, time.Date(2026, time.March, 5, 7, 0, 0, 0, time.UTC)))

	assert.Equal(t, true, strings.HasPrefix(msg, "From: agent@example.com\r\nTo: reader@example.com\r\n"))
	assert.Equal(t, true, strings.Contains(msg, "Subject: =?utf-8?q?"))
	assert.Equal(t, true, strings.Contains(msg, "Date: Thu, 05 Mar 2026 07:00:00 +0000\r\n"))
	assert.Equal(t, true, strings.Contains(msg, "\r\n\r\n<p>line one</p>\r\n<p>line two</p>\r\n"))
}
