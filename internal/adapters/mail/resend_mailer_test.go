package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/mikey/news-agent/internal/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampleEmail() *core.Email {
	return &core.Email{
		From:    "agent@example.com",
		To:      []string{"reader@example.com"},
		Subject: "📊 Market News Briefing - Mar 05, 2026",
		HTML:    "<p>report</p>",
	}
}

func TestResendSendPostsEmail(t *testing.T) {
	var got resendRequest
	var auth, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer srv.Close()

	obs, logs := observer.New(zapcore.InfoLevel)
	mailer := NewResendMailer(srv.Client(), srv.URL+"/emails", "re_test", zap.New(obs))

	err := mailer.Send(context.Background(), sampleEmail())

	assert.Equal(t, nil, err)
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "agent@example.com", got.From)
	assert.Equal(t, []string{"reader@example.com"}, got.To)
	assert.Equal(t, "📊 Market News Briefing - Mar 05, 2026", got.Subject)
	assert.Equal(t, "<p>report</p>", got.HTML)
	assert.Equal(t, 1, logs.FilterMessage("Email sent successfully").Len())
}

func TestResendNon200IsLoggedNotReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"name":"internal_server_error","message":"try later"}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	))
	mailer := NewResendMailer(srv.Client(), srv.URL, "re_test", logger)

	err := mailer.Send(context.Background(), sampleEmail())

	assert.Equal(t, nil, err)
	output := buf.String()
	assert.Equal(t, true, strings.Contains(output, "Email failed"))
	assert.Equal(t, true, strings.Contains(output, "500"))
	assert.Equal(t, true, strings.Contains(output, "try later"))
	assert.Equal(t, false, strings.Contains(output, "Email sent successfully"))
}

func TestResendCreatedIsNotSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	obs, logs := observer.New(zapcore.InfoLevel)
	mailer := NewResendMailer(srv.Client(), srv.URL, "re_test", zap.New(obs))

	assert.Equal(t, nil, mailer.Send(context.Background(), sampleEmail()))

	failures := logs.FilterMessage("Email failed").All()
	assert.Equal(t, 1, len(failures))
	assert.Equal(t, int64(http.StatusCreated), failures[0].ContextMap()["status"])
}

func TestResendUnreachableReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	mailer := NewResendMailer(nil, endpoint, "re_test", zap.NewNop())

	err := mailer.Send(context.Background(), sampleEmail())

	assert.NotEqual(t, nil, err)
}
