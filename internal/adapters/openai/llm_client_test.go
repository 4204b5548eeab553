package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/mikey/news-agent/internal/config"
	"github.com/mikey/news-agent/internal/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleCompletion = `{"id":"chatcmpl-1","object":"chat.completion","model":"llama-3.3-70b-versatile","choices":[{"index":0,"message":{"role":"assistant","content":"1. Foo Corp (Reuters)\n\nSummary: ...\n\nStocks: FOO 📈 Bullish - Tech\n\nLink: http://x"},"finish_reason":"stop"}]}`

func newTestClient(t *testing.T, handler http.HandlerFunc, logger *zap.Logger) core.LLMClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewFromViper(config.NewEmptyViper())
	cfg.Set("openai.api_key", "gsk_test")
	cfg.Set("openai.base_url", srv.URL+"/openai/v1")

	client, err := NewFactory(cfg, logger).CreateLLMClient()
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestSummarizeSendsExpectedRequest(t *testing.T) {
	var body map[string]any
	var path, auth string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleCompletion)
	}, zap.NewNop())

	report, err := client.Summarize(context.Background(), "pick the movers")

	assert.Equal(t, nil, err)
	assert.Equal(t, "1. Foo Corp (Reuters)\n\nSummary: ...\n\nStocks: FOO 📈 Bullish - Tech\n\nLink: http://x", report)

	assert.Equal(t, "/openai/v1/chat/completions", path)
	assert.Equal(t, "Bearer gsk_test", auth)
	assert.Equal(t, "llama-3.3-70b-versatile", body["model"])
	assert.Equal(t, 0.3, body["temperature"])
	assert.Equal(t, float64(2000), body["max_tokens"])

	messages := body["messages"].([]any)
	assert.Equal(t, 1, len(messages))
	message := messages[0].(map[string]any)
	assert.Equal(t, "user", message["role"])
	assert.Equal(t, "pick the movers", message["content"])
}

func TestSummarizeWithoutChoicesFails(t *testing.T) {
	obs, logs := observer.New(zapcore.InfoLevel)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"chatcmpl-2","object":"chat.completion","choices":[]}`)
	}, zap.New(obs))

	report, err := client.Summarize(context.Background(), "prompt")

	assert.Equal(t, "", report)
	assert.Equal(t, true, errors.Is(err, core.ErrNoCompletion))
	assert.Equal(t, 1, logs.FilterMessage("API Error").Len())
}

func TestSummarizeWithoutContentFails(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "choice without message", body: `{"id":"chatcmpl-3","choices":[{"index":0}]}`},
		{name: "message without content", body: `{"id":"chatcmpl-4","choices":[{"index":0,"message":{"role":"assistant"}}]}`},
		{name: "empty content", body: `{"id":"chatcmpl-5","choices":[{"index":0,"message":{"role":"assistant","content":""}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, logs := observer.New(zapcore.InfoLevel)
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			}, zap.New(obs))

			report, err := client.Summarize(context.Background(), "prompt")

			assert.Equal(t, "", report)
			assert.Equal(t, true, errors.Is(err, core.ErrNoCompletion))
			assert.Equal(t, 1, logs.FilterMessage("API Error").Len())
		})
	}
}

func TestSummarizeAPIErrorFails(t *testing.T) {
	obs, logs := observer.New(zapcore.InfoLevel)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`)
	}, zap.New(obs))

	_, err := client.Summarize(context.Background(), "prompt")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, logs.FilterMessage("API Error").Len())
}
