package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/config"
	"github.com/legalfox/legalfox-backend/internal/entity"
	pkgRetry "github.com/legalfox/legalfox-backend/internal/pkg/retry"
)

func testConfig(url string) config.LLMConnectorConfig {
	return config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        2 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: time.Second,
			Url:                   url,
		},
		APIKey:      "sk-test",
		Model:       "gpt-mock",
		Temperature: 0.4,
		MaxTokens:   1500,
		Retry:       *pkgRetry.DefaultRetryConfig(),
	}
}

func TestComplete_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req entity.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-mock", req.Model)
		require.Len(t, req.Messages, 2)
		require.Equal(t, "system", req.Messages[0].Role)
		require.InDelta(t, 0.4, req.Temperature, 1e-9)
		require.Equal(t, 1500, req.MaxTokens)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Договор готов.  "}}]}`))
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	text, err := c.Complete(context.Background(), "system prompt", "user message")
	require.NoError(t, err)
	require.Equal(t, "Договор готов.", text)
}

func TestComplete_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	_, err := c.Complete(context.Background(), "s", "u")
	require.ErrorIs(t, err, entity.ErrCompletionUnavailable)
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	_, err := c.Complete(context.Background(), "s", "u")
	require.ErrorIs(t, err, entity.ErrEmptyCompletion)
}

func TestComplete_NetworkErrorRetriesThenFails(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Retry.Attempts = 2
	cfg.Retry.Delay = time.Millisecond
	cfg.Retry.MaxDelay = 2 * time.Millisecond

	c := NewConnector(cfg, zap.NewNop())
	_, err := c.Complete(context.Background(), "s", "u")
	require.ErrorIs(t, err, entity.ErrCompletionUnavailable)
}

func TestComplete_HTTPErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	_, err := c.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	require.Equal(t, 1, calls, "HTTP errors must not be retried")
}
