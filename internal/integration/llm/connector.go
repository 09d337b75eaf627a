// Package llm implements the remote-completion client used by the
// document-generation pipeline. The upstream is an OpenAI-compatible
// chat-completions endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/config"
	"github.com/legalfox/legalfox-backend/internal/entity"
	pkghttp "github.com/legalfox/legalfox-backend/pkg/http"
)

const completionsEndpoint = "/chat/completions"

type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.LLMConnectorConfig, logger *zap.Logger) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return &Connector{
		connector: pkghttp.NewConnector(
			connCfg,
			pkghttp.WithRequestTimeout(cfg.RequestTimeout),
			pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
			pkghttp.WithClientKeepAlive(cfg.KeepAlive),
			pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
			pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
			pkghttp.WithRequestLogging(),
			pkghttp.WithAuthToken(cfg.APIKey),
		),
		config: cfg,
		logger: logger,
	}
}

// Complete sends the system prompt and user message to the remote model and
// returns the trimmed text of the first choice. Transient network errors are
// retried with bounded backoff; any terminal failure comes back as
// entity.ErrCompletionUnavailable.
func (c *Connector) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	req := &entity.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []entity.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}

	resp, err := retry.DoWithData(func() (*entity.ChatCompletionResponse, error) {
		var resp entity.ChatCompletionResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, completionsEndpoint, req, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	},
		append(c.config.Retry.ToRetryOptions(),
			retry.Context(ctx),
			retry.RetryIf(isRetryable),
		)...,
	)
	if err != nil {
		ctxzap.Error(ctx, "completion request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", entity.ErrCompletionUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", entity.ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	ctxzap.Info(ctx, "completion received", zap.Int("length", len(text)))

	return text, nil
}

// isRetryable limits retries to network-level failures; HTTP error responses
// are returned to the caller as-is.
func isRetryable(err error) bool {
	var netErr *pkghttp.NetworkError
	return errors.As(err, &netErr)
}
