// Package gigachat implements the advisory completion path: a lightweight
// tip generator behind an OAuth credential cache.
package gigachat

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/config"
	"github.com/legalfox/legalfox-backend/internal/entity"
	pkghttp "github.com/legalfox/legalfox-backend/pkg/http"
)

const completionsEndpoint = "/chat/completions"

type Connector struct {
	config    config.GigaChatConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.GigaChatConfig, tokens *TokenProvider, logger *zap.Logger) *Connector {
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
			pkghttp.WithTokenSource(tokens),
		),
		config: cfg,
		logger: logger,
	}
}

// Complete sends a short advisory request and returns the trimmed first
// choice. Every failure comes back as entity.ErrCompletionUnavailable;
// the caller decides on the fallback.
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

	var resp entity.ChatCompletionResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, completionsEndpoint, req, &resp); err != nil {
		ctxzap.Warn(ctx, "advisory completion failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", entity.ErrCompletionUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", entity.ErrEmptyCompletion
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
