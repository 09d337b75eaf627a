package gigachat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/config"
	"github.com/legalfox/legalfox-backend/internal/entity"
	pkghttp "github.com/legalfox/legalfox-backend/pkg/http"
)

const (
	tokenCacheKey = "access_token"

	// expiryMargin is subtracted from the declared token validity so a
	// token is never handed out right before it expires.
	expiryMargin = 60 * time.Second

	// defaultTokenValidity is assumed when the authorization response
	// does not declare an expiry.
	defaultTokenValidity = 1800 * time.Second
)

// oauthResponse is the NGW authorization exchange response shape.
// ExpiresAt is a millisecond unix timestamp.
type oauthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// TokenProvider exchanges the static authorization key for short-lived
// bearer tokens and caches them until shortly before expiry. Concurrent
// callers may race into overlapping refreshes; the later-cached token wins,
// which is acceptable here.
type TokenProvider struct {
	authKey   string
	scope     string
	authURL   string
	connector *pkghttp.Connector
	cache     *gocache.Cache
	logger    *zap.Logger

	now func() time.Time
}

func NewTokenProvider(cfg config.GigaChatConfig, logger *zap.Logger) *TokenProvider {
	connCfg := &pkghttp.ConnectorConfig{
		Logger: logger,
	}

	return &TokenProvider{
		authKey: cfg.AuthKey,
		scope:   cfg.Scope,
		authURL: cfg.AuthURL,
		connector: pkghttp.NewConnector(
			connCfg,
			pkghttp.WithRequestTimeout(cfg.RequestTimeout),
			pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		),
		cache:  gocache.New(cfg.TokenTTL, 5*time.Minute),
		logger: logger,
		now:    time.Now,
	}
}

// Token returns the cached bearer token, refreshing it through the
// authorization exchange when absent or expired.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	if cached, ok := p.cache.Get(tokenCacheKey); ok {
		return cached.(string), nil
	}

	if p.authKey == "" {
		return "", entity.ErrAuthKeyMissing
	}

	form := url.Values{}
	form.Set("scope", p.scope)

	var resp oauthResponse
	err := p.connector.DoFormRequest(ctx, http.MethodPost, "", form, &resp,
		pkghttp.WithURL(p.authURL),
		pkghttp.WithHeader("Authorization", "Basic "+p.authKey),
		pkghttp.WithHeader("RqUID", uuid.NewString()),
	)
	if err != nil {
		return "", fmt.Errorf("authorization exchange: %w", err)
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("authorization exchange returned empty token")
	}

	validity := defaultTokenValidity
	if resp.ExpiresAt > 0 {
		validity = time.UnixMilli(resp.ExpiresAt).Sub(p.now())
	}

	ttl := validity - expiryMargin
	if ttl > 0 {
		p.cache.Set(tokenCacheKey, resp.AccessToken, ttl)
	}

	ctxzap.Info(ctx, "credential refreshed", zap.Duration("ttl", ttl))

	return resp.AccessToken, nil
}
