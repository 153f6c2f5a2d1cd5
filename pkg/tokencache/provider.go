package tokencache

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Issuer generates a fresh token for a source account. Issuers must tolerate
// duplicate concurrent calls: the provider does not coalesce concurrent
// misses for the same key, so tokens are assumed idempotent or cheaply
// re-issuable.
type Issuer func(ctx context.Context) (string, error)

// Provider resolves tokens with a lookaside pattern: check the cache, on
// miss issue and store. A failing cache backend fails open; the token is
// still issued and the request proceeds without caching.
type Provider struct {
	cache  Cache
	logger *otelzap.Logger
	ttl    time.Duration
}

// NewProvider creates a token provider over the given cache backend.
func NewProvider(cache Cache, logger *otelzap.Logger, ttl time.Duration) *Provider {
	return &Provider{cache: cache, logger: logger, ttl: ttl}
}

// Token returns a token for the source account, from cache when possible.
func (p *Provider) Token(ctx context.Context, source, accountID string, issue Issuer) (string, error) {
	key := Key(source, accountID)

	token, err := p.cache.Get(ctx, key)
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && err != ErrCacheMiss {
		p.logger.Warn("Token cache read failed, proceeding without cache",
			zap.String("source", source),
			zap.Error(err),
		)
	}

	token, err = issue(ctx)
	if err != nil {
		return "", err
	}

	if err := p.cache.Set(ctx, key, token, p.ttl); err != nil {
		p.logger.Warn("Token cache write failed",
			zap.String("source", source),
			zap.Error(err),
		)
	}
	return token, nil
}
