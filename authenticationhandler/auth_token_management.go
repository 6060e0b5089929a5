// authenticationhandler/auth_token_management.go
package authenticationhandler

import (
	"context"

	"github.com/deploymenttheory/go-api-account-client/tokencache"
	"go.uber.org/zap"
)

const refreshKey = "token"

// Token returns a valid token, trying the in-memory token, then the cache, then a fetch.
// A cache read error is logged and treated as a miss.
func (h *AuthTokenHandler) Token(ctx context.Context) (string, error) {
	if tok := h.Current(); tok.Valid(h.now()) {
		return tok.Value, nil
	}

	cached, err := h.cache.GetToken(ctx)
	switch {
	case err != nil:
		h.Logger.Warn("Failed to read token cache, fetching a new token", zap.Error(err))
	case cached != nil && cached.Valid(h.now()):
		h.Logger.Debug("Using token from cache", zap.Time("Expiry", cached.ExpiresAt))
		h.adopt(*cached)
		return cached.Value, nil
	}

	return h.refresh(ctx, "")
}

// Refresh fetches a new token, bypassing the cache. stale is the token the API rejected; if another
// caller has already replaced it with a valid token, that token is returned without fetching again.
func (h *AuthTokenHandler) Refresh(ctx context.Context, stale string) (string, error) {
	if tok := h.Current(); tok.Valid(h.now()) && tok.Value != stale {
		return tok.Value, nil
	}
	return h.refresh(ctx, stale)
}

// refresh runs at most one fetch at a time. A caller that lost the race to a fetch that has
// just finished picks up its token instead of fetching again.
func (h *AuthTokenHandler) refresh(ctx context.Context, stale string) (string, error) {
	// The shared fetch must not die with whichever caller happened to start it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := h.group.DoChan(refreshKey, func() (interface{}, error) {
		if tok := h.Current(); tok.Valid(h.now()) && tok.Value != stale {
			return tok.Value, nil
		}
		return h.fetchAndStore(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// fetchAndStore obtains a new token and persists it. A store error is logged; the token is
// still used by this client.
func (h *AuthTokenHandler) fetchAndStore(ctx context.Context) (string, error) {
	value, expiresAt, err := h.fetch(ctx)
	if err != nil {
		return "", err
	}

	if err := h.cache.StoreToken(ctx, value, expiresAt); err != nil {
		h.Logger.Warn("Failed to store token in cache", zap.Error(err))
	}

	h.adopt(tokencache.Token{Value: value, ExpiresAt: expiresAt})
	h.Logger.Info("Token obtained successfully",
		zap.Time("Expiry", expiresAt),
		zap.Duration("Duration", expiresAt.Sub(h.now())),
	)
	return value, nil
}
