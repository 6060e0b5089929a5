// authenticationhandler/authenticationhandler.go

package authenticationhandler

import (
	"context"
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/deploymenttheory/go-api-account-client/tokencache"
	"golang.org/x/sync/singleflight"
)

// ClientCredentials holds the credentials used only to fetch a token.
type ClientCredentials struct {
	Username string `json:"Username" validate:"required"`
	Password string `json:"Password" validate:"required"`
	APIKey   string `json:"APIKey" validate:"required"`
}

// TokenFetcher obtains a brand new token from the API and reports when it expires.
type TokenFetcher func(ctx context.Context) (value string, expiresAt time.Time, err error)

// AuthTokenHandler resolves the token used on API calls. It keeps the current token in memory,
// falls back to the TokenCache, and fetches a new token when neither holds a valid one.
// Concurrent fetches are collapsed into one.
type AuthTokenHandler struct {
	Logger logger.Logger

	cache tokencache.TokenCache
	fetch TokenFetcher
	now   tokencache.Clock

	tokenLock sync.Mutex
	token     tokencache.Token

	group singleflight.Group
}

// Option configures an AuthTokenHandler.
type Option func(*AuthTokenHandler)

// WithClock overrides the clock used for validity checks.
func WithClock(now tokencache.Clock) Option {
	return func(h *AuthTokenHandler) {
		h.now = now
	}
}

// NewAuthTokenHandler creates a new instance of AuthTokenHandler.
func NewAuthTokenHandler(log logger.Logger, cache tokencache.TokenCache, fetch TokenFetcher, opts ...Option) *AuthTokenHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	h := &AuthTokenHandler{
		Logger: log,
		cache:  cache,
		fetch:  fetch,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Current returns the token held in memory, valid or not.
func (h *AuthTokenHandler) Current() tokencache.Token {
	h.tokenLock.Lock()
	defer h.tokenLock.Unlock()
	return h.token
}

func (h *AuthTokenHandler) adopt(tok tokencache.Token) {
	h.tokenLock.Lock()
	h.token = tok
	h.tokenLock.Unlock()
}
