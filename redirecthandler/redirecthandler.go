// redirecthandler.go
// Package redirecthandler decides which redirects the account API client may follow.
package redirecthandler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/deploymenttheory/go-api-account-client/headers/redact"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"go.uber.org/zap"
)

// RedirectHandler contains configurations for handling HTTP redirects.
type RedirectHandler struct {
	Logger       logger.Logger
	MaxRedirects int
}

// NewRedirectHandler creates a new instance of RedirectHandler.
func NewRedirectHandler(log logger.Logger, maxRedirects int) *RedirectHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &RedirectHandler{
		Logger:       log,
		MaxRedirects: maxRedirects,
	}
}

// WithRedirectHandling applies the redirect handling policy to an http.Client.
func (r *RedirectHandler) WithRedirectHandling(client *http.Client) {
	client.CheckRedirect = r.checkRedirect
}

// checkRedirect follows a redirect only for GET and HEAD, only to the original host, and only
// up to MaxRedirects hops. Refusing returns the redirect response itself to the caller.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {
	first := via[0]

	if first.Method != http.MethodGet && first.Method != http.MethodHead {
		r.Logger.Warn("Redirect attempted on non-idempotent method, not following", zap.String("method", first.Method))
		return http.ErrUseLastResponse
	}

	if len(via) >= r.MaxRedirects {
		r.Logger.Warn("Maximum redirects reached", zap.Int("maxRedirects", r.MaxRedirects))
		return &MaxRedirectsError{MaxRedirects: r.MaxRedirects}
	}

	history := make([]*url.URL, 0, len(via)+1)
	for _, v := range via {
		history = append(history, v.URL)
	}
	history = append(history, req.URL)
	if hasLoop(history) {
		target := redact.RedactURL(req.URL.String())
		r.Logger.Warn("Redirect loop detected", zap.String("url", target))
		return &RedirectLoopError{URL: target}
	}

	// The token travels in the query string, so it must never be replayed to another host.
	if req.URL.Host != first.URL.Host {
		r.Logger.Warn("Cross-host redirect refused",
			zap.String("from", first.URL.Host),
			zap.String("to", req.URL.Host),
		)
		return http.ErrUseLastResponse
	}

	r.Logger.Info("Redirecting request",
		zap.String("newURL", redact.RedactURL(req.URL.String())),
		zap.Int("redirectCount", len(via)),
	)
	return nil
}

// RedirectLoopError represents an error when a redirect loop is detected.
type RedirectLoopError struct {
	URL string
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("redirect loop detected at %s", e.URL)
}

// MaxRedirectsError represents an error when the maximum number of redirects is reached.
type MaxRedirectsError struct {
	MaxRedirects int
}

func (e *MaxRedirectsError) Error() string {
	return fmt.Sprintf("maximum redirects reached: %d", e.MaxRedirects)
}

// hasLoop checks if there's a loop in the redirect history.
func hasLoop(history []*url.URL) bool {
	urlSet := make(map[string]struct{})
	for _, u := range history {
		if _, exists := urlSet[u.String()]; exists {
			return true
		}
		urlSet[u.String()] = struct{}{}
	}
	return false
}

// SetupRedirectHandler configures the HTTP client for redirect handling. When followRedirects is
// false every redirect response is returned as is.
func SetupRedirectHandler(client *http.Client, followRedirects bool, maxRedirects int, log logger.Logger) error {
	if !followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		return nil
	}

	if maxRedirects < 1 {
		return fmt.Errorf("invalid maxRedirects value: %d", maxRedirects)
	}

	redirectHandler := NewRedirectHandler(log, maxRedirects)
	redirectHandler.WithRedirectHandling(client)
	redirectHandler.Logger.Debug("Redirect handling enabled", zap.Int("MaxRedirects", maxRedirects))
	return nil
}
