// nethttp.go
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/deploymenttheory/go-api-account-client/headers"
	"github.com/deploymenttheory/go-api-account-client/headers/redact"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/deploymenttheory/go-api-account-client/proxy"
	"github.com/deploymenttheory/go-api-account-client/redirecthandler"
)

// HTTPTransport is the net/http implementation of Transport.
type HTTPTransport struct {
	client            *http.Client
	userAgent         string
	hideSensitiveData bool
	log               logger.Logger
}

// NewHTTPTransport builds an http.Client with TLS peer verification, TLS 1.2 or newer, the
// configured proxy and redirect policy.
func NewHTTPTransport(cfg Config, log logger.Logger) (*HTTPTransport, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	base.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}

	if err := proxy.InitializeProxy(base, cfg.ProxyURL, cfg.ProxyUsername, cfg.ProxyPassword, log); err != nil {
		return nil, err
	}

	client := &http.Client{
		Transport: base,
		Timeout:   cfg.Timeout,
	}
	if err := redirecthandler.SetupRedirectHandler(client, cfg.FollowRedirects, cfg.MaxRedirects, log); err != nil {
		return nil, err
	}

	return &HTTPTransport{
		client:            client,
		userAgent:         cfg.UserAgent,
		hideSensitiveData: cfg.HideSensitiveData,
		log:               log,
	}, nil
}

// Get sends a GET request to rawURL.
func (t *HTTPTransport) Get(ctx context.Context, rawURL string) (*Response, error) {
	return t.do(ctx, http.MethodGet, rawURL, nil)
}

// PostForm sends form URL-encoded to rawURL.
func (t *HTTPTransport) PostForm(ctx context.Context, rawURL string, form url.Values) (*Response, error) {
	return t.do(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
}

func (t *HTTPTransport) do(ctx context.Context, method, rawURL string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", redactURLError(err))
	}

	headerHandler := headers.NewHeaderHandler(req, t.log)
	headerHandler.SetRequestHeaders(t.userAgent)
	headerHandler.LogHeaders(t.hideSensitiveData)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, redactURLError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", redactURLError(err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// redactURLError masks credentials in the URL that net/http embeds in its errors.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = redact.RedactURL(urlErr.URL)
	}
	return err
}
