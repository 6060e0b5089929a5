// transport.go
// Package transport sends the account API's GET and form POST requests. It knows nothing about
// tokens or the response envelope; it only returns the status, headers and body it received.
package transport

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Backend names accepted in Config.Backend.
const (
	BackendNetHTTP = "nethttp"
	BackendReq     = "req"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the response Content-Type header.
func (r *Response) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// Transport performs a single HTTP exchange. A non-nil error means no response was received.
type Transport interface {
	Get(ctx context.Context, rawURL string) (*Response, error)
	PostForm(ctx context.Context, rawURL string, form url.Values) (*Response, error)
}

// Config configures either transport implementation.
type Config struct {
	Timeout           time.Duration
	FollowRedirects   bool
	MaxRedirects      int
	ProxyURL          string
	ProxyUsername     string
	ProxyPassword     string
	UserAgent         string
	HideSensitiveData bool
}
