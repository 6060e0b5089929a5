// req.go
package transport

import (
	"context"
	"crypto/tls"
	"net/url"

	"github.com/deploymenttheory/go-api-account-client/headers"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

// ReqTransport is the imroc/req implementation of Transport.
type ReqTransport struct {
	client *req.Client
}

// NewReqTransport builds a req client with the same TLS, redirect and proxy rules as HTTPTransport.
// Redirects are restricted to the original host. Outgoing headers are logged at debug level the
// same way HTTPTransport logs them.
func NewReqTransport(cfg Config, log logger.Logger) (*ReqTransport, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	client := req.C().
		SetTimeout(cfg.Timeout).
		SetTLSClientConfig(&tls.Config{MinVersion: tls.VersionTLS12}).
		SetCommonHeader("Accept", headers.AcceptJSON)

	if cfg.UserAgent != "" {
		client.SetUserAgent(cfg.UserAgent)
	}

	if cfg.FollowRedirects {
		client.SetRedirectPolicy(
			req.MaxRedirectPolicy(cfg.MaxRedirects),
			req.SameHostRedirectPolicy(),
			noPostRedirectPolicy(),
		)
	} else {
		client.SetRedirectPolicy(req.NoRedirectPolicy())
	}

	if cfg.ProxyURL != "" {
		u, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, err
		}
		if cfg.ProxyUsername != "" {
			u.User = url.UserPassword(cfg.ProxyUsername, cfg.ProxyPassword)
		}
		client.SetProxyURL(u.String())
		log.Info("Proxy configured", zap.String("ProxyURL", u.Redacted()))
	}

	// Runs after req has merged common headers and encoded the body.
	client.WrapRoundTripFunc(func(rt req.RoundTripper) req.RoundTripFunc {
		return func(r *req.Request) (*req.Response, error) {
			headers.LogRequestHeaders(log, r.Headers, cfg.HideSensitiveData)
			return rt.RoundTrip(r)
		}
	})

	return &ReqTransport{client: client}, nil
}

// Get sends a GET request to rawURL.
func (t *ReqTransport) Get(ctx context.Context, rawURL string) (*Response, error) {
	resp, err := t.client.R().SetContext(ctx).Get(rawURL)
	return convertReqResponse(resp, err)
}

// PostForm sends form URL-encoded to rawURL.
func (t *ReqTransport) PostForm(ctx context.Context, rawURL string, form url.Values) (*Response, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(rawURL)
	return convertReqResponse(resp, err)
}

func convertReqResponse(resp *req.Response, err error) (*Response, error) {
	if err != nil {
		return nil, redactURLError(err)
	}
	body, err := resp.ToBytes()
	if err != nil {
		return nil, redactURLError(err)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
