// httpclient_request.go
package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/deploymenttheory/go-api-account-client/headers/redact"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/deploymenttheory/go-api-account-client/response"
	"github.com/deploymenttheory/go-api-account-client/transport"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// ParamAction selects the API operation.
	ParamAction = "action"
	// ParamToken carries the bearer token.
	ParamToken = "token"
)

// Params are the action-specific request parameters. The client adds action and token itself.
type Params map[string]string

type requestOptions struct {
	requiresToken bool
	maxRetries    int
}

// RequestOption adjusts a single Execute call.
type RequestOption func(*requestOptions)

// WithoutToken sends the call without resolving or attaching a token.
func WithoutToken() RequestOption {
	return func(o *requestOptions) { o.requiresToken = false }
}

// WithMaxRetries overrides how many times this call may refresh the token and retry.
func WithMaxRetries(n int) RequestOption {
	return func(o *requestOptions) {
		if n < 0 {
			n = 0
		}
		o.maxRetries = n
	}
}

// Execute performs one logical API call and returns the decoded response body.
// Only GET and POST are supported; any other method fails with a ConfigurationError without
// touching the network. All other failures are typed errors from the response package.
func (c *Client) Execute(ctx context.Context, method, action string, params Params, opts ...RequestOption) (response.Response, error) {
	env, err := c.execute(ctx, method, action, params, opts...)
	if err != nil {
		return nil, err
	}
	return env.Body, nil
}

// execute is Execute returning the whole envelope. The envelope is also returned alongside an
// error when the failure came from the API itself, so callers can inspect the raw response.
func (c *Client) execute(ctx context.Context, method, action string, params Params, opts ...RequestOption) (*response.Envelope, error) {
	ro := requestOptions{requiresToken: true, maxRetries: c.config.ClientOptions.MaxTokenRetries}
	if c.config.ClientOptions.DisableTokenRetry {
		ro.maxRetries = 0
	}
	for _, opt := range opts {
		opt(&ro)
	}

	requestID := uuid.NewString()
	log := c.Logger.With(zap.String("request_id", requestID), zap.String("action", action))
	start := c.now()

	method = strings.ToUpper(method)
	log.LogRequestStart("request_start", requestID, method, action,
		redact.RedactParams(c.config.ClientOptions.HideSensitiveData, params))

	var (
		env *response.Envelope
		err error
	)
	if method != http.MethodGet && method != http.MethodPost {
		err = &response.ConfigurationError{Method: method}
	} else {
		env, err = c.run(ctx, log, method, action, params, ro)
	}

	c.metrics.ObserveRequest(action, response.Kind(err), c.now().Sub(start))
	if err != nil {
		log.LogError("request_failed", method, action, statusCodeOf(err), err)
	}
	return env, err
}

// run is the per-call state machine: resolve a token, dispatch, interpret, and on a token
// complaint refresh and go round again while retries remain.
func (c *Client) run(ctx context.Context, log logger.Logger, method, action string, params Params, ro requestOptions) (*response.Envelope, error) {
	var token string
	if ro.requiresToken {
		var err error
		if token, err = c.auth.Token(ctx); err != nil {
			return nil, err
		}
	}

	retriesRemaining := ro.maxRetries
	for attempt := 1; ; attempt++ {
		env, err := c.dispatch(ctx, log, method, action, params, token, ro.requiresToken)
		if err != nil {
			return nil, err
		}
		if !env.Failed() {
			return env, nil
		}

		if ro.requiresToken && env.Message.MentionsToken() && retriesRemaining > 0 {
			retriesRemaining--
			c.metrics.IncTokenRetry(action)
			log.LogRetryAttempt("token_retry", method, action, attempt, env.Message.Text)

			if token, err = c.auth.Refresh(ctx, token); err != nil {
				return nil, err
			}
			continue
		}

		return env, env.Err()
	}
}

// dispatch sends one HTTP request and maps the HTTP-level result.
func (c *Client) dispatch(ctx context.Context, log logger.Logger, method, action string, params Params, token string, withToken bool) (*response.Envelope, error) {
	values := make(url.Values, len(params)+2)
	for k, v := range params {
		values.Set(k, v)
	}
	if withToken {
		values.Set(ParamToken, token)
	}
	values.Set(ParamAction, action)

	start := c.now()
	var (
		resp *transport.Response
		err  error
	)
	switch method {
	case http.MethodGet:
		resp, err = c.transport.Get(ctx, c.actionURL(values))
	case http.MethodPost:
		resp, err = c.transport.PostForm(ctx, c.baseURL.String(), values)
	}
	if err != nil {
		return nil, &response.TransportError{Method: method, Action: action, Err: err}
	}

	log.LogRequestEnd("request_end", method, action, resp.StatusCode, c.now().Sub(start))

	if err := response.CheckStatus(resp.StatusCode, resp.ContentType(), resp.Body); err != nil {
		return nil, err
	}
	return response.Decode(resp.Body), nil
}

// actionURL merges values into the base URL query string.
func (c *Client) actionURL(values url.Values) string {
	u := *c.baseURL
	q := u.Query()
	for k, vs := range values {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func statusCodeOf(err error) int {
	var (
		serverErr     *response.ServerError
		deniedErr     *response.AccessDeniedError
		unexpectedErr *response.UnexpectedStatusError
	)
	switch {
	case errors.As(err, &serverErr):
		return serverErr.StatusCode
	case errors.As(err, &deniedErr):
		return http.StatusForbidden
	case errors.As(err, &unexpectedErr):
		return unexpectedErr.StatusCode
	default:
		return 0
	}
}
