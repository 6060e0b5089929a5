// response/error.go
// This package interprets account API responses and defines the errors a call can fail with.
package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-api-account-client/status"
)

// TransportError is a connection, TLS or timeout failure before any HTTP response was received.
type TransportError struct {
	Method string
	Action string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %s %s: %v", e.Method, e.Action, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a 5xx response, or a failed envelope that carried no message.
// StatusCode is zero in the latter case.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.StatusCode == 0 {
		return "server error: " + e.Message
	}
	if e.Message == "" {
		return "server error: " + status.TranslateStatusCode(e.StatusCode)
	}
	return fmt.Sprintf("server error: %s: %s", status.TranslateStatusCode(e.StatusCode), e.Message)
}

// AccessDeniedError is a 403 response.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string {
	msg := "access denied (403): the calling IP address is probably not allow-listed with the API provider"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// UnexpectedStatusError is any other non-2xx response, including unfollowed redirects.
type UnexpectedStatusError struct {
	StatusCode int
	Message    string
}

func (e *UnexpectedStatusError) Error() string {
	if e.Message == "" {
		return "unexpected status: " + status.TranslateStatusCode(e.StatusCode)
	}
	return fmt.Sprintf("unexpected status: %s: %s", status.TranslateStatusCode(e.StatusCode), e.Message)
}

// ValidationError carries the field-level errors the API returned as a msg list.
type ValidationError struct {
	InputErrors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.InputErrors, "; ")
}

// RequestError is a general failure reported by the API in a string msg.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return "request failed: " + e.Message
}

// TokenFetchError means get_token itself failed. Response holds whatever the endpoint returned,
// which may be empty when the failure happened before a body was decoded.
type TokenFetchError struct {
	Response Response
	Err      error
}

func (e *TokenFetchError) Error() string {
	return fmt.Sprintf("fetching token: %v", e.Err)
}

func (e *TokenFetchError) Unwrap() error { return e.Err }

// ConfigurationError is raised for an HTTP method the client cannot send.
type ConfigurationError struct {
	Method string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported HTTP method %q: only GET and POST are supported", e.Method)
}

// Kind returns a stable label for err, suitable for metric labels and log fields.
// TokenFetchError wins over the error it wraps.
func Kind(err error) string {
	if err == nil {
		return "success"
	}

	var (
		tokenErr      *TokenFetchError
		transportErr  *TransportError
		serverErr     *ServerError
		deniedErr     *AccessDeniedError
		unexpectedErr *UnexpectedStatusError
		validationErr *ValidationError
		requestErr    *RequestError
		configErr     *ConfigurationError
	)

	switch {
	case errors.As(err, &tokenErr):
		return "token_fetch"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &serverErr):
		return "server"
	case errors.As(err, &deniedErr):
		return "access_denied"
	case errors.As(err, &unexpectedErr):
		return "unexpected_status"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &requestErr):
		return "request"
	case errors.As(err, &configErr):
		return "configuration"
	default:
		return "unknown"
	}
}
