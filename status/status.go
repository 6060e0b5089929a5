// status.go
// This package provides utility functions for classifying HTTP status codes returned by the account API.
package status

import (
	"fmt"
	"net/http"
)

// IsSuccess reports whether statusCode is in the 2xx range. Only these responses have their
// body interpreted as an API envelope.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// IsServerError reports whether statusCode is in the 5xx range.
func IsServerError(statusCode int) bool {
	return statusCode >= 500 && statusCode < 600
}

// IsAccessDenied reports whether statusCode is 403 Forbidden. The account API returns it when the
// caller's address has not been allow-listed.
func IsAccessDenied(statusCode int) bool {
	return statusCode == http.StatusForbidden
}

// IsRedirectStatusCode checks if the provided HTTP status code is one of the redirect codes.
// Redirect status codes instruct the client to make a new request to a different URI, as defined in the response's Location header.
//
// - 301 Moved Permanently: The requested resource has been assigned a new permanent URI.
// - 302 Found: The requested resource resides temporarily under a different URI.
// - 303 See Other: The response to the request can be found under a different URI and should be retrieved using a GET method on that resource.
// - 307 Temporary Redirect: The requested resource resides temporarily under a different URI and the method must not change.
// - 308 Permanent Redirect: Like 301, but the method must not change.
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// TranslateStatusCode returns a short human-readable description such as "503 Service Unavailable".
func TranslateStatusCode(statusCode int) string {
	text := http.StatusText(statusCode)
	if text == "" {
		return fmt.Sprintf("%d Unknown Status", statusCode)
	}
	return fmt.Sprintf("%d %s", statusCode, text)
}
