// headers/redact/redact.go
package redact

import (
	"net/url"
	"strings"
)

// Redacted replaces sensitive values in logs and error messages.
const Redacted = "REDACTED"

// sensitiveKeys are header names and request parameters that carry credentials.
var sensitiveKeys = map[string]bool{
	"accesstoken":   true,
	"authorization": true,
	"token":         true,
	"password":      true,
	"key":           true,
}

// IsSensitive reports whether key names a credential. Matching is case-insensitive.
func IsSensitive(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}

// RedactSensitiveData redacts value when hideSensitiveData is set and key names a credential.
func RedactSensitiveData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && IsSensitive(key) {
		return Redacted
	}
	return value
}

// RedactParams returns a copy of params with credentials redacted when hideSensitiveData is set.
func RedactParams(hideSensitiveData bool, params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = RedactSensitiveData(hideSensitiveData, k, v)
	}
	return out
}

// RedactURL masks credential query parameters in rawURL. It always redacts, since URLs end up
// in error messages that callers may log verbatim. Unparseable input is returned unchanged.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return rawURL
	}

	q := u.Query()
	changed := false
	for k := range q {
		if IsSensitive(k) {
			q.Set(k, Redacted)
			changed = true
		}
	}
	if !changed {
		return rawURL
	}
	u.RawQuery = q.Encode()
	return u.String()
}
