// authenticationhandler/validation.go

package authenticationhandler

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_\-\+=\[\]{\}\\|;:'",<.>/?]+$`)

// IsValidUsername checks if the provided username contains only alphanumeric and password safe special characters.
// Returns true if valid, along with an empty error message; otherwise, returns false with an error message.
func IsValidUsername(username string) (bool, string) {
	if usernameRegex.MatchString(username) {
		return true, ""
	}
	return false, "Username must contain only alphanumeric characters and password safe special characters (!@#$%^&*()_-+=[{]}\\|;:'\",<.>/?)."
}

// IsValidAPIKey checks that the API key is non-empty and contains no whitespace.
func IsValidAPIKey(key string) (bool, string) {
	if key == "" {
		return false, "API key must not be empty."
	}
	if strings.ContainsAny(key, " \t\r\n") {
		return false, "API key must not contain whitespace."
	}
	return true, ""
}

// ValidateCredentials applies the username and API key checks.
func ValidateCredentials(creds ClientCredentials) error {
	if ok, msg := IsValidUsername(creds.Username); !ok {
		return fmt.Errorf("invalid username: %s", msg)
	}
	if ok, msg := IsValidAPIKey(creds.APIKey); !ok {
		return fmt.Errorf("invalid api key: %s", msg)
	}
	return nil
}
