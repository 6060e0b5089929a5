// httpclient_auth_token_management.go
package httpclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deploymenttheory/go-api-account-client/response"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ActionGetToken is the action that exchanges credentials for a token.
const ActionGetToken = "get_token"

var (
	errTokenStatus  = errors.New("token response did not report status true")
	errTokenMissing = errors.New("token response carried no token")
)

// fetchToken calls get_token with the configured credentials. The token expires TokenTTL from now,
// or earlier when HonourJWTExpiry is set and the token is a JWT with an earlier exp claim.
// Every failure is a TokenFetchError carrying whatever the endpoint returned.
func (c *Client) fetchToken(ctx context.Context) (string, time.Time, error) {
	creds := c.config.Credentials
	env, err := c.execute(ctx, http.MethodGet, ActionGetToken, Params{
		"username": creds.Username,
		"password": creds.Password,
		"key":      creds.APIKey,
	}, WithoutToken())

	if err == nil {
		switch {
		case env.Status == nil || !*env.Status:
			err = errTokenStatus
		case env.Body.String(ParamToken) == "":
			err = errTokenMissing
		}
	}

	if err != nil {
		raw := response.Response{}
		if env != nil {
			raw = env.Body
		}
		fetchErr := &response.TokenFetchError{Response: raw, Err: err}
		outcome := response.Kind(err)
		if outcome == "unknown" {
			outcome = "invalid_response"
		}
		c.metrics.IncTokenFetch(outcome)
		c.Logger.LogAuthTokenError("token_fetch_failed", ActionGetToken, fetchErr)
		return "", time.Time{}, fetchErr
	}

	value := env.Body.String(ParamToken)
	expiresAt := c.now().Add(c.config.ClientOptions.TokenTTL)
	if c.config.ClientOptions.HonourJWTExpiry {
		if exp, ok := jwtExpiry(value); ok && exp.Before(expiresAt) {
			c.Logger.Debug("Capping token expiry at JWT exp claim", zap.Time("exp", exp))
			expiresAt = exp
		}
	}

	c.metrics.IncTokenFetch(response.Kind(nil))
	return value, expiresAt, nil
}

// jwtExpiry reads the exp claim of token without verifying its signature. The API is the only
// party that can verify it; here it is only a hint for when to stop using the token.
func jwtExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
