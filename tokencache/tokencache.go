// tokencache.go
// Package tokencache defines the storage contract for the API bearer token and an in-memory store.
// Durable stores live in the filestore, redisstore, mongostore and secretstore subpackages.
package tokencache

import (
	"context"
	"time"
)

// Token is an opaque bearer credential together with the instant it stops being usable.
type Token struct {
	Value     string    `json:"token" bson:"token"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// Valid reports whether the token can still be used at now. The comparison is strict:
// a token whose expiry equals now is expired.
func (t Token) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// TokenCache stores at most one token. GetToken returns (nil, nil) when nothing is stored
// or the stored token has expired. StoreToken overwrites any previous token.
type TokenCache interface {
	GetToken(ctx context.Context) (*Token, error)
	StoreToken(ctx context.Context, value string, expiresAt time.Time) error
}

// Clock returns the current time. Stores accept one so tests can pin expiry checks.
type Clock func() time.Time

// FilterValid returns t when it is valid at now, nil otherwise.
func FilterValid(t *Token, now time.Time) *Token {
	if t == nil || !t.Valid(now) {
		return nil
	}
	return t
}
