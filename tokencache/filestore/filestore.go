// filestore.go
// Package filestore persists the API token as a small JSON document on local disk.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deploymenttheory/go-api-account-client/tokencache"
)

// Store is a tokencache.TokenCache backed by a single file.
type Store struct {
	path string
	now  tokencache.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for expiry checks.
func WithClock(now tokencache.Clock) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a store that reads and writes path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetToken reads the token file. A missing, empty or expired file is a miss.
func (s *Store) GetToken(_ context.Context) (*tokencache.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var tok tokencache.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decoding token file %s: %w", s.path, err)
	}
	return tokencache.FilterValid(&tok, s.now()), nil
}

// StoreToken writes the token to a temporary file in the same directory and renames it into place.
func (s *Store) StoreToken(_ context.Context, value string, expiresAt time.Time) error {
	data, err := json.Marshal(tokencache.Token{Value: value, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("creating temp token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp token file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting token file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing token file %s: %w", s.path, err)
	}
	return nil
}
