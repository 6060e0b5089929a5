package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "token.json"))

	tok, err := s.GetToken(context.Background())
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestStoreRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "token.json")
	s := New(path, WithClock(func() time.Time { return now }))

	ctx := context.Background()
	require.NoError(t, s.StoreToken(ctx, "abc", now.Add(595*time.Second)))

	tok, err := s.GetToken(ctx)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, "abc", tok.Value)
	assert.True(t, tok.ExpiresAt.Equal(now.Add(595*time.Second)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreExpiredIsMiss(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s := New(filepath.Join(t.TempDir(), "token.json"), WithClock(func() time.Time { return now }))

	require.NoError(t, s.StoreToken(context.Background(), "abc", now))

	tok, err := s.GetToken(context.Background())
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := New(path).GetToken(context.Background())
	assert.Error(t, err)
}
