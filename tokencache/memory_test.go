package tokencache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValid(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token Token
		want  bool
	}{
		{"future expiry", Token{Value: "abc", ExpiresAt: now.Add(time.Second)}, true},
		{"expiry equals now", Token{Value: "abc", ExpiresAt: now}, false},
		{"past expiry", Token{Value: "abc", ExpiresAt: now.Add(-time.Second)}, false},
		{"empty value", Token{ExpiresAt: now.Add(time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.token.Valid(now))
		})
	}
}

func TestMemoryEmpty(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)

	tok, err := m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestMemoryStoreAndGet(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m, err := NewMemory(WithMemoryClock(func() time.Time { return now }))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.StoreToken(ctx, "first", now.Add(time.Minute)))
	require.NoError(t, m.StoreToken(ctx, "second", now.Add(2*time.Minute)))

	tok, err := m.GetToken(ctx)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, "second", tok.Value)
	assert.Equal(t, now.Add(2*time.Minute), tok.ExpiresAt)
}

func TestMemoryExpiryBoundary(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	m, err := NewMemory(WithMemoryClock(func() time.Time { return clock }))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.StoreToken(ctx, "abc", now.Add(595*time.Second)))

	clock = now.Add(594 * time.Second)
	tok, err := m.GetToken(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tok)

	clock = now.Add(595 * time.Second)
	tok, err = m.GetToken(ctx)
	require.NoError(t, err)
	assert.Nil(t, tok)
}
