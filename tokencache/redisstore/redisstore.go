// redisstore.go
// Package redisstore shares the API token between processes through Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deploymenttheory/go-api-account-client/tokencache"
	"github.com/gomodule/redigo/redis"
)

// DefaultKey is the Redis key used when none is configured.
const DefaultKey = "account-api:token"

// Store is a tokencache.TokenCache backed by a redigo connection pool.
// The key carries a Redis TTL matching the token expiry.
type Store struct {
	pool *redis.Pool
	key  string
	now  tokencache.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the Redis key.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithClock overrides the clock used for TTL calculation and expiry checks.
func WithClock(now tokencache.Clock) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewPool builds a connection pool dialing address over TCP.
func NewPool(address string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", address)
		},
	}
}

// New returns a store using pool.
func New(pool *redis.Pool, opts ...Option) *Store {
	s := &Store{pool: pool, key: DefaultKey, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetToken reads the token key. A missing key is a miss.
func (s *Store) GetToken(ctx context.Context) (*tokencache.Token, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting redis connection: %w", err)
	}
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", s.key))
	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token key %s: %w", s.key, err)
	}

	var tok tokencache.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decoding token key %s: %w", s.key, err)
	}
	return tokencache.FilterValid(&tok, s.now()), nil
}

// StoreToken writes the token with SET EX. A token that is already expired deletes the key instead.
func (s *Store) StoreToken(ctx context.Context, value string, expiresAt time.Time) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("getting redis connection: %w", err)
	}
	defer conn.Close()

	seconds := int(expiresAt.Sub(s.now()) / time.Second)
	if seconds <= 0 {
		if _, err := conn.Do("DEL", s.key); err != nil {
			return fmt.Errorf("deleting token key %s: %w", s.key, err)
		}
		return nil
	}

	data, err := json.Marshal(tokencache.Token{Value: value, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	ok, err := redis.String(conn.Do("SET", s.key, data, "EX", seconds))
	if err != nil {
		return fmt.Errorf("writing token key %s: %w", s.key, err)
	}
	if ok != "OK" {
		return fmt.Errorf("unexpected reply %q writing token key %s", ok, s.key)
	}
	return nil
}
