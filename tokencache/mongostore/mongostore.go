// mongostore.go
// Package mongostore keeps the API token in a MongoDB collection, one document per client identity.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deploymenttheory/go-api-account-client/tokencache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultID is the document id used when none is configured.
const DefaultID = "account-api-token"

// Collection is the subset of *mongo.Collection the store uses.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

type tokenDocument struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Store is a tokencache.TokenCache backed by a MongoDB collection.
type Store struct {
	coll Collection
	id   string
	now  tokencache.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithID overrides the document id.
func WithID(id string) Option {
	return func(s *Store) {
		s.id = id
	}
}

// WithClock overrides the clock used for expiry checks.
func WithClock(now tokencache.Clock) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a store using coll.
func New(coll Collection, opts ...Option) *Store {
	s := &Store{coll: coll, id: DefaultID, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetToken loads the token document. No document is a miss.
func (s *Store) GetToken(ctx context.Context) (*tokencache.Token, error) {
	var doc tokenDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": s.id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding token document %s: %w", s.id, err)
	}
	return tokencache.FilterValid(&tokencache.Token{Value: doc.Token, ExpiresAt: doc.ExpiresAt}, s.now()), nil
}

// StoreToken upserts the token document.
func (s *Store) StoreToken(ctx context.Context, value string, expiresAt time.Time) error {
	doc := tokenDocument{ID: s.id, Token: value, ExpiresAt: expiresAt.UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting token document %s: %w", s.id, err)
	}
	return nil
}
