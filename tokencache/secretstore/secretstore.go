// secretstore.go
// Package secretstore keeps the API token in Google Secret Manager. Each store adds a new secret
// version and reads go to the latest version.
package secretstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/deploymenttheory/go-api-account-client/tokencache"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client is the subset of *secretmanager.Client the store uses.
type Client interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	AddSecretVersion(ctx context.Context, req *secretmanagerpb.AddSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.SecretVersion, error)
}

// Store is a tokencache.TokenCache backed by a Secret Manager secret.
type Store struct {
	client Client
	secret string
	now    tokencache.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for expiry checks.
func WithClock(now tokencache.Clock) Option {
	return func(s *Store) {
		s.now = now
	}
}

// SecretName builds the resource name of a secret.
func SecretName(project, secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s", project, secretID)
}

// New returns a store writing versions of secret, a full resource name such as
// "projects/my-project/secrets/account-api-token". The secret must already exist.
func New(client Client, secret string, opts ...Option) *Store {
	s := &Store{client: client, secret: secret, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetToken reads the latest secret version. A secret without versions is a miss.
func (s *Store) GetToken(ctx context.Context) (*tokencache.Token, error) {
	resp, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.secret + "/versions/latest",
	})
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("accessing secret %s: %w", s.secret, err)
	}
	if resp.GetPayload() == nil || len(resp.GetPayload().GetData()) == 0 {
		return nil, nil
	}

	var tok tokencache.Token
	if err := json.Unmarshal(resp.GetPayload().GetData(), &tok); err != nil {
		return nil, fmt.Errorf("decoding secret %s: %w", s.secret, err)
	}
	return tokencache.FilterValid(&tok, s.now()), nil
}

// StoreToken adds a new secret version holding the token.
func (s *Store) StoreToken(ctx context.Context, value string, expiresAt time.Time) error {
	data, err := json.Marshal(tokencache.Token{Value: value, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	_, err = s.client.AddSecretVersion(ctx, &secretmanagerpb.AddSecretVersionRequest{
		Parent:  s.secret,
		Payload: &secretmanagerpb.SecretPayload{Data: data},
	})
	if err != nil {
		return fmt.Errorf("adding version to secret %s: %w", s.secret, err)
	}
	return nil
}
