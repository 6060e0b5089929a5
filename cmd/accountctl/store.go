package main

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"github.com/deploymenttheory/go-api-account-client/tokencache"
	"github.com/deploymenttheory/go-api-account-client/tokencache/filestore"
	"github.com/deploymenttheory/go-api-account-client/tokencache/mongostore"
	"github.com/deploymenttheory/go-api-account-client/tokencache/redisstore"
	"github.com/deploymenttheory/go-api-account-client/tokencache/secretstore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Token store backends selectable with --token-store.
const (
	storeMemory        = "memory"
	storeFile          = "file"
	storeRedis         = "redis"
	storeMongo         = "mongo"
	storeSecretManager = "secretmanager"
)

type storeOptions struct {
	backend         string
	filePath        string
	redisAddr       string
	redisKey        string
	mongoURI        string
	mongoDatabase   string
	mongoCollection string
	mongoID         string
	secretProject   string
	secretID        string
}

// newTokenStore opens the configured token store. The returned close func releases its connections
// and is never nil. A nil cache means the client keeps the token in memory.
func newTokenStore(ctx context.Context, o storeOptions) (tokencache.TokenCache, func() error, error) {
	noop := func() error { return nil }

	switch o.backend {
	case "", storeMemory:
		return nil, noop, nil

	case storeFile:
		if o.filePath == "" {
			return nil, noop, badArgs("--token-file is required for the file store")
		}
		return filestore.New(o.filePath), noop, nil

	case storeRedis:
		if o.redisAddr == "" {
			return nil, noop, badArgs("--redis-addr is required for the redis store")
		}
		pool := redisstore.NewPool(o.redisAddr)
		return redisstore.New(pool, redisstore.WithKey(o.redisKey)), pool.Close, nil

	case storeMongo:
		if o.mongoURI == "" {
			return nil, noop, badArgs("--mongo-uri is required for the mongo store")
		}
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(o.mongoURI))
		if err != nil {
			return nil, noop, fmt.Errorf("connecting to mongo: %w", err)
		}
		coll := client.Database(o.mongoDatabase).Collection(o.mongoCollection)
		closeFn := func() error { return client.Disconnect(context.Background()) }
		return mongostore.New(coll, mongostore.WithID(o.mongoID)), closeFn, nil

	case storeSecretManager:
		if o.secretProject == "" || o.secretID == "" {
			return nil, noop, badArgs("--secret-project and --secret-id are required for the secretmanager store")
		}
		client, err := secretmanager.NewClient(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("creating secret manager client: %w", err)
		}
		return secretstore.New(client, secretstore.SecretName(o.secretProject, o.secretID)), client.Close, nil

	default:
		return nil, noop, badArgs("unknown token store %q", o.backend)
	}
}
