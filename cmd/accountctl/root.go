package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/deploymenttheory/go-api-account-client/apiintegrations/accountapi"
	"github.com/deploymenttheory/go-api-account-client/httpclient"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/deploymenttheory/go-api-account-client/metrics"
	"github.com/deploymenttheory/go-api-account-client/tokencache/mongostore"
	"github.com/deploymenttheory/go-api-account-client/tokencache/redisstore"
	"github.com/deploymenttheory/go-api-account-client/version"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath      string
	envFile         string
	metricsTextfile string
	store           storeOptions
}

// session is everything a subcommand needs to call the API.
type session struct {
	api      *accountapi.AccountAPIHandler
	registry *prometheus.Registry
	close    func() error
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "accountctl",
		Short:         "Query and update customer accounts through the account API",
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(o.envFile)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "JSON client configuration file; ACCOUNT_API_* variables override it")
	flags.StringVar(&o.envFile, "env-file", "", "dotenv file to load before reading ACCOUNT_API_* variables (default .env if present)")
	flags.StringVar(&o.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file when the command finishes")
	flags.StringVar(&o.store.backend, "token-store", storeMemory, "token store: memory, file, redis, mongo or secretmanager")
	flags.StringVar(&o.store.filePath, "token-file", "", "token file for the file store")
	flags.StringVar(&o.store.redisAddr, "redis-addr", "", "redis address for the redis store")
	flags.StringVar(&o.store.redisKey, "redis-key", redisstore.DefaultKey, "redis key holding the token")
	flags.StringVar(&o.store.mongoURI, "mongo-uri", "", "connection URI for the mongo store")
	flags.StringVar(&o.store.mongoDatabase, "mongo-database", "accountctl", "mongo database")
	flags.StringVar(&o.store.mongoCollection, "mongo-collection", "tokens", "mongo collection")
	flags.StringVar(&o.store.mongoID, "mongo-id", mongostore.DefaultID, "document id holding the token")
	flags.StringVar(&o.store.secretProject, "secret-project", "", "GCP project for the secretmanager store")
	flags.StringVar(&o.store.secretID, "secret-id", "", "secret id for the secretmanager store")

	cmd.AddCommand(newCustomerCmd(o), newPackagesCmd(o))
	return cmd
}

// loadEnvFile loads an explicit dotenv file, or .env when present. Existing variables win.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return badArgs("loading env file %s: %v", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// openSession builds the client from configuration and the selected token store.
func (o *rootOptions) openSession(ctx context.Context) (*session, error) {
	config := &httpclient.ClientConfig{}
	if o.configPath != "" {
		var err error
		if config, err = httpclient.LoadConfigFromFile(o.configPath); err != nil {
			return nil, badArgs("%v", err)
		}
	}
	config, err := httpclient.LoadConfigFromEnv(config)
	if err != nil {
		return nil, badArgs("%v", err)
	}

	cache, closeStore, err := newTokenStore(ctx, o.store)
	if err != nil {
		return nil, err
	}

	log := logger.BuildLoggerTo(logger.ParseLogLevelFromString(config.ClientOptions.LogLevel), config.ClientOptions.LogOutputFormat, "stderr")
	registry := prometheus.NewRegistry()

	client, err := httpclient.BuildClient(*config, cache,
		httpclient.WithLogger(log),
		httpclient.WithMetrics(metrics.NewPrometheus(registry)),
	)
	if err != nil {
		_ = closeStore()
		return nil, badArgs("%v", err)
	}

	return &session{
		api:      accountapi.NewAccountAPIHandler(client, log),
		registry: registry,
		close:    closeStore,
	}, nil
}

// run opens a session, calls fn and prints its result as indented JSON.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, api *accountapi.AccountAPIHandler) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := o.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	result, callErr := fn(ctx, s.api)

	if o.metricsTextfile != "" {
		if err := prometheus.WriteToTextfile(o.metricsTextfile, s.registry); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: writing metrics:", err)
		}
	}

	if callErr != nil {
		return callErr
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
