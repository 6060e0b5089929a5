// httpclient_client_configuration_test.go
package httpclient

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deploymenttheory/go-api-account-client/authenticationhandler"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaultValuesClientConfig(t *testing.T) {
	var cfg ClientConfig
	SetDefaultValuesClientConfig(&cfg)

	opts := cfg.ClientOptions
	assert.Equal(t, DefaultLogLevelString, opts.LogLevel)
	assert.Equal(t, logger.LogOutputPretty, opts.LogOutputFormat)
	assert.Equal(t, 595*time.Second, opts.TokenTTL)
	assert.Equal(t, 1, opts.MaxTokenRetries)
	assert.Equal(t, 10*time.Second, opts.CustomTimeout)
	assert.Equal(t, 5, opts.MaxRedirects)
	assert.Equal(t, DefaultTransportBackend, opts.TransportBackend)

	cfg.ClientOptions.TokenTTL = time.Minute
	SetDefaultValuesClientConfig(&cfg)
	assert.Equal(t, time.Minute, cfg.ClientOptions.TokenTTL, "explicit values are kept")
}

func TestValidateClientConfig(t *testing.T) {
	valid := func() ClientConfig {
		cfg := testConfig()
		SetDefaultValuesClientConfig(&cfg)
		return cfg
	}
	require.NoError(t, validateClientConfig(valid()))

	tests := []struct {
		name   string
		mutate func(*ClientConfig)
	}{
		{"missing base url", func(c *ClientConfig) { c.BaseURL = "" }},
		{"malformed base url", func(c *ClientConfig) { c.BaseURL = "not a url" }},
		{"missing username", func(c *ClientConfig) { c.Credentials.Username = "" }},
		{"missing api key", func(c *ClientConfig) { c.Credentials.APIKey = "" }},
		{"unknown log level", func(c *ClientConfig) { c.ClientOptions.LogLevel = "LogLevelChatty" }},
		{"unknown backend", func(c *ClientConfig) { c.ClientOptions.TransportBackend = "curl" }},
		{"negative ttl", func(c *ClientConfig) { c.ClientOptions.TokenTTL = -time.Second }},
		{"bad proxy url", func(c *ClientConfig) { c.Proxy.ProxyURL = "::" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, validateClientConfig(cfg))
		})
	}
}

func TestBuildClientRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Credentials = authenticationhandler.ClientCredentials{}

	_, err := BuildClient(cfg, nil, WithLogger(logger.NewNopLogger()), WithTransport(newFakeTransport()))
	assert.Error(t, err)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clientconfig.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "BaseURL": "https://api.example.com/reseller/api.php",
  "Credentials": {"Username": "reseller", "Password": "hunter2", "APIKey": "k-123"},
  "ClientOptions": {
    "LogLevel": "LogLevelDebug",
    "LogOutputFormat": "json",
    "HideSensitiveData": true,
    "TokenTTL": "300s",
    "CustomTimeout": "30s",
    "MaxTokenRetries": 2,
    "TransportBackend": "req"
  },
  "Proxy": {"ProxyURL": "http://proxy.internal:3128"}
}`), 0o600))

	cfg, err := LoadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/reseller/api.php", cfg.BaseURL)
	assert.Equal(t, "k-123", cfg.Credentials.APIKey)
	assert.Equal(t, "LogLevelDebug", cfg.ClientOptions.LogLevel)
	assert.Equal(t, "json", cfg.ClientOptions.LogOutputFormat)
	assert.True(t, cfg.ClientOptions.HideSensitiveData)
	assert.Equal(t, 300*time.Second, cfg.ClientOptions.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.ClientOptions.CustomTimeout)
	assert.Equal(t, 2, cfg.ClientOptions.MaxTokenRetries)
	assert.Equal(t, "req", cfg.ClientOptions.TransportBackend)
	assert.Equal(t, DefaultMaxRedirects, cfg.ClientOptions.MaxRedirects)
	assert.Equal(t, "http://proxy.internal:3128", cfg.Proxy.ProxyURL)
}

func TestLoadConfigFromFileBuildsClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clientconfig.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "BaseURL": "https://api.example.com/reseller/api.php",
  "Credentials": {"Username": "reseller", "Password": "hunter2", "APIKey": "k-123"}
}`), 0o600))

	cfg, err := LoadConfigFromFile(path)
	require.NoError(t, err)
	require.Equal(t, authenticationhandler.ClientCredentials{Username: "reseller", Password: "hunter2", APIKey: "k-123"}, cfg.Credentials)

	tr := newFakeTransport().on(ActionGetToken, ok(`{"status":true,"token":"T1"}`))
	c, err := BuildClient(*cfg, nil, WithTransport(tr), WithLogger(logger.NewNopLogger()), WithClock(fixedClock()))
	require.NoError(t, err)

	_, err = c.Execute(context.Background(), http.MethodGet, "get_packages", nil)
	require.NoError(t, err)
	assert.Equal(t, "k-123", tr.Calls()[0].Values.Get("key"))
}

func TestLoadConfigFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfigFromFile(filepath.Join(dir, "config.yaml"))
	assert.Error(t, err, "wrong extension")

	_, err = LoadConfigFromFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"BaseURL":`), 0o600))
	_, err = LoadConfigFromFile(bad)
	assert.Error(t, err)

	badTTL := filepath.Join(dir, "ttl.json")
	require.NoError(t, os.WriteFile(badTTL, []byte(`{"ClientOptions":{"TokenTTL":"ten minutes"}}`), 0o600))
	_, err = LoadConfigFromFile(badTTL)
	assert.Error(t, err)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"BASE_URL", "https://env.example.com/api.php")
	t.Setenv(EnvPrefix+"USERNAME", "env-user")
	t.Setenv(EnvPrefix+"PASSWORD", "env-pass")
	t.Setenv(EnvPrefix+"KEY", "env-key")
	t.Setenv(EnvPrefix+"TOKEN_TTL", "2m")
	t.Setenv(EnvPrefix+"DISABLE_TOKEN_RETRY", "true")
	t.Setenv(EnvPrefix+"MAX_REDIRECTS", "")
	t.Setenv(EnvPrefix+"PROXY_URL", "http://proxy:8080")

	base := testConfig()
	base.ClientOptions.LogLevel = "LogLevelWarn"

	cfg, err := LoadConfigFromEnv(&base)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/api.php", cfg.BaseURL)
	assert.Equal(t, "env-user", cfg.Credentials.Username)
	assert.Equal(t, "env-pass", cfg.Credentials.Password)
	assert.Equal(t, "env-key", cfg.Credentials.APIKey)
	assert.Equal(t, 2*time.Minute, cfg.ClientOptions.TokenTTL)
	assert.True(t, cfg.ClientOptions.DisableTokenRetry)
	assert.Equal(t, DefaultMaxRedirects, cfg.ClientOptions.MaxRedirects, "empty values are treated as unset")
	assert.Equal(t, "LogLevelWarn", cfg.ClientOptions.LogLevel, "unset variables keep the existing value")
	assert.Equal(t, "http://proxy:8080", cfg.Proxy.ProxyURL)
}

func TestLoadConfigFromEnvNilConfig(t *testing.T) {
	t.Setenv(EnvPrefix+"BASE_URL", "https://env.example.com/api.php")

	cfg, err := LoadConfigFromEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api.php", cfg.BaseURL)
	assert.Equal(t, DefaultTokenTTL, cfg.ClientOptions.TokenTTL)
}

func TestLoadConfigFromEnvRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"TOKEN_TTL", "600"},
		{"CUSTOM_TIMEOUT", "ten seconds"},
		{"MAX_TOKEN_RETRIES", "abc"},
		{"MAX_REDIRECTS", "5.5"},
		{"DISABLE_TOKEN_RETRY", "yes"},
		{"HIDE_SENSITIVE_DATA", "on"},
		{"HONOUR_JWT_EXPIRY", "maybe"},
		{"FOLLOW_REDIRECTS", "sure"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(EnvPrefix+tt.key, tt.value)

			base := testConfig()
			cfg, err := LoadConfigFromEnv(&base)

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), EnvPrefix+tt.key)
			assert.Contains(t, err.Error(), tt.value)
		})
	}
}

func TestLoadConfigFromEnvReportsEveryMalformedValue(t *testing.T) {
	t.Setenv(EnvPrefix+"TOKEN_TTL", "600")
	t.Setenv(EnvPrefix+"MAX_TOKEN_RETRIES", "abc")

	_, err := LoadConfigFromEnv(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPrefix+"TOKEN_TTL")
	assert.Contains(t, err.Error(), EnvPrefix+"MAX_TOKEN_RETRIES")
}

func TestParseHelpers(t *testing.T) {
	const key = "ACCOUNT_API_TEST_ONLY"

	b := true
	require.NoError(t, parseBool(key, &b))
	assert.True(t, b, "unset keeps the current value")
	t.Setenv(key, "false")
	require.NoError(t, parseBool(key, &b))
	assert.False(t, b)
	t.Setenv(key, "nope")
	assert.Error(t, parseBool(key, &b))
	assert.False(t, b, "a bad value leaves the field alone")

	n := 3
	t.Setenv(key, "7")
	require.NoError(t, parseInt(key, &n))
	assert.Equal(t, 7, n)
	t.Setenv(key, "seven")
	assert.Error(t, parseInt(key, &n))
	assert.Equal(t, 7, n)

	d := time.Minute
	t.Setenv(key, "3s")
	require.NoError(t, parseDuration(key, &d))
	assert.Equal(t, 3*time.Second, d)
	t.Setenv(key, "3")
	assert.Error(t, parseDuration(key, &d))
	t.Setenv(key, "")
	require.NoError(t, parseDuration(key, &d))
	assert.Equal(t, 3*time.Second, d)

	got, err := parseOptionalDuration("")
	require.NoError(t, err)
	assert.Zero(t, got)
	_, err = parseOptionalDuration("x")
	assert.Error(t, err)

	t.Setenv(key, "set")
	assert.Equal(t, "set", getEnvOrDefault(key, "default"))
	assert.Equal(t, "default", getEnvOrDefault("ACCOUNT_API_NOT_SET_ANYWHERE", "default"))
}
