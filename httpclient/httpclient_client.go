// httpclient_client.go
/* Package httpclient executes authenticated calls against the account management API.
Every call is an "action" sent either as GET query parameters or as a form POST to a single base URL.
The client resolves a short-lived token, attaches it to the call, interprets the API's status/msg
envelope and, when the API reports a token problem, refreshes the token and retries a bounded number
of times. */
package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/deploymenttheory/go-api-account-client/authenticationhandler"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/deploymenttheory/go-api-account-client/metrics"
	"github.com/deploymenttheory/go-api-account-client/tokencache"
	"github.com/deploymenttheory/go-api-account-client/transport"
	"github.com/deploymenttheory/go-api-account-client/version"
	"go.uber.org/zap"
)

// Client represents an HTTP client to interact with the account API.
type Client struct {
	Logger logger.Logger

	config    ClientConfig
	baseURL   *url.URL
	transport transport.Transport
	auth      *authenticationhandler.AuthTokenHandler
	metrics   metrics.Recorder
	now       tokencache.Clock
}

// ClientConfig holds configuration options for the Client.
type ClientConfig struct {
	BaseURL       string                                  `json:"BaseURL" validate:"required,url"`
	Credentials   authenticationhandler.ClientCredentials `json:"Credentials"`
	ClientOptions ClientOptions                           `json:"ClientOptions"`
	Proxy         ProxyConfig                             `json:"Proxy"`
}

// ClientOptions holds optional configuration options for the Client.
type ClientOptions struct {
	LogLevel          string        `json:"LogLevel" validate:"omitempty,oneof=LogLevelDebug LogLevelInfo LogLevelWarn LogLevelError LogLevelDPanic LogLevelPanic LogLevelFatal LogLevelNone"`
	LogOutputFormat   string        `json:"LogOutputFormat" validate:"omitempty,oneof=json pretty"`
	HideSensitiveData bool          `json:"HideSensitiveData"`
	TokenTTL          time.Duration `json:"TokenTTL" validate:"gte=0"`
	MaxTokenRetries   int           `json:"MaxTokenRetries" validate:"gte=0"`
	DisableTokenRetry bool          `json:"DisableTokenRetry"`
	HonourJWTExpiry   bool          `json:"HonourJWTExpiry"`
	CustomTimeout     time.Duration `json:"CustomTimeout" validate:"gte=0"`
	FollowRedirects   bool          `json:"FollowRedirects"`
	MaxRedirects      int           `json:"MaxRedirects" validate:"gte=0"`
	TransportBackend  string        `json:"TransportBackend" validate:"omitempty,oneof=nethttp req"`
}

// ProxyConfig holds the optional outbound proxy.
type ProxyConfig struct {
	ProxyURL      string `json:"ProxyURL,omitempty" validate:"omitempty,url"`
	ProxyUsername string `json:"ProxyUsername,omitempty"`
	ProxyPassword string `json:"ProxyPassword,omitempty"`
}

type buildOptions struct {
	transport transport.Transport
	logger    logger.Logger
	metrics   metrics.Recorder
	now       tokencache.Clock
}

// ClientOption overrides a collaborator of the Client, mostly for tests and embedding.
type ClientOption func(*buildOptions)

// WithTransport replaces the transport built from the configuration.
func WithTransport(t transport.Transport) ClientOption {
	return func(o *buildOptions) { o.transport = t }
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(l logger.Logger) ClientOption {
	return func(o *buildOptions) { o.logger = l }
}

// WithMetrics records client metrics to r.
func WithMetrics(r metrics.Recorder) ClientOption {
	return func(o *buildOptions) { o.metrics = r }
}

// WithClock overrides the clock used for token expiry.
func WithClock(now tokencache.Clock) ClientOption {
	return func(o *buildOptions) { o.now = now }
}

// BuildClient creates a new Client. A nil cache keeps tokens in process memory only.
func BuildClient(config ClientConfig, cache tokencache.TokenCache, opts ...ClientOption) (*Client, error) {
	SetDefaultValuesClientConfig(&config)

	bo := buildOptions{metrics: metrics.Noop{}, now: time.Now}
	for _, opt := range opts {
		opt(&bo)
	}

	log := bo.logger
	if log == nil {
		log = logger.BuildLogger(logger.ParseLogLevelFromString(config.ClientOptions.LogLevel), config.ClientOptions.LogOutputFormat)
	}

	if err := validateClientConfig(config); err != nil {
		return nil, log.Error("Invalid client configuration", zap.Error(err))
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	if cache == nil {
		cache, err = tokencache.NewMemory(tokencache.WithMemoryClock(bo.now))
		if err != nil {
			return nil, err
		}
	}

	tr := bo.transport
	if tr == nil {
		tr, err = transport.New(config.ClientOptions.TransportBackend, transport.Config{
			Timeout:           config.ClientOptions.CustomTimeout,
			FollowRedirects:   config.ClientOptions.FollowRedirects,
			MaxRedirects:      config.ClientOptions.MaxRedirects,
			ProxyURL:          config.Proxy.ProxyURL,
			ProxyUsername:     config.Proxy.ProxyUsername,
			ProxyPassword:     config.Proxy.ProxyPassword,
			UserAgent:         version.GetUserAgentHeader(),
			HideSensitiveData: config.ClientOptions.HideSensitiveData,
		}, log)
		if err != nil {
			return nil, log.Error("Failed to build transport", zap.Error(err))
		}
	}

	client := &Client{
		Logger:    log,
		config:    config,
		baseURL:   baseURL,
		transport: tr,
		metrics:   bo.metrics,
		now:       bo.now,
	}
	client.auth = authenticationhandler.NewAuthTokenHandler(log, cache, client.fetchToken, authenticationhandler.WithClock(bo.now))

	log.Info("New account API client initialized",
		zap.String("Base URL", baseURL.Redacted()),
		zap.String("Logging Level", config.ClientOptions.LogLevel),
		zap.String("Log Encoding Format", config.ClientOptions.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.ClientOptions.HideSensitiveData),
		zap.Duration("Token TTL", config.ClientOptions.TokenTTL),
		zap.Int("Max Token Retries", config.ClientOptions.MaxTokenRetries),
		zap.Bool("Token Retry Disabled", config.ClientOptions.DisableTokenRetry),
		zap.Bool("Honour JWT Expiry", config.ClientOptions.HonourJWTExpiry),
		zap.Duration("Custom Timeout", config.ClientOptions.CustomTimeout),
		zap.Bool("Follow Redirects", config.ClientOptions.FollowRedirects),
		zap.Int("Max Redirects", config.ClientOptions.MaxRedirects),
		zap.String("Transport", config.ClientOptions.TransportBackend),
	)

	return client, nil
}
