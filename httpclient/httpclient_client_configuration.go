// httpclient_client_configuration.go
// Description: This file contains functions to load and validate configuration values from a JSON file or environment variables.
package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/deploymenttheory/go-api-account-client/authenticationhandler"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/deploymenttheory/go-api-account-client/transport"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = logger.LogOutputPretty
	DefaultTokenTTL              = 595 * time.Second
	DefaultMaxTokenRetries       = 1
	DefaultCustomTimeout         = 10 * time.Second
	DefaultMaxRedirects          = 5
	DefaultTransportBackend      = transport.BackendNetHTTP
	ConfigFileExtension          = ".json"
	EnvPrefix                    = "ACCOUNT_API_"
)

var validate = validator.New()

// SetDefaultValuesClientConfig sets default values for the client configuration. Ensuring that all fields have a valid or minimum value.
// MaxTokenRetries of zero is replaced by the default; set DisableTokenRetry to turn retries off.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	setDefaultString(&config.ClientOptions.LogLevel, DefaultLogLevelString)
	setDefaultString(&config.ClientOptions.LogOutputFormat, DefaultLogOutputFormatString)
	setDefaultDuration(&config.ClientOptions.TokenTTL, DefaultTokenTTL)
	setDefaultInt(&config.ClientOptions.MaxTokenRetries, DefaultMaxTokenRetries)
	setDefaultDuration(&config.ClientOptions.CustomTimeout, DefaultCustomTimeout)
	setDefaultInt(&config.ClientOptions.MaxRedirects, DefaultMaxRedirects)
	setDefaultString(&config.ClientOptions.TransportBackend, DefaultTransportBackend)
}

func setDefaultString(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func setDefaultInt(field *int, def int) {
	if *field == 0 {
		*field = def
	}
}

func setDefaultDuration(field *time.Duration, def time.Duration) {
	if *field == 0 {
		*field = def
	}
}

// validateClientConfig checks struct tags and the rules tags cannot express.
func validateClientConfig(config ClientConfig) error {
	if err := validate.Struct(config); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			msgs := make([]string, 0, len(vErrs))
			for _, fe := range vErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	if err := authenticationhandler.ValidateCredentials(config.Credentials); err != nil {
		return err
	}

	if config.ClientOptions.TokenTTL <= 0 {
		return errors.New("token TTL must be greater than 0")
	}

	if config.ClientOptions.FollowRedirects && config.ClientOptions.MaxRedirects < 1 {
		return errors.New("max redirects cannot be less than 1")
	}

	return nil
}

// fileConfig mirrors ClientConfig with durations written as Go duration strings ("595s", "10s").
type fileConfig struct {
	BaseURL       string                                  `json:"BaseURL"`
	Credentials   authenticationhandler.ClientCredentials `json:"Credentials"`
	ClientOptions struct {
		LogLevel          string `json:"LogLevel"`
		LogOutputFormat   string `json:"LogOutputFormat"`
		HideSensitiveData bool   `json:"HideSensitiveData"`
		TokenTTL          string `json:"TokenTTL"`
		MaxTokenRetries   int    `json:"MaxTokenRetries"`
		DisableTokenRetry bool   `json:"DisableTokenRetry"`
		HonourJWTExpiry   bool   `json:"HonourJWTExpiry"`
		CustomTimeout     string `json:"CustomTimeout"`
		FollowRedirects   bool   `json:"FollowRedirects"`
		MaxRedirects      int    `json:"MaxRedirects"`
		TransportBackend  string `json:"TransportBackend"`
	} `json:"ClientOptions"`
	Proxy ProxyConfig `json:"Proxy"`
}

// LoadConfigFromFile loads configuration values from a JSON file into the ClientConfig struct
// and fills in defaults for anything left unset.
func LoadConfigFromFile(path string) (*ClientConfig, error) {
	path, err := validateFilePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to clean/validate filepath (%s): %v", path, err)
	}

	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the configuration file: %s, error: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(fileBytes, &fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the configuration file: %s, error: %w", path, err)
	}

	tokenTTL, err := parseOptionalDuration(fc.ClientOptions.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid TokenTTL %q: %w", fc.ClientOptions.TokenTTL, err)
	}
	timeout, err := parseOptionalDuration(fc.ClientOptions.CustomTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid CustomTimeout %q: %w", fc.ClientOptions.CustomTimeout, err)
	}

	config := &ClientConfig{
		BaseURL:     fc.BaseURL,
		Credentials: fc.Credentials,
		ClientOptions: ClientOptions{
			LogLevel:          fc.ClientOptions.LogLevel,
			LogOutputFormat:   fc.ClientOptions.LogOutputFormat,
			HideSensitiveData: fc.ClientOptions.HideSensitiveData,
			TokenTTL:          tokenTTL,
			MaxTokenRetries:   fc.ClientOptions.MaxTokenRetries,
			DisableTokenRetry: fc.ClientOptions.DisableTokenRetry,
			HonourJWTExpiry:   fc.ClientOptions.HonourJWTExpiry,
			CustomTimeout:     timeout,
			FollowRedirects:   fc.ClientOptions.FollowRedirects,
			MaxRedirects:      fc.ClientOptions.MaxRedirects,
			TransportBackend:  fc.ClientOptions.TransportBackend,
		},
		Proxy: fc.Proxy,
	}

	SetDefaultValuesClientConfig(config)
	return config, nil
}

// LoadConfigFromEnv overlays ACCOUNT_API_* environment variables on config. Variables that are not
// set, or set to an empty string for non-string options, leave the existing value in place. A set
// variable that does not parse is an error. A nil config starts from an empty one.
func LoadConfigFromEnv(config *ClientConfig) (*ClientConfig, error) {
	if config == nil {
		config = &ClientConfig{}
	}

	config.BaseURL = getEnvOrDefault(EnvPrefix+"BASE_URL", config.BaseURL)

	config.Credentials.Username = getEnvOrDefault(EnvPrefix+"USERNAME", config.Credentials.Username)
	config.Credentials.Password = getEnvOrDefault(EnvPrefix+"PASSWORD", config.Credentials.Password)
	config.Credentials.APIKey = getEnvOrDefault(EnvPrefix+"KEY", config.Credentials.APIKey)

	opts := &config.ClientOptions
	opts.LogLevel = getEnvOrDefault(EnvPrefix+"LOG_LEVEL", opts.LogLevel)
	opts.LogOutputFormat = getEnvOrDefault(EnvPrefix+"LOG_OUTPUT_FORMAT", opts.LogOutputFormat)
	opts.TransportBackend = getEnvOrDefault(EnvPrefix+"TRANSPORT", opts.TransportBackend)

	errs := []error{
		parseBool(EnvPrefix+"HIDE_SENSITIVE_DATA", &opts.HideSensitiveData),
		parseDuration(EnvPrefix+"TOKEN_TTL", &opts.TokenTTL),
		parseInt(EnvPrefix+"MAX_TOKEN_RETRIES", &opts.MaxTokenRetries),
		parseBool(EnvPrefix+"DISABLE_TOKEN_RETRY", &opts.DisableTokenRetry),
		parseBool(EnvPrefix+"HONOUR_JWT_EXPIRY", &opts.HonourJWTExpiry),
		parseDuration(EnvPrefix+"CUSTOM_TIMEOUT", &opts.CustomTimeout),
		parseBool(EnvPrefix+"FOLLOW_REDIRECTS", &opts.FollowRedirects),
		parseInt(EnvPrefix+"MAX_REDIRECTS", &opts.MaxRedirects),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	config.Proxy.ProxyURL = getEnvOrDefault(EnvPrefix+"PROXY_URL", config.Proxy.ProxyURL)
	config.Proxy.ProxyUsername = getEnvOrDefault(EnvPrefix+"PROXY_USERNAME", config.Proxy.ProxyUsername)
	config.Proxy.ProxyPassword = getEnvOrDefault(EnvPrefix+"PROXY_PASSWORD", config.Proxy.ProxyPassword)

	SetDefaultValuesClientConfig(config)
	return config, nil
}

// validateFilePath cleans the path, makes it absolute and checks it names a JSON file.
func validateFilePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("file path is empty")
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	if ext := filepath.Ext(abs); !strings.EqualFold(ext, ConfigFileExtension) {
		return "", fmt.Errorf("expected a %s file, got %q", ConfigFileExtension, ext)
	}
	return abs, nil
}

func getEnvOrDefault(envKey string, defaultValue string) string {
	if value, exists := os.LookupEnv(envKey); exists {
		return value
	}
	return defaultValue
}

// lookupEnv returns the value of envKey when it is set and non-empty.
func lookupEnv(envKey string) (string, bool) {
	value, exists := os.LookupEnv(envKey)
	return value, exists && value != ""
}

// parseBool overwrites *field with the boolean in envKey, if set.
func parseBool(envKey string, field *bool) error {
	value, ok := lookupEnv(envKey)
	if !ok {
		return nil
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", envKey, value, err)
	}
	*field = result
	return nil
}

// parseInt overwrites *field with the integer in envKey, if set.
func parseInt(envKey string, field *int) error {
	value, ok := lookupEnv(envKey)
	if !ok {
		return nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", envKey, value, err)
	}
	*field = result
	return nil
}

// parseDuration overwrites *field with the Go duration in envKey ("595s", "10m"), if set.
func parseDuration(envKey string, field *time.Duration) error {
	value, ok := lookupEnv(envKey)
	if !ok {
		return nil
	}
	result, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", envKey, value, err)
	}
	*field = result
	return nil
}

func parseOptionalDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	return time.ParseDuration(value)
}
