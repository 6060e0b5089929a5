// proxy.go

package proxy

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/deploymenttheory/go-api-account-client/logger"
	"go.uber.org/zap"
)

// InitializeProxy routes transport through proxyURL. Credentials, when given, are sent as basic
// proxy authentication. An empty proxyURL leaves the transport's environment-based proxy in place.
func InitializeProxy(transport *http.Transport, proxyURL, proxyUsername, proxyPassword string, log logger.Logger) error {
	if proxyURL == "" {
		return nil
	}

	parsedProxyURL, err := url.Parse(proxyURL)
	if err != nil {
		return fmt.Errorf("parsing proxy URL: %w", err)
	}
	if parsedProxyURL.Scheme == "" || parsedProxyURL.Host == "" {
		return fmt.Errorf("proxy URL %q must include scheme and host", proxyURL)
	}

	if proxyUsername != "" {
		parsedProxyURL.User = url.UserPassword(proxyUsername, proxyPassword)
	}

	transport.Proxy = http.ProxyURL(parsedProxyURL)

	if log != nil {
		log.Info("Proxy configured",
			zap.String("ProxyURL", parsedProxyURL.Redacted()),
			zap.Bool("Authenticated", parsedProxyURL.User != nil),
		)
	}
	return nil
}
