// factory.go
package transport

import (
	"fmt"

	"github.com/deploymenttheory/go-api-account-client/logger"
)

// New builds the transport named by backend. An empty backend selects net/http.
func New(backend string, cfg Config, log logger.Logger) (Transport, error) {
	switch backend {
	case "", BackendNetHTTP:
		return NewHTTPTransport(cfg, log)
	case BackendReq:
		return NewReqTransport(cfg, log)
	default:
		return nil, fmt.Errorf("unknown transport backend %q", backend)
	}
}
