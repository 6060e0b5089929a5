// headers/headers.go
package headers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/deploymenttheory/go-api-account-client/headers/redact"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"go.uber.org/zap"
)

const (
	// AcceptJSON is sent on every request; the account API answers in JSON.
	AcceptJSON = "application/json"
	// ContentTypeForm is the body encoding of POST requests.
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// HeaderHandler is responsible for managing and setting headers on HTTP requests.
type HeaderHandler struct {
	req *http.Request
	log logger.Logger
}

// NewHeaderHandler creates a new instance of HeaderHandler for a given http.Request and logger.
func NewHeaderHandler(req *http.Request, log logger.Logger) *HeaderHandler {
	return &HeaderHandler{
		req: req,
		log: log,
	}
}

// SetContentType sets the Content-Type header for the request.
func (h *HeaderHandler) SetContentType(contentType string) {
	h.req.Header.Set("Content-Type", contentType)
}

// SetAccept sets the Accept header for the request.
func (h *HeaderHandler) SetAccept(acceptHeader string) {
	h.req.Header.Set("Accept", acceptHeader)
}

// SetUserAgent sets the User-Agent header for the request.
func (h *HeaderHandler) SetUserAgent(userAgent string) {
	h.req.Header.Set("User-Agent", userAgent)
}

// SetRequestHeaders applies the standard header set. Content-Type is only sent with a body.
func (h *HeaderHandler) SetRequestHeaders(userAgent string) {
	h.SetAccept(AcceptJSON)
	if userAgent != "" {
		h.SetUserAgent(userAgent)
	}
	if h.req.Method == http.MethodPost {
		h.SetContentType(ContentTypeForm)
	}
}

// LogHeaders logs the request headers at debug level, redacting credentials when asked to.
func (h *HeaderHandler) LogHeaders(hideSensitiveData bool) {
	LogRequestHeaders(h.log, h.req.Header, hideSensitiveData)
}

// LogRequestHeaders logs header at debug level, redacting credentials when asked to. It is shared by
// transports that do not build an *http.Request themselves.
func LogRequestHeaders(log logger.Logger, header http.Header, hideSensitiveData bool) {
	if log == nil || log.GetLogLevel() > logger.LogLevelDebug {
		return
	}

	redacted := http.Header{}
	for name, values := range header {
		for _, v := range values {
			redacted.Add(name, redact.RedactSensitiveData(hideSensitiveData, name, v))
		}
	}
	log.Debug("HTTP Request Headers", zap.String("Headers", HeadersToString(redacted)))
}

// HeadersToString renders headers as sorted "Name: value" lines.
func HeadersToString(headers http.Header) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(headers[name], ", ")))
	}
	return strings.Join(lines, "\n")
}
