// headers/headers_test.go
package headers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/deploymenttheory/go-api-account-client/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSetRequestHeadersGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)

	NewHeaderHandler(req, nil).SetRequestHeaders("go-api-account-client/0.1.0")

	assert.Equal(t, AcceptJSON, req.Header.Get("Accept"))
	assert.Equal(t, "go-api-account-client/0.1.0", req.Header.Get("User-Agent"))
	assert.Empty(t, req.Header.Get("Content-Type"), "GET requests carry no body")
}

func TestSetRequestHeadersPost(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com", nil)

	NewHeaderHandler(req, nil).SetRequestHeaders("")

	assert.Equal(t, ContentTypeForm, req.Header.Get("Content-Type"))
}

func TestLogHeadersRedacts(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Accept", AcceptJSON)

	mockLog := mocklogger.NewMockLogger()
	mockLog.On("GetLogLevel").Return(logger.LogLevelDebug)
	mockLog.On("Debug", "HTTP Request Headers", mock.MatchedBy(func(fields []zap.Field) bool {
		return len(fields) == 1 && !strings.Contains(fields[0].String, "secret")
	})).Once()

	NewHeaderHandler(req, mockLog).LogHeaders(true)

	mockLog.AssertExpectations(t)
}

func TestLogHeadersSkippedAboveDebug(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)

	mockLog := mocklogger.NewMockLogger()
	mockLog.On("GetLogLevel").Return(logger.LogLevelInfo)

	NewHeaderHandler(req, mockLog).LogHeaders(true)

	mockLog.AssertNotCalled(t, "Debug", mock.Anything, mock.Anything)
}

func TestHeadersToString(t *testing.T) {
	h := http.Header{}
	h.Set("User-Agent", "ua")
	h.Set("Accept", "application/json")

	assert.Equal(t, "Accept: application/json\nUser-Agent: ua", HeadersToString(h))
}
