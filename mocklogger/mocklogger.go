// mocklogger/mocklogger.go
package mocklogger

import (
	"errors"
	"time"

	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockLogger is a testify mock of logger.Logger.
type MockLogger struct {
	mock.Mock
	logLevel logger.LogLevel
}

// NewMockLogger creates a new instance of MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{logLevel: logger.LogLevelDebug}
}

var _ logger.Logger = (*MockLogger)(nil)

// GetLogLevel mocks the GetLogLevel method of the Logger interface.
func (m *MockLogger) GetLogLevel() logger.LogLevel {
	args := m.Called()
	return args.Get(0).(logger.LogLevel)
}

// SetLevel records the level and the call.
func (m *MockLogger) SetLevel(level logger.LogLevel) {
	m.logLevel = level
	m.Called(level)
}

// With records the fields and returns the same mock, so expectations set on it keep applying
// to the derived logger.
func (m *MockLogger) With(fields ...zap.Field) logger.Logger {
	m.Called(fields)
	return m
}

// Debug logs a message at the Debug level.
func (m *MockLogger) Debug(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Info logs a message at the Info level.
func (m *MockLogger) Info(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Warn logs a message at the Warn level.
func (m *MockLogger) Warn(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Error records the call and returns an error carrying msg, like the real logger.
func (m *MockLogger) Error(msg string, fields ...zap.Field) error {
	m.Called(msg, fields)
	return errors.New(msg)
}

// Panic logs a message at the Panic level.
func (m *MockLogger) Panic(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Fatal logs a message at the Fatal level.
func (m *MockLogger) Fatal(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// LogRequestStart mocks the start of an API call.
func (m *MockLogger) LogRequestStart(event string, requestID string, method string, action string, params map[string]string) {
	m.Called(event, requestID, method, action, params)
}

// LogRequestEnd mocks the end of an HTTP exchange.
func (m *MockLogger) LogRequestEnd(event string, method string, action string, statusCode int, duration time.Duration) {
	m.Called(event, method, action, statusCode, duration)
}

// LogError mocks a failed API call.
func (m *MockLogger) LogError(event string, method string, action string, statusCode int, err error) {
	m.Called(event, method, action, statusCode, err)
}

// LogAuthTokenError mocks a token fetch failure.
func (m *MockLogger) LogAuthTokenError(event string, action string, err error) {
	m.Called(event, action, err)
}

// LogRetryAttempt mocks a token retry.
func (m *MockLogger) LogRetryAttempt(event string, method string, action string, attempt int, reason string) {
	m.Called(event, method, action, attempt, reason)
}
