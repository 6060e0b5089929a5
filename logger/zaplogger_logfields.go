// zaplogger_logfields.go
package logger

import (
	"time"

	"go.uber.org/zap"
)

// LogRequestStart logs the initiation of an API call. Params are expected to be redacted by the caller.
func (d *defaultLogger) LogRequestStart(event string, requestID string, method string, action string, params map[string]string) {
	if d.logLevel <= LogLevelDebug {
		d.logger.Debug("API request started",
			zap.String("event", event),
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("action", action),
			zap.Any("params", params),
		)
	}
}

// LogRequestEnd logs the completion of a single HTTP exchange.
func (d *defaultLogger) LogRequestEnd(event string, method string, action string, statusCode int, duration time.Duration) {
	if d.logLevel <= LogLevelInfo {
		d.logger.Info("API request completed",
			zap.String("event", event),
			zap.String("method", method),
			zap.String("action", action),
			zap.Int("status_code", statusCode),
			zap.Duration("duration", duration),
		)
	}
}

// LogError logs a failed API call.
func (d *defaultLogger) LogError(event string, method string, action string, statusCode int, err error) {
	if d.logLevel <= LogLevelError {
		d.logger.Error("API request failed",
			zap.String("event", event),
			zap.String("method", method),
			zap.String("action", action),
			zap.Int("status_code", statusCode),
			zap.Error(err),
		)
	}
}

// LogAuthTokenError logs a failure to obtain an authentication token.
func (d *defaultLogger) LogAuthTokenError(event string, action string, err error) {
	if d.logLevel <= LogLevelError {
		d.logger.Error("Authentication token error",
			zap.String("event", event),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// LogRetryAttempt logs a retry of an API call after a token refresh.
func (d *defaultLogger) LogRetryAttempt(event string, method string, action string, attempt int, reason string) {
	if d.logLevel <= LogLevelWarn {
		d.logger.Warn("API request retry",
			zap.String("event", event),
			zap.String("method", method),
			zap.String("action", action),
			zap.Int("attempt", attempt),
			zap.String("reason", reason),
		)
	}
}
