// zaplogger_log_levels_test.go
package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseLogLevelFromString tests the conversion from string to LogLevel
func TestParseLogLevelFromString(t *testing.T) {
	tests := []struct {
		levelStr      string
		expectedLevel LogLevel
	}{
		{"LogLevelDebug", LogLevelDebug},
		{"LogLevelInfo", LogLevelInfo},
		{"LogLevelWarn", LogLevelWarn},
		{"LogLevelError", LogLevelError},
		{"LogLevelDPanic", LogLevelDPanic},
		{"LogLevelPanic", LogLevelPanic},
		{"LogLevelFatal", LogLevelFatal},
		{"LogLevelNone", LogLevelNone},
		{"Invalid", LogLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.levelStr, func(t *testing.T) {
			assert.Equal(t, tt.expectedLevel, ParseLogLevelFromString(tt.levelStr))
		})
	}
}

func TestValidLogLevelsRoundTrip(t *testing.T) {
	for _, s := range ValidLogLevels {
		if s == "LogLevelNone" {
			continue
		}
		assert.NotEqual(t, LogLevelNone, ParseLogLevelFromString(s), s)
	}
}
