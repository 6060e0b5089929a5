// zaplogger_config.go
package logger

// Ref: https://betterstack.com/community/guides/logging/go/zap/#logging-errors-with-zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogOutputJSON   = "json"
	LogOutputPretty = "pretty"
)

// BuildLogger creates and returns a new zap backed Logger writing to stdout.
func BuildLogger(logLevel LogLevel, logOutputFormat string) Logger {
	return BuildLoggerTo(logLevel, logOutputFormat, "stdout")
}

// BuildLoggerTo is BuildLogger writing to outputPath, which is any zap sink ("stdout", "stderr", a file path).
// The "pretty" format uses zap's console encoder with coloured levels, anything else is JSON.
// Timestamps are ISO8601 and the request_id field is always written first.
func BuildLoggerTo(logLevel LogLevel, logOutputFormat, outputPath string) Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	encoding := "json"
	if logOutputFormat == LogOutputPretty {
		encoding = "console"
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(convertToZapLevel(logLevel)),
		Development:       false,
		Encoding:          encoding,
		DisableCaller:     true,
		DisableStacktrace: true,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{outputPath},
		ErrorOutputPaths:  []string{"stderr"},
	}

	base := zap.Must(config.Build())

	return NewLogger(zap.New(&customCore{base.Core()}), logLevel)
}
