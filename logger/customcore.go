package logger

import (
	"go.uber.org/zap/zapcore"
)

// customCore moves the request_id and action fields to the front of every entry so that
// a single logical call is easy to follow when scanning console output.
type customCore struct {
	zapcore.Core
}

var leadingFieldKeys = []string{"request_id", "action"}

// With adds structured context to the Core.
func (c *customCore) With(fields []zapcore.Field) zapcore.Core {
	return &customCore{c.Core.With(reorderFields(fields))}
}

// Write serializes the Entry and any Fields supplied at the log site and writes them to their destination.
func (c *customCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(entry, reorderFields(fields))
}

// Check determines whether the supplied Entry should be logged.
func (c *customCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checkedEntry.AddCore(entry, c)
	}
	return checkedEntry
}

// Sync flushes buffered logs (if any).
func (c *customCore) Sync() error {
	return c.Core.Sync()
}

func reorderFields(fields []zapcore.Field) []zapcore.Field {
	ordered := make([]zapcore.Field, 0, len(fields))
	for _, key := range leadingFieldKeys {
		for _, field := range fields {
			if field.Key == key {
				ordered = append(ordered, field)
			}
		}
	}
	for _, field := range fields {
		if !isLeadingField(field.Key) {
			ordered = append(ordered, field)
		}
	}
	return ordered
}

func isLeadingField(key string) bool {
	for _, k := range leadingFieldKeys {
		if k == key {
			return true
		}
	}
	return false
}
