package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-datakit/pkg/interfaces"
)

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// ApplyContextFields merges fields previously annotated on ctx via
// ContextWithFields into the logger, so entries logged downstream carry
// them. Loggers without the FieldsLogger extension come back unchanged.
func ApplyContextFields(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return WithFields(logger, fields)
}
