package logging

import (
	"context"
	"log/slog"
	"strings"

	"clipsplit/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the batch run identifier.
	FieldRunID = "run_id"
	// FieldSourceFile is the standardized structured logging key for the input video name.
	FieldSourceFile = "source_file"
	// FieldVariant is the standardized structured logging key for the job variant label.
	FieldVariant = "variant"
	// FieldEventType classifies a log line for filtering (job_failed, file_skipped, ...).
	FieldEventType = "event_type"
	// FieldImpact states the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if name, ok := services.SourceFileFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSourceFile, name))
	}
	if variant, ok := services.VariantFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldVariant, variant))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}

// FormatSubject builds the "file · variant" subject used in console output.
func FormatSubject(sourceFile, variant string) string {
	sourceFile = strings.TrimSpace(sourceFile)
	variant = strings.TrimSpace(variant)
	switch {
	case sourceFile != "" && variant != "":
		return sourceFile + " · " + variant
	case sourceFile != "":
		return sourceFile
	default:
		return variant
	}
}
