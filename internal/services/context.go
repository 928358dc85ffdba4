package services

import "context"

type contextKey string

const (
	runIDKey      contextKey = "run_id"
	sourceFileKey contextKey = "source_file"
	variantKey    contextKey = "variant"
)

// WithRunID annotates context with the batch run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSourceFile annotates context with the source file currently processed.
func WithSourceFile(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, sourceFileKey, name)
}

// SourceFileFromContext returns the source file name if present.
func SourceFileFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(sourceFileKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithVariant annotates context with the job variant label.
func WithVariant(ctx context.Context, variant string) context.Context {
	if variant == "" {
		return ctx
	}
	return context.WithValue(ctx, variantKey, variant)
}

// VariantFromContext returns the job variant label if present.
func VariantFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(variantKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
