package services

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	stageKey    contextKey = "stage"
	languageKey contextKey = "language"
)

// WithRunID annotates context with the engine run identifier.
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

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithLanguage annotates context with the ISO language code being processed.
func WithLanguage(ctx context.Context, iso string) context.Context {
	if iso == "" {
		return ctx
	}
	return context.WithValue(ctx, languageKey, iso)
}

// LanguageFromContext returns the ISO language code if present.
func LanguageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(languageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
