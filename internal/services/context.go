package services

import "context"

type contextKey string

const (
	runIDKey      contextKey = "run_id"
	stepKey       contextKey = "step"
	trackIndexKey contextKey = "track_index"
)

// WithRunID annotates context with the transfer run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the transfer run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStep annotates context with the pipeline step name.
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext returns the step name if present.
func StepFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stepKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithTrackIndex annotates context with the 1-based source track position.
func WithTrackIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, trackIndexKey, index)
}

// TrackIndexFromContext extracts the track position if present.
func TrackIndexFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(trackIndexKey).(int)
	return v, ok
}
