package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithPageID creates a child logger with a page_id field
func WithPageID(ctx context.Context, pageID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("page_id", pageID).Logger()
	return WithContext(ctx, childLogger)
}

// WithSite creates a child logger with a site field
func WithSite(ctx context.Context, site string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("site", site).Logger()
	return WithContext(ctx, childLogger)
}
