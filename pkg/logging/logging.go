// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"
	"log/slog"
)

// contextKey is how we find [*slog.Logger] in a [context.Context].
type contextKey struct{}

// NewContext returns a new [context.Context], derived from ctx, which carries the provided [*slog.Logger].
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContextOr returns the [*slog.Logger] carried by ctx, or fallback if there is none.
//
// A nil fallback is replaced by [slog.Default].
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if v, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && v != nil {
		return v
	}
	if fallback == nil {
		return slog.Default()
	}
	return fallback
}

// FromContext returns the [*slog.Logger] carried by ctx, or [slog.Default] if there is none.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOr(ctx, nil)
}
