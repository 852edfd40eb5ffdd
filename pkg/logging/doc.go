// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging carries a [*slog.Logger] in a [context.Context].
//
// A logger stored with [NewContext] takes precedence over the logger configured on a
// search client, which lets a caller attach request-scoped attributes to every log line
// a single operation emits:
//
//	ctx = logging.NewContext(ctx, logger.With(slog.String("request_id", id)))
//	err := store.ImportData(ctx, src)
//
// When the context carries no logger, [FromContext] falls back to [slog.Default].
package logging
