// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"errors"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/grpc/status"

	"github.com/go-a2a/vertexai-search/internal/resource"
)

var (
	// ErrUninitialized reports that a bare identifier or a listing needed a default project and location.
	ErrUninitialized = resource.ErrUninitialized

	// ErrNoDataStores reports an app created without any data store.
	ErrNoDataStores = errors.New("at least one data store is required")

	// ErrEmptyQuery reports a search or answer call without a usable query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrUnknownDataType reports a data type outside the defined [DataType] constants.
	ErrUnknownDataType = errors.New("unknown data type")

	// ErrUnknownDataSource reports a data source variant the import path cannot route.
	ErrUnknownDataSource = errors.New("unknown data source")
)

// isAPIError reports whether err was returned by the remote service rather than produced locally.
//
// A canceled or expired ctx makes every error local: gRPC reports the caller's own
// cancellation as a status error even when no request reached the service.
func isAPIError(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	if _, ok := apierror.FromError(err); ok {
		return true
	}
	_, ok := status.FromError(err)
	return ok
}
