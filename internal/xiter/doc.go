// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package xiter contains additional stdlib [iter] helpers for token-paginated remote listings.
package xiter
