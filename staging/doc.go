// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package staging uploads local files to a Cloud Storage bucket so they can be imported
// into a data store with a [search.GCSSource].
package staging
