// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package resource parses and builds Discovery Engine resource names.
//
// Data stores and engines live under a collection:
//
//	projects/{project}/locations/{location}/collections/default_collection/dataStores/{id}
//	projects/{project}/locations/{location}/collections/default_collection/engines/{id}
//
// The collection segment is accepted on input but always normalized to
// default_collection on output.
package resource
