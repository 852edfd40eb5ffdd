// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package discovery provides the Discovery Engine API surfaces used by the search façade.
//
// Each capability (data store admin, site search engine admin, document admin, engine
// admin, search, conversational search) is described by a small interface speaking
// [discoveryenginepb] messages. Admin methods block until their long-running operation
// completes, and list methods return exactly one remote page so that callers control
// pagination.
//
// [Registry] implements [Provider] on top of the generated clients in
// cloud.google.com/go/discoveryengine/apiv1alpha. Each client is constructed on first
// use and then reused for the lifetime of the registry:
//
//	reg := discovery.NewRegistry(discovery.Settings{
//		Endpoint: "discoveryengine.googleapis.com",
//	})
//	defer reg.Close()
//
//	ds, err := reg.DataStores(ctx)
//
// # Thread Safety
//
// A Registry is safe for concurrent use. Concurrent first use of a capability
// constructs exactly one client.
//
// [discoveryenginepb]: https://pkg.go.dev/cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb
package discovery
