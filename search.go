// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package search provides a Go implementation of Vertex AI Search (Discovery Engine) data stores and apps.
//
// Two resource handles wrap the Discovery Engine admin and query APIs:
//
//   - [DataStore]: a container of ingested content (create, list, import, purge, delete)
//   - [App]: a search application bound to one or more data stores (create, list, search, answer, delete)
//
// # Usage
//
// Initialize a configuration once and build a client from it:
//
//	cfg, err := search.Init("my-project", "global")
//	if err != nil {
//		log.Fatal(err)
//	}
//	client, err := search.NewClient(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Create a data store, import documents and serve it through an app:
//
//	store, err := client.CreateDataStore(ctx, "docs", "Docs", search.DataTypeUnstructured)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := store.ImportData(ctx, &search.GCSSource{InputURIs: []string{"gs://bucket/docs/*"}}); err != nil {
//		log.Fatal(err)
//	}
//	app, err := client.CreateApp(ctx, "docs-app", "Docs", []*search.DataStore{store})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Search results arrive one page at a time:
//
//	for page, err := range app.Search(ctx, search.Text("what is vertex ai search?"), search.WithPageSize(10)) {
//		if err != nil {
//			log.Fatal(err)
//		}
//		for _, r := range page.GetResults() {
//			fmt.Println(r.GetId())
//		}
//	}
//
// # Resource Names
//
// Handles accept either a bare identifier, resolved against the configured project and
// location, or a full resource name such as
// projects/p/locations/global/collections/default_collection/dataStores/docs.
// A handle never needs a remote call to know its own name.
//
// # Long-running Operations
//
// Create, import, purge and delete block until the remote operation completes.
// Delete is best effort: API errors are logged and not returned.
package search

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Version is the version of the search package, reported in the client user agent.
var Version = "v0.0.0"

// userAgent returns the user agent sent with every request.
func userAgent() string {
	return "vertexai-search-go/" + Version
}

// describe renders a remote resource description as indented JSON.
func describe(m proto.Message) (string, error) {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", m.ProtoReflect().Descriptor().FullName(), err)
	}
	return string(b), nil
}
