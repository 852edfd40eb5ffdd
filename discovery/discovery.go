// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package discovery

import (
	"context"

	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

// Capability names one remote API surface.
type Capability string

const (
	CapabilityDataStore            Capability = "data_store"
	CapabilitySiteSearchEngine     Capability = "site_search_engine"
	CapabilityDocument             Capability = "document"
	CapabilityEngine               Capability = "engine"
	CapabilitySearch               Capability = "search"
	CapabilityConversationalSearch Capability = "conversational_search"
)

// DataStoreAPI administers data stores.
type DataStoreAPI interface {
	// CreateDataStore creates a data store and waits for the operation to complete.
	CreateDataStore(ctx context.Context, req *discoveryenginepb.CreateDataStoreRequest) (*discoveryenginepb.DataStore, error)

	// GetDataStore fetches the current remote description of a data store.
	GetDataStore(ctx context.Context, req *discoveryenginepb.GetDataStoreRequest) (*discoveryenginepb.DataStore, error)

	// ListDataStores fetches one page of data stores.
	ListDataStores(ctx context.Context, req *discoveryenginepb.ListDataStoresRequest) (*discoveryenginepb.ListDataStoresResponse, error)

	// DeleteDataStore deletes a data store and waits for the operation to complete.
	DeleteDataStore(ctx context.Context, req *discoveryenginepb.DeleteDataStoreRequest) error
}

// SiteSearchEngineAPI registers crawl targets of website data stores.
type SiteSearchEngineAPI interface {
	// CreateTargetSite registers a target site and waits for the operation to complete.
	CreateTargetSite(ctx context.Context, req *discoveryenginepb.CreateTargetSiteRequest) (*discoveryenginepb.TargetSite, error)
}

// DocumentAPI administers the documents of a data store branch.
type DocumentAPI interface {
	// ImportDocuments imports documents and waits for the operation to complete.
	ImportDocuments(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (*discoveryenginepb.ImportDocumentsResponse, error)

	// PurgeDocuments deletes the documents selected by a filter and waits for the operation to complete.
	PurgeDocuments(ctx context.Context, req *discoveryenginepb.PurgeDocumentsRequest) (*discoveryenginepb.PurgeDocumentsResponse, error)
}

// EngineAPI administers engines (apps).
type EngineAPI interface {
	// CreateEngine creates an engine and waits for the operation to complete.
	CreateEngine(ctx context.Context, req *discoveryenginepb.CreateEngineRequest) (*discoveryenginepb.Engine, error)

	// GetEngine fetches the current remote description of an engine.
	GetEngine(ctx context.Context, req *discoveryenginepb.GetEngineRequest) (*discoveryenginepb.Engine, error)

	// ListEngines fetches one page of engines.
	ListEngines(ctx context.Context, req *discoveryenginepb.ListEnginesRequest) (*discoveryenginepb.ListEnginesResponse, error)

	// DeleteEngine deletes an engine and waits for the operation to complete.
	DeleteEngine(ctx context.Context, req *discoveryenginepb.DeleteEngineRequest) error
}

// SearchAPI runs search queries against a serving config.
type SearchAPI interface {
	// Search fetches one page of search results.
	Search(ctx context.Context, req *discoveryenginepb.SearchRequest) (*discoveryenginepb.SearchResponse, error)
}

// ConversationalSearchAPI answers questions against a serving config.
type ConversationalSearchAPI interface {
	// AnswerQuery answers a single query.
	AnswerQuery(ctx context.Context, req *discoveryenginepb.AnswerQueryRequest) (*discoveryenginepb.AnswerQueryResponse, error)
}

// Provider hands out one client per capability.
type Provider interface {
	DataStores(ctx context.Context) (DataStoreAPI, error)
	SiteSearchEngines(ctx context.Context) (SiteSearchEngineAPI, error)
	Documents(ctx context.Context) (DocumentAPI, error)
	Engines(ctx context.Context) (EngineAPI, error)
	Search(ctx context.Context) (SearchAPI, error)
	ConversationalSearch(ctx context.Context) (ConversationalSearchAPI, error)
	Close() error
}
