// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package discovery

import (
	"context"
	"errors"
	"fmt"

	discoveryengine "cloud.google.com/go/discoveryengine/apiv1alpha"
	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// firstPage triggers a single fetch on a generated iterator and returns the raw page response.
//
// Generated iterators store the raw response of the last fetched page in their Response
// field. If the first page is empty but carries a continuation token, the iterator keeps
// fetching until it finds an item or the listing ends, so the returned page is the last
// one fetched.
func firstPage[R any, T any](next func() (T, error), response func() any) (R, error) {
	var zero R
	if _, err := next(); err != nil && !errors.Is(err, iterator.Done) {
		return zero, err
	}
	resp, ok := response().(R)
	if !ok {
		return zero, fmt.Errorf("unexpected page response type %T", response())
	}
	return resp, nil
}

type dataStoreClient struct {
	c *discoveryengine.DataStoreClient
}

var _ DataStoreAPI = (*dataStoreClient)(nil)

func newDataStoreClient(ctx context.Context, rest bool, opts ...option.ClientOption) (*dataStoreClient, error) {
	var (
		c   *discoveryengine.DataStoreClient
		err error
	)
	if rest {
		c, err = discoveryengine.NewDataStoreRESTClient(ctx, opts...)
	} else {
		c, err = discoveryengine.NewDataStoreClient(ctx, opts...)
	}
	if err != nil {
		return nil, err
	}
	return &dataStoreClient{c: c}, nil
}

func (d *dataStoreClient) CreateDataStore(ctx context.Context, req *discoveryenginepb.CreateDataStoreRequest) (*discoveryenginepb.DataStore, error) {
	op, err := d.c.CreateDataStore(ctx, req)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}

func (d *dataStoreClient) GetDataStore(ctx context.Context, req *discoveryenginepb.GetDataStoreRequest) (*discoveryenginepb.DataStore, error) {
	return d.c.GetDataStore(ctx, req)
}

func (d *dataStoreClient) ListDataStores(ctx context.Context, req *discoveryenginepb.ListDataStoresRequest) (*discoveryenginepb.ListDataStoresResponse, error) {
	it := d.c.ListDataStores(ctx, req)
	return firstPage[*discoveryenginepb.ListDataStoresResponse](it.Next, func() any { return it.Response })
}

func (d *dataStoreClient) DeleteDataStore(ctx context.Context, req *discoveryenginepb.DeleteDataStoreRequest) error {
	op, err := d.c.DeleteDataStore(ctx, req)
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func (d *dataStoreClient) Close() error {
	return d.c.Close()
}

type siteSearchEngineClient struct {
	c *discoveryengine.SiteSearchEngineClient
}

var _ SiteSearchEngineAPI = (*siteSearchEngineClient)(nil)

func newSiteSearchEngineClient(ctx context.Context, rest bool, opts ...option.ClientOption) (*siteSearchEngineClient, error) {
	var (
		c   *discoveryengine.SiteSearchEngineClient
		err error
	)
	if rest {
		c, err = discoveryengine.NewSiteSearchEngineRESTClient(ctx, opts...)
	} else {
		c, err = discoveryengine.NewSiteSearchEngineClient(ctx, opts...)
	}
	if err != nil {
		return nil, err
	}
	return &siteSearchEngineClient{c: c}, nil
}

func (s *siteSearchEngineClient) CreateTargetSite(ctx context.Context, req *discoveryenginepb.CreateTargetSiteRequest) (*discoveryenginepb.TargetSite, error) {
	op, err := s.c.CreateTargetSite(ctx, req)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}

func (s *siteSearchEngineClient) Close() error {
	return s.c.Close()
}

type documentClient struct {
	c *discoveryengine.DocumentClient
}

var _ DocumentAPI = (*documentClient)(nil)

func newDocumentClient(ctx context.Context, rest bool, opts ...option.ClientOption) (*documentClient, error) {
	var (
		c   *discoveryengine.DocumentClient
		err error
	)
	if rest {
		c, err = discoveryengine.NewDocumentRESTClient(ctx, opts...)
	} else {
		c, err = discoveryengine.NewDocumentClient(ctx, opts...)
	}
	if err != nil {
		return nil, err
	}
	return &documentClient{c: c}, nil
}

func (d *documentClient) ImportDocuments(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (*discoveryenginepb.ImportDocumentsResponse, error) {
	op, err := d.c.ImportDocuments(ctx, req)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}

func (d *documentClient) PurgeDocuments(ctx context.Context, req *discoveryenginepb.PurgeDocumentsRequest) (*discoveryenginepb.PurgeDocumentsResponse, error) {
	op, err := d.c.PurgeDocuments(ctx, req)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}

func (d *documentClient) Close() error {
	return d.c.Close()
}

type engineClient struct {
	c *discoveryengine.EngineClient
}

var _ EngineAPI = (*engineClient)(nil)

func newEngineClient(ctx context.Context, rest bool, opts ...option.ClientOption) (*engineClient, error) {
	var (
		c   *discoveryengine.EngineClient
		err error
	)
	if rest {
		c, err = discoveryengine.NewEngineRESTClient(ctx, opts...)
	} else {
		c, err = discoveryengine.NewEngineClient(ctx, opts...)
	}
	if err != nil {
		return nil, err
	}
	return &engineClient{c: c}, nil
}

func (e *engineClient) CreateEngine(ctx context.Context, req *discoveryenginepb.CreateEngineRequest) (*discoveryenginepb.Engine, error) {
	op, err := e.c.CreateEngine(ctx, req)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}

func (e *engineClient) GetEngine(ctx context.Context, req *discoveryenginepb.GetEngineRequest) (*discoveryenginepb.Engine, error) {
	return e.c.GetEngine(ctx, req)
}

func (e *engineClient) ListEngines(ctx context.Context, req *discoveryenginepb.ListEnginesRequest) (*discoveryenginepb.ListEnginesResponse, error) {
	it := e.c.ListEngines(ctx, req)
	return firstPage[*discoveryenginepb.ListEnginesResponse](it.Next, func() any { return it.Response })
}

func (e *engineClient) DeleteEngine(ctx context.Context, req *discoveryenginepb.DeleteEngineRequest) error {
	op, err := e.c.DeleteEngine(ctx, req)
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func (e *engineClient) Close() error {
	return e.c.Close()
}

type searchClient struct {
	c *discoveryengine.SearchClient
}

var _ SearchAPI = (*searchClient)(nil)

func newSearchClient(ctx context.Context, rest bool, opts ...option.ClientOption) (*searchClient, error) {
	var (
		c   *discoveryengine.SearchClient
		err error
	)
	if rest {
		c, err = discoveryengine.NewSearchRESTClient(ctx, opts...)
	} else {
		c, err = discoveryengine.NewSearchClient(ctx, opts...)
	}
	if err != nil {
		return nil, err
	}
	return &searchClient{c: c}, nil
}

func (s *searchClient) Search(ctx context.Context, req *discoveryenginepb.SearchRequest) (*discoveryenginepb.SearchResponse, error) {
	it := s.c.Search(ctx, req)
	return firstPage[*discoveryenginepb.SearchResponse](it.Next, func() any { return it.Response })
}

func (s *searchClient) Close() error {
	return s.c.Close()
}

type conversationalSearchClient struct {
	c *discoveryengine.ConversationalSearchClient
}

var _ ConversationalSearchAPI = (*conversationalSearchClient)(nil)

func newConversationalSearchClient(ctx context.Context, rest bool, opts ...option.ClientOption) (*conversationalSearchClient, error) {
	var (
		c   *discoveryengine.ConversationalSearchClient
		err error
	)
	if rest {
		c, err = discoveryengine.NewConversationalSearchRESTClient(ctx, opts...)
	} else {
		c, err = discoveryengine.NewConversationalSearchClient(ctx, opts...)
	}
	if err != nil {
		return nil, err
	}
	return &conversationalSearchClient{c: c}, nil
}

func (s *conversationalSearchClient) AnswerQuery(ctx context.Context, req *discoveryenginepb.AnswerQueryRequest) (*discoveryenginepb.AnswerQueryResponse, error) {
	return s.c.AnswerQuery(ctx, req)
}

func (s *conversationalSearchClient) Close() error {
	return s.c.Close()
}
