// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"github.com/googleapis/gax-go/v2/callctx"
	"google.golang.org/protobuf/proto"

	"github.com/go-a2a/vertexai-search/discovery"
)

// fakeAPI implements every discovery capability in memory and records each request.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	reqs    []proto.Message
	headers []map[string][]string

	// errs maps a method name to the error it returns.
	errs map[string]error

	dataStores     map[string]*discoveryenginepb.DataStore
	dataStorePages map[string]*discoveryenginepb.ListDataStoresResponse
	enginePages    map[string]*discoveryenginepb.ListEnginesResponse
	searchPages    map[string]*discoveryenginepb.SearchResponse
	importResp     *discoveryenginepb.ImportDocumentsResponse
	purgeResp      *discoveryenginepb.PurgeDocumentsResponse
	answerResp     *discoveryenginepb.AnswerQueryResponse
}

var (
	_ discovery.DataStoreAPI            = (*fakeAPI)(nil)
	_ discovery.SiteSearchEngineAPI     = (*fakeAPI)(nil)
	_ discovery.DocumentAPI             = (*fakeAPI)(nil)
	_ discovery.EngineAPI               = (*fakeAPI)(nil)
	_ discovery.SearchAPI               = (*fakeAPI)(nil)
	_ discovery.ConversationalSearchAPI = (*fakeAPI)(nil)
)

func (f *fakeAPI) record(ctx context.Context, method string, req proto.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, method)
	f.reqs = append(f.reqs, req)
	f.headers = append(f.headers, callctx.HeadersFromContext(ctx))
	return f.errs[method]
}

func (f *fakeAPI) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// last returns the most recent request, which must be of type T.
func last[T proto.Message](t *testing.T, f *fakeAPI) T {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	var zero T
	if len(f.reqs) == 0 {
		t.Fatal("no request recorded")
		return zero
	}
	req, ok := f.reqs[len(f.reqs)-1].(T)
	if !ok {
		t.Fatalf("last request is %T, want %T", f.reqs[len(f.reqs)-1], zero)
	}
	return req
}

func (f *fakeAPI) CreateDataStore(ctx context.Context, req *discoveryenginepb.CreateDataStoreRequest) (*discoveryenginepb.DataStore, error) {
	if err := f.record(ctx, "CreateDataStore", req); err != nil {
		return nil, err
	}
	return req.GetDataStore(), nil
}

func (f *fakeAPI) GetDataStore(ctx context.Context, req *discoveryenginepb.GetDataStoreRequest) (*discoveryenginepb.DataStore, error) {
	if err := f.record(ctx, "GetDataStore", req); err != nil {
		return nil, err
	}
	if ds, ok := f.dataStores[req.GetName()]; ok {
		return ds, nil
	}
	return &discoveryenginepb.DataStore{Name: req.GetName()}, nil
}

func (f *fakeAPI) ListDataStores(ctx context.Context, req *discoveryenginepb.ListDataStoresRequest) (*discoveryenginepb.ListDataStoresResponse, error) {
	if err := f.record(ctx, "ListDataStores", req); err != nil {
		return nil, err
	}
	return f.dataStorePages[req.GetPageToken()], nil
}

func (f *fakeAPI) DeleteDataStore(ctx context.Context, req *discoveryenginepb.DeleteDataStoreRequest) error {
	return f.record(ctx, "DeleteDataStore", req)
}

func (f *fakeAPI) CreateTargetSite(ctx context.Context, req *discoveryenginepb.CreateTargetSiteRequest) (*discoveryenginepb.TargetSite, error) {
	if err := f.record(ctx, "CreateTargetSite", req); err != nil {
		return nil, err
	}
	site := proto.Clone(req.GetTargetSite()).(*discoveryenginepb.TargetSite)
	site.Name = req.GetParent() + "/targetSites/1"
	return site, nil
}

func (f *fakeAPI) ImportDocuments(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (*discoveryenginepb.ImportDocumentsResponse, error) {
	if err := f.record(ctx, "ImportDocuments", req); err != nil {
		return nil, err
	}
	if f.importResp != nil {
		return f.importResp, nil
	}
	return &discoveryenginepb.ImportDocumentsResponse{}, nil
}

func (f *fakeAPI) PurgeDocuments(ctx context.Context, req *discoveryenginepb.PurgeDocumentsRequest) (*discoveryenginepb.PurgeDocumentsResponse, error) {
	if err := f.record(ctx, "PurgeDocuments", req); err != nil {
		return nil, err
	}
	if f.purgeResp != nil {
		return f.purgeResp, nil
	}
	return &discoveryenginepb.PurgeDocumentsResponse{}, nil
}

func (f *fakeAPI) CreateEngine(ctx context.Context, req *discoveryenginepb.CreateEngineRequest) (*discoveryenginepb.Engine, error) {
	if err := f.record(ctx, "CreateEngine", req); err != nil {
		return nil, err
	}
	return req.GetEngine(), nil
}

func (f *fakeAPI) GetEngine(ctx context.Context, req *discoveryenginepb.GetEngineRequest) (*discoveryenginepb.Engine, error) {
	if err := f.record(ctx, "GetEngine", req); err != nil {
		return nil, err
	}
	return &discoveryenginepb.Engine{Name: req.GetName(), DisplayName: "Display"}, nil
}

func (f *fakeAPI) ListEngines(ctx context.Context, req *discoveryenginepb.ListEnginesRequest) (*discoveryenginepb.ListEnginesResponse, error) {
	if err := f.record(ctx, "ListEngines", req); err != nil {
		return nil, err
	}
	return f.enginePages[req.GetPageToken()], nil
}

func (f *fakeAPI) DeleteEngine(ctx context.Context, req *discoveryenginepb.DeleteEngineRequest) error {
	return f.record(ctx, "DeleteEngine", req)
}

func (f *fakeAPI) Search(ctx context.Context, req *discoveryenginepb.SearchRequest) (*discoveryenginepb.SearchResponse, error) {
	if err := f.record(ctx, "Search", req); err != nil {
		return nil, err
	}
	return f.searchPages[req.GetPageToken()], nil
}

func (f *fakeAPI) AnswerQuery(ctx context.Context, req *discoveryenginepb.AnswerQueryRequest) (*discoveryenginepb.AnswerQueryResponse, error) {
	if err := f.record(ctx, "AnswerQuery", req); err != nil {
		return nil, err
	}
	if f.answerResp != nil {
		return f.answerResp, nil
	}
	return &discoveryenginepb.AnswerQueryResponse{}, nil
}

// fakeProvider hands out the same fakeAPI for every capability.
type fakeProvider struct {
	api    *fakeAPI
	err    error
	closed bool
}

var _ discovery.Provider = (*fakeProvider)(nil)

func (p *fakeProvider) DataStores(context.Context) (discovery.DataStoreAPI, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.api, nil
}

func (p *fakeProvider) SiteSearchEngines(context.Context) (discovery.SiteSearchEngineAPI, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.api, nil
}

func (p *fakeProvider) Documents(context.Context) (discovery.DocumentAPI, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.api, nil
}

func (p *fakeProvider) Engines(context.Context) (discovery.EngineAPI, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.api, nil
}

func (p *fakeProvider) Search(context.Context) (discovery.SearchAPI, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.api, nil
}

func (p *fakeProvider) ConversationalSearch(context.Context) (discovery.ConversationalSearchAPI, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.api, nil
}

func (p *fakeProvider) Close() error {
	p.closed = true
	return nil
}

// newTestClient returns a client for project "proj1" in location "global" backed by api.
func newTestClient(t *testing.T, api *fakeAPI, opts ...ConfigOption) *Client {
	t.Helper()

	cfg, err := Init("proj1", "", opts...)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	c, err := NewClient(t.Context(), cfg, WithProvider(&fakeProvider{api: api}))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
