// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"google.golang.org/protobuf/proto"

	"github.com/go-a2a/vertexai-search/internal/resource"
	"github.com/go-a2a/vertexai-search/internal/xiter"
)

// App is a handle to a remote search app (engine).
type App struct {
	client *Client
	triple resource.Triple
}

// ID returns the app identifier.
func (a *App) ID() string { return a.triple.ID }

// Project returns the project the app lives in.
func (a *App) Project() string { return a.triple.Project }

// Location returns the location the app lives in.
func (a *App) Location() string { return a.triple.Location }

// Name returns the full engine resource name of the app.
func (a *App) Name() string {
	return a.triple.Name(resource.KindEngine)
}

// CollectionName returns the resource name of the collection holding the app.
func (a *App) CollectionName() string {
	return resource.CollectionName(a.triple.Project, a.triple.Location)
}

// ServingConfigName returns the resource name of the default serving config queries are sent to.
func (a *App) ServingConfigName() string {
	return resource.ServingConfigName(a.Name())
}

// String implements [fmt.Stringer].
func (a *App) String() string {
	return a.Name()
}

// AppOption is a functional option for [Client.CreateApp].
type AppOption func(*appOptions)

type appOptions struct {
	searchTier   SearchTier
	searchAddOns []SearchAddOn
}

// WithSearchTier sets the search tier of the app; the default is standard.
func WithSearchTier(tier SearchTier) AppOption {
	return func(o *appOptions) {
		o.searchTier = tier
	}
}

// WithSearchAddOns enables add-on features of the app.
func WithSearchAddOns(addOns ...SearchAddOn) AppOption {
	return func(o *appOptions) {
		o.searchAddOns = append(o.searchAddOns, addOns...)
	}
}

// CreateApp creates a search app serving dataStores and waits until it exists.
//
// The app inherits the industry vertical of the first data store, read from the service.
func (c *Client) CreateApp(ctx context.Context, id, displayName string, dataStores []*DataStore, opts ...AppOption) (*App, error) {
	if len(dataStores) == 0 {
		return nil, fmt.Errorf("failed to create app %q: %w", id, ErrNoDataStores)
	}
	o := appOptions{
		searchTier: SearchTierStandard,
	}
	for _, opt := range opts {
		opt(&o)
	}

	app, err := c.App(id)
	if err != nil {
		return nil, err
	}

	first, err := dataStores[0].Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read industry vertical: %w", err)
	}

	ids := make([]string, len(dataStores))
	for i, ds := range dataStores {
		ids[i] = ds.ID()
	}

	c.log(ctx).InfoContext(ctx, "Creating app",
		slog.String("name", app.Name()),
		slog.String("display_name", displayName),
		slog.Any("data_store_ids", ids),
		slog.String("industry_vertical", first.GetIndustryVertical().String()),
		slog.String("search_tier", o.searchTier.String()),
	)

	api, err := c.provider.Engines(ctx)
	if err != nil {
		return nil, err
	}

	req := &discoveryenginepb.CreateEngineRequest{
		Parent: app.CollectionName(),
		Engine: &discoveryenginepb.Engine{
			DisplayName:  displayName,
			DataStoreIds: ids,
			EngineConfig: &discoveryenginepb.Engine_SearchEngineConfig_{
				SearchEngineConfig: &discoveryenginepb.Engine_SearchEngineConfig{
					SearchTier:   o.searchTier,
					SearchAddOns: o.searchAddOns,
				},
			},
			SolutionType:     discoveryenginepb.SolutionType_SOLUTION_TYPE_SEARCH,
			IndustryVertical: first.GetIndustryVertical(),
		},
		EngineId: app.ID(),
	}
	if _, err := api.CreateEngine(c.outgoing(ctx), req); err != nil {
		return nil, fmt.Errorf("failed to create app %s: %w", app.Name(), err)
	}

	c.log(ctx).InfoContext(ctx, "App created successfully",
		slog.String("name", app.Name()),
	)

	return app, nil
}

// Search runs query against the default serving config of the app.
//
// The sequence yields one response per remote page and fetches the next page only when
// ranged further. It ends after the page without a continuation token, or after the
// first error. Ranging again runs the search again from the first page.
func (a *App) Search(ctx context.Context, query Query, opts ...SearchOption) iter.Seq2[*SearchResponse, error] {
	c := a.client

	base := &discoveryenginepb.SearchRequest{}
	for _, opt := range opts {
		opt(base)
	}
	base.ServingConfig = a.ServingConfigName()
	if query == nil {
		return xiter.Error[*SearchResponse](fmt.Errorf("failed to search %s: %w", a.Name(), ErrEmptyQuery))
	}
	if err := query.setQuery(base); err != nil {
		return xiter.Error[*SearchResponse](fmt.Errorf("failed to search %s: %w", a.Name(), err))
	}

	return xiter.Paginate(func(token string) ([]*SearchResponse, string, error) {
		api, err := c.provider.Search(ctx)
		if err != nil {
			return nil, "", err
		}

		req := proto.Clone(base).(*discoveryenginepb.SearchRequest)
		req.PageToken = token

		c.log(ctx).DebugContext(ctx, "Searching",
			slog.String("serving_config", req.ServingConfig),
			slog.Bool("image_query", req.ImageQuery != nil),
			slog.Bool("first_page", token == ""),
		)

		resp, err := api.Search(c.outgoing(ctx), req)
		if err != nil {
			return nil, "", fmt.Errorf("failed to search %s: %w", a.Name(), err)
		}
		return []*SearchResponse{resp}, resp.GetNextPageToken(), nil
	})
}

// Answer answers a text question against the default serving config of the app.
func (a *App) Answer(ctx context.Context, query string, opts ...AnswerOption) (*AnswerQueryResponse, error) {
	c := a.client
	if query == "" {
		return nil, fmt.Errorf("failed to answer with %s: %w", a.Name(), ErrEmptyQuery)
	}

	req := &discoveryenginepb.AnswerQueryRequest{}
	for _, opt := range opts {
		opt(req)
	}
	req.ServingConfig = a.ServingConfigName()
	req.Query = &discoveryenginepb.Query{
		Content: &discoveryenginepb.Query_Text{Text: query},
	}

	c.log(ctx).InfoContext(ctx, "Answering query",
		slog.String("serving_config", req.ServingConfig),
		slog.String("session", req.Session),
	)

	api, err := c.provider.ConversationalSearch(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := api.AnswerQuery(c.outgoing(ctx), req)
	if err != nil {
		return nil, fmt.Errorf("failed to answer with %s: %w", a.Name(), err)
	}
	return resp, nil
}

// Delete deletes the app and waits until the deletion completes.
//
// Errors returned by the service, including not found, are logged and not returned.
// Only failures to reach the service are.
func (a *App) Delete(ctx context.Context) error {
	c := a.client

	c.log(ctx).InfoContext(ctx, "Deleting app",
		slog.String("name", a.Name()),
	)

	api, err := c.provider.Engines(ctx)
	if err != nil {
		return err
	}
	if err := api.DeleteEngine(c.outgoing(ctx), &discoveryenginepb.DeleteEngineRequest{Name: a.Name()}); err != nil {
		if !isAPIError(ctx, err) {
			return fmt.Errorf("failed to delete app %s: %w", a.Name(), err)
		}
		c.log(ctx).WarnContext(ctx, "App deletion failed, ignoring",
			slog.String("name", a.Name()),
			slog.String("error", err.Error()),
		)
		return nil
	}

	c.log(ctx).InfoContext(ctx, "App deleted successfully",
		slog.String("name", a.Name()),
	)

	return nil
}

// Get fetches the current remote description of the app.
func (a *App) Get(ctx context.Context) (*discoveryenginepb.Engine, error) {
	c := a.client

	api, err := c.provider.Engines(ctx)
	if err != nil {
		return nil, err
	}
	e, err := api.GetEngine(c.outgoing(ctx), &discoveryenginepb.GetEngineRequest{Name: a.Name()})
	if err != nil {
		return nil, fmt.Errorf("failed to get app %s: %w", a.Name(), err)
	}
	return e, nil
}

// Describe renders the current remote description of the app as indented JSON.
func (a *App) Describe(ctx context.Context) (string, error) {
	e, err := a.Get(ctx)
	if err != nil {
		return "", err
	}
	return describe(e)
}
