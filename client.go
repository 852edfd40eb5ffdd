// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"github.com/googleapis/gax-go/v2/callctx"

	"github.com/go-a2a/vertexai-search/discovery"
	"github.com/go-a2a/vertexai-search/internal/resource"
	"github.com/go-a2a/vertexai-search/internal/xiter"
	"github.com/go-a2a/vertexai-search/pkg/logging"
)

// Client creates and lists data stores and apps, and hands out handles to them.
//
// A Client is safe for concurrent use.
type Client struct {
	config   *Config
	provider discovery.Provider
	logger   *slog.Logger
}

// ClientOption is a functional option for configuring the [Client].
type ClientOption func(*Client)

// WithLogger sets the logger for the [Client].
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithProvider sets the provider the [Client] obtains its API clients from.
//
// By default the client builds a [discovery.Registry] from its configuration.
func WithProvider(provider discovery.Provider) ClientOption {
	return func(c *Client) {
		c.provider = provider
	}
}

// NewClient returns a [Client] for cfg.
//
// A nil cfg is allowed: handles can then only be built from full resource names,
// and listing fails with [ErrUninitialized].
func NewClient(ctx context.Context, cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	config, err := cfg.clone()
	if err != nil {
		return nil, err
	}

	c := &Client{
		config: config,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.provider == nil {
		c.provider = discovery.NewRegistry(config.settings(), discovery.WithLogger(c.logger))
	}

	c.logger.DebugContext(ctx, "Vertex AI Search client initialized",
		slog.String("project", config.Project),
		slog.String("location", config.Location),
		slog.String("endpoint", config.APIEndpoint),
	)

	return c, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	cfg := *c.config
	return cfg
}

// Close closes the API clients constructed so far.
func (c *Client) Close() error {
	return c.provider.Close()
}

// log returns the logger carried by ctx, or the client's logger.
func (c *Client) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, c.logger)
}

// outgoing attaches the configured request metadata to ctx.
func (c *Client) outgoing(ctx context.Context) context.Context {
	if kv := c.config.headers(); len(kv) > 0 {
		return callctx.SetHeaders(ctx, kv...)
	}
	return ctx
}

// DataStore returns a handle to the data store id.
//
// id is either a bare identifier, resolved against the configured project and location,
// or a full data store resource name. No remote call is made.
func (c *Client) DataStore(id string) (*DataStore, error) {
	t, err := resource.Resolve(resource.KindDataStore, id, c.config.Project, c.config.Location)
	if err != nil {
		return nil, err
	}
	return &DataStore{client: c, triple: t}, nil
}

// App returns a handle to the app id.
//
// id is either a bare identifier, resolved against the configured project and location,
// or a full engine resource name. No remote call is made.
func (c *Client) App(id string) (*App, error) {
	t, err := resource.Resolve(resource.KindEngine, id, c.config.Project, c.config.Location)
	if err != nil {
		return nil, err
	}
	return &App{client: c, triple: t}, nil
}

// ListOption is a functional option for [Client.ListDataStores] and [Client.ListApps].
type ListOption func(*listOptions)

type listOptions struct {
	pageSize int32
	filter   string
}

// WithListPageSize sets the number of resources fetched per remote page.
func WithListPageSize(n int32) ListOption {
	return func(o *listOptions) {
		o.pageSize = n
	}
}

// WithListFilter sets the server-side filter expression of the listing.
func WithListFilter(filter string) ListOption {
	return func(o *listOptions) {
		o.filter = filter
	}
}

func newListOptions(opts []ListOption) listOptions {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// collection returns the default collection of the configured project and location.
func (c *Client) collection() (string, error) {
	if !c.config.Initialized() {
		return "", ErrUninitialized
	}
	return resource.CollectionName(c.config.Project, c.config.Location), nil
}

// ListDataStores returns the data stores of the configured project and location.
//
// Pages are fetched as the sequence is ranged over; ranging again starts from the first page.
func (c *Client) ListDataStores(ctx context.Context, opts ...ListOption) iter.Seq2[*DataStore, error] {
	parent, err := c.collection()
	if err != nil {
		return xiter.Error[*DataStore](fmt.Errorf("failed to list data stores: %w", err))
	}
	o := newListOptions(opts)

	return xiter.Paginate(func(token string) ([]*DataStore, string, error) {
		api, err := c.provider.DataStores(ctx)
		if err != nil {
			return nil, "", err
		}
		resp, err := api.ListDataStores(c.outgoing(ctx), &discoveryenginepb.ListDataStoresRequest{
			Parent:    parent,
			PageSize:  o.pageSize,
			PageToken: token,
			Filter:    o.filter,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to list data stores: %w", err)
		}

		stores := make([]*DataStore, 0, len(resp.GetDataStores()))
		for _, ds := range resp.GetDataStores() {
			store, err := c.DataStore(ds.GetName())
			if err != nil {
				return nil, "", err
			}
			stores = append(stores, store)
		}
		c.log(ctx).DebugContext(ctx, "Listed data stores page",
			slog.String("parent", parent),
			slog.Int("count", len(stores)),
		)
		return stores, resp.GetNextPageToken(), nil
	})
}

// ListApps returns the apps of the configured project and location.
//
// Pages are fetched as the sequence is ranged over; ranging again starts from the first page.
func (c *Client) ListApps(ctx context.Context, opts ...ListOption) iter.Seq2[*App, error] {
	parent, err := c.collection()
	if err != nil {
		return xiter.Error[*App](fmt.Errorf("failed to list apps: %w", err))
	}
	o := newListOptions(opts)

	return xiter.Paginate(func(token string) ([]*App, string, error) {
		api, err := c.provider.Engines(ctx)
		if err != nil {
			return nil, "", err
		}
		resp, err := api.ListEngines(c.outgoing(ctx), &discoveryenginepb.ListEnginesRequest{
			Parent:    parent,
			PageSize:  o.pageSize,
			PageToken: token,
			Filter:    o.filter,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to list apps: %w", err)
		}

		apps := make([]*App, 0, len(resp.GetEngines()))
		for _, e := range resp.GetEngines() {
			app, err := c.App(e.GetName())
			if err != nil {
				return nil, "", err
			}
			apps = append(apps, app)
		}
		c.log(ctx).DebugContext(ctx, "Listed apps page",
			slog.String("parent", parent),
			slog.Int("count", len(apps)),
		)
		return apps, resp.GetNextPageToken(), nil
	})
}
