// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"

	"github.com/go-a2a/vertexai-search/internal/resource"
)

// DataStore is a handle to a remote data store.
//
// A handle knows its own resource name without any remote call. [DataStore.Get]
// and [DataStore.Describe] always read the current remote state.
type DataStore struct {
	client *Client
	triple resource.Triple
}

// ID returns the data store identifier.
func (d *DataStore) ID() string { return d.triple.ID }

// Project returns the project the data store lives in.
func (d *DataStore) Project() string { return d.triple.Project }

// Location returns the location the data store lives in.
func (d *DataStore) Location() string { return d.triple.Location }

// Name returns the full resource name of the data store.
func (d *DataStore) Name() string {
	return d.triple.Name(resource.KindDataStore)
}

// CollectionName returns the resource name of the collection holding the data store.
func (d *DataStore) CollectionName() string {
	return resource.CollectionName(d.triple.Project, d.triple.Location)
}

// BranchName returns the resource name of the default branch documents are imported into.
func (d *DataStore) BranchName() string {
	return resource.BranchName(d.Name())
}

// String implements [fmt.Stringer].
func (d *DataStore) String() string {
	return d.Name()
}

// DataStoreOption is a functional option for [Client.CreateDataStore].
type DataStoreOption func(*dataStoreOptions)

type dataStoreOptions struct {
	industryVertical IndustryVertical
	workspaceConfig  *WorkspaceConfig
}

// WithIndustryVertical sets the industry vertical of the data store; the default is generic.
func WithIndustryVertical(v IndustryVertical) DataStoreOption {
	return func(o *dataStoreOptions) {
		o.industryVertical = v
	}
}

// WithWorkspaceConfig binds a Google Workspace data store to its source.
func WithWorkspaceConfig(cfg *WorkspaceConfig) DataStoreOption {
	return func(o *dataStoreOptions) {
		o.workspaceConfig = cfg
	}
}

// CreateDataStore creates a search data store and waits until it exists.
//
// id is either a bare identifier or a full data store resource name.
func (c *Client) CreateDataStore(ctx context.Context, id, displayName string, dataType DataType, opts ...DataStoreOption) (*DataStore, error) {
	if !dataType.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataType, dataType)
	}

	o := dataStoreOptions{
		industryVertical: IndustryVerticalGeneric,
	}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := c.DataStore(id)
	if err != nil {
		return nil, err
	}

	c.log(ctx).InfoContext(ctx, "Creating data store",
		slog.String("name", store.Name()),
		slog.String("display_name", displayName),
		slog.String("data_type", dataType.String()),
		slog.String("industry_vertical", o.industryVertical.String()),
	)

	api, err := c.provider.DataStores(ctx)
	if err != nil {
		return nil, err
	}

	req := &discoveryenginepb.CreateDataStoreRequest{
		Parent: store.CollectionName(),
		DataStore: &discoveryenginepb.DataStore{
			Name:             store.Name(),
			DisplayName:      displayName,
			IndustryVertical: o.industryVertical,
			SolutionTypes:    []discoveryenginepb.SolutionType{discoveryenginepb.SolutionType_SOLUTION_TYPE_SEARCH},
			ContentConfig:    dataType.ContentConfig(),
			WorkspaceConfig:  o.workspaceConfig,
		},
		DataStoreId:              store.ID(),
		CreateAdvancedSiteSearch: dataType.advancedSiteSearch(),
	}
	if _, err := api.CreateDataStore(c.outgoing(ctx), req); err != nil {
		return nil, fmt.Errorf("failed to create data store %s: %w", store.Name(), err)
	}

	c.log(ctx).InfoContext(ctx, "Data store created successfully",
		slog.String("name", store.Name()),
	)

	return store, nil
}

// ImportOption is a functional option for [DataStore.ImportData].
type ImportOption func(*discoveryenginepb.ImportDocumentsRequest)

// WithReconciliationMode sets how imported documents merge with existing ones.
func WithReconciliationMode(mode ReconciliationMode) ImportOption {
	return func(req *discoveryenginepb.ImportDocumentsRequest) {
		req.ReconciliationMode = mode
	}
}

// WithAutoGenerateIDs lets the service generate document identifiers.
func WithAutoGenerateIDs(auto bool) ImportOption {
	return func(req *discoveryenginepb.ImportDocumentsRequest) {
		req.AutoGenerateIds = auto
	}
}

// WithIDField names the field of structured records holding the document identifier.
func WithIDField(field string) ImportOption {
	return func(req *discoveryenginepb.ImportDocumentsRequest) {
		req.IdField = field
	}
}

// ImportResult is the outcome of [DataStore.ImportData].
//
// Exactly one of TargetSite and Documents is set.
type ImportResult struct {
	// TargetSite is the registered crawl target of a [TargetSite] import.
	TargetSite *discoveryenginepb.TargetSite

	// Documents is the response of a document import.
	Documents *discoveryenginepb.ImportDocumentsResponse
}

// ImportData imports src into the data store and waits until the import completes.
//
// A [TargetSite] is registered with the site search engine of the data store; options
// do not apply to it. Every other source is imported into the default branch.
func (d *DataStore) ImportData(ctx context.Context, src DataSource, opts ...ImportOption) (*ImportResult, error) {
	c := d.client

	switch src := src.(type) {
	case *TargetSite:
		return d.importTargetSite(ctx, src)
	case documentSource:
		return d.importDocuments(ctx, src, opts)
	case nil:
		return nil, fmt.Errorf("failed to import data into %s: %w", d.Name(), ErrUnknownDataSource)
	default:
		c.log(ctx).ErrorContext(ctx, "Unsupported data source", slog.String("type", fmt.Sprintf("%T", src)))
		return nil, fmt.Errorf("failed to import data into %s: %T: %w", d.Name(), src, ErrUnknownDataSource)
	}
}

func (d *DataStore) importTargetSite(ctx context.Context, src *TargetSite) (*ImportResult, error) {
	c := d.client
	parent := resource.SiteSearchEngineName(d.Name())

	c.log(ctx).InfoContext(ctx, "Registering target site",
		slog.String("parent", parent),
		slog.String("uri_pattern", src.URIPattern),
	)

	api, err := c.provider.SiteSearchEngines(ctx)
	if err != nil {
		return nil, err
	}
	site, err := api.CreateTargetSite(c.outgoing(ctx), &discoveryenginepb.CreateTargetSiteRequest{
		Parent:     parent,
		TargetSite: src.proto(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create target site in %s: %w", parent, err)
	}

	c.log(ctx).InfoContext(ctx, "Target site registered successfully",
		slog.String("name", site.GetName()),
	)

	return &ImportResult{TargetSite: site}, nil
}

func (d *DataStore) importDocuments(ctx context.Context, src documentSource, opts []ImportOption) (*ImportResult, error) {
	c := d.client

	req := &discoveryenginepb.ImportDocumentsRequest{
		Parent: d.BranchName(),
	}
	for _, opt := range opts {
		opt(req)
	}
	if err := src.apply(req); err != nil {
		return nil, fmt.Errorf("failed to build import request: %w", err)
	}

	c.log(ctx).InfoContext(ctx, "Importing documents",
		slog.String("parent", req.Parent),
		slog.String("source", src.Field()),
		slog.String("reconciliation_mode", req.GetReconciliationMode().String()),
	)

	api, err := c.provider.Documents(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := api.ImportDocuments(c.outgoing(ctx), req)
	if err != nil {
		return nil, fmt.Errorf("failed to import documents into %s: %w", req.Parent, err)
	}

	c.log(ctx).InfoContext(ctx, "Documents imported successfully",
		slog.String("parent", req.Parent),
		slog.Int("error_samples", len(resp.GetErrorSamples())),
	)

	return &ImportResult{Documents: resp}, nil
}

// Purge deletes the documents selected by filter and waits until the purge completes.
//
// An empty filter selects every document. force is forwarded unchanged; without it the
// service may only report what would be deleted.
func (d *DataStore) Purge(ctx context.Context, filter string, force bool) (*discoveryenginepb.PurgeDocumentsResponse, error) {
	c := d.client
	if filter == "" {
		filter = "*"
	}

	c.log(ctx).InfoContext(ctx, "Purging documents",
		slog.String("parent", d.BranchName()),
		slog.String("filter", filter),
		slog.Bool("force", force),
	)

	api, err := c.provider.Documents(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := api.PurgeDocuments(c.outgoing(ctx), &discoveryenginepb.PurgeDocumentsRequest{
		Parent: d.BranchName(),
		Filter: filter,
		Force:  force,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to purge documents of %s: %w", d.Name(), err)
	}

	c.log(ctx).InfoContext(ctx, "Documents purged successfully",
		slog.String("parent", d.BranchName()),
		slog.Int64("purge_count", resp.GetPurgeCount()),
	)

	return resp, nil
}

// Delete deletes the data store and waits until the deletion completes.
//
// Errors returned by the service, including not found, are logged and not returned.
// Only failures to reach the service are.
func (d *DataStore) Delete(ctx context.Context) error {
	c := d.client

	c.log(ctx).InfoContext(ctx, "Deleting data store",
		slog.String("name", d.Name()),
	)

	api, err := c.provider.DataStores(ctx)
	if err != nil {
		return err
	}
	if err := api.DeleteDataStore(c.outgoing(ctx), &discoveryenginepb.DeleteDataStoreRequest{Name: d.Name()}); err != nil {
		if !isAPIError(ctx, err) {
			return fmt.Errorf("failed to delete data store %s: %w", d.Name(), err)
		}
		c.log(ctx).WarnContext(ctx, "Data store deletion failed, ignoring",
			slog.String("name", d.Name()),
			slog.String("error", err.Error()),
		)
		return nil
	}

	c.log(ctx).InfoContext(ctx, "Data store deleted successfully",
		slog.String("name", d.Name()),
	)

	return nil
}

// Get fetches the current remote description of the data store.
func (d *DataStore) Get(ctx context.Context) (*discoveryenginepb.DataStore, error) {
	c := d.client

	api, err := c.provider.DataStores(ctx)
	if err != nil {
		return nil, err
	}
	ds, err := api.GetDataStore(c.outgoing(ctx), &discoveryenginepb.GetDataStoreRequest{Name: d.Name()})
	if err != nil {
		return nil, fmt.Errorf("failed to get data store %s: %w", d.Name(), err)
	}
	return ds, nil
}

// Describe renders the current remote description of the data store as indented JSON.
func (d *DataStore) Describe(ctx context.Context) (string, error) {
	ds, err := d.Get(ctx)
	if err != nil {
		return "", err
	}
	return describe(ds)
}
