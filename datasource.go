// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"fmt"
	"time"

	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"github.com/bytedance/sonic"
	"google.golang.org/genproto/googleapis/type/date"

	"github.com/go-a2a/vertexai-search/internal/resource"
)

// DataSource describes one source of content for [DataStore.ImportData].
//
// A [TargetSite] registers a crawl target of a website data store. Every other variant
// imports documents, filling the single import request field named by Field.
type DataSource interface {
	// Field returns the name of the request field the source is sent in.
	Field() string

	isDataSource()
}

// documentSource is a [DataSource] routed to the document import path.
type documentSource interface {
	DataSource
	apply(req *discoveryenginepb.ImportDocumentsRequest) error
}

// Data schemas of [GCSSource] and [BigQuerySource].
const (
	DataSchemaDocument  = "document"
	DataSchemaCustom    = "custom"
	DataSchemaContent   = "content"
	DataSchemaCSV       = "csv"
	DataSchemaUserEvent = "user_event"
)

// TargetSite is a URI pattern crawled into a website data store.
type TargetSite struct {
	// URIPattern is the pattern, e.g. "www.example.com/docs/*".
	URIPattern string

	// Exclude removes the pattern from the crawl instead of adding it.
	Exclude bool

	// ExactMatch matches URIPattern as a single page.
	ExactMatch bool
}

var _ DataSource = (*TargetSite)(nil)

func (*TargetSite) Field() string { return "target_site" }
func (*TargetSite) isDataSource() {}

func (s *TargetSite) proto() *discoveryenginepb.TargetSite {
	typ := discoveryenginepb.TargetSite_INCLUDE
	if s.Exclude {
		typ = discoveryenginepb.TargetSite_EXCLUDE
	}
	return &discoveryenginepb.TargetSite{
		ProvidedUriPattern: s.URIPattern,
		Type:               typ,
		ExactMatch:         s.ExactMatch,
	}
}

// InlineDocument is one document sent with the import request.
type InlineDocument struct {
	// ID is the document identifier.
	ID string

	// SchemaID names the schema of the data store the document follows.
	SchemaID string

	// Data is the structured data of the document, encoded as JSON.
	Data any

	// Content is the raw content, or ContentURI points at it.
	Content    []byte
	ContentURI string
	MIMEType   string
}

func (d *InlineDocument) proto() (*discoveryenginepb.Document, error) {
	doc := &discoveryenginepb.Document{
		Id:       d.ID,
		SchemaId: d.SchemaID,
	}
	if d.Data != nil {
		data, err := sonic.MarshalString(d.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data of document %q: %w", d.ID, err)
		}
		doc.Data = &discoveryenginepb.Document_JsonData{JsonData: data}
	}
	switch {
	case d.Content != nil:
		doc.Content = &discoveryenginepb.Document_Content{
			Content:  &discoveryenginepb.Document_Content_RawBytes{RawBytes: d.Content},
			MimeType: d.MIMEType,
		}
	case d.ContentURI != "":
		doc.Content = &discoveryenginepb.Document_Content{
			Content:  &discoveryenginepb.Document_Content_Uri{Uri: d.ContentURI},
			MimeType: d.MIMEType,
		}
	}
	return doc, nil
}

// InlineSource imports documents carried in the request itself.
type InlineSource struct {
	Documents []InlineDocument
}

var _ documentSource = (*InlineSource)(nil)

func (*InlineSource) Field() string { return "inline_source" }
func (*InlineSource) isDataSource() {}

func (s *InlineSource) apply(req *discoveryenginepb.ImportDocumentsRequest) error {
	docs := make([]*discoveryenginepb.Document, 0, len(s.Documents))
	for i := range s.Documents {
		doc, err := s.Documents[i].proto()
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	req.Source = &discoveryenginepb.ImportDocumentsRequest_InlineSource_{
		InlineSource: &discoveryenginepb.ImportDocumentsRequest_InlineSource{Documents: docs},
	}
	return nil
}

// GCSSource imports files from Cloud Storage.
type GCSSource struct {
	// InputURIs are gs:// URIs, optionally ending in a wildcard.
	InputURIs []string

	// DataSchema is one of the DataSchema constants; empty means the service default.
	DataSchema string
}

var _ documentSource = (*GCSSource)(nil)

func (*GCSSource) Field() string { return "gcs_source" }
func (*GCSSource) isDataSource() {}

func (s *GCSSource) apply(req *discoveryenginepb.ImportDocumentsRequest) error {
	if len(s.InputURIs) == 0 {
		return fmt.Errorf("%s: no input URIs", s.Field())
	}
	req.Source = &discoveryenginepb.ImportDocumentsRequest_GcsSource{
		GcsSource: &discoveryenginepb.GcsSource{
			InputUris:  s.InputURIs,
			DataSchema: s.DataSchema,
		},
	}
	return nil
}

// BigQuerySource imports rows of a BigQuery table.
type BigQuerySource struct {
	ProjectID     string
	DatasetID     string
	TableID       string
	GCSStagingDir string
	DataSchema    string

	// PartitionDate restricts the import to one partition of a date-partitioned table.
	PartitionDate time.Time
}

var _ documentSource = (*BigQuerySource)(nil)

func (*BigQuerySource) Field() string { return "bigquery_source" }
func (*BigQuerySource) isDataSource() {}

func (s *BigQuerySource) apply(req *discoveryenginepb.ImportDocumentsRequest) error {
	src := &discoveryenginepb.BigQuerySource{
		ProjectId:     s.ProjectID,
		DatasetId:     s.DatasetID,
		TableId:       s.TableID,
		GcsStagingDir: s.GCSStagingDir,
		DataSchema:    s.DataSchema,
	}
	if !s.PartitionDate.IsZero() {
		y, m, d := s.PartitionDate.Date()
		src.Partition = &discoveryenginepb.BigQuerySource_PartitionDate{
			PartitionDate: &date.Date{Year: int32(y), Month: int32(m), Day: int32(d)},
		}
	}
	req.Source = &discoveryenginepb.ImportDocumentsRequest_BigquerySource{BigquerySource: src}
	return nil
}

// SpannerSource imports rows of a Cloud Spanner table.
type SpannerSource struct {
	ProjectID       string
	InstanceID      string
	DatabaseID      string
	TableID         string
	EnableDataBoost bool
}

var _ documentSource = (*SpannerSource)(nil)

func (*SpannerSource) Field() string { return "spanner_source" }
func (*SpannerSource) isDataSource() {}

func (s *SpannerSource) apply(req *discoveryenginepb.ImportDocumentsRequest) error {
	req.Source = &discoveryenginepb.ImportDocumentsRequest_SpannerSource{
		SpannerSource: &discoveryenginepb.SpannerSource{
			ProjectId:       s.ProjectID,
			InstanceId:      s.InstanceID,
			DatabaseId:      s.DatabaseID,
			TableId:         s.TableID,
			EnableDataBoost: s.EnableDataBoost,
		},
	}
	return nil
}

// FirestoreSource imports documents of a Firestore collection.
type FirestoreSource struct {
	ProjectID     string
	DatabaseID    string
	CollectionID  string
	GCSStagingDir string
}

var _ documentSource = (*FirestoreSource)(nil)

func (*FirestoreSource) Field() string { return "firestore_source" }
func (*FirestoreSource) isDataSource() {}

func (s *FirestoreSource) apply(req *discoveryenginepb.ImportDocumentsRequest) error {
	req.Source = &discoveryenginepb.ImportDocumentsRequest_FirestoreSource{
		FirestoreSource: &discoveryenginepb.FirestoreSource{
			ProjectId:     s.ProjectID,
			DatabaseId:    s.DatabaseID,
			CollectionId:  s.CollectionID,
			GcsStagingDir: s.GCSStagingDir,
		},
	}
	return nil
}

// BigtableOptions maps Bigtable column families and columns to document fields.
type BigtableOptions = discoveryenginepb.BigtableOptions

// BigtableSource imports rows of a Cloud Bigtable table.
type BigtableSource struct {
	ProjectID  string
	InstanceID string
	TableID    string
	Options    *BigtableOptions
}

var _ documentSource = (*BigtableSource)(nil)

func (*BigtableSource) Field() string { return "bigtable_source" }
func (*BigtableSource) isDataSource() {}

func (s *BigtableSource) apply(req *discoveryenginepb.ImportDocumentsRequest) error {
	req.Source = &discoveryenginepb.ImportDocumentsRequest_BigtableSource{
		BigtableSource: &discoveryenginepb.BigtableSource{
			ProjectId:       s.ProjectID,
			InstanceId:      s.InstanceID,
			TableId:         s.TableID,
			BigtableOptions: s.Options,
		},
	}
	return nil
}

// AlloyDBSource imports rows of an AlloyDB table.
type AlloyDBSource struct {
	ProjectID     string
	LocationID    string
	ClusterID     string
	DatabaseID    string
	TableID       string
	GCSStagingDir string
}

var _ documentSource = (*AlloyDBSource)(nil)

func (*AlloyDBSource) Field() string { return "alloy_db_source" }
func (*AlloyDBSource) isDataSource() {}

func (s *AlloyDBSource) apply(req *discoveryenginepb.ImportDocumentsRequest) error {
	req.Source = &discoveryenginepb.ImportDocumentsRequest_AlloyDbSource{
		AlloyDbSource: &discoveryenginepb.AlloyDbSource{
			ProjectId:     s.ProjectID,
			LocationId:    s.LocationID,
			ClusterId:     s.ClusterID,
			DatabaseId:    s.DatabaseID,
			TableId:       s.TableID,
			GcsStagingDir: s.GCSStagingDir,
		},
	}
	return nil
}

// FHIRStoreSource imports resources of a Cloud Healthcare FHIR store.
type FHIRStoreSource struct {
	// FHIRStore is the full resource name of the FHIR store.
	FHIRStore     string
	GCSStagingDir string
}

var _ documentSource = (*FHIRStoreSource)(nil)

// NewFHIRStoreSource returns a source reading the FHIR store fhirStore of dataset in project and location.
func NewFHIRStoreSource(project, location, dataset, fhirStore string) *FHIRStoreSource {
	return &FHIRStoreSource{
		FHIRStore: resource.FHIRStoreName(project, location, dataset, fhirStore),
	}
}

func (*FHIRStoreSource) Field() string { return "fhir_store_source" }
func (*FHIRStoreSource) isDataSource() {}

func (s *FHIRStoreSource) apply(req *discoveryenginepb.ImportDocumentsRequest) error {
	req.Source = &discoveryenginepb.ImportDocumentsRequest_FhirStoreSource{
		FhirStoreSource: &discoveryenginepb.FhirStoreSource{
			FhirStore:     s.FHIRStore,
			GcsStagingDir: s.GCSStagingDir,
		},
	}
	return nil
}
