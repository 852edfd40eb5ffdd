// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"fmt"
	"strings"

	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

// DataType fixes the content shape of a data store at creation time.
type DataType int

const (
	// DataTypeWebsite is content crawled from public websites.
	DataTypeWebsite DataType = iota + 1

	// DataTypeStructured is structured data without document content.
	DataTypeStructured

	// DataTypeUnstructured is documents with content.
	DataTypeUnstructured

	// DataTypeGoogleWorkspace is content indexed from Google Workspace.
	DataTypeGoogleWorkspace

	// DataTypeWebsiteAdvanced is crawled website content with advanced site search enabled.
	DataTypeWebsiteAdvanced
)

var dataTypeNames = map[DataType]string{
	DataTypeWebsite:         "WEBSITE",
	DataTypeStructured:      "STRUCTURED",
	DataTypeUnstructured:    "UNSTRUCTURED",
	DataTypeGoogleWorkspace: "GOOGLE_WORKSPACE",
	DataTypeWebsiteAdvanced: "WEBSITE_ADVANCED",
}

// String implements [fmt.Stringer].
func (t DataType) String() string {
	if s, ok := dataTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// ContentConfig returns the content config a data store of type t is created with.
func (t DataType) ContentConfig() discoveryenginepb.DataStore_ContentConfig {
	switch t {
	case DataTypeWebsite, DataTypeWebsiteAdvanced:
		return discoveryenginepb.DataStore_PUBLIC_WEBSITE
	case DataTypeStructured:
		return discoveryenginepb.DataStore_NO_CONTENT
	case DataTypeUnstructured:
		return discoveryenginepb.DataStore_CONTENT_REQUIRED
	case DataTypeGoogleWorkspace:
		return discoveryenginepb.DataStore_GOOGLE_WORKSPACE
	default:
		return discoveryenginepb.DataStore_CONTENT_CONFIG_UNSPECIFIED
	}
}

func (t DataType) valid() bool {
	_, ok := dataTypeNames[t]
	return ok
}

// advancedSiteSearch reports whether creation requests advanced site search.
func (t DataType) advancedSiteSearch() bool {
	return t == DataTypeWebsiteAdvanced
}

// ParseDataType parses a data type name such as "unstructured" or "WEBSITE_ADVANCED".
func ParseDataType(s string) (DataType, error) {
	name := normalizeEnum(s)
	for t, n := range dataTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownDataType, s)
}

type (
	// IndustryVertical is the industry vertical of a data store or app.
	IndustryVertical = discoveryenginepb.IndustryVertical

	// ReconciliationMode selects how imported documents merge with existing ones.
	ReconciliationMode = discoveryenginepb.ImportDocumentsRequest_ReconciliationMode

	// SearchTier is the pricing tier of an app.
	SearchTier = discoveryenginepb.SearchTier

	// SearchAddOn is an add-on feature of an app.
	SearchAddOn = discoveryenginepb.SearchAddOn

	// WorkspaceConfig binds a Google Workspace data store to its source.
	WorkspaceConfig = discoveryenginepb.WorkspaceConfig

	// SearchResponse is one page of search results.
	SearchResponse = discoveryenginepb.SearchResponse

	// AnswerQueryResponse is the answer to a single query.
	AnswerQueryResponse = discoveryenginepb.AnswerQueryResponse
)

const (
	IndustryVerticalGeneric        = discoveryenginepb.IndustryVertical_GENERIC
	IndustryVerticalMedia          = discoveryenginepb.IndustryVertical_MEDIA
	IndustryVerticalHealthcareFHIR = discoveryenginepb.IndustryVertical_HEALTHCARE_FHIR

	ReconciliationModeIncremental = discoveryenginepb.ImportDocumentsRequest_INCREMENTAL
	ReconciliationModeFull        = discoveryenginepb.ImportDocumentsRequest_FULL

	SearchTierStandard   = discoveryenginepb.SearchTier_SEARCH_TIER_STANDARD
	SearchTierEnterprise = discoveryenginepb.SearchTier_SEARCH_TIER_ENTERPRISE

	SearchAddOnLLM = discoveryenginepb.SearchAddOn_SEARCH_ADD_ON_LLM
)

// ParseIndustryVertical parses an industry vertical name such as "generic" or "HEALTHCARE_FHIR".
func ParseIndustryVertical(s string) (IndustryVertical, error) {
	v, ok := discoveryenginepb.IndustryVertical_value[normalizeEnum(s)]
	if !ok || v == 0 {
		return 0, fmt.Errorf("unknown industry vertical %q", s)
	}
	return IndustryVertical(v), nil
}

// ParseReconciliationMode parses "incremental" or "full".
func ParseReconciliationMode(s string) (ReconciliationMode, error) {
	v, ok := discoveryenginepb.ImportDocumentsRequest_ReconciliationMode_value[normalizeEnum(s)]
	if !ok || v == 0 {
		return 0, fmt.Errorf("unknown reconciliation mode %q", s)
	}
	return ReconciliationMode(v), nil
}

// ParseSearchTier parses "standard" or "enterprise", with or without the SEARCH_TIER_ prefix.
func ParseSearchTier(s string) (SearchTier, error) {
	name := normalizeEnum(s)
	if !strings.HasPrefix(name, "SEARCH_TIER_") {
		name = "SEARCH_TIER_" + name
	}
	v, ok := discoveryenginepb.SearchTier_value[name]
	if !ok || v == 0 {
		return 0, fmt.Errorf("unknown search tier %q", s)
	}
	return SearchTier(v), nil
}

// ParseSearchAddOn parses "llm", with or without the SEARCH_ADD_ON_ prefix.
func ParseSearchAddOn(s string) (SearchAddOn, error) {
	name := normalizeEnum(s)
	if !strings.HasPrefix(name, "SEARCH_ADD_ON_") {
		name = "SEARCH_ADD_ON_" + name
	}
	v, ok := discoveryenginepb.SearchAddOn_value[name]
	if !ok || v == 0 {
		return 0, fmt.Errorf("unknown search add-on %q", s)
	}
	return SearchAddOn(v), nil
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
}
