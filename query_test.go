// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"errors"
	"testing"

	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestPartQuery(t *testing.T) {
	blob := &genai.Blob{Data: []byte("img"), MIMEType: "image/jpeg"}

	tests := []struct {
		name    string
		part    *genai.Part
		want    Query
		wantErr error
	}{
		{name: "text", part: genai.NewPartFromText("hello"), want: Text("hello")},
		{name: "inline image", part: &genai.Part{InlineData: blob}, want: &ImageQuery{Image: blob}},
		{name: "nil", part: nil, wantErr: ErrEmptyQuery},
		{name: "empty", part: &genai.Part{}, wantErr: ErrEmptyQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PartQuery(tt.part)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PartQuery() error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PartQuery() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchOptions(t *testing.T) {
	params := map[string]*structpb.Value{"user_country_code": structpb.NewStringValue("us")}
	spec := &discoveryenginepb.SearchRequest_ContentSearchSpec{
		SnippetSpec: &discoveryenginepb.SearchRequest_ContentSearchSpec_SnippetSpec{ReturnSnippet: true},
	}

	req := &discoveryenginepb.SearchRequest{}
	for _, opt := range []SearchOption{
		WithPageSize(5),
		WithOffset(10),
		WithOrderBy("title desc"),
		WithUserPseudoID("visitor"),
		WithParams(params),
		WithSpellCorrection(discoveryenginepb.SearchRequest_SpellCorrectionSpec_AUTO),
		WithQueryExpansion(discoveryenginepb.SearchRequest_QueryExpansionSpec_AUTO),
		WithContentSearchSpec(spec),
	} {
		opt(req)
	}

	want := &discoveryenginepb.SearchRequest{
		PageSize:            5,
		Offset:              10,
		OrderBy:             "title desc",
		UserPseudoId:        "visitor",
		Params:              params,
		SpellCorrectionSpec: &discoveryenginepb.SearchRequest_SpellCorrectionSpec{Mode: discoveryenginepb.SearchRequest_SpellCorrectionSpec_AUTO},
		QueryExpansionSpec:  &discoveryenginepb.SearchRequest_QueryExpansionSpec{Condition: discoveryenginepb.SearchRequest_QueryExpansionSpec_AUTO},
		ContentSearchSpec:   spec,
	}
	if diff := cmp.Diff(want, req, protocmp.Transform()); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestTextReplacesImage(t *testing.T) {
	req := &discoveryenginepb.SearchRequest{}
	if err := NewImageQuery([]byte("img"), "image/png").setQuery(req); err != nil {
		t.Fatal(err)
	}
	if err := Text("q").setQuery(req); err != nil {
		t.Fatal(err)
	}
	if req.GetImageQuery() != nil || req.GetQuery() != "q" {
		t.Errorf("request = %v, want text query only", req)
	}
}
