// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"encoding/base64"
	"fmt"
	"maps"

	"cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"google.golang.org/genai"
	"google.golang.org/protobuf/types/known/structpb"
)

// Query is what [App.Search] searches for: a [Text] or an [ImageQuery].
type Query interface {
	// setQuery fills exactly one of the text and image query fields of req.
	setQuery(req *discoveryenginepb.SearchRequest) error
}

// Text is a text query.
type Text string

var _ Query = Text("")

func (t Text) setQuery(req *discoveryenginepb.SearchRequest) error {
	if t == "" {
		return ErrEmptyQuery
	}
	req.Query = string(t)
	req.ImageQuery = nil
	return nil
}

// ImageQuery is an image query.
type ImageQuery struct {
	Image *genai.Blob
}

var _ Query = (*ImageQuery)(nil)

// NewImageQuery returns an image query for data of the given MIME type.
func NewImageQuery(data []byte, mimeType string) *ImageQuery {
	return &ImageQuery{Image: &genai.Blob{Data: data, MIMEType: mimeType}}
}

func (q *ImageQuery) setQuery(req *discoveryenginepb.SearchRequest) error {
	if q == nil || q.Image == nil || len(q.Image.Data) == 0 {
		return ErrEmptyQuery
	}
	req.Query = ""
	req.ImageQuery = &discoveryenginepb.SearchRequest_ImageQuery{
		Image: &discoveryenginepb.SearchRequest_ImageQuery_ImageBytes{
			ImageBytes: base64.StdEncoding.EncodeToString(q.Image.Data),
		},
	}
	return nil
}

// PartQuery converts a text or inline image part into a [Query].
func PartQuery(part *genai.Part) (Query, error) {
	switch {
	case part == nil:
		return nil, ErrEmptyQuery
	case part.Text != "":
		return Text(part.Text), nil
	case part.InlineData != nil:
		return &ImageQuery{Image: part.InlineData}, nil
	default:
		return nil, fmt.Errorf("part holds neither text nor inline data: %w", ErrEmptyQuery)
	}
}

// SearchOption is a functional option for [App.Search].
//
// Options set fields of the search request; the query, serving config and page token are
// always set by [App.Search] itself.
type SearchOption func(*discoveryenginepb.SearchRequest)

// WithPageSize sets the number of results per page.
func WithPageSize(n int32) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.PageSize = n
	}
}

// WithOffset skips the first n results.
func WithOffset(n int32) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.Offset = n
	}
}

// WithFilter restricts the results with a filter expression.
func WithFilter(filter string) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.Filter = filter
	}
}

// WithOrderBy orders the results, e.g. "title desc".
func WithOrderBy(orderBy string) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.OrderBy = orderBy
	}
}

// WithUserPseudoID identifies the visitor issuing the search.
func WithUserPseudoID(id string) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.UserPseudoId = id
	}
}

// WithParams sets additional search parameters such as "user_country_code".
func WithParams(params map[string]*structpb.Value) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		if req.Params == nil {
			req.Params = make(map[string]*structpb.Value, len(params))
		}
		maps.Copy(req.Params, params)
	}
}

// WithSpellCorrection sets the spell correction mode.
func WithSpellCorrection(mode discoveryenginepb.SearchRequest_SpellCorrectionSpec_Mode) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.SpellCorrectionSpec = &discoveryenginepb.SearchRequest_SpellCorrectionSpec{Mode: mode}
	}
}

// WithQueryExpansion sets when the query is expanded to increase recall.
func WithQueryExpansion(condition discoveryenginepb.SearchRequest_QueryExpansionSpec_Condition) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.QueryExpansionSpec = &discoveryenginepb.SearchRequest_QueryExpansionSpec{Condition: condition}
	}
}

// WithContentSearchSpec configures snippets, extractive content and summaries.
func WithContentSearchSpec(spec *discoveryenginepb.SearchRequest_ContentSearchSpec) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.ContentSearchSpec = spec
	}
}

// WithSearchRequest modifies the search request directly.
func WithSearchRequest(fn func(*discoveryenginepb.SearchRequest)) SearchOption {
	return SearchOption(fn)
}

// AnswerOption is a functional option for [App.Answer].
type AnswerOption func(*discoveryenginepb.AnswerQueryRequest)

// WithSession continues the conversation of a session resource name.
func WithSession(session string) AnswerOption {
	return func(req *discoveryenginepb.AnswerQueryRequest) {
		req.Session = session
	}
}

// WithAnswerUserPseudoID identifies the visitor asking the question.
func WithAnswerUserPseudoID(id string) AnswerOption {
	return func(req *discoveryenginepb.AnswerQueryRequest) {
		req.UserPseudoId = id
	}
}

// WithAnswerGenerationSpec configures how the answer is generated.
func WithAnswerGenerationSpec(spec *discoveryenginepb.AnswerQueryRequest_AnswerGenerationSpec) AnswerOption {
	return func(req *discoveryenginepb.AnswerQueryRequest) {
		req.AnswerGenerationSpec = spec
	}
}

// WithAnswerSearchSpec configures the search the answer is grounded on.
func WithAnswerSearchSpec(spec *discoveryenginepb.AnswerQueryRequest_SearchSpec) AnswerOption {
	return func(req *discoveryenginepb.AnswerQueryRequest) {
		req.SearchSpec = spec
	}
}

// WithAnswerRequest modifies the answer request directly.
func WithAnswerRequest(fn func(*discoveryenginepb.AnswerQueryRequest)) AnswerOption {
	return AnswerOption(fn)
}
