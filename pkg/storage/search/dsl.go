package search

import encjson "encoding/json"

// Query is a node of the backend's JSON query DSL. Exactly one member is
// set per query node.
type Query struct {
	MatchAll *MatchAllQuery         `json:"match_all,omitempty"`
	Term     map[string]any         `json:"term,omitempty"`
	Range    map[string]*RangeQuery `json:"range,omitempty"`
	Bool     *BoolQuery             `json:"bool,omitempty"`
	Nested   *NestedQuery           `json:"nested,omitempty"`
}

// MatchAllQuery matches every document.
type MatchAllQuery struct{}

// RangeQuery constrains a field to a half-open or closed interval.
type RangeQuery struct {
	Gt  any `json:"gt,omitempty"`
	Gte any `json:"gte,omitempty"`
	Lt  any `json:"lt,omitempty"`
	Lte any `json:"lte,omitempty"`
}

// BoolQuery combines queries with boolean logic.
type BoolQuery struct {
	Must    []*Query `json:"must,omitempty"`
	Should  []*Query `json:"should,omitempty"`
	MustNot []*Query `json:"must_not,omitempty"`
}

// NestedQuery matches documents by a query against a nested object path.
// InnerHits asks the backend to return the matching nested documents.
type NestedQuery struct {
	Path      string     `json:"path"`
	Query     *Query     `json:"query"`
	InnerHits *InnerHits `json:"inner_hits,omitempty"`
}

// InnerHits configures nested hit extraction. The zero value requests the
// backend defaults.
type InnerHits struct{}

// SortSpec is a single sort key of a search request. It marshals to the
// backend's `{"field": {"order": "asc"}}` form.
type SortSpec struct {
	Field string
	Order string
}

// MarshalJSON implements json.Marshaler.
func (s SortSpec) MarshalJSON() ([]byte, error) {
	return encjson.Marshal(map[string]map[string]string{
		s.Field: {"order": s.Order},
	})
}

// HighlightField holds per-field highlighter settings.
type HighlightField struct {
	PreTags  []string `json:"pre_tags,omitempty"`
	PostTags []string `json:"post_tags,omitempty"`
}

// HighlightSpec is the highlight block of a search request.
type HighlightSpec struct {
	Fields map[string]*HighlightField `json:"fields"`
}

// TermsAggregation buckets documents by the distinct values of a field.
type TermsAggregation struct {
	Field string `json:"field"`
}

// FieldAggregation computes a single metric over a field.
type FieldAggregation struct {
	Field string `json:"field"`
}

// Aggregation is a node of the backend's aggregation DSL. Exactly one
// metric or bucketing member is set; bucketing nodes may carry
// sub-aggregations.
type Aggregation struct {
	Terms      *TermsAggregation `json:"terms,omitempty"`
	ValueCount *FieldAggregation `json:"value_count,omitempty"`
	Sum        *FieldAggregation `json:"sum,omitempty"`
	Min        *FieldAggregation `json:"min,omitempty"`
	Max        *FieldAggregation `json:"max,omitempty"`
	Avg        *FieldAggregation `json:"avg,omitempty"`

	Aggregations map[string]*Aggregation `json:"aggs,omitempty"`
}

// SearchRequest is the accumulated storage-native read request built by the
// [RequestBuilder]. Index names the target index and is carried in the
// request path rather than the body.
type SearchRequest struct {
	Index string `json:"-"`

	Query        *Query                  `json:"query,omitempty"`
	Sort         []SortSpec              `json:"sort,omitempty"`
	From         int                     `json:"from,omitempty"`
	Size         *int                    `json:"size,omitempty"`
	Source       []string                `json:"_source,omitempty"`
	Highlight    *HighlightSpec          `json:"highlight,omitempty"`
	Aggregations map[string]*Aggregation `json:"aggs,omitempty"`
}

// SearchHit is a single document returned by a search.
type SearchHit struct {
	Index     string              `json:"_index"`
	ID        string              `json:"_id"`
	Score     float64             `json:"_score"`
	Source    encjson.RawMessage  `json:"_source"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// SearchResponse is the backend's response to a search request.
type SearchResponse struct {
	ScrollID string `json:"_scroll_id,omitempty"`
	Took     int    `json:"took"`
	TimedOut bool   `json:"timed_out"`
	Hits     struct {
		Total struct {
			Value    int64  `json:"value"`
			Relation string `json:"relation"`
		} `json:"total"`
		Hits []SearchHit `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]encjson.RawMessage `json:"aggregations,omitempty"`
}
