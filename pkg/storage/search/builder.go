package search

import (
	"slices"

	"github.com/siftql/sift/pkg/internal/types"
	"github.com/siftql/sift/pkg/engine/planner/logical"
)

// DefaultMaxResultWindow is the backend default for the largest from+size a
// search request may address. Used when a table's setting is unknown.
const DefaultMaxResultWindow = 10000

// RequestBuilder accumulates pushed-down operators into a [SearchRequest].
// It implements [logical.TableScanBuilder].
//
// Every PushDown method is all-or-nothing: the operator is first fully
// translated to DSL fragments and only then merged into the request, so a
// rejected push-down leaves the accumulated request untouched.
type RequestBuilder struct {
	request         *SearchRequest
	maxResultWindow int

	// aggregated is set once an aggregation has been absorbed. From then
	// on result order and shape are owned by the aggregation, so further
	// sort or aggregation push-downs are rejected.
	aggregated bool
}

var _ logical.TableScanBuilder = (*RequestBuilder)(nil)

// NewRequestBuilder creates a builder for the given index. maxResultWindow
// caps from+size for limit push-down; zero or negative values fall back to
// [DefaultMaxResultWindow].
func NewRequestBuilder(index string, maxResultWindow int) *RequestBuilder {
	if maxResultWindow <= 0 {
		maxResultWindow = DefaultMaxResultWindow
	}
	return &RequestBuilder{
		request:         &SearchRequest{Index: index},
		maxResultWindow: maxResultWindow,
	}
}

// Request returns the accumulated search request.
func (b *RequestBuilder) Request() *SearchRequest {
	return b.request
}

// PushDownFilter absorbs a filter whose condition translates to the query
// DSL: comparisons between a column and a literal, combined with AND, OR
// and NOT. Successive filters are conjoined.
func (b *RequestBuilder) PushDownFilter(filter *logical.Filter) bool {
	query, ok := translateQuery(filter.Condition)
	if !ok {
		return false
	}
	b.request.Query = conjoin(b.request.Query, query)
	return true
}

// PushDownAggregation absorbs a grouped aggregation built from simple
// per-column aggregators. Group-by columns become a chain of terms
// bucketing aggregations with the metrics at the innermost level. Only one
// aggregation can be absorbed per scan.
func (b *RequestBuilder) PushDownAggregation(aggregation *logical.Aggregation) bool {
	if b.aggregated || len(aggregation.Aggregators) == 0 {
		return false
	}

	metrics := make(map[string]*Aggregation, len(aggregation.Aggregators))
	for _, aggregator := range aggregation.Aggregators {
		agg, ok := translateAggregator(aggregator)
		if !ok {
			return false
		}
		metrics[aggregator.Name()] = agg
	}

	aggs := metrics
	// Wrap the metrics into terms buckets, innermost group-by first.
	for i := len(aggregation.GroupBy) - 1; i >= 0; i-- {
		column := aggregation.GroupBy[i]
		if column == nil || column.Column == "" {
			return false
		}
		aggs = map[string]*Aggregation{
			column.Column: {
				Terms:        &TermsAggregation{Field: column.Column},
				Aggregations: aggs,
			},
		}
	}

	b.request.Aggregations = aggs
	b.aggregated = true
	return true
}

// PushDownSort absorbs a sort over plain columns. Sorting is rejected after
// an aggregation has been absorbed, since bucket order is owned by the
// aggregation.
func (b *RequestBuilder) PushDownSort(sort *logical.Sort) bool {
	if b.aggregated || len(sort.Fields) == 0 {
		return false
	}
	specs := make([]SortSpec, 0, len(sort.Fields))
	for _, field := range sort.Fields {
		column, ok := field.Expr.(*logical.ColumnExpr)
		if !ok {
			return false
		}
		order, ok := sortOrderString(field.Order)
		if !ok {
			return false
		}
		specs = append(specs, SortSpec{Field: column.Column, Order: order})
	}
	b.request.Sort = append(b.request.Sort, specs...)
	return true
}

// PushDownLimit absorbs a limit as the request's from/size window. Windows
// reaching past the index's max result window are rejected and the limit
// stays in the plan.
func (b *RequestBuilder) PushDownLimit(limit *logical.Limit) bool {
	if limit.Fetch < 0 || limit.Skip < 0 {
		return false
	}
	if limit.Skip+limit.Fetch > b.maxResultWindow {
		return false
	}
	size := limit.Fetch
	b.request.From = limit.Skip
	b.request.Size = &size
	return true
}

// PushDownProjection absorbs a projection as the request's source includes.
func (b *RequestBuilder) PushDownProjection(projection *logical.Projection) bool {
	if len(projection.Columns) == 0 {
		return false
	}
	columns := make([]string, 0, len(projection.Columns))
	for _, column := range projection.Columns {
		if column == nil || column.Column == "" {
			return false
		}
		columns = append(columns, column.Column)
	}
	for _, column := range columns {
		if !slices.Contains(b.request.Source, column) {
			b.request.Source = append(b.request.Source, column)
		}
	}
	return true
}

// PushDownHighlight absorbs a highlight marker for a single field. Only the
// pre_tags and post_tags arguments are understood; any other argument
// rejects the push-down.
func (b *RequestBuilder) PushDownHighlight(highlight *logical.Highlight) bool {
	if highlight.Field == "" {
		return false
	}
	field := &HighlightField{}
	for key, value := range highlight.Arguments {
		switch key {
		case "pre_tags":
			field.PreTags = []string{value}
		case "post_tags":
			field.PostTags = []string{value}
		default:
			return false
		}
	}
	if b.request.Highlight == nil {
		b.request.Highlight = &HighlightSpec{Fields: map[string]*HighlightField{}}
	}
	b.request.Highlight.Fields[highlight.Field] = field
	return true
}

// PushDownNested absorbs nested-field accesses as nested queries with inner
// hits, one per distinct path.
func (b *RequestBuilder) PushDownNested(nested *logical.Nested) bool {
	if len(nested.Fields) == 0 {
		return false
	}
	paths := make([]string, 0, len(nested.Fields))
	for _, field := range nested.Fields {
		if field.Path == "" || field.Field == "" {
			return false
		}
		if !slices.Contains(paths, field.Path) {
			paths = append(paths, field.Path)
		}
	}
	for _, path := range paths {
		b.request.Query = conjoin(b.request.Query, &Query{
			Nested: &NestedQuery{
				Path:      path,
				Query:     &Query{MatchAll: &MatchAllQuery{}},
				InnerHits: &InnerHits{},
			},
		})
	}
	return true
}

// conjoin combines two queries with a logical AND, flattening into an
// existing top-level bool-must query where possible.
func conjoin(existing, query *Query) *Query {
	if existing == nil {
		return query
	}
	if existing.Bool != nil && len(existing.Bool.Should) == 0 && len(existing.Bool.MustNot) == 0 && len(existing.Bool.Must) > 0 {
		existing.Bool.Must = append(existing.Bool.Must, query)
		return existing
	}
	return &Query{Bool: &BoolQuery{Must: []*Query{existing, query}}}
}

// translateQuery translates a filter condition into the query DSL. It
// returns false for any expression shape the DSL cannot express, in which
// case nothing has been mutated.
func translateQuery(expr logical.Expression) (*Query, bool) {
	switch e := expr.(type) {
	case *logical.BinaryExpr:
		switch e.Op {
		case types.BinaryOpAnd:
			left, ok := translateQuery(e.Left)
			if !ok {
				return nil, false
			}
			right, ok := translateQuery(e.Right)
			if !ok {
				return nil, false
			}
			return &Query{Bool: &BoolQuery{Must: []*Query{left, right}}}, true
		case types.BinaryOpOr:
			left, ok := translateQuery(e.Left)
			if !ok {
				return nil, false
			}
			right, ok := translateQuery(e.Right)
			if !ok {
				return nil, false
			}
			return &Query{Bool: &BoolQuery{Should: []*Query{left, right}}}, true
		default:
			return translateComparison(e)
		}
	case *logical.UnaryExpr:
		if e.Op != types.UnaryOpNot {
			return nil, false
		}
		sub, ok := translateQuery(e.Value)
		if !ok {
			return nil, false
		}
		return &Query{Bool: &BoolQuery{MustNot: []*Query{sub}}}, true
	default:
		return nil, false
	}
}

// translateComparison translates a column-versus-literal comparison. The
// column must be on the left-hand side.
func translateComparison(expr *logical.BinaryExpr) (*Query, bool) {
	column, ok := expr.Left.(*logical.ColumnExpr)
	if !ok || column.Column == "" {
		return nil, false
	}
	literal, ok := expr.Right.(*logical.LiteralExpr)
	if !ok {
		return nil, false
	}

	switch expr.Op {
	case types.BinaryOpEq:
		return &Query{Term: map[string]any{column.Column: literal.Value}}, true
	case types.BinaryOpNeq:
		return &Query{Bool: &BoolQuery{MustNot: []*Query{
			{Term: map[string]any{column.Column: literal.Value}},
		}}}, true
	case types.BinaryOpGt:
		return &Query{Range: map[string]*RangeQuery{column.Column: {Gt: literal.Value}}}, true
	case types.BinaryOpGte:
		return &Query{Range: map[string]*RangeQuery{column.Column: {Gte: literal.Value}}}, true
	case types.BinaryOpLt:
		return &Query{Range: map[string]*RangeQuery{column.Column: {Lt: literal.Value}}}, true
	case types.BinaryOpLte:
		return &Query{Range: map[string]*RangeQuery{column.Column: {Lte: literal.Value}}}, true
	default:
		return nil, false
	}
}

// translateAggregator translates a single aggregator into a metric
// aggregation.
func translateAggregator(aggregator logical.AggregateExpr) (*Aggregation, bool) {
	if aggregator.Column == "" {
		return nil, false
	}
	field := &FieldAggregation{Field: aggregator.Column}
	switch aggregator.Op {
	case types.AggregateOpCount:
		return &Aggregation{ValueCount: field}, true
	case types.AggregateOpSum:
		return &Aggregation{Sum: field}, true
	case types.AggregateOpMin:
		return &Aggregation{Min: field}, true
	case types.AggregateOpMax:
		return &Aggregation{Max: field}, true
	case types.AggregateOpAvg:
		return &Aggregation{Avg: field}, true
	default:
		return nil, false
	}
}

func sortOrderString(order types.SortOrder) (string, bool) {
	switch order {
	case types.SortOrderAsc:
		return "asc", true
	case types.SortOrderDesc:
		return "desc", true
	default:
		return "", false
	}
}
