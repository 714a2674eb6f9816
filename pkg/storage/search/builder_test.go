package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/siftql/sift/pkg/internal/types"
	"github.com/siftql/sift/pkg/engine/planner/logical"
)

func compare(column string, op types.BinaryOp, value any) logical.Expression {
	return &logical.BinaryExpr{
		Left:  logical.NewColumn(column),
		Right: logical.NewLiteral(value),
		Op:    op,
	}
}

// snapshot deep-copies the accumulated request through JSON so rejected
// push-downs can be checked for leaked state.
func snapshot(t *testing.T, b *RequestBuilder) *SearchRequest {
	t.Helper()
	encoded, err := json.Marshal(b.Request())
	require.NoError(t, err)
	copied := &SearchRequest{Index: b.Request().Index}
	require.NoError(t, json.Unmarshal(encoded, copied))
	return copied
}

func requireUnchanged(t *testing.T, b *RequestBuilder, before *SearchRequest) {
	t.Helper()
	if diff := cmp.Diff(before, snapshot(t, b)); diff != "" {
		t.Fatalf("rejected push-down leaked state (-before +after):\n%s", diff)
	}
}

func TestPushDownFilter(t *testing.T) {
	t.Run("comparisons", func(t *testing.T) {
		tests := []struct {
			name      string
			condition logical.Expression
			expected  *Query
		}{
			{
				name:      "equality",
				condition: compare("name", types.BinaryOpEq, "foo"),
				expected:  &Query{Term: map[string]any{"name": "foo"}},
			},
			{
				name:      "inequality",
				condition: compare("name", types.BinaryOpNeq, "foo"),
				expected: &Query{Bool: &BoolQuery{MustNot: []*Query{
					{Term: map[string]any{"name": "foo"}},
				}}},
			},
			{
				name:      "greater than",
				condition: compare("age", types.BinaryOpGt, 30),
				expected:  &Query{Range: map[string]*RangeQuery{"age": {Gt: 30}}},
			},
			{
				name:      "less than or equal",
				condition: compare("age", types.BinaryOpLte, 30),
				expected:  &Query{Range: map[string]*RangeQuery{"age": {Lte: 30}}},
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				b := NewRequestBuilder("accounts", 0)
				require.True(t, b.PushDownFilter(&logical.Filter{Condition: tt.condition}))
				require.Equal(t, tt.expected, b.Request().Query)
			})
		}
	})

	t.Run("boolean combinations", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		condition := &logical.BinaryExpr{
			Left: compare("name", types.BinaryOpEq, "foo"),
			Right: &logical.UnaryExpr{
				Op:    types.UnaryOpNot,
				Value: compare("age", types.BinaryOpLt, 30),
			},
			Op: types.BinaryOpAnd,
		}
		require.True(t, b.PushDownFilter(&logical.Filter{Condition: condition}))
		require.Equal(t, &Query{Bool: &BoolQuery{Must: []*Query{
			{Term: map[string]any{"name": "foo"}},
			{Bool: &BoolQuery{MustNot: []*Query{
				{Range: map[string]*RangeQuery{"age": {Lt: 30}}},
			}}},
		}}}, b.Request().Query)
	})

	t.Run("successive filters are conjoined", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		require.True(t, b.PushDownFilter(&logical.Filter{Condition: compare("name", types.BinaryOpEq, "foo")}))
		require.True(t, b.PushDownFilter(&logical.Filter{Condition: compare("age", types.BinaryOpGt, 30)}))
		require.True(t, b.PushDownFilter(&logical.Filter{Condition: compare("state", types.BinaryOpEq, "active")}))

		// The third filter flattens into the existing top-level conjunction.
		query := b.Request().Query
		require.NotNil(t, query.Bool)
		require.Len(t, query.Bool.Must, 3)
	})

	t.Run("untranslatable condition is rejected without state", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		require.True(t, b.PushDownFilter(&logical.Filter{Condition: compare("name", types.BinaryOpEq, "foo")}))
		before := snapshot(t, b)

		// The left branch translates, the right branch cannot.
		condition := &logical.BinaryExpr{
			Left:  compare("age", types.BinaryOpGt, 30),
			Right: logical.NewLiteral(true),
			Op:    types.BinaryOpAnd,
		}
		require.False(t, b.PushDownFilter(&logical.Filter{Condition: condition}))
		requireUnchanged(t, b, before)
	})

	t.Run("column must be on the left", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		condition := &logical.BinaryExpr{
			Left:  logical.NewLiteral("foo"),
			Right: logical.NewColumn("name"),
			Op:    types.BinaryOpEq,
		}
		require.False(t, b.PushDownFilter(&logical.Filter{Condition: condition}))
		require.Nil(t, b.Request().Query)
	})
}

func TestPushDownAggregation(t *testing.T) {
	t.Run("grouped metrics", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		ok := b.PushDownAggregation(&logical.Aggregation{
			Aggregators: []logical.AggregateExpr{
				{Op: types.AggregateOpCount, Column: "name"},
				{Op: types.AggregateOpAvg, Column: "age", As: "avg_age"},
			},
			GroupBy: []*logical.ColumnExpr{
				logical.NewColumn("state"),
				logical.NewColumn("gender"),
			},
		})
		require.True(t, ok)
		require.Equal(t, map[string]*Aggregation{
			"state": {
				Terms: &TermsAggregation{Field: "state"},
				Aggregations: map[string]*Aggregation{
					"gender": {
						Terms: &TermsAggregation{Field: "gender"},
						Aggregations: map[string]*Aggregation{
							"count(name)": {ValueCount: &FieldAggregation{Field: "name"}},
							"avg_age":     {Avg: &FieldAggregation{Field: "age"}},
						},
					},
				},
			},
		}, b.Request().Aggregations)
	})

	t.Run("only one aggregation per scan", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		agg := &logical.Aggregation{
			Aggregators: []logical.AggregateExpr{{Op: types.AggregateOpCount, Column: "name"}},
		}
		require.True(t, b.PushDownAggregation(agg))
		before := snapshot(t, b)
		require.False(t, b.PushDownAggregation(agg))
		requireUnchanged(t, b, before)
	})

	t.Run("invalid aggregator is rejected without state", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		ok := b.PushDownAggregation(&logical.Aggregation{
			Aggregators: []logical.AggregateExpr{
				{Op: types.AggregateOpCount, Column: "name"},
				{Op: types.AggregateOpInvalid, Column: "age"},
			},
		})
		require.False(t, ok)
		require.Nil(t, b.Request().Aggregations)

		// A later valid aggregation is still accepted.
		require.True(t, b.PushDownAggregation(&logical.Aggregation{
			Aggregators: []logical.AggregateExpr{{Op: types.AggregateOpCount, Column: "name"}},
		}))
	})
}

func TestPushDownSort(t *testing.T) {
	t.Run("columns", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		ok := b.PushDownSort(&logical.Sort{Fields: []logical.SortField{
			{Expr: logical.NewColumn("age"), Order: types.SortOrderDesc},
			{Expr: logical.NewColumn("name"), Order: types.SortOrderAsc},
		}})
		require.True(t, ok)
		require.Equal(t, []SortSpec{
			{Field: "age", Order: "desc"},
			{Field: "name", Order: "asc"},
		}, b.Request().Sort)
	})

	t.Run("non-column sort key is rejected without state", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		ok := b.PushDownSort(&logical.Sort{Fields: []logical.SortField{
			{Expr: logical.NewColumn("age"), Order: types.SortOrderDesc},
			{Expr: logical.NewLiteral(1), Order: types.SortOrderAsc},
		}})
		require.False(t, ok)
		require.Empty(t, b.Request().Sort)
	})

	t.Run("rejected after aggregation", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		require.True(t, b.PushDownAggregation(&logical.Aggregation{
			Aggregators: []logical.AggregateExpr{{Op: types.AggregateOpCount, Column: "name"}},
		}))
		ok := b.PushDownSort(&logical.Sort{Fields: []logical.SortField{
			{Expr: logical.NewColumn("age"), Order: types.SortOrderDesc},
		}})
		require.False(t, ok)
		require.Empty(t, b.Request().Sort)
	})
}

func TestPushDownLimit(t *testing.T) {
	t.Run("sets the request window", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		require.True(t, b.PushDownLimit(&logical.Limit{Fetch: 10, Skip: 5}))
		require.Equal(t, 5, b.Request().From)
		require.NotNil(t, b.Request().Size)
		require.Equal(t, 10, *b.Request().Size)
	})

	t.Run("zero fetch is absorbed", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		require.True(t, b.PushDownLimit(&logical.Limit{Fetch: 0, Skip: 0}))
		require.NotNil(t, b.Request().Size)
		require.Equal(t, 0, *b.Request().Size)
	})

	t.Run("rejected beyond the max result window", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 100)
		require.False(t, b.PushDownLimit(&logical.Limit{Fetch: 60, Skip: 50}))
		require.Nil(t, b.Request().Size)
		require.Zero(t, b.Request().From)

		require.True(t, b.PushDownLimit(&logical.Limit{Fetch: 60, Skip: 40}))
	})

	t.Run("negative values are rejected", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		require.False(t, b.PushDownLimit(&logical.Limit{Fetch: -1}))
		require.False(t, b.PushDownLimit(&logical.Limit{Fetch: 10, Skip: -1}))
	})
}

func TestPushDownProjection(t *testing.T) {
	t.Run("deduplicates columns", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		require.True(t, b.PushDownProjection(&logical.Projection{Columns: []*logical.ColumnExpr{
			logical.NewColumn("name"),
			logical.NewColumn("age"),
		}}))
		require.True(t, b.PushDownProjection(&logical.Projection{Columns: []*logical.ColumnExpr{
			logical.NewColumn("age"),
			logical.NewColumn("state"),
		}}))
		require.Equal(t, []string{"name", "age", "state"}, b.Request().Source)
	})

	t.Run("empty column is rejected without state", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		ok := b.PushDownProjection(&logical.Projection{Columns: []*logical.ColumnExpr{
			logical.NewColumn("name"),
			logical.NewColumn(""),
		}})
		require.False(t, ok)
		require.Empty(t, b.Request().Source)
	})
}

func TestPushDownHighlight(t *testing.T) {
	t.Run("tags", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		ok := b.PushDownHighlight(&logical.Highlight{
			Field: "name",
			Arguments: map[string]string{
				"pre_tags":  "<em>",
				"post_tags": "</em>",
			},
		})
		require.True(t, ok)
		require.Equal(t, &HighlightSpec{Fields: map[string]*HighlightField{
			"name": {PreTags: []string{"<em>"}, PostTags: []string{"</em>"}},
		}}, b.Request().Highlight)
	})

	t.Run("unknown argument is rejected", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		ok := b.PushDownHighlight(&logical.Highlight{
			Field:     "name",
			Arguments: map[string]string{"fragment_size": "100"},
		})
		require.False(t, ok)
		require.Nil(t, b.Request().Highlight)
	})
}

func TestPushDownNested(t *testing.T) {
	t.Run("one query per distinct path", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		ok := b.PushDownNested(&logical.Nested{Fields: []logical.NestedField{
			{Field: "comments.user", Path: "comments"},
			{Field: "comments.likes", Path: "comments"},
			{Field: "message.info", Path: "message"},
		}})
		require.True(t, ok)
		require.Equal(t, &Query{Bool: &BoolQuery{Must: []*Query{
			{Nested: &NestedQuery{Path: "comments", Query: &Query{MatchAll: &MatchAllQuery{}}, InnerHits: &InnerHits{}}},
			{Nested: &NestedQuery{Path: "message", Query: &Query{MatchAll: &MatchAllQuery{}}, InnerHits: &InnerHits{}}},
		}}}, b.Request().Query)
	})

	t.Run("missing path is rejected without state", func(t *testing.T) {
		b := NewRequestBuilder("accounts", 0)
		ok := b.PushDownNested(&logical.Nested{Fields: []logical.NestedField{
			{Field: "comments.user", Path: "comments"},
			{Field: "orphan"},
		}})
		require.False(t, ok)
		require.Nil(t, b.Request().Query)
	})
}

func TestSearchRequestJSON(t *testing.T) {
	b := NewRequestBuilder("accounts", 0)
	require.True(t, b.PushDownFilter(&logical.Filter{Condition: compare("state", types.BinaryOpEq, "active")}))
	require.True(t, b.PushDownSort(&logical.Sort{Fields: []logical.SortField{
		{Expr: logical.NewColumn("age"), Order: types.SortOrderDesc},
	}}))
	require.True(t, b.PushDownLimit(&logical.Limit{Fetch: 10, Skip: 5}))
	require.True(t, b.PushDownProjection(&logical.Projection{Columns: []*logical.ColumnExpr{
		logical.NewColumn("name"),
	}}))

	encoded, err := json.Marshal(b.Request())
	require.NoError(t, err)
	require.JSONEq(t, `{
		"query": {"term": {"state": "active"}},
		"sort": [{"age": {"order": "desc"}}],
		"from": 5,
		"size": 10,
		"_source": ["name"]
	}`, string(encoded))
}
