package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siftql/sift/pkg/internal/types"
	"github.com/siftql/sift/pkg/engine/planner/logical"
)

func scanNode() *logical.TableScan {
	return logical.NewTableScan(nil)
}

func filterNode(input logical.Node) *logical.Filter {
	return &logical.Filter{
		Condition: &logical.BinaryExpr{
			Left:  logical.NewColumn("name"),
			Right: logical.NewLiteral("foo"),
			Op:    types.BinaryOpEq,
		},
		Input: input,
	}
}

func TestTypeOf(t *testing.T) {
	filter := filterNode(scanNode())

	captures, ok := Match(TypeOf(logical.KindFilter), filter)
	require.True(t, ok)
	require.Empty(t, captures)

	_, ok = Match(TypeOf(logical.KindSort), filter)
	require.False(t, ok)
}

func TestWithInput(t *testing.T) {
	scan := scanNode()

	t.Run("matches the single child", func(t *testing.T) {
		filter := filterNode(scan)
		pat := TypeOf(logical.KindFilter, With(Input, TypeOf(logical.KindTableScan)))
		_, ok := Match(pat, filter)
		require.True(t, ok)
	})

	t.Run("extractor yields no value for leaves", func(t *testing.T) {
		pat := TypeOf(logical.KindTableScan, With(Input, TypeOf(logical.KindTableScan)))
		_, ok := Match(pat, scan)
		require.False(t, ok)
	})

	t.Run("no match when the child has the wrong kind", func(t *testing.T) {
		// The extractor does not reach past an intermediate operator.
		tok := NewToken("inner")
		pat := TypeOf(logical.KindAggregation,
			With(Input, Capture(tok, TypeOf(logical.KindFilter))))
		agg := &logical.Aggregation{
			Aggregators: []logical.AggregateExpr{{Op: types.AggregateOpCount, Column: "name"}},
			Input:       &logical.Projection{Columns: []*logical.ColumnExpr{logical.NewColumn("name")}, Input: scan},
		}
		captures, ok := Match(pat, agg)
		require.False(t, ok)
		require.Nil(t, captures)
	})
}

func TestCaptureBindsNodeAtItsOwnLevel(t *testing.T) {
	scan := scanNode()
	filter := filterNode(scan)

	tok := NewToken("scan")
	pat := TypeOf(logical.KindFilter,
		With(Input, Capture(tok, TypeOf(logical.KindTableScan))))

	captures, ok := Match(pat, filter)
	require.True(t, ok)
	// The binding is the node the capture was tested against, not the
	// outer candidate.
	require.Same(t, scan, captures.Node(tok))
}

func TestMatchIsDeterministic(t *testing.T) {
	scan := scanNode()
	filter := filterNode(scan)

	tok := NewToken("scan")
	pat := TypeOf(logical.KindFilter,
		With(Input, Capture(tok, TypeOf(logical.KindTableScan))))

	first, ok := Match(pat, filter)
	require.True(t, ok)
	second, ok := Match(pat, filter)
	require.True(t, ok)
	require.Equal(t, first, second)
}

func TestTokenIdentity(t *testing.T) {
	// Two tokens with the same name are distinct keys.
	tok1 := NewToken("scan")
	tok2 := NewToken("scan")

	scan := scanNode()
	filter := filterNode(scan)
	pat := TypeOf(logical.KindFilter,
		With(Input, Capture(tok1, TypeOf(logical.KindTableScan))))

	captures, ok := Match(pat, filter)
	require.True(t, ok)
	require.Same(t, scan, captures.Node(tok1))
	require.Panics(t, func() { captures.Node(tok2) })
}

func TestCountCaptures(t *testing.T) {
	tok1, tok2 := NewToken("a"), NewToken("b")

	tests := []struct {
		name string
		pat  Pattern
		want int
	}{
		{
			name: "no captures",
			pat:  TypeOf(logical.KindFilter, With(Input, TypeOf(logical.KindTableScan))),
			want: 0,
		},
		{
			name: "single capture",
			pat: TypeOf(logical.KindFilter,
				With(Input, Capture(tok1, TypeOf(logical.KindTableScan)))),
			want: 1,
		},
		{
			name: "nested captures",
			pat: Capture(tok1,
				TypeOf(logical.KindFilter,
					With(Input, Capture(tok2, TypeOf(logical.KindTableScan))))),
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CountCaptures(tt.pat))
		})
	}
}
