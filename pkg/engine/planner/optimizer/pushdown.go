package optimizer

import (
	"fmt"

	"github.com/siftql/sift/pkg/engine/planner/logical"
	"github.com/siftql/sift/pkg/engine/planner/pattern"
)

// pushDown is the rule template shared by all push-down rules. Every such
// rule has the same workflow: match an operator sitting directly above a
// table scan, capture the scan, and ask an operator-specific push-down
// function to absorb the operator into the scan's builder. Only the
// push-down function varies per operator kind.
type pushDown[T logical.Node] struct {
	name  string
	pat   pattern.Pattern
	token *pattern.Token
	fn    func(node T, builder logical.TableScanBuilder) bool
}

// newPushDown builds a push-down rule for the given operator kind. The
// composed pattern must contain exactly one capture (the table scan);
// violating that is a programmer error and panics at construction time
// rather than surfacing as a silent mismatch during optimization.
func newPushDown[T logical.Node](name string, kind logical.NodeKind, fn func(T, logical.TableScanBuilder) bool) Rule {
	token := pattern.NewToken("scan")
	pat := pattern.TypeOf(kind,
		pattern.With(pattern.Input,
			pattern.Capture(token, pattern.TypeOf(logical.KindTableScan))))
	return mustPushDown[T](name, pat, token, fn)
}

func mustPushDown[T logical.Node](name string, pat pattern.Pattern, token *pattern.Token, fn func(T, logical.TableScanBuilder) bool) Rule {
	if n := pattern.CountCaptures(pat); n != 1 {
		panic(fmt.Sprintf("optimizer: push-down rule %s requires exactly one capture, got %d", name, n))
	}
	return &pushDown[T]{name: name, pat: pat, token: token, fn: fn}
}

// Name implements Rule.
func (r *pushDown[T]) Name() string {
	return r.name
}

// Pattern implements Rule.
func (r *pushDown[T]) Pattern() pattern.Pattern {
	return r.pat
}

// Apply implements Rule. If the builder absorbs the operator, the captured
// table scan replaces the whole matched subtree, deleting the operator
// node; otherwise the node is returned unchanged and no state leaks from
// the attempt.
func (r *pushDown[T]) Apply(node logical.Node, captures pattern.Captures) logical.Node {
	scan := captures.Node(r.token).(*logical.TableScan)
	if r.fn(node.(T), scan.Builder) {
		return scan
	}
	return node
}

// PushDownFilter pushes a filter condition into the table scan.
func PushDownFilter() Rule {
	return newPushDown("push_down_filter", logical.KindFilter,
		func(filter *logical.Filter, builder logical.TableScanBuilder) bool {
			return builder.PushDownFilter(filter)
		})
}

// PushDownAggregation pushes a grouped aggregation into the table scan.
func PushDownAggregation() Rule {
	return newPushDown("push_down_aggregation", logical.KindAggregation,
		func(aggregation *logical.Aggregation, builder logical.TableScanBuilder) bool {
			return builder.PushDownAggregation(aggregation)
		})
}

// PushDownSort pushes a sort into the table scan.
func PushDownSort() Rule {
	return newPushDown("push_down_sort", logical.KindSort,
		func(sort *logical.Sort, builder logical.TableScanBuilder) bool {
			return builder.PushDownSort(sort)
		})
}

// PushDownLimit pushes a limit into the table scan.
func PushDownLimit() Rule {
	return newPushDown("push_down_limit", logical.KindLimit,
		func(limit *logical.Limit, builder logical.TableScanBuilder) bool {
			return builder.PushDownLimit(limit)
		})
}

// PushDownProjection pushes a column projection into the table scan.
func PushDownProjection() Rule {
	return newPushDown("push_down_projection", logical.KindProjection,
		func(projection *logical.Projection, builder logical.TableScanBuilder) bool {
			return builder.PushDownProjection(projection)
		})
}

// PushDownHighlight pushes a highlight marker into the table scan.
func PushDownHighlight() Rule {
	return newPushDown("push_down_highlight", logical.KindHighlight,
		func(highlight *logical.Highlight, builder logical.TableScanBuilder) bool {
			return builder.PushDownHighlight(highlight)
		})
}

// PushDownNested pushes nested-field accesses into the table scan.
func PushDownNested() Rule {
	return newPushDown("push_down_nested", logical.KindNested,
		func(nested *logical.Nested, builder logical.TableScanBuilder) bool {
			return builder.PushDownNested(nested)
		})
}
