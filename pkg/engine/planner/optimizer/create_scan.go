package optimizer

import (
	"github.com/siftql/sift/pkg/engine/planner/logical"
	"github.com/siftql/sift/pkg/engine/planner/pattern"
)

// createTableScan seeds push-down optimization: it replaces a relation leaf
// with a table scan carrying a fresh scan builder obtained from the
// relation's table. Relations whose table hands out no builder stay in the
// plan untouched.
type createTableScan struct {
	pat pattern.Pattern
}

// CreateTableScan returns the rule that rewrites relations to table scans.
func CreateTableScan() Rule {
	return &createTableScan{pat: pattern.TypeOf(logical.KindRelation)}
}

// Name implements Rule.
func (r *createTableScan) Name() string {
	return "create_table_scan"
}

// Pattern implements Rule.
func (r *createTableScan) Pattern() pattern.Pattern {
	return r.pat
}

// Apply implements Rule.
func (r *createTableScan) Apply(node logical.Node, _ pattern.Captures) logical.Node {
	relation := node.(*logical.Relation)
	if relation.Table == nil {
		return node
	}
	builder := relation.Table.CreateScanBuilder()
	if builder == nil {
		return node
	}
	return logical.NewTableScan(builder)
}
