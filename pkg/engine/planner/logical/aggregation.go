package logical

// Aggregation represents a grouped aggregation in the logical plan. Rows
// from the input are grouped by the group-by columns and each aggregator is
// evaluated per group.
type Aggregation struct {
	Aggregators []AggregateExpr
	GroupBy     []*ColumnExpr
	Input       Node
}

func (*Aggregation) isNode() {}

// Kind returns the operator kind of the node.
func (*Aggregation) Kind() NodeKind {
	return KindAggregation
}

// Children returns the single input of the aggregation.
func (a *Aggregation) Children() []Node {
	return []Node{a.Input}
}

// WithChildren returns a copy of the aggregation with the given input.
func (a *Aggregation) WithChildren(children []Node) Node {
	if len(children) != 1 {
		panic("logical: Aggregation expects exactly one child")
	}
	return &Aggregation{Aggregators: a.Aggregators, GroupBy: a.GroupBy, Input: children[0]}
}
