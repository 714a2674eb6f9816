package logical

// TableScan is a leaf node carrying a storage scan builder. It replaces a
// [Relation] at the start of optimization and then accumulates the
// semantics of the operators pushed down onto it: after a successful
// push-down the absorbed operator is removed from the plan and the
// TableScan takes its place, so subsequent rules may match on it again.
type TableScan struct {
	Builder TableScanBuilder
}

// NewTableScan creates a TableScan node wrapping the given scan builder.
func NewTableScan(builder TableScanBuilder) *TableScan {
	return &TableScan{Builder: builder}
}

func (*TableScan) isNode() {}

// Kind returns the operator kind of the node.
func (*TableScan) Kind() NodeKind {
	return KindTableScan
}

// Children returns nil; a table scan is a leaf.
func (*TableScan) Children() []Node {
	return nil
}

// WithChildren returns the table scan unchanged; a table scan is a leaf.
func (s *TableScan) WithChildren(children []Node) Node {
	if len(children) != 0 {
		panic("logical: TableScan expects no children")
	}
	return s
}
