package logical

// Projection narrows the set of columns produced by its input.
type Projection struct {
	Columns []*ColumnExpr
	Input   Node
}

func (*Projection) isNode() {}

// Kind returns the operator kind of the node.
func (*Projection) Kind() NodeKind {
	return KindProjection
}

// Children returns the single input of the projection.
func (p *Projection) Children() []Node {
	return []Node{p.Input}
}

// WithChildren returns a copy of the projection with the given input.
func (p *Projection) WithChildren(children []Node) Node {
	if len(children) != 1 {
		panic("logical: Projection expects exactly one child")
	}
	return &Projection{Columns: p.Columns, Input: children[0]}
}
