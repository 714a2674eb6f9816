package logical

// Filter represents a filtering operation in the logical plan. The
// condition is evaluated against the rows produced by the input and only
// matching rows are passed on.
type Filter struct {
	Condition Expression
	Input     Node
}

func (*Filter) isNode() {}

// Kind returns the operator kind of the node.
func (*Filter) Kind() NodeKind {
	return KindFilter
}

// Children returns the single input of the filter.
func (f *Filter) Children() []Node {
	return []Node{f.Input}
}

// WithChildren returns a copy of the filter with the given input.
func (f *Filter) WithChildren(children []Node) Node {
	if len(children) != 1 {
		panic("logical: Filter expects exactly one child")
	}
	return &Filter{Condition: f.Condition, Input: children[0]}
}
