package logical

// Limit restricts the number of rows produced by its input. Skip rows are
// discarded first, then at most Fetch rows are passed on.
type Limit struct {
	Fetch int
	Skip  int
	Input Node
}

func (*Limit) isNode() {}

// Kind returns the operator kind of the node.
func (*Limit) Kind() NodeKind {
	return KindLimit
}

// Children returns the single input of the limit.
func (l *Limit) Children() []Node {
	return []Node{l.Input}
}

// WithChildren returns a copy of the limit with the given input.
func (l *Limit) WithChildren(children []Node) Node {
	if len(children) != 1 {
		panic("logical: Limit expects exactly one child")
	}
	return &Limit{Fetch: l.Fetch, Skip: l.Skip, Input: children[0]}
}
