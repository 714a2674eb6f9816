package logical

import "github.com/siftql/sift/pkg/internal/types"

// SortField is a single sort key of a [Sort] node.
type SortField struct {
	Expr  Expression
	Order types.SortOrder
}

// Sort represents an ordering operation in the logical plan.
type Sort struct {
	Fields []SortField
	Input  Node
}

func (*Sort) isNode() {}

// Kind returns the operator kind of the node.
func (*Sort) Kind() NodeKind {
	return KindSort
}

// Children returns the single input of the sort.
func (s *Sort) Children() []Node {
	return []Node{s.Input}
}

// WithChildren returns a copy of the sort with the given input.
func (s *Sort) WithChildren(children []Node) Node {
	if len(children) != 1 {
		panic("logical: Sort expects exactly one child")
	}
	return &Sort{Fields: s.Fields, Input: children[0]}
}
