// Package logical defines the immutable logical plan tree that is consumed
// by the optimizer. Each node represents a relational operator and exposes
// its operator kind and its ordered children. Rewrites always produce new
// nodes; a node is never mutated after construction.
package logical

import "fmt"

// NodeKind represents the operator kind of a logical plan node.
type NodeKind uint32

const (
	_ NodeKind = iota // zero-value is an invalid kind

	KindRelation
	KindFilter
	KindAggregation
	KindSort
	KindLimit
	KindProjection
	KindHighlight
	KindNested
	KindTableScan
)

// String returns the string representation of the [NodeKind].
func (k NodeKind) String() string {
	switch k {
	case KindRelation:
		return "Relation"
	case KindFilter:
		return "Filter"
	case KindAggregation:
		return "Aggregation"
	case KindSort:
		return "Sort"
	case KindLimit:
		return "Limit"
	case KindProjection:
		return "Projection"
	case KindHighlight:
		return "Highlight"
	case KindNested:
		return "Nested"
	case KindTableScan:
		return "TableScan"
	default:
		panic(fmt.Sprintf("unknown node kind %d", k))
	}
}

// Node is the common interface for all logical plan nodes.
type Node interface {
	// Kind returns the operator kind of the node.
	Kind() NodeKind
	// Children returns the ordered child nodes. Leaf nodes return nil.
	Children() []Node
	// WithChildren returns a copy of the node with the given children. It
	// panics if the number of children does not match the node's arity,
	// which is a programmer error. Leaf nodes return themselves unchanged.
	WithChildren(children []Node) Node

	isNode()
}
