// Package pattern implements a small structural pattern-matching engine
// over logical plan nodes. A pattern describes the shape of a subtree to
// match: the operator kind of a node, a structural descent into a node's
// relevant child, and capture points that bind matched nodes under named
// tokens for retrieval after a successful match.
//
// Patterns compose by nesting. For example, "a Filter whose single input is
// a TableScan, captured under tok" is written as
//
//	pattern.TypeOf(logical.KindFilter,
//		pattern.With(pattern.Input,
//			pattern.Capture(tok, pattern.TypeOf(logical.KindTableScan))))
//
// Matching is a pure predicate plus data extraction: it never mutates the
// candidate node or any external state, and it fails fast on the first
// failing subpattern. No backtracking is needed because extractors are pure
// and every pattern is deterministic.
package pattern

import "github.com/siftql/sift/pkg/engine/planner/logical"

// Extractor derives a related node from a candidate node, such as its
// single input. It returns false if the candidate has no such node, which
// makes the enclosing [With] pattern fail as an ordinary no-match.
type Extractor func(node logical.Node) (logical.Node, bool)

// Input extracts the single child of a unary operator. It yields no value
// for leaves and for nodes with more than one child.
func Input(node logical.Node) (logical.Node, bool) {
	children := node.Children()
	if len(children) != 1 {
		return nil, false
	}
	return children[0], true
}

// Pattern describes the shape of a plan subtree to match.
type Pattern interface {
	// match tests the pattern against node, adding capture bindings to
	// captures as subpatterns succeed. Bindings added before a later
	// subpattern fails are discarded by Match along with the table.
	match(node logical.Node, captures Captures) bool
}

// Match tests pattern against node. On success it returns the table of
// capture bindings produced during the match; on failure it returns nil
// and false.
func Match(pattern Pattern, node logical.Node) (Captures, bool) {
	captures := make(Captures)
	if !pattern.match(node, captures) {
		return nil, false
	}
	return captures, true
}

// typeOf matches a node whose operator kind equals Kind, then matches each
// nested subpattern against the same node.
type typeOf struct {
	kind logical.NodeKind
	sub  []Pattern
}

// TypeOf returns a pattern matching nodes of the given operator kind. Any
// nested subpatterns are matched against the same node.
func TypeOf(kind logical.NodeKind, sub ...Pattern) Pattern {
	return &typeOf{kind: kind, sub: sub}
}

func (p *typeOf) match(node logical.Node, captures Captures) bool {
	if node == nil || node.Kind() != p.kind {
		return false
	}
	for _, sub := range p.sub {
		if !sub.match(node, captures) {
			return false
		}
	}
	return true
}

// with applies an extractor to the matched node and matches the subpattern
// against the extracted value.
type with struct {
	extract Extractor
	sub     Pattern
}

// With returns a pattern that applies extract to the candidate node and
// matches sub against the result. The match fails if the extractor yields
// no value.
func With(extract Extractor, sub Pattern) Pattern {
	return &with{extract: extract, sub: sub}
}

func (p *with) match(node logical.Node, captures Captures) bool {
	extracted, ok := p.extract(node)
	if !ok {
		return false
	}
	return p.sub.match(extracted, captures)
}

// capture binds the candidate node under a token when the subpattern
// matches.
type capture struct {
	token *Token
	sub   Pattern
}

// Capture returns a pattern that matches sub and, on success, binds the
// candidate node at this level (not the subpattern's match result) to
// token.
func Capture(token *Token, sub Pattern) Pattern {
	return &capture{token: token, sub: sub}
}

func (p *capture) match(node logical.Node, captures Captures) bool {
	if !p.sub.match(node, captures) {
		return false
	}
	captures[p.token] = node
	return true
}

// CountCaptures returns the number of capture points in the pattern. Rule
// constructors use it to validate pattern structure at construction time.
func CountCaptures(pattern Pattern) int {
	switch p := pattern.(type) {
	case *typeOf:
		n := 0
		for _, sub := range p.sub {
			n += CountCaptures(sub)
		}
		return n
	case *with:
		return CountCaptures(p.sub)
	case *capture:
		return 1 + CountCaptures(p.sub)
	default:
		return 0
	}
}
