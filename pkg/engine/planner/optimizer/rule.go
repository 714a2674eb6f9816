// Package optimizer implements the rule-based logical plan optimizer. Rules
// pair a structural pattern with a transform; the optimizer offers every
// plan node to every rule's pattern and, on a match, runs the transform,
// which may replace the matched subtree with a smaller one.
//
// The central rules are the push-down rules: one per relational operator
// kind, each matching an operator directly above a table scan and asking
// the scan's builder to absorb the operator's semantics into its
// accumulated storage request. On absorption the operator node is deleted
// from the plan and the scan takes its place.
package optimizer

import (
	"github.com/siftql/sift/pkg/engine/planner/logical"
	"github.com/siftql/sift/pkg/engine/planner/pattern"
)

// Rule is the atomic unit of optimization: a pattern describing the plan
// shape the rule fires on, and a transform producing the rewritten subtree.
type Rule interface {
	// Name identifies the rule in logs and debug output.
	Name() string
	// Pattern returns the shape of subtree the rule matches.
	Pattern() pattern.Pattern
	// Apply transforms the matched node. It is only invoked after the
	// rule's pattern matched node; captures holds the bindings of that
	// match. Returning the node unchanged means the rule declined the
	// rewrite.
	Apply(node logical.Node, captures pattern.Captures) logical.Node
}
