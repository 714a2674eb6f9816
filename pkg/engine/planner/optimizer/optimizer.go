package optimizer

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/siftql/sift/pkg/engine/planner/logical"
	"github.com/siftql/sift/pkg/engine/planner/pattern"
)

// maxIterations bounds the number of full fixed-point passes over the plan.
// A single bottom-up pass settles straight push-down chains; the budget
// covers rule sets whose rewrites enable each other across passes.
const maxIterations = 3

// Optimizer applies an ordered rule list to a logical plan until no rule
// changes the plan or the iteration budget is exhausted. Nodes are visited
// bottom-up, so a rewrite below a node (such as a relation turning into a
// table scan) is visible when the node itself is offered to the rules.
//
// The optimizer never mutates the input plan: rewrites produce new parent
// nodes while unchanged subtrees are reused.
type Optimizer struct {
	logger log.Logger
	rules  []Rule
}

// New creates an Optimizer applying the given rules in order.
func New(logger log.Logger, rules ...Rule) *Optimizer {
	return &Optimizer{logger: logger, rules: rules}
}

// Default returns an Optimizer with the production rule ordering: seed
// table scans from relations, then push operators down onto them from the
// bottom of the plan upward.
func Default(logger log.Logger) *Optimizer {
	return New(logger,
		CreateTableScan(),
		PushDownFilter(),
		PushDownAggregation(),
		PushDownSort(),
		PushDownLimit(),
		PushDownProjection(),
		PushDownHighlight(),
		PushDownNested(),
	)
}

// Optimize rewrites plan by repeated rule application and returns the
// optimized plan. The input plan is left unchanged.
func (o *Optimizer) Optimize(plan logical.Node) logical.Node {
	for i := 0; i < maxIterations; i++ {
		optimized, changed := o.optimizeNode(plan)
		plan = optimized
		if !changed {
			break
		}
	}
	return plan
}

func (o *Optimizer) optimizeNode(node logical.Node) (logical.Node, bool) {
	changed := false

	// Optimize children first so rewrites below the node are visible when
	// the node itself is matched.
	if children := node.Children(); len(children) > 0 {
		newChildren := make([]logical.Node, len(children))
		childChanged := false
		for i, child := range children {
			newChild, ch := o.optimizeNode(child)
			newChildren[i] = newChild
			childChanged = childChanged || ch
		}
		if childChanged {
			node = node.WithChildren(newChildren)
			changed = true
		}
	}

	// Offer the node to every rule until none of them changes it. A rule
	// that matches but declines the rewrite returns the node unchanged and
	// does not count as progress.
	for {
		applied := false
		for _, rule := range o.rules {
			captures, ok := pattern.Match(rule.Pattern(), node)
			if !ok {
				continue
			}
			rewritten := rule.Apply(node, captures)
			if rewritten == node {
				continue
			}
			level.Debug(o.logger).Log("msg", "applied rule", "rule", rule.Name(), "node", node.Kind())
			node = rewritten
			applied, changed = true, true
		}
		if !applied {
			break
		}
	}

	return node, changed
}
