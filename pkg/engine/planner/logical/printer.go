package logical

import (
	"fmt"
	"strings"

	"github.com/siftql/sift/pkg/engine/planner/internal/tree"
)

// BuildTree converts a logical plan node and its children into a tree
// structure that can be used for visualization and debugging purposes.
func BuildTree(n Node) *tree.Node {
	root := toTreeNode(n)
	for _, child := range n.Children() {
		if ch := BuildTree(child); ch != nil {
			root.Children = append(root.Children, ch)
		}
	}
	return root
}

func toTreeNode(n Node) *tree.Node {
	treeNode := tree.NewNode(n.Kind().String())
	switch node := n.(type) {
	case *Relation:
		treeNode.Properties = []tree.Property{
			tree.NewProperty("name", false, node.Name),
		}
	case *Filter:
		treeNode.Properties = []tree.Property{
			tree.NewProperty("condition", false, node.Condition.String()),
		}
	case *Aggregation:
		treeNode.Properties = []tree.Property{
			tree.NewProperty("aggregators", true, toAnySlice(node.Aggregators)...),
			tree.NewProperty("group_by", true, toAnySlice(node.GroupBy)...),
		}
	case *Sort:
		fields := make([]any, len(node.Fields))
		for i, f := range node.Fields {
			fields[i] = fmt.Sprintf("%s %s", f.Expr, f.Order)
		}
		treeNode.Properties = []tree.Property{
			tree.NewProperty("fields", true, fields...),
		}
	case *Limit:
		treeNode.Properties = []tree.Property{
			tree.NewProperty("fetch", false, node.Fetch),
			tree.NewProperty("skip", false, node.Skip),
		}
	case *Projection:
		treeNode.Properties = []tree.Property{
			tree.NewProperty("columns", true, toAnySlice(node.Columns)...),
		}
	case *Highlight:
		treeNode.Properties = []tree.Property{
			tree.NewProperty("field", false, node.Field),
		}
	case *Nested:
		treeNode.Properties = []tree.Property{
			tree.NewProperty("fields", true, toAnySlice(node.Fields)...),
		}
	case *TableScan:
		treeNode.Properties = []tree.Property{
			tree.NewProperty("builder", false, fmt.Sprintf("%T", node.Builder)),
		}
	}
	return treeNode
}

func toAnySlice[T any](s []T) []any {
	ret := make([]any, len(s))
	for i := range s {
		ret[i] = s[i]
	}
	return ret
}

// PrintAsTree converts a logical plan into a human-readable tree
// representation.
func PrintAsTree(n Node) string {
	sb := &strings.Builder{}
	printer := tree.NewPrinter(sb)
	printer.Print(BuildTree(n))
	return strings.TrimRight(sb.String(), "\n")
}
