package tree

import (
	"fmt"
	"io"
	"strings"
)

const (
	symEdge   = "├── "
	symLast   = "└── "
	symIndent = "│   "
	symEmpty  = "    "
)

// Printer writes a [Node] and its children as a tree structure using
// box-drawing characters, in the style of the Unix `tree` command.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the tree rooted at node to the printer's writer.
func (p *Printer) Print(node *Node) {
	fmt.Fprintln(p.w, format(node))
	p.printChildren(node.Children, "")
}

func (p *Printer) printChildren(children []*Node, prefix string) {
	for i, child := range children {
		connector, indent := symEdge, symIndent
		if i == len(children)-1 {
			connector, indent = symLast, symEmpty
		}
		fmt.Fprintln(p.w, prefix+connector+format(child))
		p.printChildren(child.Children, prefix+indent)
	}
}

// format renders the node name followed by its properties as
// `key=value` or `key=(value1, value2, ...)` pairs.
func format(node *Node) string {
	sb := &strings.Builder{}
	sb.WriteString(node.Name)
	for _, prop := range node.Properties {
		sb.WriteString(" ")
		sb.WriteString(prop.Key)
		sb.WriteString("=")
		if prop.IsMultiValue {
			sb.WriteString("(")
		}
		for i, v := range prop.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%v", v)
		}
		if prop.IsMultiValue {
			sb.WriteString(")")
		}
	}
	return sb.String()
}
