package logical

// Highlight marks a field of the scanned relation for match highlighting.
// Arguments carry optional highlighter settings such as pre_tags and
// post_tags.
type Highlight struct {
	Field     string
	Arguments map[string]string
	Input     Node
}

func (*Highlight) isNode() {}

// Kind returns the operator kind of the node.
func (*Highlight) Kind() NodeKind {
	return KindHighlight
}

// Children returns the single input of the highlight.
func (h *Highlight) Children() []Node {
	return []Node{h.Input}
}

// WithChildren returns a copy of the highlight with the given input.
func (h *Highlight) WithChildren(children []Node) Node {
	if len(children) != 1 {
		panic("logical: Highlight expects exactly one child")
	}
	return &Highlight{Field: h.Field, Arguments: h.Arguments, Input: children[0]}
}
