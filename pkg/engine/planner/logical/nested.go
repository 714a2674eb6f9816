package logical

// NestedField is a single nested-field access of a [Nested] node: the full
// field name and the path of the enclosing nested object.
type NestedField struct {
	Field string
	Path  string
}

func (f NestedField) String() string {
	return f.Field
}

// Nested exposes fields of nested objects in the scanned relation as
// top-level columns.
type Nested struct {
	Fields []NestedField
	Input  Node
}

func (*Nested) isNode() {}

// Kind returns the operator kind of the node.
func (*Nested) Kind() NodeKind {
	return KindNested
}

// Children returns the single input of the nested operator.
func (n *Nested) Children() []Node {
	return []Node{n.Input}
}

// WithChildren returns a copy of the nested operator with the given input.
func (n *Nested) WithChildren(children []Node) Node {
	if len(children) != 1 {
		panic("logical: Nested expects exactly one child")
	}
	return &Nested{Fields: n.Fields, Input: children[0]}
}
