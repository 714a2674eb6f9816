package logical

// Relation is a leaf node referencing a named storage-backed relation. It
// is the starting point of every read plan and is replaced by a [TableScan]
// once the optimizer has obtained a scan builder from the table.
type Relation struct {
	Name  string
	Table Table
}

func (*Relation) isNode() {}

// Kind returns the operator kind of the node.
func (*Relation) Kind() NodeKind {
	return KindRelation
}

// Children returns nil; a relation is a leaf.
func (*Relation) Children() []Node {
	return nil
}

// WithChildren returns the relation unchanged; a relation is a leaf.
func (r *Relation) WithChildren(children []Node) Node {
	if len(children) != 0 {
		panic("logical: Relation expects no children")
	}
	return r
}
