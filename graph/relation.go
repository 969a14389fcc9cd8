package graph

// Relation is a directed, typed link between two nodes. Relations between
// the same pair share one physical Edge; a self relation has none.
type Relation struct {
	From  *Node
	To    *Node
	Type  RelationType
	Label string

	edge *Edge
}

// Edge returns the spring backing the relation, or nil for a self relation.
func (r *Relation) Edge() *Edge {
	return r.edge
}

// IsSelf reports whether the relation points back at its source.
func (r *Relation) IsSelf() bool {
	return r.From == r.To
}
