package graph

// Edge is the spring between an unordered pair of nodes.
type Edge struct {
	node1 *Node
	node2 *Node

	Label          string
	Length         float64
	NominalLength  float64
	SpringConstant float64

	refs int
	// origin is the relation whose label the edge carries.
	origin *Relation
}

func newEdge(rel *Relation, springConstant, nominalLength float64) *Edge {
	e := &Edge{
		node1:          rel.From,
		node2:          rel.To,
		Label:          rel.Label,
		NominalLength:  nominalLength,
		SpringConstant: springConstant,
		origin:         rel,
	}
	e.Step()
	return e
}

// ID1 returns the id of the node that created the edge.
func (e *Edge) ID1() string { return e.node1.ID }

// ID2 returns the id of the other endpoint.
func (e *Edge) ID2() string { return e.node2.ID }

// Node1 returns the first endpoint.
func (e *Edge) Node1() *Node { return e.node1 }

// Node2 returns the second endpoint.
func (e *Edge) Node2() *Node { return e.node2 }

// Other returns the endpoint opposite to n, or nil when n is not an endpoint.
func (e *Edge) Other(n *Node) *Node {
	switch n {
	case e.node1:
		return e.node2
	case e.node2:
		return e.node1
	}
	return nil
}

// Touches reports whether the node with the given id is an endpoint.
func (e *Edge) Touches(id string) bool {
	return e.node1.ID == id || e.node2.ID == id
}

// Joins reports whether the edge connects a and b, in either order.
func (e *Edge) Joins(a, b string) bool {
	return (e.node1.ID == a && e.node2.ID == b) ||
		(e.node1.ID == b && e.node2.ID == a)
}

// Refs returns the number of relations backed by the edge.
func (e *Edge) Refs() int {
	return e.refs
}

// Step refreshes Length from the current endpoint positions.
func (e *Edge) Step() {
	e.Length = e.node2.Pos.Sub(e.node1.Pos).Length()
}
