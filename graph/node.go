package graph

import (
	"fmt"

	"github.com/TFMV/ontograph/physics"
)

// Node is a graph vertex together with its simulation state.
type Node struct {
	ID    string
	Key   Key
	Label string
	Type  NodeType

	Pos           physics.Vector2
	Speed         physics.Vector2
	Mass          float64
	Damping       float64
	KineticEnergy float64

	charge    float64
	selected  bool
	relations []*Relation

	distanceToSelected int
	distanceUpdated    bool

	stepDone      bool
	renderingDone bool
}

func newNode(id, label string, typ NodeType, pos physics.Vector2, p physics.Params) *Node {
	return &Node{
		ID:                 id,
		Key:                KeyOf(id),
		Label:              label,
		Type:               typ,
		Pos:                pos,
		Mass:               p.InitialMass,
		Damping:            p.InitialDamping,
		charge:             p.InitialCharge,
		distanceToSelected: -1,
	}
}

func (n *Node) String() string {
	return n.ID
}

// Charge returns the electric charge, doubled while the node is selected.
func (n *Node) Charge() float64 {
	return n.charge
}

// IsSelected reports whether the node is in the selection set.
func (n *Node) IsSelected() bool {
	return n.selected
}

// DistanceToSelected returns the hop count to the nearest selected node,
// or -1 when nothing is selected.
func (n *Node) DistanceToSelected() int {
	return n.distanceToSelected
}

// Relations returns the outgoing relations. The slice must not be modified.
func (n *Node) Relations() []*Relation {
	return n.relations
}

// RelationsTo returns the outgoing relations pointing at to.
func (n *Node) RelationsTo(to *Node) []*Relation {
	var res []*Relation
	for _, rel := range n.relations {
		if rel.To == to {
			res = append(res, rel)
		}
	}
	return res
}

// ConnectedNodes returns the targets of the outgoing relations.
func (n *Node) ConnectedNodes() []*Node {
	res := make([]*Node, 0, len(n.relations))
	for _, rel := range n.relations {
		res = append(res, rel.To)
	}
	return res
}

// AddRelation appends a relation to to and asks g to materialise or reuse the
// edge for the pair. If the only relation already pointing at to was an
// undefined placeholder and the new one is typed, the placeholder is dropped.
func (n *Node) AddRelation(g *Graph, to *Node, typ RelationType, label string) *Relation {
	existing := n.RelationsTo(to)

	rel := &Relation{From: n, To: to, Type: typ, Label: label}
	n.relations = append(n.relations, rel)
	g.attachEdge(rel)

	if len(existing) == 1 && existing[0].Type == RelationUndefined && typ != RelationUndefined {
		g.logger.Debug("replacing undefined relation",
			"from", n.ID, "to", to.ID, "type", typ.String())
		if e := rel.edge; e != nil && e.origin == existing[0] {
			e.Label = rel.Label
			e.origin = rel
		}
		n.removeRelation(existing[0])
		g.releaseEdge(existing[0])
	}

	g.logger.Debug("added relation", "from", n.ID, "to", to.ID, "type", typ.String())
	return rel
}

func (n *Node) removeRelation(rel *Relation) {
	for i, r := range n.relations {
		if r == rel {
			n.relations = append(n.relations[:i], n.relations[i+1:]...)
			return
		}
	}
}

// SetSelected flips the selection flag, doubling the charge on select and
// halving it on deselect. It is a no-op when the flag already has that value.
func (n *Node) SetSelected(selected bool) {
	if n.selected == selected {
		return
	}
	n.selected = selected
	if selected {
		n.charge *= 2
	} else {
		n.charge /= 2
	}
}

// CoulombRepulsionWith returns the repulsion exerted on n by other.
func (n *Node) CoulombRepulsionWith(other *Node, k float64) (physics.Vector2, error) {
	if n.Pos.IsNaN() || other.Pos.IsNaN() {
		return physics.Vector2{}, fmt.Errorf("%w: coulomb between %q and %q", ErrNumericInstability, n.ID, other.ID)
	}
	return physics.Coulomb(k, n.charge, other.charge, other.Pos.Sub(n.Pos)), nil
}

// HookeAttractionWith returns the spring force of rel's edge on n.
func (n *Node) HookeAttractionWith(rel *Relation) physics.Vector2 {
	e := rel.edge
	if rel.IsSelf() || e == nil {
		return physics.Vector2{}
	}
	return physics.Hooke(e.SpringConstant, e.Length, e.NominalLength, rel.To.Pos.Sub(n.Pos))
}

// Step advances the node by dt unless it was already advanced this tick.
// extra is added to the spring forces; the graph uses it for the optional
// Coulomb and gravity terms.
func (n *Node) Step(dt float64, p physics.Params, extra physics.Vector2) {
	if n.stepDone {
		return
	}

	force := extra
	for _, rel := range n.relations {
		force = force.Add(n.HookeAttractionWith(rel))
	}

	n.Speed = n.Speed.Add(force.Scale(dt)).Scale(n.Damping)
	n.KineticEnergy = physics.KineticEnergy(n.Mass, n.Speed)

	if n.KineticEnergy > p.MinKineticEnergy {
		n.Pos = n.Pos.Add(n.Speed.Scale(dt))
	}

	n.stepDone = true
}

// MarkRendered records that a renderer drew the node this tick. It returns
// false when the node was already drawn.
func (n *Node) MarkRendered() bool {
	if n.renderingDone {
		return false
	}
	n.renderingDone = true
	return true
}

func (n *Node) resetTick() {
	n.stepDone = false
	n.renderingDone = false
}
