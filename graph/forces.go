package graph

import "github.com/TFMV/ontograph/physics"

// CoulombRepulsionFor sums the repulsion of every other node on n.
func (g *Graph) CoulombRepulsionFor(n *Node) (physics.Vector2, error) {
	var force physics.Vector2
	for _, m := range g.order {
		if m == n {
			continue
		}
		f, err := n.CoulombRepulsionWith(m, g.params.CoulombConstant)
		if err != nil {
			return physics.Vector2{}, err
		}
		force = force.Add(f)
	}
	return force, nil
}

// CoulombRepulsionAt returns the repulsion a node with the initial charge
// would feel at pos.
func (g *Graph) CoulombRepulsionAt(pos physics.Vector2) physics.Vector2 {
	var force physics.Vector2
	for _, m := range g.order {
		force = force.Add(physics.Coulomb(g.params.CoulombConstant, m.charge, g.params.InitialCharge, m.Pos.Sub(pos)))
	}
	return force
}

// HookeAttractionFor sums the spring forces of every edge touching n.
func (g *Graph) HookeAttractionFor(n *Node) physics.Vector2 {
	var force physics.Vector2
	for _, e := range g.EdgesFor(n) {
		other := e.Other(n)
		force = force.Add(physics.Hooke(e.SpringConstant, e.Length, e.NominalLength, other.Pos.Sub(n.Pos)))
	}
	return force
}

// GravityFor returns the gravity term for n.
func (g *Graph) GravityFor(n *Node) physics.Vector2 {
	return physics.Gravity(g.params.GravityConstant, n.Mass, n.Pos)
}
