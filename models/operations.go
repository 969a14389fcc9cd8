package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/TFMV/ontograph/graph"
)

// NewSnapshot creates an empty snapshot with a unique ID and timestamp.
func NewSnapshot(tick uint64) *Snapshot {
	return &Snapshot{
		ID:        uuid.New().String(),
		Tick:      tick,
		TakenAt:   time.Now(),
		Nodes:     []NodeState{},
		Edges:     []EdgeState{},
		Relations: []RelationState{},
	}
}

// FromGraph copies the current state of g. The caller must make sure g is
// not stepped or mutated while the copy is taken.
func FromGraph(g *graph.Graph, tick uint64) *Snapshot {
	s := NewSnapshot(tick)
	s.KineticEnergy = g.TotalKineticEnergy()

	for _, n := range g.Nodes() {
		s.Nodes = append(s.Nodes, NewNodeState(n))
		for _, rel := range n.Relations() {
			s.Relations = append(s.Relations, RelationState{
				From:  rel.From.ID,
				To:    rel.To.ID,
				Type:  rel.Type.String(),
				Label: rel.Label,
			})
		}
	}

	for _, e := range g.Edges() {
		s.Edges = append(s.Edges, NewEdgeState(e))
	}

	return s
}

// NewNodeState copies the readable state of n.
func NewNodeState(n *graph.Node) NodeState {
	return NodeState{
		ID:                 n.ID,
		Label:              n.Label,
		Type:               n.Type.String(),
		X:                  n.Pos.X,
		Y:                  n.Pos.Y,
		VX:                 n.Speed.X,
		VY:                 n.Speed.Y,
		Mass:               n.Mass,
		Charge:             n.Charge(),
		KineticEnergy:      n.KineticEnergy,
		Selected:           n.IsSelected(),
		DistanceToSelected: n.DistanceToSelected(),
	}
}

// NewEdgeState copies the readable state of e.
func NewEdgeState(e *graph.Edge) EdgeState {
	return EdgeState{
		Source:         e.ID1(),
		Target:         e.ID2(),
		Label:          e.Label,
		Length:         e.Length,
		NominalLength:  e.NominalLength,
		SpringConstant: e.SpringConstant,
		Relations:      e.Refs(),
	}
}
