package models

import (
	"fmt"

	"github.com/TFMV/ontograph/graph"
)

// NodeFilter selects node states in FilterNodes.
type NodeFilter func(node *NodeState) bool

// EdgeFilter selects edge states in FilterEdges.
type EdgeFilter func(edge *EdgeState) bool

// FindNodeByID looks up a node state by its canonical id. Aliases are not
// part of a snapshot.
func (s *Snapshot) FindNodeByID(id string) (*NodeState, error) {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", graph.ErrNotFound, id)
}

// FindEdgesFor returns all edges touching a node
func (s *Snapshot) FindEdgesFor(nodeID string) []EdgeState {
	return s.FilterEdges(func(e *EdgeState) bool {
		return e.Source == nodeID || e.Target == nodeID
	})
}

// FindConnectedNodes returns all nodes sharing an edge with a node
func (s *Snapshot) FindConnectedNodes(nodeID string) []NodeState {
	connected := make(map[string]bool)
	for _, e := range s.Edges {
		if e.Source == nodeID {
			connected[e.Target] = true
		}
		if e.Target == nodeID {
			connected[e.Source] = true
		}
	}
	return s.FilterNodes(func(n *NodeState) bool {
		return connected[n.ID]
	})
}

// SelectedNodes returns the nodes that were selected when the snapshot was taken
func (s *Snapshot) SelectedNodes() []NodeState {
	return s.FilterNodes(func(n *NodeState) bool {
		return n.Selected
	})
}

// WithinDistance returns the nodes at most d hops away from the selection
func (s *Snapshot) WithinDistance(d int) []NodeState {
	return s.FilterNodes(func(n *NodeState) bool {
		return n.DistanceToSelected >= 0 && n.DistanceToSelected <= d
	})
}

// FilterNodes keeps snapshot order.
func (s *Snapshot) FilterNodes(filter NodeFilter) []NodeState {
	var result []NodeState
	for i := range s.Nodes {
		if filter(&s.Nodes[i]) {
			result = append(result, s.Nodes[i])
		}
	}
	return result
}

// FilterEdges keeps snapshot order.
func (s *Snapshot) FilterEdges(filter EdgeFilter) []EdgeState {
	var result []EdgeState
	for i := range s.Edges {
		if filter(&s.Edges[i]) {
			result = append(result, s.Edges[i])
		}
	}
	return result
}
