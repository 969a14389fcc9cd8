// Package models provides the read-only views of a graph handed to renderers,
// exporters and HTTP clients. A Snapshot is a copy: it stays valid while the
// simulation keeps ticking.
package models

import (
	"time"
)

// NodeState is the state of one node at snapshot time.
type NodeState struct {
	ID                 string  `json:"id"`
	Label              string  `json:"label"`
	Type               string  `json:"type"`
	X                  float64 `json:"x"`
	Y                  float64 `json:"y"`
	VX                 float64 `json:"vx"`
	VY                 float64 `json:"vy"`
	Mass               float64 `json:"mass"`
	Charge             float64 `json:"charge"`
	KineticEnergy      float64 `json:"kinetic_energy"`
	Selected           bool    `json:"selected"`
	DistanceToSelected int     `json:"distance_to_selected"`
}

// EdgeState is the state of one spring at snapshot time.
type EdgeState struct {
	Source         string  `json:"source"`
	Target         string  `json:"target"`
	Label          string  `json:"label"`
	Length         float64 `json:"length"`
	NominalLength  float64 `json:"nominal_length"`
	SpringConstant float64 `json:"spring_constant"`
	Relations      int     `json:"relations"`
}

// RelationState is one directed, typed relation.
type RelationState struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Snapshot is a consistent copy of a graph taken between two ticks.
type Snapshot struct {
	ID            string          `json:"id"`
	Tick          uint64          `json:"tick"`
	TakenAt       time.Time       `json:"taken_at"`
	KineticEnergy float64         `json:"kinetic_energy"`
	Nodes         []NodeState     `json:"nodes"`
	Edges         []EdgeState     `json:"edges"`
	Relations     []RelationState `json:"relations"`
}
