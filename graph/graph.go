// Package graph holds the mutable ontology graph and its force-directed
// simulation: nodes with physical state, typed relations, the shared springs
// (edges) behind them, the alias index, and the selection set that drives
// distance annotation.
//
// A Graph is not safe for concurrent use. Callers that tick the simulation
// from one goroutine and read it from another must serialise access, see
// package engine.
package graph

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/TFMV/ontograph/physics"
)

// neighbourSpread scales the placer's offset when a node is placed next to a
// neighbour instead of anywhere in the layout.
const neighbourSpread = 0.1

// Graph owns every node and edge of the layout.
type Graph struct {
	nodes    map[Key]*Node
	order    []*Node
	aliases  map[string]*Node
	edges    []*Edge
	selected []*Node

	params physics.Params
	placer physics.Placer
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithParams sets the physical constants.
func WithParams(p physics.Params) Option {
	return func(g *Graph) { g.params = p }
}

// WithPlacer sets how new nodes get their initial position.
func WithPlacer(p physics.Placer) Option {
	return func(g *Graph) { g.placer = p }
}

// WithRand sets the random source used by GetRandomNode and, unless
// WithPlacer is given, by the default placer.
func WithRand(rng *rand.Rand) Option {
	return func(g *Graph) { g.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) { g.logger = l }
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:   make(map[Key]*Node),
		aliases: make(map[string]*Node),
		params:  physics.DefaultParams(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.placer == nil {
		g.placer = physics.NewRandomPlacer(g.rng)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Params returns the physical constants of the graph.
func (g *Graph) Params() physics.Params {
	return g.params
}

// AddNode inserts a node. Adding an id that already exists is not an error:
// the existing node is returned unchanged. When neighbour is not nil the new
// node starts close to it.
func (g *Graph) AddNode(id, label string, neighbour *Node, typ NodeType) (*Node, error) {
	key := KeyOf(id)
	if n, ok := g.nodes[key]; ok {
		if n.ID != id {
			return nil, fmt.Errorf("%w: %q and %q", ErrKeyCollision, id, n.ID)
		}
		g.logger.Debug("node already exists, not added", "id", id)
		return n, nil
	}

	pos := g.placer.Place(uint64(key))
	if neighbour != nil {
		pos = neighbour.Pos.Add(pos.Scale(neighbourSpread))
	}

	n := newNode(id, label, typ, pos, g.params)
	g.nodes[key] = n
	g.order = append(g.order, n)

	if prev, ok := g.aliases[id]; ok && prev != n {
		g.logger.Warn("id shadows an existing alias", "id", id, "alias_of", prev.ID)
	}
	g.aliases[id] = n

	nodesGauge.Set(float64(len(g.order)))
	g.logger.Debug("added node", "id", id, "type", typ.String())

	g.UpdateDistances()
	return n, nil
}

// AddAlias makes alias resolve to the node currently named id. An alias that
// is already taken keeps its first target.
func (g *Graph) AddAlias(alias, id string) error {
	n, err := g.GetNode(id)
	if err != nil {
		return fmt.Errorf("alias %q: %w", alias, err)
	}
	if prev, ok := g.aliases[alias]; ok {
		if prev != n {
			g.logger.Debug("alias already taken", "alias", alias, "target", prev.ID)
		}
		return nil
	}
	g.aliases[alias] = n
	return nil
}

// AddEdge records a typed relation from -> to and materialises or reuses the
// spring between them.
func (g *Graph) AddEdge(from, to *Node, typ RelationType, label string) *Relation {
	return from.AddRelation(g, to, typ, label)
}

// AddEdgeByID is AddEdge with both endpoints resolved through the alias index.
func (g *Graph) AddEdgeByID(fromID, toID string, typ RelationType, label string) (*Relation, error) {
	from, err := g.GetNode(fromID)
	if err != nil {
		return nil, err
	}
	to, err := g.GetNode(toID)
	if err != nil {
		return nil, err
	}
	return g.AddEdge(from, to, typ, label), nil
}

// attachEdge gives rel a spring: none for a self relation, the existing one
// for an already linked pair, a new one otherwise.
func (g *Graph) attachEdge(rel *Relation) {
	if rel.IsSelf() {
		g.logger.Debug("self relation, no edge created", "id", rel.From.ID)
		return
	}

	if existing := g.EdgesBetween(rel.From, rel.To); len(existing) > 0 {
		rel.edge = existing[0]
		rel.edge.refs++
	} else {
		e := newEdge(rel, g.params.SpringConstant, g.params.NominalLength)
		e.refs = 1
		rel.edge = e
		g.edges = append(g.edges, e)
		edgesGauge.Set(float64(len(g.edges)))
	}

	if len(g.selected) > 0 {
		g.UpdateDistances()
	}
}

// releaseEdge drops rel's reference to its spring and removes the spring once
// no relation uses it anymore.
func (g *Graph) releaseEdge(rel *Relation) {
	e := rel.edge
	rel.edge = nil
	if e == nil {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	for i, cur := range g.edges {
		if cur == e {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			break
		}
	}
	edgesGauge.Set(float64(len(g.edges)))
	g.logger.Debug("removed unreferenced edge", "id1", e.ID1(), "id2", e.ID2())
}

// GetNode resolves id or any alias of a node.
func (g *Graph) GetNode(id string) (*Node, error) {
	n, ok := g.aliases[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return n, nil
}

// GetNodeByKey returns the node stored under key, or nil.
func (g *Graph) GetNodeByKey(key Key) *Node {
	return g.nodes[key]
}

// GetRandomNode returns a uniformly chosen node, or nil if the graph is empty.
func (g *Graph) GetRandomNode() *Node {
	if len(g.order) == 0 {
		return nil
	}
	return g.order[g.rng.Intn(len(g.order))]
}

// Nodes returns every node in insertion order. The slice must not be modified.
func (g *Graph) Nodes() []*Node {
	return g.order
}

// Edges returns every edge in creation order. The slice must not be modified.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// NodesCount returns the number of nodes.
func (g *Graph) NodesCount() int {
	return len(g.order)
}

// EdgesCount returns the number of edges.
func (g *Graph) EdgesCount() int {
	return len(g.edges)
}

// EdgesFor returns the edges touching n.
func (g *Graph) EdgesFor(n *Node) []*Edge {
	var res []*Edge
	for _, e := range g.edges {
		if e.Touches(n.ID) {
			res = append(res, e)
		}
	}
	return res
}

// EdgesBetween returns the edges joining a and b, whatever their direction.
func (g *Graph) EdgesBetween(a, b *Node) []*Edge {
	var res []*Edge
	for _, e := range g.edges {
		if e.Joins(a.ID, b.ID) {
			res = append(res, e)
		}
	}
	return res
}

// TotalKineticEnergy sums the kinetic energy computed at the last step.
func (g *Graph) TotalKineticEnergy() float64 {
	var total float64
	for _, n := range g.order {
		total += n.KineticEnergy
	}
	return total
}

// Step advances the simulation by dt: springs first so that every node reads
// edge lengths from the current positions, then nodes.
func (g *Graph) Step(dt float64) error {
	start := time.Now()

	for _, n := range g.order {
		n.resetTick()
	}
	for _, e := range g.edges {
		e.Step()
	}

	for _, n := range g.order {
		var extra physics.Vector2
		if g.params.Coulomb {
			f, err := g.CoulombRepulsionFor(n)
			if err != nil {
				stepErrors.Inc()
				return err
			}
			extra = extra.Add(f)
		}
		if g.params.Gravity {
			extra = extra.Add(g.GravityFor(n))
		}

		n.Step(dt, g.params, extra)

		if n.Pos.IsNaN() {
			stepErrors.Inc()
			return fmt.Errorf("%w: node %q", ErrNumericInstability, n.ID)
		}
	}

	ticksTotal.Inc()
	tickDuration.Observe(time.Since(start).Seconds())
	return nil
}
