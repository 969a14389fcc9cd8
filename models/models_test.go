package models

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/ontograph/graph"
	"github.com/TFMV/ontograph/physics"
)

func buildGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(
		graph.WithRand(rand.New(rand.NewSource(7))),
		graph.WithPlacer(physics.NewNoisePlacer(7)),
		graph.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	for _, id := range []string{"animal", "dog", "rex"} {
		_, err := g.AddNode(id, id, nil, graph.NodeClass)
		require.NoError(t, err)
	}
	_, err := g.AddEdgeByID("dog", "animal", graph.RelationSubclass, "subClassOf")
	require.NoError(t, err)
	_, err = g.AddEdgeByID("rex", "dog", graph.RelationInstance, "type")
	require.NoError(t, err)
	_, err = g.AddEdgeByID("dog", "rex", graph.RelationProperty, "owns")
	require.NoError(t, err)
	return g
}

func TestFromGraph(t *testing.T) {
	g := buildGraph(t)
	dog, err := g.GetNode("dog")
	require.NoError(t, err)
	g.Select(dog)

	s := FromGraph(g, 12)

	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.Equal(t, uint64(12), s.Tick)
	assert.False(t, s.TakenAt.IsZero())

	require.Len(t, s.Nodes, 3)
	assert.Equal(t, []string{"animal", "dog", "rex"}, []string{s.Nodes[0].ID, s.Nodes[1].ID, s.Nodes[2].ID})
	require.Len(t, s.Edges, 2)
	assert.Len(t, s.Relations, 3)

	assert.Equal(t, "dog", s.Edges[0].Source)
	assert.Equal(t, "animal", s.Edges[0].Target)
	assert.Equal(t, 1, s.Edges[0].Relations)
	assert.Equal(t, 2, s.Edges[1].Relations)

	node, err := s.FindNodeByID("dog")
	require.NoError(t, err)
	assert.True(t, node.Selected)
	assert.Equal(t, 0, node.DistanceToSelected)
	assert.Equal(t, 2*g.Params().InitialCharge, node.Charge)
	assert.Equal(t, "class", node.Type)
	assert.Equal(t, dog.Pos.X, node.X)
	assert.Equal(t, dog.Pos.Y, node.Y)
}

func TestSnapshotIsACopy(t *testing.T) {
	g := buildGraph(t)
	s := FromGraph(g, 0)
	before := s.Nodes[0]

	g.Nodes()[0].Pos = physics.Vec(1e6, 1e6)
	assert.Equal(t, before, s.Nodes[0])
}

func TestEmptySnapshot(t *testing.T) {
	s := NewSnapshot(0)
	assert.NotNil(t, s.Nodes)
	assert.NotNil(t, s.Edges)
	assert.NotNil(t, s.Relations)
	assert.NotEqual(t, s.ID, NewSnapshot(0).ID)
}

func TestQueries(t *testing.T) {
	g := buildGraph(t)
	animal, err := g.GetNode("animal")
	require.NoError(t, err)
	g.Select(animal)
	s := FromGraph(g, 1)

	_, err = s.FindNodeByID("cat")
	assert.ErrorIs(t, err, graph.ErrNotFound)

	assert.Len(t, s.FindEdgesFor("dog"), 2)
	assert.Len(t, s.FindEdgesFor("animal"), 1)

	ids := func(nodes []NodeState) []string {
		var res []string
		for _, n := range nodes {
			res = append(res, n.ID)
		}
		return res
	}
	assert.ElementsMatch(t, []string{"animal", "rex"}, ids(s.FindConnectedNodes("dog")))
	assert.Equal(t, []string{"animal"}, ids(s.SelectedNodes()))
	assert.Equal(t, []string{"animal", "dog"}, ids(s.WithinDistance(1)))
	assert.Len(t, s.WithinDistance(2), 3)

	subclass := s.FilterEdges(func(e *EdgeState) bool { return e.Label == "subClassOf" })
	assert.Len(t, subclass, 1)
}
