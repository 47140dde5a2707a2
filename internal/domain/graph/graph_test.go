package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEdgeRouter_DuplicateID(t *testing.T) {
	g := New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)

	_, err = g.CreateEdgeRouter(1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))
}

func TestCreateEdge_MissingEndpoint(t *testing.T) {
	g := New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)

	_, err = g.CreateEdge(1, 1, 2, 5, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestCreateEdgeDevice_RequiresBinding(t *testing.T) {
	g := New()
	_, err := g.CreateEdgeDevice(1, 0, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingEmulation))
}

func TestEdge_IsCrossAS(t *testing.T) {
	g := New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(2, 1)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(3, 0)
	require.NoError(t, err)

	cross, err := g.CreateEdge(1, 1, 2, 10, 100)
	require.NoError(t, err)
	assert.True(t, cross.IsCrossAS())

	local, err := g.CreateEdge(2, 1, 3, 10, 100)
	require.NoError(t, err)
	assert.False(t, local.IsCrossAS())
}

func TestReplaceByBackbone_PreservesIDAndEdges(t *testing.T) {
	g := New()
	r1, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(2, 0)
	require.NoError(t, err)
	e1, err := g.CreateEdge(1, 1, 2, 5, 10)
	require.NoError(t, err)

	as := g.AS(0)
	before := append([]EdgeID(nil), r1.Edges()...)

	converted, err := as.ReplaceByBackbone(g, 1)
	require.NoError(t, err)
	assert.Equal(t, NodeID(1), converted.ID())
	assert.Equal(t, KindBackboneRouter, converted.Kind())
	assert.Equal(t, before, converted.Edges())

	// bucket moved: no longer among edge routers, now among backbone routers.
	assert.Len(t, as.EdgeRouters(), 1)
	assert.Len(t, as.BackboneRouters(), 1)

	// the edge itself is untouched and still resolves to the converted node.
	edge, ok := g.Edge(e1.ID())
	assert.True(t, ok)
	endpoint, ok := g.Node(edge.From())
	assert.True(t, ok)
	assert.Same(t, converted, endpoint)
}

func TestReplaceByEdge_RoundTrip(t *testing.T) {
	g := New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(2, 0)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, 1, 2, 5, 10)
	require.NoError(t, err)
	_, err = g.CreateEdge(2, 1, 2, 7, 10)
	require.NoError(t, err)

	as := g.AS(0)
	n, _ := g.Node(1)
	originalEdges := append([]EdgeID(nil), n.Edges()...)

	_, err = as.ReplaceByBackbone(g, 1)
	require.NoError(t, err)
	back, err := as.ReplaceByEdge(g, 1)
	require.NoError(t, err)

	assert.Equal(t, KindEdgeRouter, back.Kind())
	assert.Equal(t, originalEdges, back.Edges())
	assert.Len(t, as.EdgeRouters(), 2)
	assert.Len(t, as.BackboneRouters(), 0)
}

func TestReplaceByBackbone_WrongAS(t *testing.T) {
	g := New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)

	otherAS := g.AS(1)
	_, err = otherAS.ReplaceByBackbone(g, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrongAS))
}

func TestDisjointness_NodeInOneBucketOnly(t *testing.T) {
	g := New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)
	as := g.AS(0)

	_, err = as.ReplaceByBackbone(g, 1)
	require.NoError(t, err)

	assert.Len(t, as.EdgeRouters(), 0)
	assert.Len(t, as.BackboneRouters(), 1)
	assert.Len(t, as.EdgeDevices(), 0)
}

func TestNeighbors(t *testing.T) {
	g := New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(2, 0)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(3, 0)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, 1, 2, 5, 10)
	require.NoError(t, err)
	_, err = g.CreateEdge(2, 1, 3, 8, 10)
	require.NoError(t, err)

	n1, _ := g.Node(1)
	neighbors := g.Neighbors(n1)
	require.Len(t, neighbors, 2)
	assert.ElementsMatch(t, []NodeID{2, 3}, []NodeID{neighbors[0].Node.ID(), neighbors[1].Node.ID()})
}
