package fogplacer

import (
	"testing"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDevice(t *testing.T, g *graph.Graph, id graph.NodeID, as graph.ASID, router graph.NodeID, scaling uint32) {
	t.Helper()
	_, err := g.CreateEdgeDevice(id, as, &graph.EmulationBinding{ScalingFactor: scaling})
	require.NoError(t, err)
	_, err = g.CreateEdge(graph.EdgeID(id)+1000, router, id, 0, 1e9)
	require.NoError(t, err)
}

// TestScenarioS1_SingleASOneDevice mirrors spec.md scenario S1: two routers,
// one device on router 1, threshold large enough to self-cover.
func TestScenarioS1_SingleASOneDevice(t *testing.T) {
	g := graph.New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(2, 0)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, 1, 2, 5, 10)
	require.NoError(t, err)
	mustDevice(t, g, 3, 0, 1, 1)

	budget := NewBudget(1)
	cfg := Config{
		CostThreshold: 10,
		FogTypes:      []placement.FogType{{Cost: 1, MaxClients: 10}},
	}

	result := PlaceAll(g, cfg, budget)

	require.True(t, result.Success)
	require.Len(t, result.FogPlacements, 1)
	assert.Equal(t, graph.NodeID(1), result.FogPlacements[0].NodeID)
}

// TestScenarioS3_UnreachableDevice mirrors spec.md S3: router 2 is too far
// from the device on router 1 to ever be registered as a candidate for it.
func TestScenarioS3_UnreachableDevice(t *testing.T) {
	g := graph.New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(2, 0)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, 1, 2, 100, 10)
	require.NoError(t, err)
	mustDevice(t, g, 3, 0, 1, 1)

	budget := NewBudget(5)
	cfg := Config{
		CostThreshold: 10,
		FogTypes:      []placement.FogType{{Cost: 1, MaxClients: 10}},
	}

	result := PlaceAll(g, cfg, budget)

	require.True(t, result.Success)
	require.Len(t, result.FogPlacements, 1)
	assert.Equal(t, graph.NodeID(1), result.FogPlacements[0].NodeID)
}

// TestScenarioS4_BudgetExhaustion mirrors spec.md S4: two ASes each with an
// uncoverable residual device and a global budget of 1; aggregate is Failure.
func TestScenarioS4_BudgetExhaustion(t *testing.T) {
	g := graph.New()

	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)
	mustDevice(t, g, 2, 0, 1, 1)

	_, err = g.CreateEdgeRouter(11, 1)
	require.NoError(t, err)
	mustDevice(t, g, 12, 1, 11, 1)

	budget := NewBudget(1)
	cfg := Config{
		CostThreshold: 10,
		FogTypes:      []placement.FogType{{Cost: 1, MaxClients: 1}},
	}

	result := PlaceAll(g, cfg, budget)

	assert.False(t, result.Success)
	assert.LessOrEqual(t, len(result.FogPlacements), 2)
}

// TestScenarioS5_TieBreakBySmallerNodeID mirrors spec.md S5: two equally
// good candidates, lower node id wins.
func TestScenarioS5_TieBreakBySmallerNodeID(t *testing.T) {
	g := graph.New()
	_, err := g.CreateEdgeRouter(5, 0)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(2, 0)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, 5, 2, 1, 10)
	require.NoError(t, err)
	mustDevice(t, g, 6, 0, 5, 1)
	mustDevice(t, g, 7, 0, 2, 1)

	budget := NewBudget(1)
	cfg := Config{
		CostThreshold: 10,
		FogTypes:      []placement.FogType{{Cost: 1, MaxClients: 10}},
	}

	result := PlaceAll(g, cfg, budget)

	require.Len(t, result.FogPlacements, 1)
	assert.Equal(t, graph.NodeID(2), result.FogPlacements[0].NodeID)
}

func TestBudget_TryAcquire_ExhaustsAtZero(t *testing.T) {
	b := NewBudget(2)
	assert.True(t, b.TryAcquire())
	assert.True(t, b.TryAcquire())
	assert.False(t, b.TryAcquire())
	assert.Equal(t, int64(0), b.Remaining())
}

func TestPlaceAll_NoStartingNodesIsSuccessWithNoPlacements(t *testing.T) {
	g := graph.New()
	_, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)

	budget := NewBudget(5)
	cfg := Config{CostThreshold: 10, FogTypes: []placement.FogType{{Cost: 1, MaxClients: 10}}}

	result := PlaceAll(g, cfg, budget)

	assert.True(t, result.Success)
	assert.Empty(t, result.FogPlacements)
}

func TestPlaceAll_ResultsSortedByASThenNode(t *testing.T) {
	g := graph.New()
	_, err := g.CreateEdgeRouter(21, 2)
	require.NoError(t, err)
	mustDevice(t, g, 22, 2, 21, 1)
	_, err = g.CreateEdgeRouter(11, 1)
	require.NoError(t, err)
	mustDevice(t, g, 12, 1, 11, 1)

	budget := NewBudget(10)
	cfg := Config{CostThreshold: 10, FogTypes: []placement.FogType{{Cost: 1, MaxClients: 10}}}

	result := PlaceAll(g, cfg, budget)

	require.Len(t, result.FogPlacements, 2)
	assert.Equal(t, graph.ASID(1), result.FogPlacements[0].ASID)
	assert.Equal(t, graph.ASID(2), result.FogPlacements[1].ASID)
}
