// Package testutil provides shared graph and config fixture builders for
// package-level tests across the module, mirroring the teacher's
// NewTestSetup helper pattern.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emufog/emufog/internal/config"
	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/pkg/logger"
)

// GraphFixture is a small, pre-populated graph plus the ids of its routers,
// for tests that exercise the pipeline end to end without hand-rolling
// graph construction in every test file.
type GraphFixture struct {
	Graph    *graph.Graph
	AS0      graph.ASID
	Router1  graph.NodeID
	Router2  graph.NodeID
	DeviceID graph.NodeID
}

// NewGraphFixture builds a two-router, one-device single-AS graph: router 1
// and router 2 linked at 5ms latency, one device attached to router 1.
func NewGraphFixture(t *testing.T) *GraphFixture {
	t.Helper()

	g := graph.New()
	const as0 = graph.ASID(0)

	_, err := g.CreateEdgeRouter(1, as0)
	require.NoError(t, err)
	_, err = g.CreateEdgeRouter(2, as0)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, 1, 2, 5, 10)
	require.NoError(t, err)

	_, err = g.CreateEdgeDevice(3, as0, &graph.EmulationBinding{ScalingFactor: 1})
	require.NoError(t, err)
	_, err = g.CreateEdge(2, 1, 3, 0, 1e9)
	require.NoError(t, err)

	return &GraphFixture{Graph: g, AS0: as0, Router1: 1, Router2: 2, DeviceID: 3}
}

// NewConfig returns a minimal valid *config.Config for pipeline tests.
func NewConfig() *config.Config {
	cfg := &config.Config{
		MaxFogNodes:          10,
		CostThreshold:        10,
		BackboneDegreeFactor: 0.6,
		DeviceSampling:       config.SamplingDeterministic,
		FogNodeTypes: []config.FogTypeConfig{
			{Cost: 1, MaxClients: 10},
		},
		DeviceNodeTypes: []config.DeviceTypeConfig{
			{ScalingFactor: 1, AvgPerRouter: 1},
		},
	}
	return cfg
}

// NewLogger returns a debug-level logger for tests that want real log output.
func NewLogger() *logger.Logger {
	return logger.New("debug")
}
