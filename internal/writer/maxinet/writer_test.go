package maxinet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_RendersHeaderAndNodes(t *testing.T) {
	g := graph.New()
	n, err := g.CreateEdgeRouter(1, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Write(&buf, []Entry{{ASID: 0, Node: n}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "maxinet.Topology()")
	assert.Contains(t, out, "n1_as0")
}

func TestWrite_IncludesFogPlacementAndDevices(t *testing.T) {
	g := graph.New()
	n, err := g.CreateBackboneRouter(1, 0)
	require.NoError(t, err)

	fog := placement.FogPlacement{ASID: 0, NodeID: 1, Type: placement.FogType{Cost: 2, MaxClients: 5}, CoveredCount: 3}
	devices := []placement.DevicePlacement{{ASID: 0, RouterID: 1, DeviceID: 2, Type: placement.DeviceType{Container: graph.ContainerSpec{Image: "sensor", Tag: "v1"}}}}

	var buf bytes.Buffer
	err = Write(&buf, []Entry{{ASID: 0, Node: n, FogPlacement: &fog, DevicePlaced: devices}})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, "fog placement on n1"))
	assert.True(t, strings.Contains(out, "device2_on_n1"))
	assert.True(t, strings.Contains(out, "sensor:v1"))
}

func TestWrite_SortsEntriesByASThenNode(t *testing.T) {
	g := graph.New()
	n2, err := g.CreateEdgeRouter(20, 1)
	require.NoError(t, err)
	n1, err := g.CreateEdgeRouter(10, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Write(&buf, []Entry{{ASID: 1, Node: n2}, {ASID: 0, Node: n1}})
	require.NoError(t, err)

	out := buf.String()
	idx0 := strings.Index(out, "n10_as0")
	idx1 := strings.Index(out, "n20_as1")
	assert.True(t, idx0 < idx1)
}
