package caida

import (
	"strings"
	"testing"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodesGeoSample = "node.geo 0\tNA\tUS\nnode.geo 1\tNA\tUS\n"
const nodesASSample = "node.AS 0 5\nnode.AS 1 5\n"
const linksSample = "link 0 1\n"

func TestRead_ParsesAllThreeFiles(t *testing.T) {
	g := graph.New()
	errs := Read(strings.NewReader(nodesGeoSample), strings.NewReader(nodesASSample), strings.NewReader(linksSample), g, nil)

	require.False(t, errs.HasErrors())

	n0, ok := g.Node(0)
	require.True(t, ok)
	assert.Equal(t, graph.ASID(5), n0.ASID())

	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, float32(1.0), edges[0].Latency())
}

func TestRead_CustomLatencyCalculator(t *testing.T) {
	g := graph.New()
	errs := Read(strings.NewReader(nodesGeoSample), strings.NewReader(nodesASSample), strings.NewReader(linksSample), g, ConstantLatency{Value: 42})

	require.False(t, errs.HasErrors())
	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, float32(42), edges[0].Latency())
}

func TestRead_MalformedLinkLineIsCounted(t *testing.T) {
	g := graph.New()
	errs := Read(strings.NewReader(nodesGeoSample), strings.NewReader(nodesASSample), strings.NewReader("link 0\n"), g, nil)

	assert.Equal(t, 1, errs.Counts["malformed_link_line"])
}

func TestRead_IgnoresUnprefixedLines(t *testing.T) {
	g := graph.New()
	errs := Read(strings.NewReader("# comment\n"+nodesGeoSample), strings.NewReader("# comment\n"+nodesASSample), strings.NewReader("# comment\n"+linksSample), g, nil)

	require.False(t, errs.HasErrors())
	assert.Len(t, g.Edges(), 1)
}
