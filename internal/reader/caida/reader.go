// Package caida reads the CAIDA topology format: three suffixed files
// (.nodes.geo, .nodes.as, .links) with fixed record prefixes.
package caida

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/reader"
)

const (
	nodeGeoPrefix = "node.geo "
	nodeASPrefix  = "node.AS "
	linkPrefix    = "link "
)

// LatencyCalculator computes an edge's latency from its raw CAIDA link
// fields. Pluggable so callers can substitute a distance-based calculator;
// ConstantLatency is the default.
type LatencyCalculator interface {
	Latency(fields []string) float32
}

// ConstantLatency always returns Value, regardless of the link's fields.
type ConstantLatency struct {
	Value float32
}

// Latency implements LatencyCalculator.
func (c ConstantLatency) Latency(_ []string) float32 {
	return c.Value
}

// DefaultLatencyCalculator is the CAIDA reader's default when none is
// supplied: a flat 1.0ms.
var DefaultLatencyCalculator LatencyCalculator = ConstantLatency{Value: 1.0}

// Read parses the three CAIDA files into g. nodesAS assigns AS ids to node
// ids (read first, since readLinks needs every node to already exist);
// nodesGeo is currently only validated for format since the core data model
// has no geo fields; links creates the edges.
func Read(nodesGeo, nodesAS, links io.Reader, g *graph.Graph, calc LatencyCalculator) *reader.InputError {
	if calc == nil {
		calc = DefaultLatencyCalculator
	}
	errs := reader.NewInputError()

	readNodesAS(nodesAS, g, errs)
	readNodesGeo(nodesGeo, errs)
	readLinks(links, g, calc, errs)

	return errs
}

func readNodesAS(r io.Reader, g *graph.Graph, errs *reader.InputError) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, nodeASPrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, nodeASPrefix))
		if len(fields) < 2 {
			errs.Record("malformed_node_as_line")
			continue
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			errs.Record("numeric_overflow")
			continue
		}
		asID, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			errs.Record("numeric_overflow")
			continue
		}
		if _, err := g.CreateEdgeRouter(graph.NodeID(id), graph.ASID(asID)); err != nil {
			errs.Record("duplicate_node")
		}
	}
}

func readNodesGeo(r io.Reader, errs *reader.InputError) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, nodeGeoPrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, nodeGeoPrefix))
		if len(fields) < 1 {
			errs.Record("malformed_node_geo_line")
		}
	}
}

func readLinks(r io.Reader, g *graph.Graph, calc LatencyCalculator, errs *reader.InputError) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, linkPrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, linkPrefix))
		if len(fields) < 2 {
			errs.Record("malformed_link_line")
			continue
		}
		from, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			errs.Record("numeric_overflow")
			continue
		}
		to, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			errs.Record("numeric_overflow")
			continue
		}

		latency := calc.Latency(fields)
		const defaultBandwidth = float32(1000.0)

		if _, err := g.CreateEdge(g.NextEdgeID(), graph.NodeID(from), graph.NodeID(to), latency, defaultBandwidth); err != nil {
			errs.Record("malformed_link_line")
			continue
		}
	}
}
