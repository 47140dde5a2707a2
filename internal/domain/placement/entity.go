// Package placement holds the output types the fog placer and pipeline
// aggregation stage produce: per-AS fog placements and the final,
// globally-ordered plan handed to the writer.
package placement

import "github.com/emufog/emufog/internal/domain/graph"

// DeviceType configures synthetic end-user devices attached to edge
// routers by the device placer.
type DeviceType struct {
	Container     graph.ContainerSpec
	ScalingFactor uint32
	AvgPerRouter  float32
}

// FogType configures a fog-capable container the fog placer may assign to
// a chosen candidate node.
type FogType struct {
	Container  graph.ContainerSpec
	Cost       float32
	MaxClients uint32
}

// FogPlacement is one emitted decision of the fog placer: a chosen node and
// the container type assigned to it.
type FogPlacement struct {
	ASID              graph.ASID
	NodeID            graph.NodeID
	Type              FogType
	CoveredCount      uint32
	AvgConnectionCost float32
}

// DevicePlacement is one synthesized device produced by the device
// placer: the device node id and the edge router it attaches to.
type DevicePlacement struct {
	ASID     graph.ASID
	RouterID graph.NodeID
	DeviceID graph.NodeID
	Type     DeviceType
}

// ASResult is the outcome of running the fog placer on a single AS: either
// every starting node was covered before the node's budget share ran out
// (Success) or the shared budget was exhausted first (Failure, non-fatal).
type ASResult struct {
	ASID       graph.ASID
	Placements []FogPlacement
	Success    bool
}

// PlanResult is the aggregated output of the whole pipeline: every AS's fog
// placements merged, sorted by (as_id, node_id), plus the synthesized
// device placements and the overall success flag.
//
// Success is false iff any per-AS fog placer run returned Failure; the
// pipeline still returns every placement it made even when it fails.
type PlanResult struct {
	FogPlacements    []FogPlacement
	DevicePlacements []DevicePlacement
	Success          bool
}
