// Package graph implements the EmuFog topology model: autonomous systems,
// typed router/device nodes and the undirected links between them.
//
// Nodes are tagged variants sharing one immutable header (id, AS, incident
// edge ids). Edges live in a single arena keyed by id and reference
// endpoints by node id, not by pointer, so variant conversion never has to
// walk or rewrite edges — it only swaps the owning AS's bucket for the id.
package graph

// NodeID uniquely identifies a node across the whole graph.
type NodeID uint32

// ASID uniquely identifies an autonomous system.
type ASID uint32

// EdgeID uniquely identifies an edge across the whole graph.
type EdgeID uint32

// NodeKind is the tag of a Node variant.
type NodeKind uint8

const (
	KindEdgeRouter NodeKind = iota
	KindBackboneRouter
	KindEdgeDevice
)

func (k NodeKind) String() string {
	switch k {
	case KindEdgeRouter:
		return "edge_router"
	case KindBackboneRouter:
		return "backbone_router"
	case KindEdgeDevice:
		return "edge_device"
	default:
		return "unknown"
	}
}

// ContainerSpec is the base Docker container description shared by every
// emulated node: the image, its resource ceilings.
type ContainerSpec struct {
	Image            string
	Tag              string
	MemoryLimitBytes uint64
	CPUShare         float32
}

// EmulationBinding attaches a container image to a node. ScalingFactor is
// only meaningful for EdgeDevice nodes: it is the device-count multiplier
// the owning DeviceType configured, carried here rather than looked up
// through config at placement time, so the fog placer can read device
// multiplicity directly off the graph node.
type EmulationBinding struct {
	IP            string
	Container     ContainerSpec
	ScalingFactor uint32
}

// Node is a single graph vertex. Its Kind tags which of the three variants
// (EdgeRouter, BackboneRouter, EdgeDevice) it currently is; the ReplaceBy*
// operations on AS change Kind in place while preserving ID, ASID and Edges.
type Node struct {
	id        NodeID
	asID      ASID
	kind      NodeKind
	edges     []EdgeID // insertion order; observable, not semantically significant
	emulation *EmulationBinding
}

func (n *Node) ID() NodeID                     { return n.id }
func (n *Node) ASID() ASID                     { return n.asID }
func (n *Node) Kind() NodeKind                  { return n.kind }
func (n *Node) Emulation() *EmulationBinding    { return n.emulation }
func (n *Node) IsEdgeRouter() bool              { return n.kind == KindEdgeRouter }
func (n *Node) IsBackboneRouter() bool          { return n.kind == KindBackboneRouter }
func (n *Node) IsEdgeDevice() bool              { return n.kind == KindEdgeDevice }

// Edges returns the node's incident edge ids in insertion order. The slice
// is owned by the node; callers must not mutate it.
func (n *Node) Edges() []EdgeID { return n.edges }

func (n *Node) addEdge(id EdgeID) { n.edges = append(n.edges, id) }

// Edge is an undirected link between two nodes. IsCrossAS is computed once
// at creation time (endpoint AS membership never changes after creation,
// only Kind does) and cached here.
type Edge struct {
	id         EdgeID
	from, to   NodeID
	latency    float32 // ms
	bandwidth  float32 // Mbps
	isCrossAS  bool
}

func (e *Edge) ID() EdgeID          { return e.id }
func (e *Edge) From() NodeID        { return e.from }
func (e *Edge) To() NodeID          { return e.to }
func (e *Edge) Latency() float32    { return e.latency }
func (e *Edge) Bandwidth() float32  { return e.bandwidth }
func (e *Edge) IsCrossAS() bool     { return e.isCrossAS }

// Other returns the endpoint of e that is not n, or false if n is not an
// endpoint of e.
func (e *Edge) Other(n NodeID) (NodeID, bool) {
	switch n {
	case e.from:
		return e.to, true
	case e.to:
		return e.from, true
	default:
		return 0, false
	}
}

// AS is an autonomous system: a disjoint partition of the graph's nodes
// into edge routers, backbone routers and edge devices. A node id appears
// in at most one of the three buckets at any time.
type AS struct {
	id              ASID
	edgeNodes       map[NodeID]*Node
	backboneNodes   map[NodeID]*Node
	edgeDeviceNodes map[NodeID]*Node
}

func newAS(id ASID) *AS {
	return &AS{
		id:              id,
		edgeNodes:       make(map[NodeID]*Node),
		backboneNodes:   make(map[NodeID]*Node),
		edgeDeviceNodes: make(map[NodeID]*Node),
	}
}

func (a *AS) ID() ASID { return a.id }

// EdgeRouters returns the AS's current edge routers. Order is unspecified.
func (a *AS) EdgeRouters() []*Node { return mapValues(a.edgeNodes) }

// BackboneRouters returns the AS's current backbone routers. Order is unspecified.
func (a *AS) BackboneRouters() []*Node { return mapValues(a.backboneNodes) }

// EdgeDevices returns the AS's current edge devices. Order is unspecified.
func (a *AS) EdgeDevices() []*Node { return mapValues(a.edgeDeviceNodes) }

func (a *AS) bucketFor(k NodeKind) map[NodeID]*Node {
	switch k {
	case KindEdgeRouter:
		return a.edgeNodes
	case KindBackboneRouter:
		return a.backboneNodes
	case KindEdgeDevice:
		return a.edgeDeviceNodes
	default:
		return nil
	}
}

func mapValues(m map[NodeID]*Node) []*Node {
	out := make([]*Node, 0, len(m))
	for _, n := range m {
		out = append(out, n)
	}
	return out
}
