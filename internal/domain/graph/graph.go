package graph

import "fmt"

// Graph is the central container: a node-id index for uniqueness checks, an
// edge arena keyed by id, and the set of autonomous systems that own the
// nodes. It provides no internal synchronization — the AS partitioning is
// itself the concurrency boundary; callers running per-AS workers must
// only touch their own AS's nodes.
type Graph struct {
	ases     map[ASID]*AS
	edges    map[EdgeID]*Edge
	nodeByID map[NodeID]*Node
	nodeAS   map[NodeID]ASID
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		ases:     make(map[ASID]*AS),
		edges:    make(map[EdgeID]*Edge),
		nodeByID: make(map[NodeID]*Node),
		nodeAS:   make(map[NodeID]ASID),
	}
}

// AS returns the autonomous system with the given id, creating it if it
// does not yet exist.
func (g *Graph) AS(id ASID) *AS {
	as, ok := g.ases[id]
	if !ok {
		as = newAS(id)
		g.ases[id] = as
	}
	return as
}

// ASes returns every autonomous system currently in the graph. Order is
// unspecified; callers requiring determinism should sort by ASID.
func (g *Graph) ASes() []*AS {
	out := make([]*AS, 0, len(g.ases))
	for _, as := range g.ases {
		out = append(out, as)
	}
	return out
}

// Node looks up a node by id anywhere in the graph.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodeByID[id]
	return n, ok
}

// AllNodes returns every node in the graph regardless of variant or AS.
// Order is unspecified.
func (g *Graph) AllNodes() []*Node {
	out := make([]*Node, 0, len(g.nodeByID))
	for _, n := range g.nodeByID {
		out = append(out, n)
	}
	return out
}

// NextNodeID returns a NodeID guaranteed not to collide with any id
// currently present in the graph, for synthesizing new nodes (e.g. devices
// created by the device placer).
func (g *Graph) NextNodeID() NodeID {
	var max NodeID
	for id := range g.nodeByID {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// NextEdgeID returns an EdgeID guaranteed not to collide with any id
// currently present in the graph, for synthesizing new edges (e.g. the
// router-to-device links created by the device placer).
func (g *Graph) NextEdgeID() EdgeID {
	var max EdgeID
	for id := range g.edges {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Edge looks up an edge by id.
func (g *Graph) Edge(id EdgeID) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// Edges returns every edge in the graph. Order is unspecified.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	return out
}

// CreateEdgeRouter creates a new EdgeRouter node in AS asID.
func (g *Graph) CreateEdgeRouter(id NodeID, asID ASID) (*Node, error) {
	return g.createNode(id, asID, KindEdgeRouter, nil)
}

// CreateBackboneRouter creates a new BackboneRouter node in AS asID.
func (g *Graph) CreateBackboneRouter(id NodeID, asID ASID) (*Node, error) {
	return g.createNode(id, asID, KindBackboneRouter, nil)
}

// CreateEdgeDevice creates a new EdgeDevice node in AS asID. binding must be
// non-nil: EdgeDevice nodes always carry an EmulationBinding.
func (g *Graph) CreateEdgeDevice(id NodeID, asID ASID, binding *EmulationBinding) (*Node, error) {
	if binding == nil {
		return nil, ErrMissingEmulation
	}
	return g.createNode(id, asID, KindEdgeDevice, binding)
}

func (g *Graph) createNode(id NodeID, asID ASID, kind NodeKind, binding *EmulationBinding) (*Node, error) {
	if _, exists := g.nodeByID[id]; exists {
		return nil, fmt.Errorf("%w: node %d", ErrDuplicateID, id)
	}
	n := &Node{id: id, asID: asID, kind: kind, emulation: binding}
	as := g.AS(asID)
	as.bucketFor(kind)[id] = n
	g.nodeByID[id] = n
	g.nodeAS[id] = asID
	return n, nil
}

// CreateEdge creates an undirected link between from and to. Both endpoints
// must already exist; id must be unique across the graph.
func (g *Graph) CreateEdge(id EdgeID, from, to NodeID, latency, bandwidth float32) (*Edge, error) {
	if _, exists := g.edges[id]; exists {
		return nil, fmt.Errorf("%w: edge %d", ErrDuplicateID, id)
	}
	fromNode, ok := g.nodeByID[from]
	if !ok {
		return nil, fmt.Errorf("%w: endpoint %d", ErrNodeNotFound, from)
	}
	toNode, ok := g.nodeByID[to]
	if !ok {
		return nil, fmt.Errorf("%w: endpoint %d", ErrNodeNotFound, to)
	}

	e := &Edge{
		id:        id,
		from:      from,
		to:        to,
		latency:   latency,
		bandwidth: bandwidth,
		isCrossAS: fromNode.asID != toNode.asID,
	}
	g.edges[id] = e
	fromNode.addEdge(id)
	toNode.addEdge(id)
	return e, nil
}

// Neighbors returns, for a node n, the (edge, other-endpoint-node) pairs for
// each of n's incident edges, in insertion order.
func (g *Graph) Neighbors(n *Node) []NeighborEdge {
	out := make([]NeighborEdge, 0, len(n.edges))
	for _, eid := range n.edges {
		e := g.edges[eid]
		otherID, ok := e.Other(n.id)
		if !ok {
			continue
		}
		other, ok := g.nodeByID[otherID]
		if !ok {
			continue
		}
		out = append(out, NeighborEdge{Edge: e, Node: other})
	}
	return out
}

// NeighborEdge pairs an incident edge with the node on its far side.
type NeighborEdge struct {
	Edge *Edge
	Node *Node
}

// replaceKind is the common body of the three Replace* AS operations:
// atomically move a node from its current variant bucket to kind, preserving
// id, AS membership and incident edges. The node is changed in place, so the
// graph-global index needs no update, and edges reference node ids, so they
// need no rewriting.
func (a *AS) replaceKind(g *Graph, id NodeID, kind NodeKind, binding *EmulationBinding) (*Node, error) {
	n, ok := g.nodeByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: node %d", ErrNodeNotFound, id)
	}
	if n.asID != a.id {
		return nil, fmt.Errorf("%w: node %d belongs to AS %d, not AS %d", ErrWrongAS, id, n.asID, a.id)
	}
	if kind == KindEdgeDevice && binding == nil {
		return nil, ErrMissingEmulation
	}

	delete(a.bucketFor(n.kind), id)
	n.kind = kind
	if kind == KindEdgeDevice {
		n.emulation = binding
	} else {
		n.emulation = nil
	}
	a.bucketFor(kind)[id] = n
	return n, nil
}

// ReplaceByEdge converts the node with the given id to an EdgeRouter.
func (a *AS) ReplaceByEdge(g *Graph, id NodeID) (*Node, error) {
	return a.replaceKind(g, id, KindEdgeRouter, nil)
}

// ReplaceByBackbone converts the node with the given id to a BackboneRouter.
// A no-op (still succeeds) if the node is already a BackboneRouter.
func (a *AS) ReplaceByBackbone(g *Graph, id NodeID) (*Node, error) {
	return a.replaceKind(g, id, KindBackboneRouter, nil)
}

// ReplaceByEdgeDevice converts the node with the given id to an EdgeDevice
// carrying binding.
func (a *AS) ReplaceByEdgeDevice(g *Graph, id NodeID, binding *EmulationBinding) (*Node, error) {
	return a.replaceKind(g, id, KindEdgeDevice, binding)
}

// Degree returns the number of incident edges of n (its current edge
// count, irrespective of cross-AS or device status).
func Degree(n *Node) int { return len(n.edges) }
