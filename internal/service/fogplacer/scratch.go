package fogplacer

import (
	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
)

// startingNode wraps one device-bearing edge router: it tracks how many
// device-slots still need covering and which candidates can reach it
// within the cost threshold.
type startingNode struct {
	nodeID               graph.NodeID
	deviceCount          uint32
	remainingDeviceCount uint32
	possibleNodes        map[graph.NodeID]bool
}

// pathRecord is the cheapest path found so far from one starting node to a
// candidate: the predecessor on that path and the accumulated cost.
type pathRecord struct {
	predecessor graph.NodeID
	cost        float32
}

// candidateState is the transient, side-table Dijkstra/placement record for
// one candidate base node — never stored on the graph node itself.
type candidateState struct {
	nodeID    graph.NodeID
	reachedBy map[graph.NodeID]pathRecord // starting-node id -> cheapest path
	modified  bool

	fogType           *placement.FogType
	coveredCount      uint32
	avgConnectionCost float32
}

func newCandidateState(id graph.NodeID) *candidateState {
	return &candidateState{
		nodeID:    id,
		reachedBy: make(map[graph.NodeID]pathRecord),
		modified:  true,
	}
}

// registerPath records that startID reaches this candidate at cost via
// predecessor, replacing any more expensive existing path, and flags the
// candidate for fog-type reassignment.
func (c *candidateState) registerPath(startID, predecessor graph.NodeID, cost float32) {
	if existing, ok := c.reachedBy[startID]; ok && existing.cost <= cost {
		return
	}
	c.reachedBy[startID] = pathRecord{predecessor: predecessor, cost: cost}
	c.modified = true
}

// unregister drops startID from this candidate's reachable set, called
// once a starting node is fully covered.
func (c *candidateState) unregister(startID graph.NodeID) {
	if _, ok := c.reachedBy[startID]; !ok {
		return
	}
	delete(c.reachedBy, startID)
	c.modified = true
}

// averageDeploymentCost is the primary FogComparator key.
func (c *candidateState) averageDeploymentCost() float32 {
	if c.fogType == nil || c.coveredCount == 0 {
		return maxCost
	}
	return c.fogType.Cost / float32(c.coveredCount)
}

// maxCost sentinels a candidate with no usable fog-type assignment to the
// bottom of the selection order, rather than special-casing nil comparisons.
const maxCost = float32(1 << 62)
