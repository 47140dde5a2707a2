// Package fogplacer runs per-AS Dijkstra reachability followed by a greedy
// set-cover selection of fog container placements, bounded by a
// process-wide atomic node budget.
package fogplacer

import (
	"container/heap"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
)

// Budget is the process-wide remaining-fog-nodes counter shared by every
// per-AS worker. The only operations are decrement and read, so a bare
// int64 with atomic ops suffices without a mutex.
type Budget struct {
	remaining int64
}

// NewBudget creates a Budget initialised to maxFogNodes.
func NewBudget(maxFogNodes uint32) *Budget {
	return &Budget{remaining: int64(maxFogNodes)}
}

// TryAcquire attempts to decrement the budget by one and reports whether it
// succeeded. A bounded race is accepted: a worker may observe a stale
// positive value and still succeed, emitting at most one placement beyond
// the configured budget per worker.
func (b *Budget) TryAcquire() bool {
	if atomic.LoadInt64(&b.remaining) <= 0 {
		return false
	}
	atomic.AddInt64(&b.remaining, -1)
	return true
}

// Remaining returns the current budget snapshot, for diagnostics/logging.
func (b *Budget) Remaining() int64 {
	return atomic.LoadInt64(&b.remaining)
}

// Config holds the fog placer's tuning knobs.
type Config struct {
	CostThreshold float32
	FogTypes      []placement.FogType
}

// PlaceAll runs the fog placer over every AS in g concurrently and returns
// the aggregated result: all emitted placements sorted by (as_id, node_id),
// and overall success iff every AS worker succeeded.
func PlaceAll(g *graph.Graph, cfg Config, budget *Budget) placement.PlanResult {
	ases := g.ASes()
	results := make([]placement.ASResult, len(ases))

	var wg sync.WaitGroup
	wg.Add(len(ases))
	for i, as := range ases {
		go func(i int, as *graph.AS) {
			defer wg.Done()
			results[i] = placeAS(g, as, cfg, budget)
		}(i, as)
	}
	wg.Wait()

	var out placement.PlanResult
	out.Success = true
	for _, r := range results {
		out.FogPlacements = append(out.FogPlacements, r.Placements...)
		if !r.Success {
			out.Success = false
		}
	}
	sort.Slice(out.FogPlacements, func(i, j int) bool {
		a, b := out.FogPlacements[i], out.FogPlacements[j]
		if a.ASID != b.ASID {
			return a.ASID < b.ASID
		}
		return a.NodeID < b.NodeID
	})
	return out
}

// placeAS runs the full per-AS pipeline: build starting/candidate sets,
// compute reachability, then run the greedy loop to exhaustion.
func placeAS(g *graph.Graph, as *graph.AS, cfg Config, budget *Budget) placement.ASResult {
	starts := buildStartingNodes(g, as)
	candidates := reachability(g, as, starts, cfg.CostThreshold)

	var placements []placement.FogPlacement
	success := true

	active := make(map[graph.NodeID]*startingNode, len(starts))
	for id, s := range starts {
		active[id] = s
	}

	for {
		if len(active) == 0 {
			break
		}
		if !budget.TryAcquire() {
			success = false
			break
		}

		refreshModified(candidates, active, cfg.FogTypes)

		winner := pickWinner(candidates)
		if winner == nil || winner.fogType == nil {
			success = false
			break
		}

		placements = append(placements, placement.FogPlacement{
			ASID:              as.ID(),
			NodeID:            winner.nodeID,
			Type:              *winner.fogType,
			CoveredCount:      winner.coveredCount,
			AvgConnectionCost: winner.avgConnectionCost,
		})

		coverageUpdate(candidates, active, winner)
		delete(candidates, winner.nodeID)
	}

	return placement.ASResult{ASID: as.ID(), Placements: placements, Success: success}
}

// buildStartingNodes collects every EdgeRouter with at least one attached
// device, with device_count summed over attached-device scaling factors.
func buildStartingNodes(g *graph.Graph, as *graph.AS) map[graph.NodeID]*startingNode {
	out := make(map[graph.NodeID]*startingNode)
	for _, router := range as.EdgeRouters() {
		var count uint32
		for _, ne := range g.Neighbors(router) {
			if ne.Node.Kind() != graph.KindEdgeDevice {
				continue
			}
			binding := ne.Node.Emulation()
			if binding == nil {
				continue
			}
			factor := binding.ScalingFactor
			if factor == 0 {
				factor = 1
			}
			count += factor
		}
		if count == 0 {
			continue
		}
		out[router.ID()] = &startingNode{
			nodeID:               router.ID(),
			deviceCount:          count,
			remainingDeviceCount: count,
			possibleNodes:        make(map[graph.NodeID]bool),
		}
	}
	return out
}

// dijkstraItem is one entry in the per-starting-node priority queue.
type dijkstraItem struct {
	nodeID graph.NodeID
	cost   float32
	index  int
}

type dijkstraQueue []*dijkstraItem

func (q dijkstraQueue) Len() int            { return len(q) }
func (q dijkstraQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q dijkstraQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index, q[j].index = i, j }
func (q *dijkstraQueue) Push(x interface{}) {
	it := x.(*dijkstraItem)
	it.index = len(*q)
	*q = append(*q, it)
}
func (q *dijkstraQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

// reachability runs single-source Dijkstra from every starting node,
// bounded by costThreshold, recording the cheapest path to every settled
// candidate in its candidateState.
func reachability(g *graph.Graph, as *graph.AS, starts map[graph.NodeID]*startingNode, costThreshold float32) map[graph.NodeID]*candidateState {
	candidates := make(map[graph.NodeID]*candidateState)

	candidateOf := func(id graph.NodeID) *candidateState {
		c, ok := candidates[id]
		if !ok {
			c = newCandidateState(id)
			candidates[id] = c
		}
		return c
	}

	// deterministic iteration order over starting nodes for reproducible
	// tie-breaking in shared candidate registration.
	startIDs := make([]graph.NodeID, 0, len(starts))
	for id := range starts {
		startIDs = append(startIDs, id)
	}
	sort.Slice(startIDs, func(i, j int) bool { return startIDs[i] < startIDs[j] })

	for _, startID := range startIDs {
		s := starts[startID]
		if _, ok := g.Node(startID); !ok {
			continue
		}

		dist := map[graph.NodeID]float32{startID: 0}
		pred := map[graph.NodeID]graph.NodeID{}
		settled := map[graph.NodeID]bool{}

		pq := &dijkstraQueue{{nodeID: startID, cost: 0}}
		heap.Init(pq)

		for pq.Len() > 0 {
			item := heap.Pop(pq).(*dijkstraItem)
			if settled[item.nodeID] {
				continue
			}
			settled[item.nodeID] = true

			n, ok := g.Node(item.nodeID)
			if !ok {
				continue
			}

			if n.Kind() != graph.KindEdgeDevice {
				c := candidateOf(item.nodeID)
				predID, hasPred := pred[item.nodeID]
				if !hasPred {
					predID = item.nodeID
				}
				c.registerPath(startID, predID, item.cost)
				s.possibleNodes[item.nodeID] = true
			}

			for _, ne := range g.Neighbors(n) {
				if ne.Edge.IsCrossAS() || ne.Node.Kind() == graph.KindEdgeDevice {
					continue
				}
				next := item.cost + ne.Edge.Latency()
				if next > costThreshold {
					continue
				}
				if settled[ne.Node.ID()] {
					continue
				}
				if d, ok := dist[ne.Node.ID()]; ok && d <= next {
					continue
				}
				dist[ne.Node.ID()] = next
				pred[ne.Node.ID()] = item.nodeID
				heap.Push(pq, &dijkstraItem{nodeID: ne.Node.ID(), cost: next})
			}
		}
	}

	return candidates
}

// refreshModified recomputes fog-type assignment for every candidate whose
// modified flag is set, using only currently-active starting nodes.
func refreshModified(candidates map[graph.NodeID]*candidateState, active map[graph.NodeID]*startingNode, fogTypes []placement.FogType) {
	for _, c := range candidates {
		if !c.modified {
			continue
		}
		assignFogType(c, active, fogTypes)
		c.modified = false
	}
}

func assignFogType(c *candidateState, active map[graph.NodeID]*startingNode, fogTypes []placement.FogType) {
	var demand uint32
	var costSum float32
	var costCount int
	for startID, rec := range c.reachedBy {
		if _, ok := active[startID]; !ok {
			continue
		}
		demand += active[startID].deviceCount
		costSum += rec.cost
		costCount++
	}

	if demand == 0 || len(fogTypes) == 0 {
		c.fogType = nil
		c.coveredCount = 0
		c.avgConnectionCost = 0
		return
	}

	var best *placement.FogType
	var bestCostPerConn float32
	for i := range fogTypes {
		t := &fogTypes[i]
		served := min32(demand, t.MaxClients)
		if served == 0 {
			continue
		}
		costPerConn := t.Cost / float32(served)
		if best == nil || costPerConn < bestCostPerConn || (costPerConn == bestCostPerConn && t.Cost < best.Cost) {
			best = t
			bestCostPerConn = costPerConn
		}
	}

	if best == nil {
		c.fogType = nil
		c.coveredCount = 0
		c.avgConnectionCost = 0
		return
	}

	c.fogType = best
	c.coveredCount = min32(demand, best.MaxClients)
	if costCount > 0 {
		c.avgConnectionCost = costSum / float32(costCount)
	} else {
		c.avgConnectionCost = 0
	}
}

// coverageUpdate allocates the winner's covered_count device-slots to
// registered starting nodes in ascending cost order (ties broken by
// starting-node id for determinism), removes fully-covered starting nodes
// from the active set, and unregisters them from every candidate that
// could still reach them.
func coverageUpdate(candidates map[graph.NodeID]*candidateState, active map[graph.NodeID]*startingNode, winner *candidateState) {
	type registration struct {
		startID graph.NodeID
		cost    float32
	}
	regs := make([]registration, 0, len(winner.reachedBy))
	for startID, rec := range winner.reachedBy {
		if _, ok := active[startID]; !ok {
			continue
		}
		regs = append(regs, registration{startID: startID, cost: rec.cost})
	}
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].cost != regs[j].cost {
			return regs[i].cost < regs[j].cost
		}
		return regs[i].startID < regs[j].startID
	})

	remainingCapacity := winner.coveredCount
	for _, reg := range regs {
		if remainingCapacity == 0 {
			break
		}
		s, ok := active[reg.startID]
		if !ok {
			continue
		}
		allocated := min32(s.remainingDeviceCount, remainingCapacity)
		s.remainingDeviceCount -= allocated
		remainingCapacity -= allocated

		if s.remainingDeviceCount == 0 {
			for candID := range s.possibleNodes {
				if c, ok := candidates[candID]; ok {
					c.unregister(s.nodeID)
				}
			}
			delete(active, s.nodeID)
		}
	}

	for id, c := range candidates {
		if len(c.reachedBy) == 0 {
			delete(candidates, id)
		}
	}
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
