// Package classifier promotes routers to backbone: cross-AS endpoints are
// promoted first, then high-degree routers, then a deterministic BFS
// reconnects each AS's backbone subgraph.
package classifier

import (
	"sort"
	"sync"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/pkg/logger"
)

// Config holds the classifier's single tuning knob.
type Config struct {
	// BackboneDegreeFactor is the multiplier applied to an AS's average
	// router degree in step 2; routers at or above factor*average are
	// promoted to backbone (default 0.6).
	BackboneDegreeFactor float32
}

// Classify runs all three backbone classification steps over g in place.
// Step 1 (cross-AS promotion) is sequential; steps 2 and 3 run once per AS,
// concurrently across ASes, since every AS owns disjoint nodes.
func Classify(g *graph.Graph, cfg Config, log *logger.Logger) {
	promoted := crossASPromotion(g)
	if log != nil {
		log.Debug("cross-AS promotion complete", "promoted", promoted)
	}

	ases := g.ASes()
	var wg sync.WaitGroup
	wg.Add(len(ases))
	for _, as := range ases {
		go func(as *graph.AS) {
			defer wg.Done()
			highDegreePromotion(g, as, cfg.BackboneDegreeFactor)
			connectBackbone(g, as)
		}(as)
	}
	wg.Wait()
}

// crossASPromotion is step 1: for every edge crossing an AS boundary,
// promote both endpoints to BackboneRouter. Promoting an already-backbone
// node is a no-op.
func crossASPromotion(g *graph.Graph) int {
	promoted := 0
	for _, e := range g.Edges() {
		if !e.IsCrossAS() {
			continue
		}
		for _, id := range [2]graph.NodeID{e.From(), e.To()} {
			n, ok := g.Node(id)
			if !ok || n.Kind() == graph.KindBackboneRouter {
				continue
			}
			as := g.AS(n.ASID())
			if _, err := as.ReplaceByBackbone(g, id); err == nil {
				promoted++
			}
		}
	}
	return promoted
}

// highDegreePromotion is step 2: compute the AS's average router degree and
// promote every EdgeRouter at or above factor*average. Links to edge devices
// do not count towards a router's degree. An AS where every router has the
// same degree has nobody standing above the crowd, so the heuristic
// promotes nobody rather than promoting the whole AS.
func highDegreePromotion(g *graph.Graph, as *graph.AS, factor float32) {
	routers := append(as.EdgeRouters(), as.BackboneRouters()...)
	if len(routers) == 0 {
		return
	}

	degree := func(n *graph.Node) int {
		d := 0
		for _, ne := range g.Neighbors(n) {
			if ne.Node.Kind() != graph.KindEdgeDevice {
				d++
			}
		}
		return d
	}

	var total int
	minDegree, maxDegree := degree(routers[0]), degree(routers[0])
	for _, n := range routers {
		d := degree(n)
		total += d
		if d < minDegree {
			minDegree = d
		}
		if d > maxDegree {
			maxDegree = d
		}
	}
	if minDegree == maxDegree {
		return
	}

	avg := float32(total) / float32(len(routers))
	threshold := factor * avg

	for _, n := range as.EdgeRouters() {
		if float32(degree(n)) >= threshold {
			_, _ = as.ReplaceByBackbone(g, n.ID())
		}
	}
}

// connectBackbone is step 3: the deterministic BFS backbone connector. It
// starts at the smallest-id backbone node in the AS, pinned for
// reproducible output, and, whenever it dequeues a backbone node whose
// predecessor chain runs through edge routers, promotes every edge router
// on that chain.
func connectBackbone(g *graph.Graph, as *graph.AS) {
	start := startingBackboneNode(as)
	if start == nil {
		return
	}

	visited := make(map[graph.NodeID]bool)
	seen := map[graph.NodeID]bool{start.ID(): true}
	predecessor := make(map[graph.NodeID]graph.NodeID) // absence means ⊥

	queue := []graph.NodeID{start.ID()}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			continue
		}
		visited[id] = true

		n, ok := g.Node(id)
		if !ok {
			continue
		}

		if n.Kind() == graph.KindBackboneRouter {
			traceBackPromote(g, as, predecessor, id)
		}

		for _, ne := range g.Neighbors(n) {
			if ne.Edge.IsCrossAS() || ne.Node.Kind() == graph.KindEdgeDevice {
				continue
			}
			m := ne.Node.ID()
			if visited[m] {
				continue
			}
			if seen[m] {
				if n.Kind() == graph.KindBackboneRouter {
					if pred, ok := predecessor[m]; ok {
						if predNode, ok := g.Node(pred); ok && predNode.Kind() == graph.KindEdgeRouter {
							predecessor[m] = id
						}
					}
				}
				continue
			}
			predecessor[m] = id
			seen[m] = true
			queue = append(queue, m)
		}
	}
}

// traceBackPromote walks predecessor[id] backwards, promoting every edge
// router encountered, until the chain hits a backbone node or ⊥.
func traceBackPromote(g *graph.Graph, as *graph.AS, predecessor map[graph.NodeID]graph.NodeID, id graph.NodeID) {
	cur, ok := predecessor[id]
	for ok {
		n, exists := g.Node(cur)
		if !exists || n.Kind() != graph.KindEdgeRouter {
			break
		}
		if n.ASID() == as.ID() {
			_, _ = as.ReplaceByBackbone(g, cur)
		}
		cur, ok = predecessor[cur]
	}
}

// startingBackboneNode returns the backbone router with the smallest id in
// as, or nil if the AS's backbone set is empty.
func startingBackboneNode(as *graph.AS) *graph.Node {
	backbone := as.BackboneRouters()
	if len(backbone) == 0 {
		return nil
	}
	sort.Slice(backbone, func(i, j int) bool { return backbone[i].ID() < backbone[j].ID() })
	return backbone[0]
}
