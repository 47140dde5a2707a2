// Package deviceplacer attaches synthetic EdgeDevice nodes to edge routers
// according to the configured device-type distributions.
package deviceplacer

import (
	"math"
	"math/rand"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
)

// Sampling selects how the per-router, per-device-type count is drawn.
type Sampling int

const (
	// Poisson draws a Poisson-distributed count with the configured mean.
	Poisson Sampling = iota
	// Deterministic rounds avg_per_router to the nearest integer, for
	// reproducible runs.
	Deterministic
)

// Place attaches EdgeDevice nodes to every EdgeRouter in g, for every
// configured DeviceType, and returns the synthesized placements in a
// deterministic order (by AS id, then router id, then device-type index)
// so that under Deterministic sampling two runs over the same graph
// produce byte-identical ordered output.
//
// This stage is single-threaded: it runs after classification completes
// and before the fog placer starts, and it is the only stage that creates
// new graph nodes.
func Place(g *graph.Graph, types []placement.DeviceType, sampling Sampling, rng *rand.Rand) []placement.DevicePlacement {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	var placements []placement.DevicePlacement

	ases := g.ASes()
	sortASesByID(ases)

	for _, as := range ases {
		routers := as.EdgeRouters()
		sortNodesByID(routers)

		for _, router := range routers {
			for _, dt := range types {
				count := sampleCount(dt.AvgPerRouter, sampling, rng)
				total := count * int(dt.ScalingFactor)
				for i := 0; i < total; i++ {
					deviceID := g.NextNodeID()
					binding := &graph.EmulationBinding{
						Container:     dt.Container,
						ScalingFactor: dt.ScalingFactor,
					}
					device, err := g.CreateEdgeDevice(deviceID, as.ID(), binding)
					if err != nil {
						continue
					}
					const noLatency = 0
					const infiniteBandwidth = float32(math.MaxFloat32)
					edgeID := g.NextEdgeID()
					if _, err := g.CreateEdge(edgeID, router.ID(), device.ID(), noLatency, infiniteBandwidth); err != nil {
						continue
					}
					placements = append(placements, placement.DevicePlacement{
						ASID:     as.ID(),
						RouterID: router.ID(),
						DeviceID: device.ID(),
						Type:     dt,
					})
				}
			}
		}
	}

	return placements
}

// sampleCount draws the device count for one (router, device-type) pair.
func sampleCount(mean float32, sampling Sampling, rng *rand.Rand) int {
	if mean <= 0 {
		return 0
	}
	switch sampling {
	case Deterministic:
		return int(math.Round(float64(mean)))
	default:
		return poisson(rng, float64(mean))
	}
}

// poisson draws from a Poisson distribution with the given mean using
// Knuth's multiplication algorithm. No library in the retrieved corpus
// provides a Poisson sampler (DESIGN.md), so this is a small, self-contained
// standard-library routine.
func poisson(rng *rand.Rand, lambda float64) int {
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= rng.Float64()
		if p <= l {
			break
		}
	}
	return k - 1
}

func sortASesByID(ases []*graph.AS) {
	for i := 1; i < len(ases); i++ {
		for j := i; j > 0 && ases[j-1].ID() > ases[j].ID(); j-- {
			ases[j-1], ases[j] = ases[j], ases[j-1]
		}
	}
}

func sortNodesByID(nodes []*graph.Node) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j-1].ID() > nodes[j].ID(); j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
}
