// Package summary groups a finished plan for the CLI's human-readable run
// report, adapted from the teacher's map-then-sort grouping pattern
// (pkg/grouping/grouping.go: GroupByType/GroupByDepth become GroupByFogType
// and GroupByAS here).
package summary

import (
	"fmt"
	"sort"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
)

// Group is one row of a grouped plan summary: how many placements share a
// label, and which node ids they cover.
type Group struct {
	Label   string
	Count   int
	NodeIDs []graph.NodeID
}

// GroupByFogType groups fog placements by their container image, the
// operator-facing way to see "how many of each fog container type got
// deployed".
func GroupByFogType(placements []placement.FogPlacement) []Group {
	buckets := make(map[string][]graph.NodeID)
	for _, p := range placements {
		label := p.Type.Container.Image
		if p.Type.Container.Tag != "" {
			label = fmt.Sprintf("%s:%s", label, p.Type.Container.Tag)
		}
		buckets[label] = append(buckets[label], p.NodeID)
	}
	return toSortedGroups(buckets)
}

// GroupByAS groups fog placements by their autonomous system, so the
// report can show "N fog nodes deployed per AS".
func GroupByAS(placements []placement.FogPlacement) []Group {
	buckets := make(map[string][]graph.NodeID)
	for _, p := range placements {
		label := fmt.Sprintf("AS %d", p.ASID)
		buckets[label] = append(buckets[label], p.NodeID)
	}
	return toSortedGroups(buckets)
}

// GroupDevicesByType groups device placements by their container image.
func GroupDevicesByType(placements []placement.DevicePlacement) []Group {
	buckets := make(map[string][]graph.NodeID)
	for _, p := range placements {
		label := p.Type.Container.Image
		if p.Type.Container.Tag != "" {
			label = fmt.Sprintf("%s:%s", label, p.Type.Container.Tag)
		}
		buckets[label] = append(buckets[label], p.DeviceID)
	}
	return toSortedGroups(buckets)
}

func toSortedGroups(buckets map[string][]graph.NodeID) []Group {
	result := make([]Group, 0, len(buckets))
	for label, ids := range buckets {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		result = append(result, Group{Label: label, Count: len(ids), NodeIDs: ids})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Label < result[j].Label
	})
	return result
}
