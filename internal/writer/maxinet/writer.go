// Package maxinet renders an emulation plan as a MaxiNet deployment script:
// a small Python-literal template naming each node's Docker image and tag.
// Container resource limits (memory, CPU share) are not written.
package maxinet

import (
	"fmt"
	"io"
	"sort"

	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
)

// Entry is one row of the ordered (AS, classified node, optional fog
// placement, device placements) tuple list handed to the exporter.
type Entry struct {
	ASID          graph.ASID
	Node          *graph.Node
	FogPlacement  *placement.FogPlacement
	DevicePlaced  []placement.DevicePlacement
}

// Write renders entries as a MaxiNet Python deployment script to w.
func Write(w io.Writer, entries []Entry) error {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ASID != entries[j].ASID {
			return entries[i].ASID < entries[j].ASID
		}
		return entries[i].Node.ID() < entries[j].Node.ID()
	})

	if _, err := fmt.Fprintln(w, "#!/usr/bin/env python"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "from MaxiNet.Frontend import maxinet"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "topo = maxinet.Topology()"); err != nil {
		return err
	}

	for _, e := range entries {
		if err := writeEntry(w, e); err != nil {
			return err
		}
	}

	return nil
}

func writeEntry(w io.Writer, e Entry) error {
	n := e.Node
	image, tag := "", ""
	if binding := n.Emulation(); binding != nil {
		image, tag = binding.Container.Image, binding.Container.Tag
	} else if e.FogPlacement != nil {
		image, tag = e.FogPlacement.Type.Container.Image, e.FogPlacement.Type.Container.Tag
	}

	_, err := fmt.Fprintf(w, "topo.addDocker('n%d_as%d', image='%s:%s', kind='%s')\n",
		n.ID(), e.ASID, image, tag, n.Kind())
	if err != nil {
		return err
	}

	if e.FogPlacement != nil {
		_, err = fmt.Fprintf(w, "# fog placement on n%d: type cost=%.2f covered=%d avg_conn_cost=%.2f\n",
			n.ID(), e.FogPlacement.Type.Cost, e.FogPlacement.CoveredCount, e.FogPlacement.AvgConnectionCost)
		if err != nil {
			return err
		}
	}

	for _, d := range e.DevicePlaced {
		_, err = fmt.Fprintf(w, "topo.addDocker('device%d_on_n%d', image='%s:%s')\n",
			d.DeviceID, d.RouterID, d.Type.Container.Image, d.Type.Container.Tag)
		if err != nil {
			return err
		}
	}

	return nil
}
