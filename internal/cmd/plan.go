package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emufog/emufog/internal/config"
	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
	"github.com/emufog/emufog/internal/reader/brite"
	"github.com/emufog/emufog/internal/reader/caida"
	"github.com/emufog/emufog/internal/service/pipeline"
	"github.com/emufog/emufog/internal/summary"
	"github.com/emufog/emufog/internal/writer/maxinet"
	"github.com/emufog/emufog/pkg/logger"
)

// Exit codes distinguish success, a fatal integrity/config error, and a
// placement failure that still emits a partial plan.
const (
	exitSuccess          = 0
	exitConfigOrInputErr = 2
	exitPlacementFailure = 3
)

var (
	topologyType string
	outputPath   string
	inputFiles   []string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the full classification/placement pipeline and emit a deployment script",
	Run:   runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&topologyType, "type", "t", "brite", "input topology format: brite|caida")
	planCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output deployment script path (defaults to stdout)")
	planCmd.Flags().StringArrayVarP(&inputFiles, "file", "f", nil, "input topology file(s)")
}

func runPlan(cmd *cobra.Command, args []string) {
	log := logger.New("info")
	if verbose {
		log = logger.New("debug")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Error("failed to load config")
		os.Exit(exitConfigOrInputErr)
	}

	g := graph.New()
	if err := readTopology(g, log); err != nil {
		log.WithError(err).Error("failed to read topology")
		os.Exit(exitConfigOrInputErr)
	}

	result := pipeline.Run(g, cfg, log)

	if err := writePlan(g, result); err != nil {
		log.WithError(err).Error("failed to write deployment script")
		os.Exit(exitConfigOrInputErr)
	}

	printReport(result)

	if !result.Plan.Success {
		os.Exit(exitPlacementFailure)
	}
}

func readTopology(g *graph.Graph, log *logger.Logger) error {
	switch topologyType {
	case "brite":
		for _, path := range inputFiles {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			errs := brite.Read(f, g)
			f.Close()
			if errs.HasErrors() {
				log.Warn("brite reader skipped malformed records", "file", path, "counts", errs.Counts)
			}
		}
		return nil
	case "caida":
		if len(inputFiles) != 3 {
			return fmt.Errorf("caida format requires exactly 3 files (.nodes.geo, .nodes.as, .links), got %d", len(inputFiles))
		}
		files := make([]*os.File, 3)
		for i, path := range inputFiles {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			files[i] = f
			defer f.Close()
		}
		errs := caida.Read(files[0], files[1], files[2], g, nil)
		if errs.HasErrors() {
			log.Warn("caida reader skipped malformed records", "counts", errs.Counts)
		}
		return nil
	default:
		return fmt.Errorf("unsupported topology type %q", topologyType)
	}
}

func writePlan(g *graph.Graph, result pipeline.Result) error {
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	fogByNode := make(map[graph.NodeID]placement.FogPlacement, len(result.Plan.FogPlacements))
	for _, p := range result.Plan.FogPlacements {
		fogByNode[p.NodeID] = p
	}
	devicesByRouter := make(map[graph.NodeID][]placement.DevicePlacement)
	for _, d := range result.Plan.DevicePlacements {
		devicesByRouter[d.RouterID] = append(devicesByRouter[d.RouterID], d)
	}

	var entries []maxinet.Entry
	for _, n := range g.AllNodes() {
		if n.IsEdgeDevice() {
			continue
		}
		entry := maxinet.Entry{ASID: n.ASID(), Node: n, DevicePlaced: devicesByRouter[n.ID()]}
		if fp, ok := fogByNode[n.ID()]; ok {
			fp := fp
			entry.FogPlacement = &fp
		}
		entries = append(entries, entry)
	}

	return maxinet.Write(out, entries)
}

func printReport(result pipeline.Result) {
	fmt.Printf("run %s: success=%v fog_placements=%d device_placements=%d\n",
		result.RunID, result.Plan.Success, len(result.Plan.FogPlacements), len(result.Plan.DevicePlacements))
	for _, g := range summary.GroupByAS(result.Plan.FogPlacements) {
		fmt.Printf("  %s: %d fog node(s)\n", g.Label, g.Count)
	}
	for _, g := range summary.GroupByFogType(result.Plan.FogPlacements) {
		fmt.Printf("  %s: %d placement(s)\n", g.Label, g.Count)
	}
	for _, g := range summary.GroupDevicesByType(result.Plan.DevicePlacements) {
		fmt.Printf("  %s: %d device(s)\n", g.Label, g.Count)
	}
}
