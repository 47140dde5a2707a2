// Package pipeline sequences the three core stages — backbone classifier,
// device placer, fog placer — over a single graph and aggregates the
// result, wrapping each stage in the optional timing instrumentation.
package pipeline

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/emufog/emufog/internal/config"
	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
	"github.com/emufog/emufog/internal/service/classifier"
	"github.com/emufog/emufog/internal/service/deviceplacer"
	"github.com/emufog/emufog/internal/service/fogplacer"
	"github.com/emufog/emufog/pkg/logger"
)

// Result is the outcome of a full pipeline run: the final plan plus the run
// id the caller can correlate against log output.
type Result struct {
	RunID string
	Plan  placement.PlanResult
}

// Run executes classification, device placement and fog placement in strict
// sequence over g and returns the aggregated plan. Classification and fog
// placement fan work out across ASes internally and device placement is
// single-threaded; no stage starts before the previous one has fully
// settled the graph.
func Run(g *graph.Graph, cfg *config.Config, log *logger.Logger) Result {
	runID := uuid.NewString()
	if log != nil {
		log = log.WithComponent("pipeline").With("run_id", runID)
	}

	runStage(cfg.TimeMeasuring, log, "classifier", func() {
		classifier.Classify(g, classifier.Config{BackboneDegreeFactor: cfg.BackboneDegreeFactor}, log)
	})

	var devicePlacements []placement.DevicePlacement
	runStage(cfg.TimeMeasuring, log, "deviceplacer", func() {
		sampling := deviceplacer.Poisson
		if cfg.DeviceSampling == config.SamplingDeterministic {
			sampling = deviceplacer.Deterministic
		}
		devicePlacements = deviceplacer.Place(g, cfg.DeviceTypes(), sampling, rand.New(rand.NewSource(time.Now().UnixNano())))
	})

	var plan placement.PlanResult
	runStage(cfg.TimeMeasuring, log, "fogplacer", func() {
		budget := fogplacer.NewBudget(cfg.MaxFogNodes)
		plan = fogplacer.PlaceAll(g, fogplacer.Config{
			CostThreshold: cfg.CostThreshold,
			FogTypes:      cfg.FogTypes(),
		}, budget)
	})
	plan.DevicePlacements = devicePlacements

	return Result{RunID: runID, Plan: plan}
}

// runStage executes fn, optionally logging its wall-clock duration when
// timeMeasuring is enabled.
func runStage(timeMeasuring bool, log *logger.Logger, stage string, fn func()) {
	started := time.Now()
	fn()
	if timeMeasuring && log != nil {
		log.StageTiming(stage, started)
	}
}
