package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"github.com/specialistvlad/fogtopo/internal/engine"
	"github.com/specialistvlad/fogtopo/internal/idalloc"
	"github.com/specialistvlad/fogtopo/internal/scenario"
	"github.com/specialistvlad/fogtopo/internal/topology"
)

// Run builds one deployment and submits it to the engine. Any build failure
// aborts the run before the engine sees anything.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	d, err := a.Build(ctx)
	if err != nil {
		a.metrics.RecordFailure(err)
		a.flushMetrics(ctx)
		return err
	}

	if a.config.ExportPath != "" {
		if err := a.export(ctx, d.Topology); err != nil {
			a.metrics.RecordFailure(err)
			a.flushMetrics(ctx)
			return err
		}
	}

	if err := a.engine.Submit(ctx, d); err != nil {
		a.metrics.RecordFailure(err)
		a.flushMetrics(ctx)
		return fmt.Errorf("engine rejected deployment: %w", err)
	}
	a.flushMetrics(ctx)

	a.logger.Info("Run finished.", "nodes", d.Topology.Len(), "assignments", d.Mapping.Len(), "placement", string(d.Placement))
	return nil
}

// Build runs the builders in order: topology, application graph, mapping.
// Every run starts from a fresh identifier allocator.
func (a *App) Build(ctx context.Context) (*engine.Deployment, error) {
	logger := ctxlog.FromContext(ctx)
	variant, err := scenario.Lookup(a.config.Scenario)
	if err != nil {
		return nil, err
	}
	alloc := idalloc.New()

	start := time.Now()
	topo, err := a.buildTopology(ctx, variant, alloc)
	if err != nil {
		return nil, fmt.Errorf("failed to build topology: %w", err)
	}
	a.metrics.ObserveStage("topology", time.Since(start))
	a.metrics.RecordTopology(topo)
	logger.Info("Topology built.", "nodes", topo.Len(), "sensors", len(topo.Sensors()), "actuators", len(topo.Actuators()), "next_id", alloc.Peek())

	start = time.Now()
	app, err := variant.Application(ctx, topo)
	if err != nil {
		return nil, fmt.Errorf("failed to build application graph: %w", err)
	}
	a.metrics.ObserveStage("application", time.Since(start))
	a.metrics.RecordApplication(app)

	start = time.Now()
	table, err := variant.Mapping(ctx, app, topo, a.config.CloudMode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve module mapping: %w", err)
	}
	a.metrics.ObserveStage("mapping", time.Since(start))
	a.metrics.RecordMapping(table)

	placement := engine.Edgewards
	if a.config.CloudMode {
		placement = engine.MappingOnly
	}
	logger.Debug("Deployment assembled.", "app_id", app.ID(), "assignments", table.Len(), "placement", string(placement))

	return &engine.Deployment{
		Topology:    topo,
		Application: app,
		Mapping:     table,
		Placement:   placement,
	}, nil
}

func (a *App) buildTopology(ctx context.Context, variant scenario.Variant, alloc *idalloc.Allocator) (*topology.Topology, error) {
	logger := ctxlog.FromContext(ctx)
	if a.config.TopologyPath == "" {
		logger.Debug("Generating topology.", "scenario", variant.Name, "areas", a.config.Areas, "bins", a.config.Bins)
		return topology.Generate(ctx, variant.Schedule(a.config.Areas, a.config.Bins), alloc)
	}

	loader, err := loaderFor(a.config.TopologyPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loading topology description.", "path", a.config.TopologyPath)
	desc, err := loader.Load(ctx, a.config.TopologyPath)
	if err != nil {
		return nil, err
	}
	return topology.FromDescription(ctx, desc, alloc)
}

func (a *App) export(ctx context.Context, topo *topology.Topology) error {
	w, err := writerFor(a.config.ExportPath)
	if err != nil {
		return err
	}
	out, err := w.Write(ctx, topology.Describe(topo))
	if err != nil {
		return fmt.Errorf("failed to render topology: %w", err)
	}
	if err := os.WriteFile(a.config.ExportPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write topology export: %w", err)
	}
	a.logger.Info("Topology exported.", "path", a.config.ExportPath, "bytes", len(out))
	return nil
}

// flushMetrics writes the metrics file if one is configured. A failure here
// is logged, not returned, so it never masks the run's own outcome.
func (a *App) flushMetrics(ctx context.Context) {
	if a.config.MetricsPath == "" {
		return
	}
	if err := a.metrics.WriteToTextfile(a.config.MetricsPath); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to write metrics file.", "path", a.config.MetricsPath, "error", err)
	}
}
