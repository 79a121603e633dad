package engine

import (
	"context"
	"sync"

	"github.com/specialistvlad/fogtopo/internal/ctxlog"
)

// DryRun is an Engine that accepts deployments without running them.
type DryRun struct {
	mu        sync.Mutex
	last      *Deployment
	submitted int
}

// NewDryRun creates a DryRun engine.
func NewDryRun() *DryRun {
	return &DryRun{}
}

var _ Engine = (*DryRun)(nil)

// Submit implements Engine.
func (e *DryRun) Submit(ctx context.Context, d *Deployment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.Check(); err != nil {
		return err
	}

	s := d.Summarize()
	logger := ctxlog.FromContext(ctx).With("app_id", d.Application.ID(), "placement", string(d.Placement))
	logger.Info("Deployment accepted.",
		"nodes", s.Nodes,
		"sensors", s.Sensors,
		"actuators", s.Actuators,
		"modules", s.Modules,
		"assignments", s.Assignments,
	)
	for level, count := range s.NodesByLevel {
		logger.Debug("Topology level.", "level", level, "nodes", count)
	}
	for module, devices := range d.Mapping.ByModule() {
		logger.Debug("Pinned module.", "module", module, "devices", len(devices))
	}
	if len(s.Unpinned) > 0 {
		logger.Info("Modules left to the placement strategy.", "modules", s.Unpinned)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = d
	e.submitted++
	return nil
}

// Last returns the most recently accepted deployment, or nil.
func (e *DryRun) Last() *Deployment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Submitted returns how many deployments were accepted.
func (e *DryRun) Submitted() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitted
}
