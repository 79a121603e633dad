package app

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/fogtopo/internal/engine"
	"github.com/specialistvlad/fogtopo/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	engine  engine.Engine
	metrics *metrics.Registry
	runID   string
}

// NewApp is the constructor for the main application. Each App gets its own
// logger, metrics registry and run id. A nil engine means engine.DryRun.
func NewApp(outW io.Writer, cfg *Config, eng engine.Engine) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg, outW, runID)
	logger.Debug("Logger configured successfully.")

	if eng == nil {
		eng = engine.NewDryRun()
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		engine:  eng,
		metrics: metrics.NewRegistry(),
		runID:   runID,
	}
}

// RunID returns the identifier attached to every log line of this App.
func (a *App) RunID() string {
	return a.runID
}

// Metrics returns the App's metrics registry. This is primarily for testing.
func (a *App) Metrics() *metrics.Registry {
	return a.metrics
}
