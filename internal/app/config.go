package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/fogtopo/internal/scenario"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// TopologyPath loads the device tree from an .hcl/.yaml file or a
	// directory of .hcl files. Empty means generate it from Areas and Bins.
	TopologyPath string
	Areas        int
	Bins         int

	Scenario  string
	CloudMode bool

	ExportPath  string // .hcl, .yaml or .yml
	MetricsPath string // Prometheus text format

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Scenario == "" {
		cfg.Scenario = scenario.Classic.Name
	}
	if _, err := scenario.Lookup(cfg.Scenario); err != nil {
		return nil, err
	}

	if cfg.TopologyPath == "" {
		if cfg.Areas < 1 || cfg.Bins < 1 {
			return nil, fmt.Errorf("areas and bins must be at least 1 when no topology file is given (got %d, %d)", cfg.Areas, cfg.Bins)
		}
	}

	if cfg.ExportPath != "" {
		if _, err := writerFor(cfg.ExportPath); err != nil {
			return nil, err
		}
	}
	if cfg.ExportPath != "" && cfg.ExportPath == cfg.TopologyPath {
		return nil, errors.New("export path must differ from the topology path")
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = LogFormatText
	}
	if err := checkLogFormat(cfg.LogFormat); err != nil {
		return nil, err
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return &cfg, nil
}
