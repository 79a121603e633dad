package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/fogtopo/internal/app"
	"github.com/specialistvlad/fogtopo/internal/scenario"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("fogtopo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
fogtopo - builds fog computing deployments: device tree, application graph
and module mapping.

Usage:
  fogtopo [options] [TOPOLOGY_PATH]

Arguments:
  TOPOLOGY_PATH
    Optional .hcl/.yaml topology file, or a directory of .hcl files. When
    omitted the tree is generated from --areas and --bins.

Options:
`)
		flagSet.PrintDefaults()
	}

	topologyFlag := flagSet.String("topology", "", "Path to the topology file or directory.")
	tFlag := flagSet.String("t", "", "Path to the topology file or directory (shorthand).")
	areasFlag := flagSet.Int("areas", scenario.DefaultAreas, "Number of areas under the proxy server when generating.")
	binsFlag := flagSet.Int("bins", scenario.DefaultBinsPerArea, "Number of bins per area when generating.")
	scenarioFlag := flagSet.String("scenario", scenario.Classic.Name, fmt.Sprintf("Deployment scenario. Options: '%s' or '%s'.", scenario.Classic.Name, scenario.Ultrasonic.Name))
	cloudFlag := flagSet.Bool("cloud", false, "Pin the master module to the cloud and place by mapping only.")
	exportFlag := flagSet.String("export", "", "Write the built topology to this .hcl/.yaml file.")
	metricsFlag := flagSet.String("metrics-out", "", "Write Prometheus metrics for the run to this file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *topologyFlag != "" {
		path = *topologyFlag
	} else if *tFlag != "" {
		path = *tFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Topology path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		TopologyPath: path,
		Areas:        *areasFlag,
		Bins:         *binsFlag,
		Scenario:     *scenarioFlag,
		CloudMode:    *cloudFlag,
		ExportPath:   *exportFlag,
		MetricsPath:  *metricsFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
