package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/lander/log"
	"github.com/lixenwraith/lander/observability"
	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/scenario"
	"github.com/lixenwraith/lander/solver"
)

var (
	rootCmd = &cobra.Command{
		Use:   "lander",
		Short: "Evolve thrust and rotation commands that land a lunar lander",
		Long: `lander runs a genetic algorithm over per-tick control commands until
a route touches down inside the flat landing zone within tolerance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	logLevel     string
	logDir       string
	scenarioPath string
	settingsPath string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", parameter.LogDir, "Directory for the rotated log file")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Scenario file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings file (JSON or YAML), defaults when empty")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(inspectCmd)
}

func loader() (scenario.Loader, error) {
	if scenarioPath == "" {
		return scenario.Loader{}, fmt.Errorf("--scenario is required")
	}
	return scenario.Loader{ScenarioPath: scenarioPath, SettingsPath: settingsPath}, nil
}

func openLogger() (*log.Logger, error) {
	return log.New(log.Options{Level: logLevel, Dir: logDir})
}

// solverSource loads the files fresh on every call
func solverSource(l scenario.Loader, logger *log.Logger, metrics *observability.Metrics, adjust func(*scenario.Settings)) solver.Source {
	return func() (*solver.Solver, error) {
		scn, set, err := l.Load()
		if err != nil {
			return nil, err
		}
		if adjust != nil {
			adjust(&set)
		}
		return solver.New(scn, set, solver.WithLogger(logger), solver.WithMetrics(metrics))
	}
}
