package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/lander/genetic/persistence"
	"github.com/lixenwraith/lander/genetic/tracking"
	"github.com/lixenwraith/lander/report"
	"github.com/lixenwraith/lander/scenario"
	"github.com/lixenwraith/lander/solver"
)

var (
	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Evolve until a route lands or the generation budget runs out",
		Long: `Runs the solver to completion and prints the winning route with its
accumulated commands. Exits non-zero when no route landed.`,
		RunE: runSolve,
	}

	maxGenerations int
	plotPath       string
	dumpPath       string
)

func init() {
	solveCmd.Flags().IntVar(&maxGenerations, "max-generations", 0, "Override the settings generation budget (0 keeps it)")
	solveCmd.Flags().StringVar(&plotPath, "plot", "", "Write a fitness plot to this file (png, svg, pdf)")
	solveCmd.Flags().StringVar(&dumpPath, "dump", "", "Export the final population snapshot to this file")
}

func runSolve(cmd *cobra.Command, args []string) error {
	l, err := loader()
	if err != nil {
		return err
	}
	logger, err := openLogger()
	if err != nil {
		return err
	}
	defer logger.Close()

	s, err := solverSource(l, logger, nil, func(set *scenario.Settings) {
		if maxGenerations > 0 {
			set.MaxGenerations = maxGenerations
		}
	})()
	if err != nil {
		return err
	}
	if s.Settings().MaxGenerations == 0 {
		logger.Warn("no generation budget, solve runs until a route lands")
	}

	start := time.Now()
	history := &report.History{}
	history.Record(s.CurrentPopulation())
	for !s.State().Terminal() {
		s.AdvanceGeneration()
		history.Record(s.CurrentPopulation())
	}
	elapsed := time.Since(start)
	pop := s.CurrentPopulation()

	logger.Info("solve finished",
		slog.String("state", s.State().String()),
		slog.Int("generation", pop.Generation),
		slog.Duration("elapsed", elapsed))

	if plotPath != "" {
		if err := history.Save(fmt.Sprintf("%s (seed %d)", l.ScenarioPath, s.Seed()), plotPath); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	if dumpPath != "" {
		if err := persistence.SaveFile(dumpPath, pop.Snapshot(s.Seed())); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
	}

	printResult(cmd.OutOrStdout(), s, elapsed)
	if !pop.Solved() {
		return fmt.Errorf("no landing after %d generations", pop.Generation)
	}
	return nil
}

// printResult writes the run summary and, when solved, the winning commands one per line
func printResult(w io.Writer, s *solver.Solver, elapsed time.Duration) {
	pop := s.CurrentPopulation()
	fmt.Fprintf(w, "state:      %s\n", s.State())
	fmt.Fprintf(w, "generation: %d\n", pop.Generation)
	fmt.Fprintf(w, "elapsed:    %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "seed:       %d\n", s.Seed())

	index := pop.BestIndex
	if pop.Solved() {
		index = pop.SolvedIndex
	}
	r := pop.Routes[index]
	final := r.Final()
	fmt.Fprintf(w, "route:      %d (%s, %s)\n", index, r.Outcome, r.Reason)
	fmt.Fprintf(w, "fitness:    %.3f\n", r.Fitness)
	fmt.Fprintf(w, "ticks:      %d\n", r.Ticks())
	fmt.Fprintf(w, "final:      x=%.1f y=%.1f vx=%.2f vy=%.2f fuel=%.0f rotate=%d power=%d\n",
		final.X, final.Y, final.VX, final.VY, final.Fuel, final.Rotate, final.Power)
	fmt.Fprintf(w, "flight:     avg speed %.1f, max speed %.1f, min altitude %.1f\n",
		r.Summary.Get("avg_"+tracking.MetricSpeed, 0),
		r.Summary.Get("max_"+tracking.MetricSpeed, 0),
		r.Summary.Get("min_"+tracking.MetricAltitude, 0))

	if !pop.Solved() {
		return
	}
	fmt.Fprintln(w, "commands:")
	for _, c := range r.Accumulated {
		fmt.Fprintln(w, c)
	}
}
