package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/lander/genetic/persistence"
	"github.com/lixenwraith/lander/lander"
)

var (
	inspectCmd = &cobra.Command{
		Use:   "inspect [snapshot file]",
		Short: "Print a summary of an exported population snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	inspectTop int
)

func init() {
	inspectCmd.Flags().IntVar(&inspectTop, "top", 10, "Number of candidates listed, best first")
}

func runInspect(cmd *cobra.Command, args []string) error {
	dto, err := persistence.LoadFile[lander.Chromosome](args[0])
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", args[0], err)
	}
	printSnapshot(cmd.OutOrStdout(), dto, inspectTop)
	return nil
}

func printSnapshot(w io.Writer, dto persistence.PopulationDTO[lander.Chromosome], top int) {
	fmt.Fprintf(w, "run:        %s\n", dto.RunID)
	fmt.Fprintf(w, "generation: %d\n", dto.Generation)
	fmt.Fprintf(w, "seed:       %d\n", dto.Seed)
	fmt.Fprintf(w, "saved:      %s\n", dto.SavedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "candidates: %d\n", len(dto.Candidates))
	if best, ok := dto.Best(); ok {
		fmt.Fprintf(w, "best:       %.3f %s\n", best.Score, best.Label)
	}

	counts := make(map[string]int)
	for _, c := range dto.Candidates {
		counts[c.Label]++
	}
	for _, o := range lander.Outcomes {
		if n := counts[o.String()]; n > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", o, n)
		}
	}

	order := make([]int, len(dto.Candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dto.Candidates[order[a]].Score > dto.Candidates[order[b]].Score
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nINDEX\tSCORE\tOUTCOME\tGENES\tFIRST")
	for _, i := range order[:max(0, min(top, len(order)))] {
		c := dto.Candidates[i]
		first := "-"
		if len(c.Genes) > 0 {
			first = fmt.Sprintf("%+d %+d", c.Genes[0].Rotate, c.Genes[0].Power)
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%s\t%d\t%s\n", i, c.Score, c.Label, len(c.Genes), first)
	}
	tw.Flush()
}
