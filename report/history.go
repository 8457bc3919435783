// Package report records per-generation fitness and plots it
package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lixenwraith/lander/solver"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// History is the fitness trace of one run
type History struct {
	Generations []int
	Best        []float64
	Mean        []float64
	Landed      []int
}

// Record appends pop, skipping a generation already recorded
func (h *History) Record(pop *solver.Population) {
	if n := len(h.Generations); n > 0 && h.Generations[n-1] == pop.Generation {
		return
	}
	h.Generations = append(h.Generations, pop.Generation)
	h.Best = append(h.Best, pop.Stats.BestScore)
	h.Mean = append(h.Mean, pop.Stats.AverageScore)
	h.Landed = append(h.Landed, pop.Landed)
}

func (h *History) Len() int {
	return len(h.Generations)
}

// Plot draws best and mean fitness against generation
func (h *History) Plot(title string) (*plot.Plot, error) {
	if h.Len() == 0 {
		return nil, fmt.Errorf("no generations recorded")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	best := make(plotter.XYs, h.Len())
	mean := make(plotter.XYs, h.Len())
	for i, g := range h.Generations {
		best[i].X, best[i].Y = float64(g), h.Best[i]
		mean[i].X, mean[i].Y = float64(g), h.Mean[i]
	}

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return nil, err
	}
	meanLine, err := plotter.NewLine(mean)
	if err != nil {
		return nil, err
	}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// Save writes the plot to path; the extension picks the format
func (h *History) Save(title, path string) error {
	p, err := h.Plot(title)
	if err != nil {
		return err
	}
	return p.Save(plotWidth, plotHeight, path)
}

// Render writes the plot to w in format (png, svg, pdf ...)
func (h *History) Render(w io.Writer, title, format string) error {
	p, err := h.Plot(title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
