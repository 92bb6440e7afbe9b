// Package plot renders the png figures embedded in the stage reports.
package plot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	seriesColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	accentColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	defaultWidth  = 8 * vg.Inch
	defaultHeight = 5 * vg.Inch
)

// observed drops missing values from xs.
func observed(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create figure directory: %w", err)
	}
	if err := p.Save(defaultWidth, defaultHeight, path); err != nil {
		return fmt.Errorf("failed to save figure %s: %w", path, err)
	}
	return nil
}

// Histogram renders the distribution of xs with the given number of bins.
func Histogram(path, title, xLabel string, xs []float64, bins int) error {
	values := observed(xs)
	if len(values) == 0 {
		return fmt.Errorf("no observed values for histogram %s", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	h.FillColor = seriesColor
	p.Add(h, plotter.NewGrid())

	return save(p, path)
}

// Scatter renders ys against xs, skipping pairs with a missing side.
func Scatter(path, title, xLabel, yLabel string, xs, ys []float64) error {
	points := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		points = append(points, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(points) == 0 {
		return fmt.Errorf("no observed pairs for scatter %s", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	s, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	s.GlyphStyle.Color = seriesColor
	s.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(s, plotter.NewGrid())

	return save(p, path)
}

// Line renders ys over xs as a single line, e.g. a yearly trend.
func Line(path, title, xLabel, yLabel string, xs, ys []float64) error {
	points := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		points = append(points, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(points) == 0 {
		return fmt.Errorf("no observed pairs for line %s", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	l, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("failed to build line: %w", err)
	}
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Color = accentColor
	p.Add(l, plotter.NewGrid())

	return save(p, path)
}

// Box renders a horizontal box plot per named group, used for outlier reports.
func Box(path, title, yLabel string, groups map[string][]float64, order []string) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = yLabel

	names := make([]string, 0, len(order))
	pos := 0.0
	for _, name := range order {
		values := observed(groups[name])
		if len(values) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(24), pos, plotter.Values(values))
		if err != nil {
			return fmt.Errorf("failed to build box for %s: %w", name, err)
		}
		p.Add(b)
		names = append(names, name)
		pos++
	}
	if len(names) == 0 {
		return fmt.Errorf("no observed values for box plot %s", title)
	}
	p.NominalX(names...)

	return save(p, path)
}
