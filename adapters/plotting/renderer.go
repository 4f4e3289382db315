package plotting

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"titrate/domain/titration"
	"titrate/internal"
)

// Renderer draws a titration chart to an image file. The format follows the
// file extension (.png, .svg, .pdf, .jpg, .tif, .eps).
type Renderer struct {
	path   string
	width  vg.Length
	height vg.Length
	logger *internal.Logger
}

// NewRenderer creates a renderer writing a 8x5 inch chart to path
func NewRenderer(path string, logger *internal.Logger) *Renderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Renderer{
		path:   path,
		width:  8 * vg.Inch,
		height: 5 * vg.Inch,
		logger: logger.With("PlotRenderer"),
	}
}

// Name identifies the sink in logs and errors
func (r *Renderer) Name() string {
	return "plot:" + filepath.Base(r.path)
}

// Render builds the line chart and saves it
func (r *Renderer) Render(ctx context.Context, chart titration.Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := Build(chart)
	if err != nil {
		return err
	}
	if err := p.Save(r.width, r.height, r.path); err != nil {
		return fmt.Errorf("failed to save chart to %s: %w", r.path, err)
	}
	r.logger.Debug("saved %d points to %s", len(chart.X), r.path)
	return nil
}

// Build turns a chart into a gonum plot with a fixed pH axis
func Build(chart titration.Chart) (*plot.Plot, error) {
	if len(chart.X) != len(chart.Y) {
		return nil, fmt.Errorf("chart has %d x values and %d y values", len(chart.X), len(chart.Y))
	}
	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = chart.XLabel
	p.Y.Label.Text = chart.YLabel
	p.Y.Min = chart.YMin
	p.Y.Max = chart.YMax
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(chart.X))
	for i := range chart.X {
		pts[i].X = chart.X[i]
		pts[i].Y = chart.Y[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to build curve line: %w", err)
	}
	p.Add(line)
	return p, nil
}

// SupportedFormat reports whether path has an extension the renderer can write
func SupportedFormat(path string) bool {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "png", "svg", "pdf", "jpg", "jpeg", "tif", "tiff", "eps":
		return true
	}
	return false
}
