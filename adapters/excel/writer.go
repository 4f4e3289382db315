package excel

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"titrate/domain/titration"
	"titrate/internal"
)

// CurveSheet holds the (volume, pH) table; the chart is anchored beside it
const CurveSheet = "Curve"

// WorkbookWriter exports a titration chart as an .xlsx workbook containing the
// data table and a native scatter chart drawn from it.
type WorkbookWriter struct {
	path   string
	logger *internal.Logger
}

// NewWorkbookWriter creates a workbook sink writing to path
func NewWorkbookWriter(path string, logger *internal.Logger) *WorkbookWriter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &WorkbookWriter{path: path, logger: logger.With("WorkbookWriter")}
}

// Name identifies the sink in logs and errors
func (w *WorkbookWriter) Name() string {
	return "xlsx:" + filepath.Base(w.path)
}

// Render writes the workbook
func (w *WorkbookWriter) Render(ctx context.Context, chart titration.Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(chart.X) != len(chart.Y) {
		return fmt.Errorf("chart has %d x values and %d y values", len(chart.X), len(chart.Y))
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CurveSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(CurveSheet, "A1", &[]interface{}{chart.XLabel, chart.YLabel}); err != nil {
		return err
	}
	for i := range chart.X {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(CurveSheet, cell, &[]interface{}{chart.X[i], chart.Y[i]}); err != nil {
			return err
		}
	}

	if len(chart.X) > 0 {
		if err := f.AddChart(CurveSheet, "D2", curveChart(chart)); err != nil {
			return fmt.Errorf("failed to add chart: %w", err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	w.logger.Debug("wrote %d rows to %s", len(chart.X), w.path)
	return nil
}

func curveChart(chart titration.Chart) *excelize.Chart {
	last := len(chart.X) + 1
	yMin, yMax := chart.YMin, chart.YMax

	c := &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", CurveSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", CurveSheet, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", CurveSheet, last),
			Marker:     excelize.ChartMarker{Symbol: "none"},
		}},
		Legend: excelize.ChartLegend{Position: "none"},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: chart.XLabel}},
		},
		YAxis: excelize.ChartAxis{
			Minimum:        &yMin,
			Maximum:        &yMax,
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: chart.YLabel}},
		},
	}
	if chart.Title != "" {
		c.Title = []excelize.RichTextRun{{Text: chart.Title}}
	}
	return c
}
