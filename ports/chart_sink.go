package ports

import (
	"context"

	"titrate/domain/titration"
)

// ChartSink consumes a finished titration chart (file renderer, workbook, ...)
type ChartSink interface {
	Name() string
	Render(ctx context.Context, chart titration.Chart) error
}
