package ports

import (
	"context"

	"titrate/domain/core"
	"titrate/domain/titration"
)

// RunArchive persists completed titration runs
type RunArchive interface {
	Save(ctx context.Context, run *titration.Run) error
	Get(ctx context.Context, id core.RunID) (*titration.Run, error)
	List(ctx context.Context, limit int) ([]titration.RunInfo, error)
}
