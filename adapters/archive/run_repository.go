package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"titrate/domain/core"
	"titrate/domain/titration"
	"titrate/internal/errors"
	"titrate/ports"

	"github.com/jmoiron/sqlx"
)

// runRepository implements the RunArchive interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a run archive backed by db
func NewRunRepository(db *sqlx.DB) ports.RunArchive {
	return &runRepository{db: db}
}

type runRow struct {
	titration.RunInfo
	Scenario []byte `db:"scenario"`
	Summary  []byte `db:"summary"`
	Curve    []byte `db:"curve"`
}

// Save inserts a completed run
func (r *runRepository) Save(ctx context.Context, run *titration.Run) error {
	scenarioJSON, err := json.Marshal(run.Scenario)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	curveJSON, err := json.Marshal(run.Curve)
	if err != nil {
		return fmt.Errorf("failed to marshal curve: %w", err)
	}

	query := r.db.Rebind(`INSERT INTO runs (
		id, fingerprint, label, equivalence_ph, scenario, summary, curve, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.ExecContext(ctx, query,
		run.ID.String(), run.Fingerprint.String(), label(run.Scenario), run.Summary.EquivalencePH,
		string(scenarioJSON), string(summaryJSON), string(curveJSON), run.CreatedAt.UTC(),
	)
	if err != nil {
		return errors.DatabaseError("failed to save run", err)
	}
	return nil
}

// Get retrieves a run by its ID
func (r *runRepository) Get(ctx context.Context, id core.RunID) (*titration.Run, error) {
	query := r.db.Rebind(`SELECT
		id, fingerprint, label, equivalence_ph, scenario, summary, curve, created_at
	FROM runs WHERE id = ?`)

	var row runRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound(fmt.Sprintf("run %s", id))
		}
		return nil, errors.DatabaseError("failed to get run", err)
	}

	run := &titration.Run{
		ID:          row.ID,
		Fingerprint: row.Fingerprint,
		CreatedAt:   row.CreatedAt.UTC(),
	}
	if err := json.Unmarshal(row.Scenario, &run.Scenario); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	if err := json.Unmarshal(row.Summary, &run.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	if err := json.Unmarshal(row.Curve, &run.Curve); err != nil {
		return nil, fmt.Errorf("failed to unmarshal curve: %w", err)
	}
	return run, nil
}

// List returns the most recent runs first
func (r *runRepository) List(ctx context.Context, limit int) ([]titration.RunInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	query := r.db.Rebind(`SELECT id, fingerprint, label, equivalence_ph, created_at
	FROM runs
	ORDER BY created_at DESC, id DESC
	LIMIT ?`)

	runs := []titration.RunInfo{}
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, errors.DatabaseError("failed to list runs", err)
	}
	for i := range runs {
		runs[i].CreatedAt = runs[i].CreatedAt.In(time.UTC)
	}
	return runs, nil
}

func label(s titration.Scenario) string {
	return fmt.Sprintf("%s %s (%s)", s.Type().Label(), s.Kind, s.Unit)
}
