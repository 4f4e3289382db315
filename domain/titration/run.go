package titration

import (
	"time"

	"titrate/domain/core"
)

// Run is a completed titration sweep with everything needed to redraw or report it
type Run struct {
	ID          core.RunID `json:"id"`
	Fingerprint core.Hash  `json:"fingerprint"`
	Scenario    Scenario   `json:"scenario"`
	Curve       Curve      `json:"curve"`
	Summary     Summary    `json:"summary"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Chart rebuilds the plot payload for the run
func (r *Run) Chart() Chart {
	return NewChart(r.Curve, r.Scenario.Unit, r.Scenario.Kind, r.Scenario.Type())
}

// RunInfo is the listing view of an archived run
type RunInfo struct {
	ID            core.RunID `json:"id" db:"id"`
	Fingerprint   core.Hash  `json:"fingerprint" db:"fingerprint"`
	Label         string     `json:"label" db:"label"`
	EquivalencePH float64    `json:"equivalence_ph" db:"equivalence_ph"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Sample is a single evaluated point of a titration with its reaction state
type Sample struct {
	Volume  float64       `json:"volume"`
	PH      float64       `json:"ph"`
	InScale bool          `json:"in_scale"`
	State   ReactionState `json:"state"`
}
