package titration

import (
	"fmt"
	"math"

	"titrate/domain/core"
)

// MaxSamples bounds the number of titrant volumes one sweep may evaluate
const MaxSamples = 1_000_000

// Scenario is every recognized option of a titration run.
// Volumes are expressed in Unit and concentrations in mol/L.
type Scenario struct {
	Ratio         Ratio   `json:"ratio"`
	CAnalyte      float64 `json:"c_analyte"`
	CTitrant      float64 `json:"c_titrant"`
	VAnalyte      float64 `json:"v_analyte"`
	VTitrant      float64 `json:"v_titrant"`
	Unit          Unit    `json:"unit"`
	InitialVol    float64 `json:"initial_vol"`
	FinalVol      float64 `json:"final_vol"`
	Increment     float64 `json:"increment"`
	StrongAnalyte bool    `json:"strong_analyte"`
	StrongTitrant bool    `json:"strong_titrant"`
	K             float64 `json:"k"`
	Kind          Kind    `json:"kind"`
	// K2 is the titrant constant of a weak/weak titration, which is not modelled
	K2 float64 `json:"k2"`
}

// DefaultScenario is acetic-acid-like weak acid titrated with a strong base
func DefaultScenario() Scenario {
	return Scenario{
		Ratio:         DefaultRatio(),
		CAnalyte:      5,
		CTitrant:      5,
		VAnalyte:      50,
		VTitrant:      25,
		Unit:          Milliliters,
		InitialVol:    0,
		FinalVol:      100,
		Increment:     0.1,
		StrongAnalyte: false,
		StrongTitrant: true,
		K:             1.7e-5,
		Kind:          Acid,
		K2:            1.8e-5,
	}
}

// Type returns the strength combination of the scenario
func (s Scenario) Type() TitrationType {
	return TitrationType{StrongAnalyte: s.StrongAnalyte, StrongTitrant: s.StrongTitrant}
}

// SampleCount is the number of volumes the sweep initial, initial+increment, ... <= final visits
func (s Scenario) SampleCount() int {
	if s.Increment <= 0 || s.FinalVol < s.InitialVol {
		return 0
	}
	return int(math.Floor((s.FinalVol-s.InitialVol)/s.Increment)) + 1
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", core.ErrConfiguration, fmt.Sprintf(format, args...))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Validate checks the scenario once at the boundary. Weak/weak titrations
// pass validation; they are rejected when a pH selector is built.
func (s Scenario) Validate() error {
	if !s.Unit.Valid() {
		return invalid("unit must be %q or %q, got %q", Milliliters, Liters, s.Unit)
	}
	if err := s.Ratio.Validate(); err != nil {
		return invalid("%v", err)
	}
	if !s.Kind.Valid() {
		return invalid("kind must be %q or %q, got %q", Acid, Base, s.Kind)
	}
	if !positive(s.CAnalyte) || !positive(s.CTitrant) {
		return invalid("concentrations must be positive (analyte=%g, titrant=%g)", s.CAnalyte, s.CTitrant)
	}
	if !positive(s.VAnalyte) {
		return invalid("analyte volume must be positive, got %g", s.VAnalyte)
	}
	if s.VTitrant < 0 || math.IsNaN(s.VTitrant) {
		return invalid("titrant volume must be non-negative, got %g", s.VTitrant)
	}
	if s.InitialVol < 0 || math.IsNaN(s.InitialVol) || math.IsNaN(s.FinalVol) || s.FinalVol < s.InitialVol {
		return invalid("sweep range must satisfy 0 <= initial (%g) <= final (%g)", s.InitialVol, s.FinalVol)
	}
	if !positive(s.Increment) {
		return invalid("increment must be positive, got %g", s.Increment)
	}
	if n := s.SampleCount(); n > MaxSamples {
		return invalid("sweep would evaluate %d samples, limit is %d", n, MaxSamples)
	}
	if !(s.StrongAnalyte && s.StrongTitrant) && !positive(s.K) {
		return invalid("equilibrium constant must be positive for a %s titration, got %g", s.Type().Label(), s.K)
	}
	return nil
}
