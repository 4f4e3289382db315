package main

import (
	"titrate/domain/titration"
	"titrate/internal/config"
	"titrate/internal/errors"

	"github.com/spf13/cobra"
)

// scenarioFlags are the scenario overrides shared by curve and react
type scenarioFlags struct {
	file          string
	ratio         string
	kind          string
	unit          string
	cAnalyte      float64
	cTitrant      float64
	vAnalyte      float64
	vTitrant      float64
	initial       float64
	final         float64
	increment     float64
	strongAnalyte bool
	strongTitrant bool
	k             float64
	workers       int
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	d := titration.DefaultScenario()
	fs := cmd.Flags()
	fs.StringVar(&f.file, "scenario", "", "JSON scenario file overlaid on the configured defaults")
	fs.StringVar(&f.ratio, "ratio", d.Ratio.String(), "analyte:titrant:salt[:water] coefficients")
	fs.StringVar(&f.kind, "kind", string(d.Kind), "analyte kind: acid or base")
	fs.StringVar(&f.unit, "unit", string(d.Unit), "volume unit: mL or L")
	fs.Float64Var(&f.cAnalyte, "c-analyte", d.CAnalyte, "analyte concentration (M)")
	fs.Float64Var(&f.cTitrant, "c-titrant", d.CTitrant, "titrant concentration (M)")
	fs.Float64Var(&f.vAnalyte, "v-analyte", d.VAnalyte, "analyte volume")
	fs.Float64Var(&f.vTitrant, "v-titrant", d.VTitrant, "reference titrant volume for the equivalence figures")
	fs.Float64Var(&f.initial, "initial", d.InitialVol, "first titrant volume sampled")
	fs.Float64Var(&f.final, "final", d.FinalVol, "last titrant volume sampled")
	fs.Float64Var(&f.increment, "increment", d.Increment, "titrant volume step")
	fs.BoolVar(&f.strongAnalyte, "strong-analyte", d.StrongAnalyte, "analyte is a strong acid or base")
	fs.BoolVar(&f.strongTitrant, "strong-titrant", d.StrongTitrant, "titrant is a strong acid or base")
	fs.Float64Var(&f.k, "k", d.K, "Ka or Kb of the weak species")
	fs.IntVar(&f.workers, "workers", 0, "parallel sweep workers (overrides WORKERS)")
}

// apply overlays the flags the user actually set onto base
func (f *scenarioFlags) apply(cmd *cobra.Command, base titration.Scenario) (titration.Scenario, error) {
	s := base
	fs := cmd.Flags()

	if f.file != "" {
		loaded, err := config.LoadScenarioFile(f.file, s)
		if err != nil {
			return base, err
		}
		s = loaded
	}

	if fs.Changed("ratio") {
		ratio, err := titration.ParseRatio(f.ratio)
		if err != nil {
			return base, errors.ConfigInvalid("--ratio: %v", err)
		}
		s.Ratio = ratio
	}
	if fs.Changed("kind") {
		kind, err := titration.ParseKind(f.kind)
		if err != nil {
			return base, errors.ConfigInvalid("--kind: %v", err)
		}
		s.Kind = kind
	}
	if fs.Changed("unit") {
		s.Unit = titration.Unit(f.unit)
	}

	floats := map[string]struct {
		src float64
		dst *float64
	}{
		"c-analyte": {f.cAnalyte, &s.CAnalyte},
		"c-titrant": {f.cTitrant, &s.CTitrant},
		"v-analyte": {f.vAnalyte, &s.VAnalyte},
		"v-titrant": {f.vTitrant, &s.VTitrant},
		"initial":   {f.initial, &s.InitialVol},
		"final":     {f.final, &s.FinalVol},
		"increment": {f.increment, &s.Increment},
		"k":         {f.k, &s.K},
	}
	for name, v := range floats {
		if fs.Changed(name) {
			*v.dst = v.src
		}
	}
	if fs.Changed("strong-analyte") {
		s.StrongAnalyte = f.strongAnalyte
	}
	if fs.Changed("strong-titrant") {
		s.StrongTitrant = f.strongTitrant
	}
	return s, nil
}
