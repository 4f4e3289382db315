// Package chem holds the closed-form acid-base chemistry: neutralization
// stoichiometry, the pH formula library and the regime-based pH selector.
package chem

import (
	"titrate/domain/titration"
	"titrate/internal/errors"
)

// React neutralizes vTitrant of titrant (concentration cTitrant) into vAnalyte
// of analyte (concentration cAnalyte). Volumes are expressed in unit and
// concentrations in mol/L. The returned state carries its regime tag.
func React(ratio titration.Ratio, cAnalyte, cTitrant, vAnalyte, vTitrant float64, unit titration.Unit) (titration.ReactionState, error) {
	if !unit.Valid() {
		return titration.ReactionState{}, errors.ConfigInvalid("unit error: unit must be %q or %q, got %q", titration.Milliliters, titration.Liters, unit)
	}
	if err := ratio.Validate(); err != nil {
		return titration.ReactionState{}, errors.ConfigInvalid("ratio error: %v", err)
	}
	if !(cTitrant > 0) || cAnalyte < 0 || vAnalyte < 0 || vTitrant < 0 {
		return titration.ReactionState{}, errors.ConfigInvalid("concentrations and volumes must be non-negative with a positive titrant concentration")
	}

	vAnalyteL := unit.ToLiters(vAnalyte)
	vTitrantL := unit.ToLiters(vTitrant)
	molAnalyte := vAnalyteL * cAnalyte
	molTitrant := vTitrantL * cTitrant

	state := titration.ReactionState{
		VolumeL:          vAnalyteL + vTitrantL,
		TitrantMolNeeded: molAnalyte / ratio[0] * ratio[1],
	}
	state.TitrantVolNeededL = state.TitrantMolNeeded / cTitrant

	analyteEq := molAnalyte / ratio[0]
	titrantEq := molTitrant / ratio[1]
	if analyteEq <= titrantEq {
		state.AnalyteMol = 0
		state.TitrantMol = molTitrant - analyteEq*ratio[1]
		state.SaltMol = analyteEq * ratio[2]
		if ratio.HasWater() {
			state.WaterMol = analyteEq * ratio[3]
		}
	} else {
		state.TitrantMol = 0
		state.AnalyteMol = molAnalyte - titrantEq*ratio[0]
		state.SaltMol = titrantEq * ratio[2]
		if ratio.HasWater() {
			state.WaterMol = titrantEq * ratio[3]
		}
	}

	regime, err := Classify(state)
	if err != nil {
		return titration.ReactionState{}, err
	}
	state.Regime = regime
	return state, nil
}

// Classify tags a reaction state with the titration regime it belongs to.
func Classify(s titration.ReactionState) (titration.Regime, error) {
	if s.AnalyteMol < 0 || s.TitrantMol < 0 || s.SaltMol < 0 {
		return titration.RegimeUnknown, errors.InvalidState("negative amount (analyte=%g titrant=%g salt=%g)", s.AnalyteMol, s.TitrantMol, s.SaltMol)
	}
	switch {
	case s.AnalyteMol > 0 && s.TitrantMol == 0 && s.SaltMol == 0:
		return titration.RegimeInitial, nil
	case s.AnalyteMol > 0 && s.TitrantMol == 0:
		return titration.RegimePreEquivalence, nil
	case s.AnalyteMol == 0 && s.TitrantMol == 0:
		return titration.RegimeAtEquivalence, nil
	case s.TitrantMol > 0 && s.AnalyteMol == 0:
		return titration.RegimePostEquivalence, nil
	}
	return titration.RegimeUnknown, errors.InvalidState("analyte=%g titrant=%g salt=%g matches no regime", s.AnalyteMol, s.TitrantMol, s.SaltMol)
}

// Reaction fixes everything about a titration except the titrant volume.
type Reaction struct {
	Ratio    titration.Ratio
	CAnalyte float64
	CTitrant float64
	VAnalyte float64
	Unit     titration.Unit
}

// At reacts vTitrant (in r.Unit) of titrant with the analyte.
func (r Reaction) At(vTitrant float64) (titration.ReactionState, error) {
	return React(r.Ratio, r.CAnalyte, r.CTitrant, r.VAnalyte, vTitrant, r.Unit)
}
