package chem

import (
	"titrate/domain/titration"
	"titrate/internal/errors"
)

// WeakWeakMessage explains why weak/weak titrations are rejected
const WeakWeakMessage = "weak-weak titrations are not implemented: they have no sharp equivalence point and are poor experimental design"

// Selector picks the pH formula for a reaction state.
// Kind describes the analyte. K is the analyte's Ka/Kb for a weak analyte
// and the titrant's Ka/Kb for a weak titrant; it is unused for strong/strong.
type Selector struct {
	Type titration.TitrationType
	Kind titration.Kind
	K    float64
}

// NewSelector validates the titration setup once so PH only has to dispatch.
func NewSelector(tt titration.TitrationType, kind titration.Kind, k float64) (Selector, error) {
	if tt.IsWeakWeak() {
		return Selector{}, errors.NotImplemented(WeakWeakMessage)
	}
	if err := checkKind(kind); err != nil {
		return Selector{}, err
	}
	if !(tt.StrongAnalyte && tt.StrongTitrant) {
		if err := checkPositive("equilibrium constant", k); err != nil {
			return Selector{}, err
		}
	}
	return Selector{Type: tt, Kind: kind, K: k}, nil
}

// PH returns the pH of the mixture described by s.
func (sel Selector) PH(s titration.ReactionState) (float64, error) {
	switch {
	case sel.Type.IsWeakWeak():
		return 0, errors.NotImplemented(WeakWeakMessage)
	case sel.Type.IsWeakStrong():
		return sel.weakAnalyte(s)
	default:
		return sel.strongAnalyte(s)
	}
}

func (sel Selector) weakAnalyte(s titration.ReactionState) (float64, error) {
	switch s.Regime {
	case titration.RegimeInitial:
		return WeakPH(sel.Kind, sel.K, s.AnalyteConc())
	case titration.RegimePreEquivalence:
		return BufferPH(sel.Kind, sel.K, s.AnalyteMol, s.SaltMol)
	case titration.RegimeAtEquivalence:
		return EquivalencePH(sel.Kind, sel.K, s.SaltConc())
	case titration.RegimePostEquivalence:
		return StrongPH(sel.Kind.Opposite(), s.TitrantConc())
	}
	return 0, errors.InvalidState("no pH formula for regime %s", s.Regime)
}

// strongAnalyte covers strong/weak and strong/strong; they differ only past
// the equivalence point.
func (sel Selector) strongAnalyte(s titration.ReactionState) (float64, error) {
	switch s.Regime {
	case titration.RegimeInitial, titration.RegimePreEquivalence:
		return StrongPH(sel.Kind, s.AnalyteConc())
	case titration.RegimeAtEquivalence:
		return titration.Neutral, nil
	case titration.RegimePostEquivalence:
		if sel.Type.StrongTitrant {
			return StrongPH(sel.Kind.Opposite(), s.TitrantConc())
		}
		return WeakPH(sel.Kind.Opposite(), sel.K, s.TitrantConc())
	}
	return 0, errors.InvalidState("no pH formula for regime %s", s.Regime)
}
