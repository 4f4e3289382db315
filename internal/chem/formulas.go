package chem

import (
	"math"

	"titrate/domain/titration"
	"titrate/internal/errors"
)

// pKw is -log10(Kw)
const pKw = 14.0

// P is the negative base-10 logarithm (pH, pKa, ...)
func P(x float64) float64 {
	return -math.Log10(x)
}

// Switch maps a constant or concentration to its conjugate through Kw:
// Ka -> Kb, Kb -> Ka, [OH-] -> [H+].
func Switch(k float64) float64 {
	return math.Pow(10, -(pKw - P(k)))
}

func checkKind(kind titration.Kind) error {
	if !kind.Valid() {
		return errors.ConfigInvalid("kind must be %q or %q, got %q", titration.Acid, titration.Base, kind)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return errors.ConfigInvalid("%s must be a positive finite number, got %g", name, v)
	}
	return nil
}

// StrongPH is the pH of a fully dissociated acid or base at conc mol/L.
func StrongPH(kind titration.Kind, conc float64) (float64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	if err := checkPositive("concentration", conc); err != nil {
		return 0, err
	}
	if kind == titration.Acid {
		return P(conc), nil
	}
	return pKw - P(conc), nil
}

// dissociation solves x² + kx - k·conc = 0 written as a=-1, b=-k, c=k·conc.
// When the magnitudes of the two roots differ the small-dissociation
// approximation sqrt(k·conc) is used instead. For any k > 0 they differ,
// so the quadratic root is only taken in the degenerate case.
func dissociation(k, conc float64) float64 {
	a, b, c := -1.0, -k, k*conc
	disc := math.Sqrt(b*b - 4*a*c)
	rootPlus := (-b + disc) / (2 * a)
	rootMinus := (-b - disc) / (2 * a)
	if math.Abs(rootPlus) != math.Abs(rootMinus) {
		return math.Sqrt(k * conc)
	}
	return math.Abs(rootPlus)
}

// WeakPH is the pH of a weak acid (k = Ka) or weak base (k = Kb) at conc mol/L.
func WeakPH(kind titration.Kind, k, conc float64) (float64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	if err := checkPositive("equilibrium constant", k); err != nil {
		return 0, err
	}
	if err := checkPositive("concentration", conc); err != nil {
		return 0, err
	}
	x := dissociation(k, conc)
	if kind == titration.Acid {
		return P(x), nil
	}
	return P(Switch(x)), nil
}

// BufferPH applies Henderson-Hasselbalch to a weak analyte and its salt.
// Moles are used directly since both share the same volume.
func BufferPH(kind titration.Kind, k, analyteMol, saltMol float64) (float64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	if err := checkPositive("equilibrium constant", k); err != nil {
		return 0, err
	}
	if err := checkPositive("analyte amount", analyteMol); err != nil {
		return 0, err
	}
	if err := checkPositive("salt amount", saltMol); err != nil {
		return 0, err
	}
	pH := P(k) + math.Log10(saltMol/analyteMol)
	if kind == titration.Acid {
		return pH, nil
	}
	return pKw - pH, nil
}

// EquivalencePH is the pH set by hydrolysis of the conjugate species left at
// the equivalence point. kind and k describe the analyte; saltConc is mol/L.
func EquivalencePH(kind titration.Kind, k, saltConc float64) (float64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	if err := checkPositive("equilibrium constant", k); err != nil {
		return 0, err
	}
	return WeakPH(kind.Opposite(), Switch(k), saltConc)
}
