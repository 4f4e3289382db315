package titration

import (
	"fmt"
	"strconv"
	"strings"
)

// Kw is the ion product of water at standard conditions
const Kw = 1e-14

// Neutral is the pH of a strong/strong or strong/weak mixture at equivalence
const Neutral = 7.0

// pH scale bounds; sampled points outside are discarded
const (
	MinPH = 0.0
	MaxPH = 14.0
)

// Kind says whether a species is an acid or a base
type Kind string

const (
	Acid Kind = "acid"
	Base Kind = "base"
)

// ParseKind parses "acid" or "base" (case-insensitive)
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Acid:
		return Acid, nil
	case Base:
		return Base, nil
	}
	return "", fmt.Errorf("kind must be %q or %q, got %q", Acid, Base, s)
}

// Valid reports whether k is acid or base
func (k Kind) Valid() bool {
	return k == Acid || k == Base
}

// Opposite returns base for acid and acid for base
func (k Kind) Opposite() Kind {
	if k == Acid {
		return Base
	}
	return Acid
}

// Title returns "Acid" or "Base"
func (k Kind) Title() string {
	if k == Acid {
		return "Acid"
	}
	return "Base"
}

// Unit is the volume unit a scenario is expressed in
type Unit string

const (
	Milliliters Unit = "mL"
	Liters      Unit = "L"
)

// Valid reports whether u is mL or L
func (u Unit) Valid() bool {
	return u == Milliliters || u == Liters
}

// ToLiters converts v, expressed in u, to liters
func (u Unit) ToLiters(v float64) float64 {
	if u == Milliliters {
		return v / 1000
	}
	return v
}

// FromLiters converts v liters into u
func (u Unit) FromLiters(v float64) float64 {
	if u == Milliliters {
		return v * 1000
	}
	return v
}

// Ratio holds analyte:titrant:salt[:water] stoichiometric coefficients
type Ratio []float64

// DefaultRatio is the 1:1:1:1 neutralization
func DefaultRatio() Ratio {
	return Ratio{1, 1, 1, 1}
}

// Validate checks length is 3 or 4 and every coefficient is positive
func (r Ratio) Validate() error {
	if len(r) != 3 && len(r) != 4 {
		return fmt.Errorf("ratio must have 3 or 4 coefficients, got %d", len(r))
	}
	for i, v := range r {
		if !(v > 0) {
			return fmt.Errorf("ratio coefficient %d must be positive, got %g", i, v)
		}
	}
	return nil
}

// HasWater reports whether the reaction produces water
func (r Ratio) HasWater() bool {
	return len(r) == 4
}

func (r Ratio) String() string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, ":")
}

// Regime is the stage of the titration a reaction state belongs to
type Regime int

const (
	RegimeUnknown Regime = iota
	RegimeInitial
	RegimePreEquivalence
	RegimeAtEquivalence
	RegimePostEquivalence
)

func (r Regime) String() string {
	switch r {
	case RegimeInitial:
		return "initial"
	case RegimePreEquivalence:
		return "pre_equivalence"
	case RegimeAtEquivalence:
		return "at_equivalence"
	case RegimePostEquivalence:
		return "post_equivalence"
	default:
		return "unknown"
	}
}

func (r Regime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Regime) UnmarshalText(b []byte) error {
	for _, candidate := range []Regime{RegimeInitial, RegimePreEquivalence, RegimeAtEquivalence, RegimePostEquivalence} {
		if candidate.String() == string(b) {
			*r = candidate
			return nil
		}
	}
	*r = RegimeUnknown
	return nil
}

// ReactionState is the mixture after one titrant addition.
// Volumes are in liters and amounts in moles.
type ReactionState struct {
	AnalyteMol        float64 `json:"analyte_mol"`
	TitrantMol        float64 `json:"titrant_mol"`
	SaltMol           float64 `json:"salt_mol"`
	WaterMol          float64 `json:"water_mol"`
	VolumeL           float64 `json:"volume_l"`
	TitrantMolNeeded  float64 `json:"titrant_mol_needed"`
	TitrantVolNeededL float64 `json:"titrant_vol_needed_l"`
	Regime            Regime  `json:"regime"`
}

// AnalyteConc is the analyte concentration in mol/L
func (s ReactionState) AnalyteConc() float64 { return s.AnalyteMol / s.VolumeL }

// TitrantConc is the excess titrant concentration in mol/L
func (s ReactionState) TitrantConc() float64 { return s.TitrantMol / s.VolumeL }

// SaltConc is the salt concentration in mol/L
func (s ReactionState) SaltConc() float64 { return s.SaltMol / s.VolumeL }

// TitrationType is the strength combination of analyte and titrant
type TitrationType struct {
	StrongAnalyte bool `json:"strong_analyte"`
	StrongTitrant bool `json:"strong_titrant"`
}

// IsWeakWeak reports whether neither reactant is strong
func (t TitrationType) IsWeakWeak() bool {
	return !t.StrongAnalyte && !t.StrongTitrant
}

// IsWeakStrong reports a weak analyte titrated with a strong titrant
func (t TitrationType) IsWeakStrong() bool {
	return !t.StrongAnalyte && t.StrongTitrant
}

func strength(strong bool) string {
	if strong {
		return "strong"
	}
	return "weak"
}

// Label is e.g. "weak analyte / strong titrant"
func (t TitrationType) Label() string {
	return strength(t.StrongAnalyte) + " analyte / " + strength(t.StrongTitrant) + " titrant"
}

// Point is one sampled (volume, pH) pair
type Point struct {
	Volume float64 `json:"volume"`
	PH     float64 `json:"ph"`
}

// Curve holds the retained samples as parallel, equal-length sequences
type Curve struct {
	Volumes []float64 `json:"volumes"`
	PH      []float64 `json:"ph"`
}

// Append adds a sample, keeping both sequences length-matched
func (c *Curve) Append(volume, ph float64) {
	c.Volumes = append(c.Volumes, volume)
	c.PH = append(c.PH, ph)
}

// Len returns the number of retained samples
func (c Curve) Len() int {
	return len(c.Volumes)
}

// Points returns the curve as (volume, pH) pairs
func (c Curve) Points() []Point {
	pts := make([]Point, len(c.Volumes))
	for i := range c.Volumes {
		pts[i] = Point{Volume: c.Volumes[i], PH: c.PH[i]}
	}
	return pts
}

// InScale reports whether ph lies on the [0,14] scale
func InScale(ph float64) bool {
	return ph >= MinPH && ph <= MaxPH
}

// ParseRatio parses "1:1:1:1" or "1,2,1" into a Ratio
func ParseRatio(s string) (Ratio, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ',' || r == ' '
	})
	ratio := make(Ratio, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("ratio coefficient %q: %w", f, err)
		}
		ratio = append(ratio, v)
	}
	if err := ratio.Validate(); err != nil {
		return nil, err
	}
	return ratio, nil
}
