package titration

import "fmt"

// Chart is everything a plot sink needs to draw a titration curve
type Chart struct {
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	YMin   float64   `json:"y_min"`
	YMax   float64   `json:"y_max"`
	Title  string    `json:"title,omitempty"`
}

// ChartTitle is only set for weak analytes titrated with a strong titrant
func ChartTitle(kind Kind, tt TitrationType) string {
	if !tt.IsWeakStrong() {
		return ""
	}
	return fmt.Sprintf("Weak %s-Strong %s Titration Curve", kind.Title(), kind.Opposite().Title())
}

// NewChart builds the chart for a curve sampled in unit
func NewChart(c Curve, unit Unit, kind Kind, tt TitrationType) Chart {
	return Chart{
		X:      c.Volumes,
		Y:      c.PH,
		XLabel: fmt.Sprintf("Volume Added (%s)", unit),
		YLabel: "pH",
		YMin:   MinPH,
		YMax:   MaxPH,
		Title:  ChartTitle(kind, tt),
	}
}

// Summary is the textual report of a run plus curve statistics
type Summary struct {
	InitialPH          float64 `json:"initial_ph"`
	EquivalencePH      float64 `json:"equivalence_ph"`
	FinalPH            float64 `json:"final_ph"`
	TitrantVolNeededML float64 `json:"titrant_vol_needed_ml"`
	TitrantMolNeeded   float64 `json:"titrant_mol_needed"`
	Stats              Stats   `json:"stats"`
}

// Stats describes the distribution of retained pH values
type Stats struct {
	Points            int     `json:"points"`
	Discarded         int     `json:"discarded"`
	MeanPH            float64 `json:"mean_ph"`
	MedianPH          float64 `json:"median_ph"`
	MinPH             float64 `json:"min_ph"`
	MaxPH             float64 `json:"max_ph"`
	SteepestVolume    float64 `json:"steepest_volume"`
	SteepestSlope     float64 `json:"steepest_slope"`
	HalfEquivalencePH float64 `json:"half_equivalence_ph,omitempty"`
}
