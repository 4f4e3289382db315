package profiling

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"titrate/domain/titration"
)

// CurveProfiler summarizes the shape of a titration curve
type CurveProfiler struct{}

// NewCurveProfiler creates a new curve profiler
func NewCurveProfiler() *CurveProfiler {
	return &CurveProfiler{}
}

// Profile computes pH distribution statistics and the steepest segment of c.
// c must hold at least one point.
func (cp *CurveProfiler) Profile(c titration.Curve) (titration.Stats, error) {
	out := titration.Stats{Points: c.Len()}
	data := stats.Float64Data(c.PH)

	mean, err := stats.Mean(data)
	if err != nil {
		return out, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return out, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return out, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return out, err
	}
	out.MeanPH = mean
	out.MedianPH = median
	out.MinPH = min
	out.MaxPH = max

	out.SteepestVolume, out.SteepestSlope = steepest(c)
	return out, nil
}

// steepest returns the midpoint volume and slope (pH per volume unit) of the
// segment with the largest |dpH/dV|. A single point has no slope.
func steepest(c titration.Curve) (volume, slope float64) {
	n := c.Len()
	if n < 2 {
		if n == 1 {
			return c.Volumes[0], 0
		}
		return 0, 0
	}
	dv := make([]float64, n-1)
	dph := make([]float64, n-1)
	floats.SubTo(dv, c.Volumes[1:], c.Volumes[:n-1])
	floats.SubTo(dph, c.PH[1:], c.PH[:n-1])
	floats.Div(dph, dv)

	mag := make([]float64, n-1)
	for i, s := range dph {
		if s < 0 {
			s = -s
		}
		mag[i] = s
	}
	i := floats.MaxIdx(mag)
	return (c.Volumes[i] + c.Volumes[i+1]) / 2, dph[i]
}
