package profiling

import (
	"testing"

	"titrate/domain/titration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curveOf(points ...[2]float64) titration.Curve {
	var c titration.Curve
	for _, p := range points {
		c.Append(p[0], p[1])
	}
	return c
}

func TestProfile_Distribution(t *testing.T) {
	c := curveOf([2]float64{0, 3}, [2]float64{1, 4}, [2]float64{2, 5}, [2]float64{3, 10}, [2]float64{4, 11})

	st, err := NewCurveProfiler().Profile(c)
	require.NoError(t, err)
	assert.Equal(t, 5, st.Points)
	assert.InDelta(t, 6.6, st.MeanPH, 1e-12)
	assert.Equal(t, 5.0, st.MedianPH)
	assert.Equal(t, 3.0, st.MinPH)
	assert.Equal(t, 11.0, st.MaxPH)
	assert.Equal(t, 2.5, st.SteepestVolume)
	assert.Equal(t, 5.0, st.SteepestSlope)
}

func TestProfile_FallingCurveKeepsSign(t *testing.T) {
	c := curveOf([2]float64{0, 11}, [2]float64{2, 10}, [2]float64{4, 4}, [2]float64{6, 3})

	st, err := NewCurveProfiler().Profile(c)
	require.NoError(t, err)
	assert.Equal(t, 3.0, st.SteepestVolume)
	assert.Equal(t, -3.0, st.SteepestSlope)
}

func TestProfile_SinglePoint(t *testing.T) {
	st, err := NewCurveProfiler().Profile(curveOf([2]float64{7, 2.5}))
	require.NoError(t, err)
	assert.Equal(t, 2.5, st.MeanPH)
	assert.Equal(t, 7.0, st.SteepestVolume)
	assert.Equal(t, 0.0, st.SteepestSlope)
}

func TestProfile_EmptyCurve(t *testing.T) {
	_, err := NewCurveProfiler().Profile(titration.Curve{})
	assert.Error(t, err)
}
