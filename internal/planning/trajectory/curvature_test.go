package trajectory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurvature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		dx, dy, ddx, ddy float64
		want             float64
	}{
		{"straight +x", 3, 0, 0, 0, 0},
		{"straight diagonal", 1, 1, 0, 0, 0},
		{"unit circle ccw", 0, 1, -1, 0, 1},
		{"unit circle cw", 0, 1, 1, 0, -1},
		{"circle radius 2", 0, 2, -2, 0, 0.5},
		{"parabola vertex", 1, 0, 0, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Curvature(tt.dx, tt.dy, tt.ddx, tt.ddy), 1e-12)
		})
	}
}

func TestCurvatureRate(t *testing.T) {
	t.Parallel()

	// Unit circle at t=0: x=cos t, y=sin t. Constant curvature, zero rate.
	assert.InDelta(t, 0.0, CurvatureRate(0, 1, -1, 0, 0, -1), 1e-12)

	// Straight line has zero rate regardless of speed.
	assert.InDelta(t, 0.0, CurvatureRate(2, 0, 0, 0, 0, 0), 1e-12)

	// Cubic y = x³ at x=0: dx=1, ddy=0, dddy=6. κ' = 6.
	assert.InDelta(t, 6.0, CurvatureRate(1, 0, 0, 0, 0, 6), 1e-12)
}

func TestCurvature_ZeroSpeedIsUndefined(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsNaN(Curvature(0, 0, 0, 0)))
	k := Curvature(0, 0, 1, 1)
	assert.True(t, math.IsNaN(k) || math.IsInf(k, 0))
	assert.True(t, math.IsNaN(CurvatureRate(0, 0, 0, 0, 0, 0)))
}

func TestCheckedCurvature(t *testing.T) {
	t.Parallel()

	_, err := CheckedCurvature(0, 0, 1, 1, 0)
	assert.ErrorIs(t, err, ErrZeroSpeed)

	_, err = CheckedCurvatureRate(1e-12, 0, 1, 1, 0, 0, 0)
	assert.ErrorIs(t, err, ErrZeroSpeed)

	_, err = CheckedCurvature(0.05, 0, 0, 1, 0.1)
	assert.ErrorIs(t, err, ErrZeroSpeed, "below caller epsilon")

	k, err := CheckedCurvature(0, 1, -1, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, k, 1e-12)

	dk, err := CheckedCurvatureRate(1, 0, 0, 0, 0, 6, 0)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, dk, 1e-12)
}
