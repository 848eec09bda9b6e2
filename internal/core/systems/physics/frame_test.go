package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameConverterIdentity(t *testing.T) {
	f, err := NewFrameConverter(RotationIdentity)
	require.NoError(t, err)

	x, y := f.ToEgo(1.5, -2)
	require.Equal(t, 1.5, x)
	require.Equal(t, -2.0, y)

	x, y = f.ToWorld(1.5, -2)
	require.Equal(t, 1.5, x)
	require.Equal(t, -2.0, y)
}

func TestFrameConverterFlipped(t *testing.T) {
	f, err := NewFrameConverter(RotationFlipped)
	require.NoError(t, err)

	x, y := f.ToEgo(1.5, -2)
	require.Equal(t, -1.5, x)
	require.Equal(t, 2.0, y)

	// Round trip returns the original point.
	x, y = f.ToWorld(x, y)
	require.Equal(t, 1.5, x)
	require.Equal(t, -2.0, y)
}

func TestFrameConverterRejectsOtherRotations(t *testing.T) {
	for _, rotation := range []float64{math.Pi / 2, -math.Pi, 0.1, math.NaN()} {
		_, err := NewFrameConverter(rotation)
		require.ErrorIs(t, err, ErrFrameRotation, "rotation %v", rotation)
	}
}
