package physics

import (
	"fmt"
	"math"
)

// The ego field coordinate system (EFCS) sits in the middle of the field
// with positive X towards the opponent's goal. A team plays either along
// the world axes or rotated half a turn, so only the two rotations below
// are valid; this is a deliberate restriction, not a general rotation.
const (
	RotationIdentity = 0.0
	RotationFlipped  = math.Pi
)

// FrameConverter maps points between the world coordinate system (WCS)
// and a team-relative ego frame (EFCS).
type FrameConverter struct {
	rotation float64
}

// NewFrameConverter validates the rotation at construction; anything
// other than 0 or pi is a configuration error.
func NewFrameConverter(rotation float64) (FrameConverter, error) {
	switch rotation {
	case RotationIdentity, RotationFlipped:
		return FrameConverter{rotation: rotation}, nil
	default:
		return FrameConverter{}, fmt.Errorf("%w: %v", ErrFrameRotation, rotation)
	}
}

// ToEgo converts world coordinates into the ego frame.
func (f FrameConverter) ToEgo(x, y float64) (float64, float64) {
	if f.rotation == RotationFlipped {
		return -x, -y
	}
	return x, y
}

// ToWorld converts ego-frame coordinates back into the world frame.
// A half-turn rotation is its own inverse, so both directions reduce to
// the same point reflection.
func (f FrameConverter) ToWorld(x, y float64) (float64, float64) {
	if f.rotation == RotationFlipped {
		return -x, -y
	}
	return x, y
}

// Rotation returns the frame rotation this converter was built with.
func (f FrameConverter) Rotation() float64 {
	return f.rotation
}
