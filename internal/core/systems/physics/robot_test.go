package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRobot(t *testing.T, x, y float64) *RobotBasicModel {
	t.Helper()
	r, err := NewRobot(x, y, DefaultRobotConfig())
	require.NoError(t, err)
	return r
}

func TestRobotStationary(t *testing.T) {
	r := newTestRobot(t, 1, 2)

	for i := 0; i < 100; i++ {
		r.Step(0, 0, ActionNone)
	}

	x, y := r.PositionWCS()
	require.InDelta(t, 1, x, 1e-12)
	require.InDelta(t, 2, y, 1e-12)
	require.Equal(t, 0.0, r.Heading())
}

func TestRobotStraightLine(t *testing.T) {
	r := newTestRobot(t, 0, 0)

	// Equal wheel speeds: forward along the heading, no rotation.
	for i := 0; i < 10; i++ {
		r.Step(5, 5, ActionNone)
	}

	x, y := r.PositionWCS()
	require.InDelta(t, 0.1, x, 1e-12)
	require.InDelta(t, 0, y, 1e-12)
	require.Equal(t, 0.0, r.Heading())

	vx, vy := r.VelocityWCS()
	require.InDelta(t, 0.1, vx, 1e-12)
	require.InDelta(t, 0, vy, 1e-12)
}

func TestRobotPureRotation(t *testing.T) {
	r := newTestRobot(t, 0, 0)

	r.Step(5, -5, ActionNone)

	x, y := r.PositionWCS()
	require.InDelta(t, 0, x, 1e-12)
	require.InDelta(t, 0, y, 1e-12)
	// wheelRadius*dt/axisLength * (l-r) = 0.02*0.1/0.05 * 10
	require.InDelta(t, 0.4, r.Heading(), 1e-12)
}

func TestRobotHeadingWrapInvariant(t *testing.T) {
	r := newTestRobot(t, 0, 0)

	speeds := [][2]float64{{8, -8}, {-8, 8}, {10, 2}, {-3, -9}, {7, 7}, {12, -4}}
	prev := r.Heading()
	for i := 0; i < 400; i++ {
		pair := speeds[i%len(speeds)]
		r.Step(pair[0], pair[1], ActionNone)

		h := r.Heading()
		require.Greater(t, h, -math.Pi, "heading out of range at step %d", i)
		require.LessOrEqual(t, h, math.Pi, "heading out of range at step %d", i)
		require.Less(t, math.Abs(h-prev), 2*math.Pi, "discontinuity at step %d", i)
		prev = h
	}
}

func TestRobotActionPassThrough(t *testing.T) {
	r := newTestRobot(t, 0, 0)

	require.Equal(t, ActionKick, r.Step(1, 1, ActionKick))
	require.Equal(t, ActionReceive, r.Step(1, 1, ActionReceive))
	require.Equal(t, ActionNone, r.Step(1, 1, ActionNone))
}

func TestRobotFlippedFrame(t *testing.T) {
	cfg := DefaultRobotConfig()
	cfg.FrameRotation = RotationFlipped
	r, err := NewRobot(1, 2, cfg)
	require.NoError(t, err)

	// World position survives the EFCS round trip.
	x, y := r.PositionWCS()
	require.InDelta(t, 1, x, 1e-12)
	require.InDelta(t, 2, y, 1e-12)

	ex, ey := r.PositionEFCS()
	require.InDelta(t, -1, ex, 1e-12)
	require.InDelta(t, -2, ey, 1e-12)

	// Ego-forward motion comes out reversed in world coordinates.
	r.Step(5, 5, ActionNone)
	vx, vy := r.VelocityWCS()
	require.InDelta(t, -0.1, vx, 1e-12)
	require.InDelta(t, 0, vy, 1e-12)
}

func TestRobotInvalidFrameRotation(t *testing.T) {
	cfg := DefaultRobotConfig()
	cfg.FrameRotation = math.Pi / 2

	_, err := NewRobot(0, 0, cfg)
	require.ErrorIs(t, err, ErrFrameRotation)
}

func TestRobotCollisionStepPrecondition(t *testing.T) {
	r := newTestRobot(t, 0, 0)

	_, err := r.CollisionStep(CollisionNone, CollisionNone, nil, 5, 5, ActionNone)
	require.ErrorIs(t, err, ErrNoCollision)
}

func TestRobotCollisionStepVerticalWall(t *testing.T) {
	t.Run("forward into the wall is blocked", func(t *testing.T) {
		r := newTestRobot(t, 3.9, 0) // heading 0, facing +x

		_, err := r.CollisionStep(CollisionWallVertical, CollisionNone, nil, 5, 5, ActionNone)
		require.NoError(t, err)

		// Translation cancelled, out-of-bounds coordinate snapped.
		x, y := r.PositionWCS()
		require.Equal(t, 4.0, x)
		require.InDelta(t, 0, y, 1e-12)
		require.Equal(t, 0.0, r.Heading())
	})

	t.Run("reversing away is unrestricted", func(t *testing.T) {
		r := newTestRobot(t, 3.9, 0)

		_, err := r.CollisionStep(CollisionWallVertical, CollisionNone, nil, -5, -5, ActionNone)
		require.NoError(t, err)

		x, _ := r.PositionWCS()
		require.InDelta(t, 4.0-0.01, x, 1e-12) // snap to 4, then one step backwards
	})

	t.Run("opposite side flips the blocker", func(t *testing.T) {
		r := newTestRobot(t, -3.9, 0) // facing +x, wall behind

		_, err := r.CollisionStep(CollisionWallVertical, CollisionNone, nil, 5, 5, ActionNone)
		require.NoError(t, err)

		x, _ := r.PositionWCS()
		require.InDelta(t, -4.0+0.01, x, 1e-12) // forward motion away from the wall allowed
	})
}

func TestRobotCollisionStepHorizontalWall(t *testing.T) {
	r := newTestRobot(t, 0, -2.9)
	r.heading = -math.Pi / 2 // facing the lower wall

	_, err := r.CollisionStep(CollisionWallHorizontal, CollisionNone, nil, 5, 5, ActionNone)
	require.NoError(t, err)

	_, y := r.PositionWCS()
	require.Equal(t, -3.0, y)
}

func TestRobotCollisionStepCorner(t *testing.T) {
	r := newTestRobot(t, 3.8, 2.7) // first quadrant corner

	_, err := r.CollisionStep(CollisionWallCorner, CollisionNone, nil, 5, 5, ActionNone)
	require.NoError(t, err)

	// Heading 0 is inside the wide 3*pi/4 sector around pi/4: blocked,
	// both coordinates snapped.
	x, y := r.PositionWCS()
	require.Equal(t, 4.0, x)
	require.Equal(t, 3.0, y)
}

func TestRobotCollisionStepRotationNeverBlocked(t *testing.T) {
	r := newTestRobot(t, 3.9, 0)

	_, err := r.CollisionStep(CollisionWallVertical, CollisionNone, nil, 5, -5, ActionNone)
	require.NoError(t, err)

	x, _ := r.PositionWCS()
	require.Equal(t, 4.0, x)
	require.InDelta(t, 0.4, r.Heading(), 1e-12) // spun in place
}

func TestRobotCollisionStepPlayer(t *testing.T) {
	// The blocked sector is centered on the direction from the other
	// body to this robot.
	other := &stubBody{x: 1, y: 0, radius: 0.1}

	t.Run("travel inside the sector is blocked", func(t *testing.T) {
		r := newTestRobot(t, 0, 0)
		r.heading = math.Pi // facing away from the contact

		_, err := r.CollisionStep(CollisionNone, CollisionPlayer, []Collidable{other}, 5, 5, ActionNone)
		require.NoError(t, err)

		x, y := r.PositionWCS()
		require.InDelta(t, 0, x, 1e-12)
		require.InDelta(t, 0, y, 1e-12)
	})

	t.Run("travel outside the sector proceeds", func(t *testing.T) {
		r := newTestRobot(t, 0, 0) // heading 0

		_, err := r.CollisionStep(CollisionNone, CollisionPlayer, []Collidable{other}, 5, 5, ActionNone)
		require.NoError(t, err)

		x, _ := r.PositionWCS()
		require.InDelta(t, 0.01, x, 1e-12)
	})

	t.Run("action passes through", func(t *testing.T) {
		r := newTestRobot(t, 0, 0)

		action, err := r.CollisionStep(CollisionNone, CollisionPlayer, []Collidable{other}, 5, 5, ActionKick)
		require.NoError(t, err)
		require.Equal(t, ActionKick, action)
	})
}

func TestAngleDistance(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{math.Pi, -math.Pi, 0},
		{math.Pi / 2, -math.Pi / 2, math.Pi},
		{3 * math.Pi / 4, -3 * math.Pi / 4, math.Pi / 2},
		{0.1, -0.1, 0.2},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.want, angleDistance(tt.a, tt.b), 1e-12)
		require.InDelta(t, tt.want, angleDistance(tt.b, tt.a), 1e-12)
	}
}
