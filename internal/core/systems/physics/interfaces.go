package physics

// Lightweight physics abstractions for the 2D match simulation.
// These are intentionally minimal: the kernel never owns other bodies,
// it only reads them through the Collidable capability.

// Collidable is the read-only capability required of any body taking
// part in collision resolution.
type Collidable interface {
	PositionWCS() (x, y float64)
	VelocityWCS() (x, y float64)
	Radius() float64
}

// BallModel advances a ball under friction and resolves the four
// classified ball collisions. Collision detection happens outside the
// model; callers pass in already-classified events.
type BallModel interface {
	Collidable

	// Step advances one tick of friction-damped free flight.
	Step()

	// WallCollision applies a wall rebound for the given orientation.
	// Position is not corrected here; the owning engine handles overshoot.
	WallCollision(orientation CollisionType)

	// ElasticCollision reflects the ball velocity off a round body.
	ElasticCollision(other Collidable)

	// Kick shoots the ball away from the other body along their
	// connecting line, clamped to the ball's velocity limit.
	Kick(other Collidable, speed float64)

	// Receive matches the ball velocity to the other body's velocity.
	Receive(other Collidable)
}

// RobotModel advances a differential-drive robot pose, optionally
// constrained by a classified collision.
type RobotModel interface {
	Collidable

	// Step integrates one tick from the wheel speeds (rad/s) and passes
	// the ball action through unchanged.
	Step(leftSpeed, rightSpeed float64, action BallAction) BallAction

	// CollisionStep integrates one tick with motion restricted by the
	// classified wall or player collision. Calling it with neither is a
	// precondition failure and returns ErrNoCollision.
	CollisionStep(wall, player CollisionType, others []Collidable,
		leftSpeed, rightSpeed float64, action BallAction) (BallAction, error)
}

// BallAction is threaded through robot steps so the owning engine knows
// which ball interaction to apply once the robot motion is committed.
// The robot model itself never mutates a ball.
type BallAction uint8

const (
	ActionNone BallAction = iota
	ActionKick
	ActionReceive
)

func (a BallAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionKick:
		return "kick"
	case ActionReceive:
		return "receive"
	default:
		return "unknown"
	}
}

// CollisionType classifies a contact supplied by the collision detector.
type CollisionType uint8

const (
	CollisionNone CollisionType = iota
	CollisionWallVertical
	CollisionWallHorizontal
	CollisionWallCorner
	CollisionPlayer
)

func (c CollisionType) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionWallVertical:
		return "wall_vertical"
	case CollisionWallHorizontal:
		return "wall_horizontal"
	case CollisionWallCorner:
		return "wall_corner"
	case CollisionPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// IsWall reports whether the type is one of the wall variants.
func (c CollisionType) IsWall() bool {
	switch c {
	case CollisionWallVertical, CollisionWallHorizontal, CollisionWallCorner:
		return true
	default:
		return false
	}
}
