package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Drag below this magnitude is treated as exactly zero. Guards the
	// division by speed as it approaches zero and keeps a near-resting
	// ball from flickering direction.
	accelerationCutoff = 0.01

	// Below this |vx| the trajectory line is parameterized in y instead
	// of x to avoid a degenerate slope.
	verticalTrajectoryEps = 0.001
)

// BallConfig holds the ball parameters. All units are SI (meters,
// seconds, kilograms).
type BallConfig struct {
	DT                float64 `yaml:"dt"`
	Friction          float64 `yaml:"friction"`
	Mass              float64 `yaml:"mass"`
	BounceCoefficient float64 `yaml:"bounce_coefficient"`
	Radius            float64 `yaml:"radius"`
	MaxVelocity       float64 `yaml:"max_velocity"`
}

// DefaultBallConfig returns the standard match ball parameters.
func DefaultBallConfig() BallConfig {
	return BallConfig{
		DT:                0.1,
		Friction:          0.01,
		Mass:              0.1,
		BounceCoefficient: 0.8,
		Radius:            0.01,
		MaxVelocity:       3,
	}
}

// BallBasicModel is the sole BallModel implementation today: a point-like
// ball under linear velocity-proportional drag. The radius is carried for
// detection range checks but treated as ~0 in the intersection math.
type BallBasicModel struct {
	dt     float64
	x, y   float64 // world coordinates, m
	vx, vy float64 // m/s

	friction float64
	mass     float64
	bounce   float64 // fraction of speed retained on wall impact
	radius   float64
	maxVel   float64
}

var _ BallModel = (*BallBasicModel)(nil)

// NewBall creates a ball resting at the given world position.
func NewBall(x, y float64, cfg BallConfig) *BallBasicModel {
	return &BallBasicModel{
		dt:       cfg.DT,
		x:        x,
		y:        y,
		friction: cfg.Friction,
		mass:     cfg.Mass,
		bounce:   cfg.BounceCoefficient,
		radius:   cfg.Radius,
		maxVel:   cfg.MaxVelocity,
	}
}

// Step advances one tick of free flight under friction. This is a fixed
// step constant-acceleration update, not substepped, and performs no
// collision detection.
func (b *BallBasicModel) Step() {
	vel := math.Sqrt(b.vx*b.vx + b.vy*b.vy)
	acc := -vel * b.friction / b.mass

	var accX, accY float64
	if math.Abs(acc) > accelerationCutoff {
		accX = acc * b.vx / vel
		accY = acc * b.vy / vel
	}

	dtSq := b.dt * b.dt
	b.x += b.vx*b.dt + 0.5*accX*dtSq
	b.y += b.vy*b.dt + 0.5*accY*dtSq
	b.vx += accX * b.dt
	b.vy += accY * b.dt
}

// WallCollision rebounds the ball off a static wall. The position is left
// alone; the owning engine corrects overshoot on its side.
func (b *BallBasicModel) WallCollision(orientation CollisionType) {
	switch orientation {
	case CollisionWallVertical:
		b.vx *= -b.bounce
	case CollisionWallHorizontal:
		b.vy *= -b.bounce
	case CollisionWallCorner:
		b.vx *= -b.bounce
		b.vy *= -b.bounce
	case CollisionNone, CollisionPlayer:
		// not a wall orientation, nothing to rebound off
	}
}

// ElasticCollision bounces the ball off a round body. The ball's
// straight-line trajectory is intersected with the body's circle; the
// incoming velocity is reflected about the center-to-contact normal,
// rescaled to the incoming speed, and the body's own velocity is added.
// No real intersection means the detector mis-fired and the call is a
// defined no-op.
//
// The bounce coefficient is deliberately not applied here, unlike the
// wall rebound. The asymmetry is inherited behavior; keep it until a
// product decision changes it.
func (b *BallBasicModel) ElasticCollision(other Collidable) {
	px, py := other.PositionWCS()
	radius := other.Radius()

	// Quadratic coefficients for the trajectory/circle intersection,
	// parameterized in x for a general heading or in y when the motion
	// is near vertical.
	var qa, qb, qc float64
	alongX := math.Abs(b.vx) >= verticalTrajectoryEps
	if alongX {
		k := b.vy / b.vx
		m := k*b.x - b.y + py
		qa = 1 + k*k
		qb = -2 * (px + m*k)
		qc = px*px + m*m - radius*radius
	} else {
		qa = 1
		qb = -2 * py
		qc = py*py + (b.x-px)*(b.x-px) - radius*radius
	}

	delta := qb*qb - 4*qa*qc
	if delta < 0 {
		return
	}
	deltaRoot := math.Sqrt(delta)
	sol1 := (-qb + deltaRoot) / (2 * qa)
	sol2 := (-qb - deltaRoot) / (2 * qa)

	var p1, p2 mgl64.Vec2
	if alongX {
		lineY := func(x float64) float64 { return b.y + b.vy*(x-b.x)/b.vx }
		p1 = mgl64.Vec2{sol1, lineY(sol1)}
		p2 = mgl64.Vec2{sol2, lineY(sol2)}
	} else {
		p1 = mgl64.Vec2{b.x, sol1}
		p2 = mgl64.Vec2{b.x, sol2}
	}

	// The root nearer the ball is the contact point.
	pos := mgl64.Vec2{b.x, b.y}
	contact := p1
	if p2.Sub(pos).LenSqr() < p1.Sub(pos).LenSqr() {
		contact = p2
	}

	// Reflect the incoming vector m about the normal n from the body's
	// center to the contact point: r = m - 2*((m.n)/(n.n))*n.
	incoming := mgl64.Vec2{b.vx, b.vy}
	normal := contact.Sub(mgl64.Vec2{px, py})
	reflected := incoming.Sub(normal.Mul(2 * incoming.Dot(normal) / normal.Dot(normal)))

	speed := incoming.Len()
	reflSpeed := reflected.Len()
	ovx, ovy := other.VelocityWCS()
	b.vx = ovx + reflected.X()*speed/reflSpeed
	b.vy = ovy + reflected.Y()*speed/reflSpeed
}

// Kick shoots the ball along the line from the other body's center
// through the ball's center, away from the body. The requested speed is
// clamped to the ball's velocity limit and overrides any prior velocity.
func (b *BallBasicModel) Kick(other Collidable, speed float64) {
	px, py := other.PositionWCS()
	dx, dy := b.x-px, b.y-py
	diff := math.Sqrt(dx*dx + dy*dy)
	speed = math.Min(speed, b.maxVel)
	b.vx = speed * dx / diff
	b.vy = speed * dy / diff
}

// Receive matches the ball velocity to the other body's velocity.
func (b *BallBasicModel) Receive(other Collidable) {
	b.vx, b.vy = other.VelocityWCS()
}

// PositionWCS returns the ball position in world coordinates.
func (b *BallBasicModel) PositionWCS() (float64, float64) {
	return b.x, b.y
}

// VelocityWCS returns the ball velocity in world coordinates.
func (b *BallBasicModel) VelocityWCS() (float64, float64) {
	return b.vx, b.vy
}

// Radius returns the ball radius.
func (b *BallBasicModel) Radius() float64 {
	return b.radius
}

// SetVelocity overrides the ball velocity. Used by the engine for
// restarts and by tests to establish initial conditions.
func (b *BallBasicModel) SetVelocity(vx, vy float64) {
	b.vx, b.vy = vx, vy
}

// TimeStep returns the fixed integration step.
func (b *BallBasicModel) TimeStep() float64 {
	return b.dt
}
