package physics

import (
	"math"
)

// RobotConfig holds the differential-drive parameters. Units are SI;
// wheel speeds are rad/s.
type RobotConfig struct {
	DT            float64 `yaml:"dt"`
	Radius        float64 `yaml:"radius"`
	WheelRadius   float64 `yaml:"wheel_radius"`
	AxisLength    float64 `yaml:"axis_length"`
	FrameRotation float64 `yaml:"frame_rotation"`
}

// DefaultRobotConfig returns the standard robot parameters.
func DefaultRobotConfig() RobotConfig {
	return RobotConfig{
		DT:            0.1,
		Radius:        0.1,
		WheelRadius:   0.02,
		AxisLength:    0.05,
		FrameRotation: RotationIdentity,
	}
}

// RobotBasicModel is the sole RobotModel implementation today: a round
// two-wheel differential-drive robot. The pose lives in the team's ego
// frame (EFCS); world-frame reads go through the frame converter.
type RobotBasicModel struct {
	dt    float64
	frame FrameConverter

	x, y    float64 // EFCS, m
	heading float64 // rad, kept in (-pi, pi]
	vel     float64 // signed forward speed, m/s

	radius      float64
	wheelRadius float64
	axisLength  float64
}

var _ RobotModel = (*RobotBasicModel)(nil)

// NewRobot creates a robot at the given world position. It fails when the
// frame rotation is not one of the two supported team orientations.
func NewRobot(x, y float64, cfg RobotConfig) (*RobotBasicModel, error) {
	frame, err := NewFrameConverter(cfg.FrameRotation)
	if err != nil {
		return nil, err
	}
	ex, ey := frame.ToEgo(x, y)
	return &RobotBasicModel{
		dt:          cfg.DT,
		frame:       frame,
		x:           ex,
		y:           ey,
		radius:      cfg.Radius,
		wheelRadius: cfg.WheelRadius,
		axisLength:  cfg.AxisLength,
	}, nil
}

// Step integrates one tick of the differential-drive model and passes the
// ball action through so the owning engine can apply it afterwards.
func (r *RobotBasicModel) Step(leftSpeed, rightSpeed float64, action BallAction) BallAction {
	r.vel = (r.wheelRadius / 2) * (leftSpeed + rightSpeed)
	r.x += (r.wheelRadius * r.dt / 2) * (leftSpeed + rightSpeed) * math.Cos(r.heading)
	r.y += (r.wheelRadius * r.dt / 2) * (leftSpeed + rightSpeed) * math.Sin(r.heading)
	r.heading = wrapAngle(r.heading + (r.wheelRadius*r.dt/r.axisLength)*(leftSpeed-rightSpeed))
	return action
}

// CollisionStep integrates one tick with a blocked angular sector derived
// from the classified collision. Player contact takes precedence over
// wall contact; only the first entry of the collision list is consulted,
// simultaneous multi-body contact is not resolved.
func (r *RobotBasicModel) CollisionStep(wall, player CollisionType, others []Collidable,
	leftSpeed, rightSpeed float64, action BallAction) (BallAction, error) {

	var blockerAngle, restrictedAngle float64

	switch {
	case player == CollisionPlayer && len(others) > 0:
		other := others[0]
		ox, oy := other.PositionWCS()
		sx, sy := r.PositionWCS()
		blockerAngle = math.Atan2(sy-oy, sx-ox)
		restrictedAngle = math.Pi / 2

	case wall != CollisionNone:
		switch wall {
		case CollisionWallVertical:
			if r.x > 0 {
				blockerAngle = 0
			} else {
				blockerAngle = -math.Pi
			}
			restrictedAngle = math.Pi / 2
			r.x = math.Round(r.x)
		case CollisionWallHorizontal:
			if r.y > 0 {
				blockerAngle = math.Pi / 2
			} else {
				blockerAngle = -math.Pi / 2
			}
			restrictedAngle = math.Pi / 2
			r.y = math.Round(r.y)
		case CollisionWallCorner:
			switch {
			case r.x > 0 && r.y > 0:
				blockerAngle = math.Pi / 4
			case r.x > 0 && r.y < 0:
				blockerAngle = -math.Pi / 4
			case r.x < 0 && r.y > 0:
				blockerAngle = 3 * math.Pi / 4
			default:
				blockerAngle = -3 * math.Pi / 4
			}
			restrictedAngle = 3 * math.Pi / 4
			r.x = math.Round(r.x)
			r.y = math.Round(r.y)
		default:
			return action, ErrNoCollision
		}

	default:
		return action, ErrNoCollision
	}

	r.stepRestricted(blockerAngle, restrictedAngle, leftSpeed, rightSpeed)
	return action, nil
}

// stepRestricted suppresses the translational component of motion when
// the intended travel direction falls inside the blocked sector. Pure
// rotation is never blocked, and subtracting the average speed from both
// wheels preserves any differential-speed-driven rotation.
func (r *RobotBasicModel) stepRestricted(blockerAngle, restrictedAngle, leftSpeed, rightSpeed float64) {
	avg := (leftSpeed + rightSpeed) / 2
	if avg == 0 {
		r.Step(leftSpeed, rightSpeed, ActionNone)
		return
	}

	travel := r.heading
	if avg < 0 {
		travel = wrapAngle(r.heading + math.Pi)
	}
	if angleDistance(blockerAngle, travel) > restrictedAngle {
		r.Step(leftSpeed, rightSpeed, ActionNone)
		return
	}
	r.Step(leftSpeed-avg, rightSpeed-avg, ActionNone)
}

// PositionWCS returns the robot position in world coordinates.
func (r *RobotBasicModel) PositionWCS() (float64, float64) {
	return r.frame.ToWorld(r.x, r.y)
}

// VelocityWCS returns the robot velocity vector in world coordinates.
func (r *RobotBasicModel) VelocityWCS() (float64, float64) {
	return r.frame.ToWorld(r.vel*math.Cos(r.heading), r.vel*math.Sin(r.heading))
}

// Radius returns the robot body radius.
func (r *RobotBasicModel) Radius() float64 {
	return r.radius
}

// PositionEFCS returns the robot position in its team's ego frame.
func (r *RobotBasicModel) PositionEFCS() (float64, float64) {
	return r.x, r.y
}

// Heading returns the pointing angle in the ego frame, in (-pi, pi].
func (r *RobotBasicModel) Heading() float64 {
	return r.heading
}

// TimeStep returns the fixed integration step.
func (r *RobotBasicModel) TimeStep() float64 {
	return r.dt
}

// wrapAngle renormalizes into (-pi, pi]. A single subtraction suffices
// because one tick's angular change is assumed smaller than 2*pi.
func wrapAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		return a - 2*math.Pi*sign(a)
	}
	return a
}

// angleDistance returns the shortest-arc distance between two angles.
func angleDistance(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return math.Abs(d - math.Pi)
}

func sign(a float64) float64 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}
