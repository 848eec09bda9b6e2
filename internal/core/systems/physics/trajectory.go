package physics

// Trajectory sampling returns plain sample sequences, so plotting and
// rendering stay separate, swappable consumers.

// Sample is one trajectory point: simulation time plus world-frame
// position and velocity.
type Sample struct {
	T  float64 `json:"t"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// SampleBall steps the ball and records one sample per tick. The model is
// mutated; pass a throwaway ball when the caller needs to keep its state.
func SampleBall(b BallModel, dt float64, steps int) []Sample {
	out := make([]Sample, 0, steps)
	for i := 0; i < steps; i++ {
		b.Step()
		x, y := b.PositionWCS()
		vx, vy := b.VelocityWCS()
		out = append(out, Sample{T: float64(i+1) * dt, X: x, Y: y, VX: vx, VY: vy})
	}
	return out
}

// SampleRobot steps the robot with constant wheel speeds and records one
// sample per tick.
func SampleRobot(r RobotModel, leftSpeed, rightSpeed, dt float64, steps int) []Sample {
	out := make([]Sample, 0, steps)
	for i := 0; i < steps; i++ {
		r.Step(leftSpeed, rightSpeed, ActionNone)
		x, y := r.PositionWCS()
		vx, vy := r.VelocityWCS()
		out = append(out, Sample{T: float64(i+1) * dt, X: x, Y: y, VX: vx, VY: vy})
	}
	return out
}
