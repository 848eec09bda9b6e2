package engine

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// BodyState is one body's world-frame state inside a frame.
type BodyState struct {
	ID      string  `json:"id,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Heading float64 `json:"heading,omitempty"`
}

// Frame is the published result of one tick. Digest is a hash of the
// canonical state encoding: two runs from the same configuration and
// command sequence produce the same digest sequence.
type Frame struct {
	Tick   uint64      `json:"tick"`
	Time   float64     `json:"time"`
	Ball   BodyState   `json:"ball"`
	Robots []BodyState `json:"robots"`
	Digest uint64      `json:"digest"`
}

// snapshot captures the world state and its digest after a tick.
func (e *Engine) snapshot() Frame {
	d := xxhash.New()
	writeUint64(d, e.tick)

	bx, by := e.ball.PositionWCS()
	bvx, bvy := e.ball.VelocityWCS()
	writeFloat64(d, bx, by, bvx, bvy)

	frame := Frame{
		Tick: e.tick,
		Time: float64(e.tick) * e.cfg.DT,
		Ball: BodyState{X: bx, Y: by, VX: bvx, VY: bvy},
	}

	frame.Robots = make([]BodyState, len(e.robots))
	for i := range e.robots {
		slot := &e.robots[i]
		x, y := slot.model.PositionWCS()
		vx, vy := slot.model.VelocityWCS()
		heading := slot.model.Heading()
		writeFloat64(d, x, y, vx, vy, heading)

		frame.Robots[i] = BodyState{
			ID:      slot.id.String(),
			X:       x,
			Y:       y,
			VX:      vx,
			VY:      vy,
			Heading: heading,
		}
	}

	frame.Digest = d.Sum64()
	return frame
}

func writeUint64(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = d.Write(buf[:])
}

func writeFloat64(d *xxhash.Digest, vs ...float64) {
	for _, v := range vs {
		writeUint64(d, math.Float64bits(v))
	}
}
