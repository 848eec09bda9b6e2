package field

import (
	"math"

	"github.com/fieldsim/fieldsim/internal/core/systems/physics"
)

// Geometry describes the playable area: the field is centered on the
// world origin, walls sit at |x| = HalfLength and |y| = HalfWidth.
type Geometry struct {
	HalfLength float64 `yaml:"half_length"`
	HalfWidth  float64 `yaml:"half_width"`
}

// Contact is one tick's classification for a single body.
type Contact struct {
	Wall   physics.CollisionType
	Player physics.CollisionType
	Others []physics.Collidable
}

// None reports whether the contact carries no collision at all.
func (c Contact) None() bool {
	return c.Wall == physics.CollisionNone && c.Player == physics.CollisionNone
}

// Classifier turns raw body geometry into the classified collision
// variants the physics kernel consumes. The kernel itself never performs
// spatial queries; this is its external detection collaborator.
type Classifier struct {
	geom Geometry
}

func NewClassifier(geom Geometry) *Classifier {
	return &Classifier{geom: geom}
}

// WallContact classifies wall contact for a round body from its world
// position and radius.
func (c *Classifier) WallContact(body physics.Collidable) physics.CollisionType {
	x, y := body.PositionWCS()
	r := body.Radius()
	vertical := math.Abs(x)+r >= c.geom.HalfLength
	horizontal := math.Abs(y)+r >= c.geom.HalfWidth

	switch {
	case vertical && horizontal:
		return physics.CollisionWallCorner
	case vertical:
		return physics.CollisionWallVertical
	case horizontal:
		return physics.CollisionWallHorizontal
	default:
		return physics.CollisionNone
	}
}

// PlayerContacts returns the player-collision variant and every body from
// others whose circle overlaps the subject's. The subject itself is
// skipped by identity.
func (c *Classifier) PlayerContacts(subject physics.Collidable, others []physics.Collidable) (physics.CollisionType, []physics.Collidable) {
	var hits []physics.Collidable
	sx, sy := subject.PositionWCS()
	for _, other := range others {
		if other == subject {
			continue
		}
		ox, oy := other.PositionWCS()
		reach := subject.Radius() + other.Radius()
		if (sx-ox)*(sx-ox)+(sy-oy)*(sy-oy) <= reach*reach {
			hits = append(hits, other)
		}
	}
	if len(hits) == 0 {
		return physics.CollisionNone, nil
	}
	return physics.CollisionPlayer, hits
}

// Classify combines wall and player classification for one body.
func (c *Classifier) Classify(subject physics.Collidable, others []physics.Collidable) Contact {
	player, hits := c.PlayerContacts(subject, others)
	return Contact{
		Wall:   c.WallContact(subject),
		Player: player,
		Others: hits,
	}
}

// InReach reports whether two bodies are close enough for a direct ball
// interaction (kick, receive, elastic rebound). The doubled radius sum
// leaves slack for a kicker's reach beyond its body circle.
func (c *Classifier) InReach(a, b physics.Collidable) bool {
	ax, ay := a.PositionWCS()
	bx, by := b.PositionWCS()
	reach := 2 * (a.Radius() + b.Radius())
	return (ax-bx)*(ax-bx)+(ay-by)*(ay-by) <= reach*reach
}
