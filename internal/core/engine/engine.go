package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsim/fieldsim/internal/core/config"
	"github.com/fieldsim/fieldsim/internal/core/field"
	"github.com/fieldsim/fieldsim/internal/core/observability/log"
	"github.com/fieldsim/fieldsim/internal/core/systems/physics"
)

// RobotCommand is one tick's wheel speeds and requested ball action for a
// single robot.
type RobotCommand struct {
	Left   float64
	Right  float64
	Action physics.BallAction
}

// Controller supplies commands for every robot each tick. Robots without
// a command idle.
type Controller interface {
	Commands(tick uint64) map[uuid.UUID]RobotCommand
}

type robotSlot struct {
	id    uuid.UUID
	model *physics.RobotBasicModel
}

// Engine owns the ball and all robots and drives them through one
// fixed-order sequential step per tick. All entity mutation happens on
// the goroutine calling Step; subscribers receive frames across
// channels.
type Engine struct {
	cfg        config.Simulation
	logger     log.Log
	classifier *field.Classifier

	ball   *physics.BallBasicModel
	robots []robotSlot
	tick   uint64

	// Latches the elastic rebound so a sustained contact fires it once.
	ballTouching bool

	mu   sync.Mutex
	subs []chan Frame
}

// New creates an engine with the ball at the field center and no robots.
func New(cfg config.Simulation, logger log.Log) *Engine {
	return &Engine{
		cfg:        cfg,
		logger:     logger,
		classifier: field.NewClassifier(cfg.Field),
		ball:       physics.NewBall(0, 0, cfg.Ball),
	}
}

// AddRobot places a robot at the given world position for the team with
// the given frame rotation and returns its identity.
func (e *Engine) AddRobot(x, y, frameRotation float64) (uuid.UUID, error) {
	robotCfg := e.cfg.Robot
	robotCfg.FrameRotation = frameRotation
	model, err := physics.NewRobot(x, y, robotCfg)
	if err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	e.robots = append(e.robots, robotSlot{id: id, model: model})
	return id, nil
}

// Ball exposes the ball model for initial placement and inspection.
func (e *Engine) Ball() *physics.BallBasicModel {
	return e.ball
}

// Step advances the whole match one tick: robots first in insertion
// order, then the ball, then frame publication.
func (e *Engine) Step(commands map[uuid.UUID]RobotCommand) Frame {
	e.tick++

	colliders := e.colliders()
	for i := range e.robots {
		slot := &e.robots[i]
		cmd := commands[slot.id]

		contact := e.classifier.Classify(slot.model, colliders)
		var action physics.BallAction
		if contact.None() {
			action = slot.model.Step(cmd.Left, cmd.Right, cmd.Action)
		} else {
			var err error
			action, err = slot.model.CollisionStep(contact.Wall, contact.Player, contact.Others,
				cmd.Left, cmd.Right, cmd.Action)
			if err != nil {
				// Classifier and kernel disagree; fall back to a free step.
				e.logger.Warn("collision step rejected",
					log.String("robot", slot.id.String()), log.Error(err))
				action = slot.model.Step(cmd.Left, cmd.Right, cmd.Action)
			}
		}
		e.applyBallAction(slot.model, action)
	}

	e.stepBall()

	frame := e.snapshot()
	e.publish(frame)
	return frame
}

// applyBallAction performs the interaction a robot requested, once its
// own motion is committed. Out-of-reach requests are dropped.
func (e *Engine) applyBallAction(robot *physics.RobotBasicModel, action physics.BallAction) {
	switch action {
	case physics.ActionNone:
		return
	case physics.ActionKick:
		if e.classifier.InReach(e.ball, robot) {
			e.ball.Kick(robot, e.cfg.Engine.KickSpeed)
			e.ballTouching = true
		}
	case physics.ActionReceive:
		if e.classifier.InReach(e.ball, robot) {
			e.ball.Receive(robot)
			e.ballTouching = true
		}
	}
}

// stepBall advances the ball and resolves its classified collisions for
// this tick: an elastic rebound off the first touching robot, then any
// wall rebound.
func (e *Engine) stepBall() {
	e.ball.Step()

	touching := false
	for i := range e.robots {
		if e.classifier.InReach(e.ball, e.robots[i].model) {
			touching = true
			if !e.ballTouching {
				e.ball.ElasticCollision(e.robots[i].model)
			}
			break
		}
	}
	e.ballTouching = touching

	if wall := e.classifier.WallContact(e.ball); wall != physics.CollisionNone {
		e.ball.WallCollision(wall)
	}
}

func (e *Engine) colliders() []physics.Collidable {
	out := make([]physics.Collidable, len(e.robots))
	for i := range e.robots {
		out[i] = e.robots[i].model
	}
	return out
}

// Subscribe registers a frame channel. Slow subscribers lose frames
// rather than stalling the tick loop.
func (e *Engine) Subscribe(buffer int) <-chan Frame {
	ch := make(chan Frame, buffer)
	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()
	return ch
}

func (e *Engine) publish(frame Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Run steps the engine at wall-clock rate until the context is done.
func (e *Engine) Run(ctx context.Context, ctrl Controller) error {
	interval := time.Duration(e.cfg.DT * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.Info("engine started",
		log.Int("robots", len(e.robots)),
		log.Duration("tick_interval", interval))

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopped", log.Uint64("ticks", e.tick))
			return ctx.Err()
		case <-ticker.C:
			var commands map[uuid.UUID]RobotCommand
			if ctrl != nil {
				commands = ctrl.Commands(e.tick)
			}
			frame := e.Step(commands)
			e.logger.Debug("tick",
				log.Uint64("tick", frame.Tick),
				log.Uint64("digest", frame.Digest))
		}
	}
}
