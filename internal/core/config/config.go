package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fieldsim/fieldsim/internal/core/field"
	"github.com/fieldsim/fieldsim/internal/core/systems/physics"
)

// Simulation is the root configuration document for a match run.
type Simulation struct {
	// DT is the fixed simulation time step in seconds, shared by every
	// integrator.
	DT float64 `yaml:"dt"`

	Field  field.Geometry      `yaml:"field"`
	Ball   physics.BallConfig  `yaml:"ball"`
	Robot  physics.RobotConfig `yaml:"robot"`
	Engine Engine              `yaml:"engine"`
}

// Engine holds the match-engine and streaming settings.
type Engine struct {
	// KickSpeed is the ball speed requested when a robot kicks, before
	// the ball clamps it to its own limit.
	KickSpeed  float64 `yaml:"kick_speed"`
	ListenAddr string  `yaml:"listen_addr"`
	LogLevel   string  `yaml:"log_level"`
}

// Default returns the standard match configuration.
func Default() Simulation {
	return Simulation{
		DT:    0.1,
		Field: field.Geometry{HalfLength: 4.5, HalfWidth: 3},
		Ball:  physics.DefaultBallConfig(),
		Robot: physics.DefaultRobotConfig(),
		Engine: Engine{
			KickSpeed:  5,
			ListenAddr: "127.0.0.1:8080",
			LogLevel:   "info",
		},
	}
}

// Load parses a YAML document over the defaults and validates the result.
func Load(data []byte) (Simulation, error) {
	cfg := Default()
	// Leave the per-integrator steps unset so the shared dt propagates
	// unless the document overrides them individually.
	cfg.Ball.DT = 0
	cfg.Robot.DT = 0
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Simulation{}, fmt.Errorf("parse simulation config: %w", err)
	}
	if cfg.Ball.DT == 0 {
		cfg.Ball.DT = cfg.DT
	}
	if cfg.Robot.DT == 0 {
		cfg.Robot.DT = cfg.DT
	}
	if err := cfg.Validate(); err != nil {
		return Simulation{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses a YAML configuration file.
func LoadFile(path string) (Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Simulation{}, fmt.Errorf("read simulation config: %w", err)
	}
	return Load(data)
}

// Validate checks every physical parameter the kernel's invariants depend
// on.
func (s Simulation) Validate() error {
	if s.DT <= 0 {
		return fmt.Errorf("dt must be positive, got %v", s.DT)
	}
	if s.Field.HalfLength <= 0 || s.Field.HalfWidth <= 0 {
		return fmt.Errorf("field dimensions must be positive, got %vx%v", s.Field.HalfLength, s.Field.HalfWidth)
	}
	if s.Ball.Mass <= 0 {
		return fmt.Errorf("ball mass must be positive, got %v", s.Ball.Mass)
	}
	if s.Ball.Radius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %v", s.Ball.Radius)
	}
	if s.Ball.Friction < 0 {
		return fmt.Errorf("ball friction must not be negative, got %v", s.Ball.Friction)
	}
	if s.Ball.BounceCoefficient < 0 || s.Ball.BounceCoefficient > 1 {
		return fmt.Errorf("ball bounce coefficient must be in [0, 1], got %v", s.Ball.BounceCoefficient)
	}
	if s.Ball.MaxVelocity <= 0 {
		return fmt.Errorf("ball max velocity must be positive, got %v", s.Ball.MaxVelocity)
	}
	if s.Robot.Radius <= 0 {
		return fmt.Errorf("robot radius must be positive, got %v", s.Robot.Radius)
	}
	if s.Robot.WheelRadius <= 0 {
		return fmt.Errorf("robot wheel radius must be positive, got %v", s.Robot.WheelRadius)
	}
	if s.Robot.AxisLength <= 0 {
		return fmt.Errorf("robot axis length must be positive, got %v", s.Robot.AxisLength)
	}
	if s.Engine.KickSpeed <= 0 {
		return fmt.Errorf("kick speed must be positive, got %v", s.Engine.KickSpeed)
	}
	return nil
}
