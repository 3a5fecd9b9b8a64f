package levels

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/common"
	"gopkg.in/yaml.v3"
)

// EnemyConfig is the spawn configuration of one enemy.
type EnemyConfig struct {
	IsInitiallyFollowing     bool    `yaml:"isInitiallyFollowing"`
	InitialWaitSeconds       float64 `yaml:"initialWaitSeconds"`
	RecomputeIntervalSeconds float64 `yaml:"recomputeIntervalSeconds"`
	Position                 Point   `yaml:"position"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

type Object struct {
	Kind     string `yaml:"kind"`
	Position Point  `yaml:"position"`
}

// Obstacle is a static polygon, listed counter-clockwise or clockwise.
type Obstacle struct {
	Vertices []Point `yaml:"vertices"`
}

func (o Obstacle) Vectors() []cp.Vector {
	out := make([]cp.Vector, len(o.Vertices))
	for i, p := range o.Vertices {
		out[i] = p.Vector()
	}
	return out
}

type Bounds struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Level struct {
	Number int `yaml:"-"`

	TimeLimit            float64          `yaml:"timeLimit"`
	NumberOfKeysRequired int              `yaml:"numberOfKeysRequired"`
	InitialPlayerFacing  common.Direction `yaml:"initialPlayerFacing"`
	RemainingLives       int              `yaml:"remainingLives"`
	Enemies              []EnemyConfig    `yaml:"enemies"`
	// SuccessRule is a tengo script setting `success`; empty uses the
	// gameplay default.
	SuccessRule string `yaml:"successRule"`

	Bounds      Bounds     `yaml:"bounds"`
	PlayerSpawn Point      `yaml:"playerSpawn"`
	Objects     []Object   `yaml:"objects"`
	Obstacles   []Obstacle `yaml:"obstacles"`
}

const defaultRemainingLives = 3

// Parse decodes a level document and validates it.
func Parse(data []byte) (*Level, error) {
	lvl := Level{RemainingLives: defaultRemainingLives}
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	var errs []error
	if l.TimeLimit <= 0 {
		errs = append(errs, errors.New("timeLimit must be positive"))
	}
	if l.NumberOfKeysRequired < 0 {
		errs = append(errs, errors.New("numberOfKeysRequired must not be negative"))
	}
	if l.RemainingLives < 1 {
		errs = append(errs, errors.New("remainingLives must be at least 1"))
	}
	if !l.InitialPlayerFacing.Valid() {
		errs = append(errs, fmt.Errorf("initialPlayerFacing %d is not a direction", int(l.InitialPlayerFacing)))
	}
	for i, e := range l.Enemies {
		if e.InitialWaitSeconds < 0 {
			errs = append(errs, fmt.Errorf("enemies[%d]: initialWaitSeconds must not be negative", i))
		}
		if e.RecomputeIntervalSeconds <= 0 {
			errs = append(errs, fmt.Errorf("enemies[%d]: recomputeIntervalSeconds must be positive", i))
		}
	}
	for i, o := range l.Objects {
		if o.Kind == "" {
			errs = append(errs, fmt.Errorf("objects[%d]: kind is required", i))
		}
	}
	for i, o := range l.Obstacles {
		if len(o.Vertices) < 3 {
			errs = append(errs, fmt.Errorf("obstacles[%d]: need at least 3 vertices", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid level: %w", errors.Join(errs...))
	}
	return nil
}

// KeyCount returns how many key objects the layout places.
func (l *Level) KeyCount() int {
	n := 0
	for _, o := range l.Objects {
		if o.Kind == "key" {
			n++
		}
	}
	return n
}
