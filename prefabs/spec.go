package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/lumaxman/steering"
	"gopkg.in/yaml.v3"
)

const GameplayFile = "gameplay.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerTuning struct {
	MoveSpeed      float64 `yaml:"move_speed"`
	AppearDuration float64 `yaml:"appear_duration"`
	HitDuration    float64 `yaml:"hit_duration"`
}

type AgentTuning struct {
	MaxSpeed        float64 `yaml:"max_speed"`
	MaxAcceleration float64 `yaml:"max_acceleration"`
	Radius          float64 `yaml:"radius"`
	Mass            float64 `yaml:"mass"`
}

type ObjectTuning struct {
	BonusSeconds float64 `yaml:"bonus_seconds"`
}

type ObstacleTuning struct {
	BufferRadius float64 `yaml:"buffer_radius"`
}

// GameplaySpec is the global tuning shared by every level.
type GameplaySpec struct {
	Player    PlayerTuning     `yaml:"player"`
	Enemy     AgentTuning      `yaml:"enemy"`
	Behavior  steering.Weights `yaml:"behavior"`
	Objects   ObjectTuning     `yaml:"objects"`
	Obstacles ObstacleTuning   `yaml:"obstacles"`
	// SuccessScript is the default success rule for levels without one.
	SuccessScript string `yaml:"success_script"`
}

func DefaultGameplaySpec() GameplaySpec {
	return GameplaySpec{
		Player: PlayerTuning{MoveSpeed: 150, AppearDuration: 0.5, HitDuration: 1.0},
		Enemy: AgentTuning{
			MaxSpeed:        100,
			MaxAcceleration: 300,
			Radius:          20,
			Mass:            0.25,
		},
		Behavior:      steering.DefaultWeights(),
		Objects:       ObjectTuning{BonusSeconds: 10},
		Obstacles:     ObstacleTuning{BufferRadius: 24},
		SuccessScript: "success.tengo",
	}
}

func (s GameplaySpec) Validate() error {
	var errs []error
	if s.Player.MoveSpeed <= 0 {
		errs = append(errs, errors.New("player.move_speed must be positive"))
	}
	if s.Player.AppearDuration < 0 || s.Player.HitDuration <= 0 {
		errs = append(errs, errors.New("player durations must be positive"))
	}
	if s.Enemy.MaxSpeed <= 0 || s.Enemy.MaxAcceleration <= 0 {
		errs = append(errs, errors.New("enemy speed and acceleration must be positive"))
	}
	if s.Enemy.Mass <= 0 {
		errs = append(errs, errors.New("enemy.mass must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("prefabs: invalid %s: %w", GameplayFile, errors.Join(errs...))
	}
	return nil
}

// LoadGameplaySpec reads gameplay.yaml over the defaults, so the file
// only needs the values it changes.
func LoadGameplaySpec() (GameplaySpec, error) {
	spec := DefaultGameplaySpec()
	data, err := Load(GameplayFile)
	if err != nil {
		return spec, fmt.Errorf("prefabs: load %s: %w", GameplayFile, err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: unmarshal %s: %w", GameplayFile, err)
	}
	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}
