package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec lists the components of a prefab by registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type RenderComponentSpec struct {
	Layer int `yaml:"layer"`
}

type MovementComponentSpec struct {
	// Speed overrides the gameplay move speed when set.
	Speed float64 `yaml:"speed"`
}

type InputComponentSpec struct {
	Enabled bool `yaml:"enabled"`
}

type AnimationComponentSpec struct {
	Set string `yaml:"set"`
}

type AgentComponentSpec struct {
	Driven bool `yaml:"driven"`
	// Radius overrides the tuning radius when set.
	Radius float64 `yaml:"radius"`
}

type CollisionComponentSpec struct {
	Category string  `yaml:"category"`
	Radius   float64 `yaml:"radius"`
	Static   bool    `yaml:"static"`
	Sensor   bool    `yaml:"sensor"`
}

type IntelligenceComponentSpec struct {
	Machine string `yaml:"machine"`
	Initial string `yaml:"initial"`
}

type ObjectComponentSpec struct {
	Kind string `yaml:"kind"`
}
