package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultManifest = "animations.yaml"

var ErrUnknownSet = errors.New("assets: unknown animation set")

type clipSpec struct {
	Frames        int     `yaml:"frames"`
	FrameDuration float64 `yaml:"frame_duration"`
	Loop          bool    `yaml:"loop"`
	Directional   bool    `yaml:"directional"`
}

type manifest struct {
	Characters map[string]map[string]clipSpec `yaml:"characters"`
}

// Registry holds the animation sets of every character kind. It is filled
// once, either synchronously with Load or in the background with
// LoadAsync, and is read-only afterwards.
type Registry struct {
	mu    sync.RWMutex
	sets  map[string]component.AnimationSet
	err   error
	ready chan struct{}
	once  sync.Once
}

func NewRegistry() *Registry {
	return &Registry{
		sets:  make(map[string]component.AnimationSet),
		ready: make(chan struct{}),
	}
}

// LoadDefault builds a registry from the embedded manifest.
func LoadDefault() (*Registry, error) {
	r := NewRegistry()
	data, err := LoadFile(DefaultManifest)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", DefaultManifest, err)
	}
	if err := r.Load(data); err != nil {
		return nil, err
	}
	return r, nil
}

// Load parses a manifest and marks the registry ready.
func (r *Registry) Load(data []byte) error {
	sets, err := parseManifest(data)
	r.mu.Lock()
	if err == nil {
		r.sets = sets
	}
	r.err = err
	r.mu.Unlock()
	r.once.Do(func() { close(r.ready) })
	return err
}

// LoadAsync reads and parses a manifest in the background. Ready is
// closed when it finishes, successfully or not.
func (r *Registry) LoadAsync(read func() ([]byte, error)) {
	go func() {
		data, err := read()
		if err != nil {
			r.mu.Lock()
			r.err = fmt.Errorf("assets: read manifest: %w", err)
			r.mu.Unlock()
			r.once.Do(func() { close(r.ready) })
			logrus.WithError(err).Error("assets: manifest load failed")
			return
		}
		if err := r.Load(data); err != nil {
			logrus.WithError(err).Error("assets: manifest parse failed")
		}
	}()
}

// Ready is closed once loading has finished.
func (r *Registry) Ready() <-chan struct{} {
	return r.ready
}

// Wait blocks until loading finished or ctx is done.
func (r *Registry) Wait(ctx context.Context) error {
	select {
	case <-r.ready:
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AnimationSet returns the set registered for a character kind.
func (r *Registry) AnimationSet(name string) (component.AnimationSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSet, name)
	}
	return set, nil
}

func parseManifest(data []byte) (map[string]component.AnimationSet, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("assets: unmarshal manifest: %w", err)
	}
	sets := make(map[string]component.AnimationSet, len(m.Characters))
	for character, states := range m.Characters {
		set := make(component.AnimationSet, len(states))
		for stateName, spec := range states {
			state, err := component.ParseAnimationState(stateName)
			if err != nil {
				return nil, fmt.Errorf("assets: %s: %w", character, err)
			}
			if spec.Frames <= 0 {
				return nil, fmt.Errorf("assets: %s/%s: frames must be positive", character, stateName)
			}
			byDir := make(map[common.Direction]component.AnimationClip)
			if spec.Directional {
				for _, d := range []common.Direction{common.DirectionRight, common.DirectionUp, common.DirectionLeft, common.DirectionDown} {
					byDir[d] = clipFor(character, stateName, d.String(), spec)
				}
			} else {
				byDir[common.DirectionRight] = clipFor(character, stateName, "", spec)
			}
			set[state] = byDir
		}
		sets[character] = set
	}
	return sets, nil
}

func clipFor(character, state, direction string, spec clipSpec) component.AnimationClip {
	id := character + "_" + state
	if direction != "" {
		id += "_" + direction
	}
	return component.AnimationClip{
		ID:            id,
		Frames:        spec.Frames,
		FrameDuration: spec.FrameDuration,
		Loop:          spec.Loop,
	}
}
