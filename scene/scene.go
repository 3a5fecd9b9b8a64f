// Package scene names the screens of the game and moves between them.
package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type Kind int

const (
	KindHome Kind = iota
	KindEnd
	KindSettings
	KindSelectLevel
	KindLevel
	KindCurrentLevel
	KindNextLevel
)

// ID identifies a scene. Level is only meaningful for KindLevel.
type ID struct {
	Kind  Kind
	Level int
}

var (
	Home         = ID{Kind: KindHome}
	End          = ID{Kind: KindEnd}
	Settings     = ID{Kind: KindSettings}
	SelectLevel  = ID{Kind: KindSelectLevel}
	CurrentLevel = ID{Kind: KindCurrentLevel}
	NextLevel    = ID{Kind: KindNextLevel}
)

func Level(n int) ID {
	return ID{Kind: KindLevel, Level: n}
}

func (id ID) IsLevel() bool {
	return id.Kind == KindLevel
}

func (id ID) String() string {
	switch id.Kind {
	case KindHome:
		return "home"
	case KindEnd:
		return "end"
	case KindSettings:
		return "settings"
	case KindSelectLevel:
		return "select_level"
	case KindLevel:
		return fmt.Sprintf("level_%d", id.Level)
	case KindCurrentLevel:
		return "current_level"
	case KindNextLevel:
		return "next_level"
	default:
		return fmt.Sprintf("scene(%d)", int(id.Kind))
	}
}

var (
	ErrNoCurrentLevel = errors.New("scene: no level is active")
	ErrUnknownLevel   = errors.New("scene: unknown level")
)

// ManagerConfig wires the manager to the level loader.
type ManagerConfig struct {
	// LevelCount is the number of playable levels.
	LevelCount int
	// LoadLevel prepares level n. A failure keeps the player on a safe
	// scene.
	LoadLevel func(n int) error
	// OnChange observes every scene change.
	OnChange func(ID)
}

func (cfg *ManagerConfig) Validate() error {
	if cfg == nil {
		return errors.New("scene: config cannot be nil")
	}
	if cfg.LevelCount < 1 {
		return errors.New("scene: level count must be positive")
	}
	if cfg.LoadLevel == nil {
		return errors.New("scene: level loader cannot be nil")
	}
	return nil
}

// Manager tracks the active scene.
type Manager struct {
	mu       sync.Mutex
	cfg      ManagerConfig
	current  ID
	lastSafe ID
}

func NewManager(cfg *ManagerConfig) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Manager{cfg: *cfg, current: Home, lastSafe: Home}, nil
}

func (m *Manager) Current() ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Resolve turns relative identifiers into concrete ones. NextLevel after
// the last level is End.
func (m *Manager) Resolve(id ID) (ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolve(id)
}

func (m *Manager) resolve(id ID) (ID, error) {
	switch id.Kind {
	case KindCurrentLevel:
		if !m.current.IsLevel() {
			return ID{}, ErrNoCurrentLevel
		}
		return m.current, nil
	case KindNextLevel:
		if !m.current.IsLevel() {
			return ID{}, ErrNoCurrentLevel
		}
		if m.current.Level >= m.cfg.LevelCount {
			return End, nil
		}
		return Level(m.current.Level + 1), nil
	case KindLevel:
		if id.Level < 1 || id.Level > m.cfg.LevelCount {
			return ID{}, fmt.Errorf("%w: %d", ErrUnknownLevel, id.Level)
		}
		return id, nil
	default:
		return id, nil
	}
}

// Request moves to id. When a level fails to load the manager returns to
// the last scene that was not a level and reports the error.
func (m *Manager) Request(id ID) error {
	m.mu.Lock()
	resolved, err := m.resolve(id)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	if resolved.IsLevel() {
		if err := m.cfg.LoadLevel(resolved.Level); err != nil {
			safe := m.lastSafe
			m.current = safe
			m.mu.Unlock()
			logrus.WithError(err).WithFields(logrus.Fields{"scene": resolved, "fallback": safe}).Error("scene: level failed to load")
			m.notify(safe)
			return fmt.Errorf("scene: load %s: %w", resolved, err)
		}
	} else {
		m.lastSafe = resolved
	}
	m.current = resolved
	m.mu.Unlock()

	logrus.WithField("scene", resolved).Info("scene: changed")
	m.notify(resolved)
	return nil
}

func (m *Manager) notify(id ID) {
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(id)
	}
}
