// Package level runs one level: it owns the world and its systems, the
// obstacle graph and the meta-state machine, and routes contacts between
// characters and collectibles.
package level

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/milk9111/lumaxman/assets"
	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/ecs/entity"
	"github.com/milk9111/lumaxman/ecs/system"
	"github.com/milk9111/lumaxman/fsm"
	"github.com/milk9111/lumaxman/levels"
	"github.com/milk9111/lumaxman/prefabs"
	"github.com/milk9111/lumaxman/scene"
	"github.com/milk9111/lumaxman/steering"
	"github.com/sirupsen/logrus"
)

// MaxTickDelta caps the simulated time of one tick.
const MaxTickDelta = 1.0 / 60

// ScoreSubmitter hands a finished level's score to persistence without
// blocking the tick.
type ScoreSubmitter interface {
	Submit(userID string, score int)
}

// Config assembles a level.
type Config struct {
	Level  *levels.Level
	Assets *assets.Registry
	Tuning prefabs.GameplaySpec

	// Presenter defaults to NopPresenter.
	Presenter Presenter
	// Scores is optional. Without it a won level submits nothing.
	Scores ScoreSubmitter
	UserID string

	// OnSceneRequest receives the scene chosen by an overlay button.
	OnSceneRequest func(scene.ID)

	// StrictContacts panics on a contact pair no category asked for.
	StrictContacts bool
	Seed           uint64
}

func (c Config) Validate() error {
	var errs []error
	if c.Level == nil {
		errs = append(errs, errors.New("level is required"))
	}
	if c.Assets == nil {
		errs = append(errs, errors.New("assets are required"))
	}
	if err := c.Tuning.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level is a running level.
type Level struct {
	number         int
	keysRequired   int
	tuning         prefabs.GameplaySpec
	presenter      Presenter
	scores         ScoreSubmitter
	userID         string
	onSceneRequest func(scene.ID)
	strictContacts bool

	world        *ecs.World
	scheduler    *ecs.Scheduler
	intelligence *system.IntelligenceSystem
	spawned      *entity.Spawned
	obstacles    []*steering.PolygonObstacle
	graph        *steering.ObstacleGraph
	rule         *SuccessRule

	meta        *metaMachine
	metaRuntime fsm.Runtime[MetaState]

	remaining float64
	lastTick  time.Time
	ticked    bool
	submitted bool
}

// New builds the world of cfg.Level and starts it in the Active state.
func New(cfg Config) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("level: invalid config: %w", err)
	}
	presenter := cfg.Presenter
	if presenter == nil {
		presenter = NopPresenter{}
	}

	l := &Level{
		number:         cfg.Level.Number,
		keysRequired:   cfg.Level.NumberOfKeysRequired,
		tuning:         cfg.Tuning,
		presenter:      presenter,
		scores:         cfg.Scores,
		userID:         cfg.UserID,
		onSceneRequest: cfg.OnSceneRequest,
		strictContacts: cfg.StrictContacts,
		world:          ecs.NewWorld(),
		remaining:      cfg.Level.TimeLimit,
		meta:           newMetaMachine(),
	}
	ecs.NewPhysicsWorld(l.world)

	rule, err := loadRule(cfg.Level.SuccessRule, cfg.Tuning.SuccessScript)
	if err != nil {
		return nil, err
	}
	l.rule = rule

	spawned, err := entity.LoadLevelToWorld(l.world, cfg.Level, cfg.Assets, cfg.Tuning)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	l.spawned = spawned
	l.obstacles = entity.ObstaclePolygons(l.world)
	l.graph = steering.NewObstacleGraph(l.obstacles, cfg.Tuning.Obstacles.BufferRadius)

	behaviors := &system.EnemyBehaviors{
		Obstacles: l.obstacles,
		Weights:   cfg.Tuning.Behavior,
		Seed:      cfg.Seed,
	}
	l.intelligence = system.NewIntelligenceSystem(cfg.Tuning.Player)
	l.scheduler = ecs.NewScheduler(
		l.intelligence,
		system.NewInputSystem(),
		system.NewMovementSystem(),
		system.NewAgentSystem(behaviors.Assign),
		system.NewAnimationSystem(presenter),
		system.NewPhysicsSystem(),
		system.NewRenderSystem(presenter),
	)

	if err := l.intelligence.StartAll(l.world); err != nil {
		return nil, fmt.Errorf("level: start characters: %w", err)
	}
	if err := l.meta.Start(l, &l.metaRuntime, MetaActive); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	l.publishCounters()
	l.presenter.ShowRemainingTime(FormatRemaining(l.remaining))

	logrus.WithFields(logrus.Fields{
		"level_number": l.number,
		"timeLimit":    cfg.Level.TimeLimit,
		"enemies":      len(spawned.Enemies),
		"objects":      len(spawned.Objects),
		"graph":        len(l.graph.Nodes()),
	}).Info("level: loaded")

	return l, nil
}

func loadRule(inline, scriptPath string) (*SuccessRule, error) {
	src := inline
	if src == "" {
		data, err := prefabs.LoadScript(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("level: load success rule: %w", err)
		}
		src = string(data)
	}
	return CompileRule(src)
}

// Tick advances the level to now. The first tick only records the clock.
func (l *Level) Tick(now time.Time) {
	dt := 0.0
	if l.ticked {
		dt = math.Min(now.Sub(l.lastTick).Seconds(), MaxTickDelta)
		if dt < 0 {
			dt = 0
		}
	}
	l.lastTick = now
	l.ticked = true
	l.Step(dt)
}

// Step advances the level by dt seconds without consulting a clock.
func (l *Level) Step(dt float64) {
	l.meta.Update(l, &l.metaRuntime, dt)
}

func (l *Level) updateActive(dt float64) {
	l.remaining -= dt
	l.presenter.ShowRemainingTime(FormatRemaining(l.remaining))

	l.scheduler.Update(l.world, dt)
	l.drainContacts()
	l.world.RunDeferred()
	l.publishCounters()

	switch {
	case l.remaining <= fsm.TimeTolerance:
		l.enter(MetaFail)
	case l.livesExhausted():
		l.enter(MetaFail)
	case l.succeeded():
		l.enter(MetaSuccess)
	}
}

// livesExhausted reports a player out of lives once the last hit has
// played out.
func (l *Level) livesExhausted() bool {
	player, ok := ecs.Get(l.world, l.spawned.Player, component.PlayerComponent.Kind())
	if !ok || player.Lives > 0 {
		return false
	}
	intel, ok := ecs.Get(l.world, l.spawned.Player, component.IntelligenceComponent.Kind())
	return ok && intel.State() == component.PlayerMoving
}

func (l *Level) succeeded() bool {
	ok, err := l.rule.Evaluate(l.ruleInput())
	if err != nil {
		logrus.WithError(err).WithField("level_number", l.number).Error("level: success rule failed")
		return false
	}
	return ok
}

func (l *Level) ruleInput() RuleInput {
	c := l.Counters()
	return RuleInput{
		KeysRequired: l.keysRequired,
		MissingKeys:  c.MissingKeys,
		Coins:        c.Coins,
		Lives:        c.Lives,
		Remaining:    l.remaining,
	}
}

func (l *Level) enter(next MetaState) error {
	return l.meta.Enter(l, &l.metaRuntime, next)
}

// Pause freezes the level.
func (l *Level) Pause() error {
	return l.enter(MetaPaused)
}

// Resume continues a paused level.
func (l *Level) Resume() error {
	return l.enter(MetaActive)
}

// State returns the meta state.
func (l *Level) State() MetaState {
	s, _ := l.metaRuntime.Current()
	return s
}

// IsTerminal reports whether the level has ended.
func (l *Level) IsTerminal() bool {
	return l.meta.IsTerminal(l.State())
}

// HandleSwipe steers the player. Swipes are ignored outside Active.
func (l *Level) HandleSwipe(s common.Swipe) {
	if l.State() != MetaActive {
		return
	}
	input, ok := ecs.Get(l.world, l.spawned.Player, component.InputComponent.Kind())
	if !ok {
		return
	}
	input.Translation = common.SwipeVector(s)
}

// SetEnemyFollowing flips an enemy between chasing and fleeing. The
// enemy's state machine follows on its next update.
func (l *Level) SetEnemyFollowing(e ecs.Entity, following bool) bool {
	enemy, ok := ecs.Get(l.world, e, component.EnemyComponent.Kind())
	if !ok {
		return false
	}
	enemy.IsFollowing = following
	return true
}

// SetAllEnemiesFollowing flips every enemy of the level.
func (l *Level) SetAllEnemiesFollowing(following bool) {
	for _, e := range l.spawned.Enemies {
		l.SetEnemyFollowing(e, following)
	}
}

// Counters returns the player's counters.
func (l *Level) Counters() Counters {
	player, ok := ecs.Get(l.world, l.spawned.Player, component.PlayerComponent.Kind())
	if !ok {
		return Counters{}
	}
	return Counters{Coins: player.Coins, Lives: player.Lives, MissingKeys: player.MissingKeys}
}

func (l *Level) publishCounters() {
	l.presenter.ShowCounters(l.Counters())
}

// Remaining returns the time left in seconds.
func (l *Level) Remaining() float64 {
	return l.remaining
}

func (l *Level) Number() int {
	return l.number
}

func (l *Level) World() *ecs.World {
	return l.world
}

func (l *Level) Player() ecs.Entity {
	return l.spawned.Player
}

func (l *Level) Enemies() []ecs.Entity {
	return l.spawned.Enemies
}

// Graph returns the obstacle visibility graph of the level.
func (l *Level) Graph() *steering.ObstacleGraph {
	return l.graph
}

func (l *Level) Intelligence() *system.IntelligenceSystem {
	return l.intelligence
}

func (l *Level) submitScore() {
	if l.submitted {
		return
	}
	l.submitted = true
	if l.scores == nil {
		return
	}
	l.scores.Submit(l.userID, l.Counters().Coins)
}

// FormatRemaining renders seconds as MM:SS, rounding partial seconds up.
// Rounding residue from summed frame deltas does not count as a second.
func FormatRemaining(seconds float64) string {
	if seconds < fsm.TimeTolerance {
		seconds = 0
	}
	total := int(math.Ceil(seconds - fsm.TimeTolerance))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
