package level

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/milk9111/lumaxman/assets"
	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/fsm"
	"github.com/milk9111/lumaxman/highscore"
	highscoremock "github.com/milk9111/lumaxman/highscore/mock"
	"github.com/milk9111/lumaxman/levels"
	"github.com/milk9111/lumaxman/prefabs"
	"github.com/milk9111/lumaxman/scene"
)

// tick is exact in binary floating point so countdowns land on zero.
const tick = 1.0 / 64

const walls = `
obstacles:
  - vertices: [{x: 0, y: 0}, {x: 640, y: 0}, {x: 640, y: 16}, {x: 0, y: 16}]
  - vertices: [{x: 0, y: 464}, {x: 640, y: 464}, {x: 640, y: 480}, {x: 0, y: 480}]
  - vertices: [{x: 0, y: 16}, {x: 16, y: 16}, {x: 16, y: 464}, {x: 0, y: 464}]
  - vertices: [{x: 624, y: 16}, {x: 640, y: 16}, {x: 640, y: 464}, {x: 624, y: 464}]
`

type fakePresenter struct {
	NopPresenter
	overlays []MetaState
	times    []string
	counters []Counters
	removed  []ecs.Entity
}

func (p *fakePresenter) ShowOverlay(s MetaState) {
	p.overlays = append(p.overlays, s)
}

func (p *fakePresenter) ShowRemainingTime(text string) {
	p.times = append(p.times, text)
}

func (p *fakePresenter) ShowCounters(c Counters) {
	p.counters = append(p.counters, c)
}

func (p *fakePresenter) RemoveFromScene(e ecs.Entity) {
	p.removed = append(p.removed, e)
}

func parseLevel(t *testing.T, src string) *levels.Level {
	t.Helper()
	lvl, err := levels.Parse([]byte(src))
	require.NoError(t, err)
	lvl.Number = 1
	return lvl
}

func newTestLevel(t *testing.T, src string, mutate ...func(*Config)) (*Level, *fakePresenter) {
	t.Helper()
	reg, err := assets.LoadDefault()
	require.NoError(t, err)

	presenter := &fakePresenter{}
	cfg := Config{
		Level:          parseLevel(t, src),
		Assets:         reg,
		Tuning:         prefabs.DefaultGameplaySpec(),
		Presenter:      presenter,
		UserID:         "ada",
		StrictContacts: true,
		Seed:           7,
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	l, err := New(cfg)
	require.NoError(t, err)
	return l, presenter
}

func stepFor(l *Level, seconds float64) {
	for n := int(seconds / tick); n > 0; n-- {
		l.Step(tick)
	}
}

func enemyAgent(t *testing.T, l *Level) *component.Agent {
	t.Helper()
	require.Len(t, l.Enemies(), 1)
	agent, ok := ecs.Get(l.World(), l.Enemies()[0], component.AgentComponent.Kind())
	require.True(t, ok)
	return agent
}

func TestFormatRemaining(t *testing.T) {
	testCases := []struct {
		seconds float64
		want    string
	}{
		{seconds: 60, want: "01:00"},
		{seconds: 59.5, want: "01:00"},
		{seconds: 59, want: "00:59"},
		{seconds: 125, want: "02:05"},
		{seconds: 0.01, want: "00:01"},
		{seconds: 60 + 1e-12, want: "01:00"},
		{seconds: 2e-12, want: "00:00"},
		{seconds: 0, want: "00:00"},
		{seconds: -3, want: "00:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatRemaining(tc.seconds))
		})
	}
}

func TestSuccessRule(t *testing.T) {
	defaultScript, err := prefabs.LoadScript("success.tengo")
	require.NoError(t, err)

	testCases := []struct {
		name    string
		src     string
		input   RuleInput
		want    bool
		wantErr error
	}{
		{
			name:  "default rule with keys missing",
			src:   string(defaultScript),
			input: RuleInput{KeysRequired: 2, MissingKeys: 1},
		},
		{
			name:  "default rule with every key",
			src:   string(defaultScript),
			input: RuleInput{KeysRequired: 2, MissingKeys: 0},
			want:  true,
		},
		{
			name:  "default rule without keys never succeeds",
			src:   string(defaultScript),
			input: RuleInput{KeysRequired: 0, MissingKeys: 0},
		},
		{
			name:  "coins rule",
			src:   "success := missing_keys <= 0 && coins >= 2",
			input: RuleInput{Coins: 2},
			want:  true,
		},
		{
			name:  "time rule",
			src:   "success := remaining > 30.5 && lives > 1",
			input: RuleInput{Remaining: 31, Lives: 2},
			want:  true,
		},
		{
			name:    "rule without result",
			src:     "done := coins > 0",
			input:   RuleInput{Coins: 1},
			wantErr: ErrRuleNoResult,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule, err := CompileRule(tc.src)
			require.NoError(t, err)

			got, err := rule.Evaluate(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompileRuleRejectsBadScript(t *testing.T) {
	_, err := CompileRule("success := ")
	require.Error(t, err)
}

func TestRuleImports(t *testing.T) {
	rule, err := CompileRule(`
math := import("math")
text := import("text")
success := math.abs(-1.5) == 1.5 && text.contains("abc", "b") && coins == 3
`)
	require.NoError(t, err)
	ok, err := rule.Evaluate(RuleInput{Coins: 3})
	require.NoError(t, err)
	assert.True(t, ok)

	for _, module := range []string{"os", "json", "times"} {
		t.Run(module, func(t *testing.T) {
			_, err := CompileRule(fmt.Sprintf("m := import(%q)\nsuccess := true", module))
			require.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	err := Config{Tuning: prefabs.DefaultGameplaySpec()}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level is required")
	assert.Contains(t, err.Error(), "assets are required")
}

func TestEndToEndCountdownToFail(t *testing.T) {
	l, presenter := newTestLevel(t, `
timeLimit: 60
numberOfKeysRequired: 0
initialPlayerFacing: up
remainingLives: 1000
playerSpawn: {x: 80, y: 80}
enemies:
  - isInitiallyFollowing: true
    initialWaitSeconds: 2
    recomputeIntervalSeconds: 1
    position: {x: 560, y: 400}
`+walls)

	require.Equal(t, MetaActive, l.State())
	enemyIntel, ok := ecs.Get(l.World(), l.Enemies()[0], component.IntelligenceComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.EnemyFollowing, enemyIntel.State())
	assert.Nil(t, enemyAgent(t, l).Behavior)
	assert.NotEmpty(t, l.Graph().Nodes())

	stepFor(l, 1.5)
	assert.Nil(t, enemyAgent(t, l).Behavior, "behavior stays unset during the initial wait")

	stepFor(l, 1.0)
	behavior := enemyAgent(t, l).Behavior
	require.NotNil(t, behavior)
	assert.False(t, behavior.IsEmpty())

	stepFor(l, 60-2.5-tick)
	assert.Equal(t, MetaActive, l.State())
	assert.Equal(t, "00:01", presenter.times[len(presenter.times)-1])

	l.Step(tick)
	assert.Equal(t, MetaFail, l.State())
	assert.True(t, l.IsTerminal())
	assert.Equal(t, MetaFail, presenter.overlays[len(presenter.overlays)-1])

	remaining := l.Remaining()
	stepFor(l, 1)
	assert.Equal(t, MetaFail, l.State())
	assert.Equal(t, remaining, l.Remaining())
	require.ErrorIs(t, l.Resume(), fsm.ErrIllegalTransition)
	require.ErrorIs(t, l.Pause(), fsm.ErrIllegalTransition)
}

func TestCountdownAtFrameRate(t *testing.T) {
	l, presenter := newTestLevel(t, `
timeLimit: 60
numberOfKeysRequired: 1
initialPlayerFacing: up
remainingLives: 3
playerSpawn: {x: 80, y: 80}
`)

	for range 3599 {
		l.Step(MaxTickDelta)
	}
	assert.Equal(t, MetaActive, l.State())
	assert.Equal(t, "00:01", presenter.times[len(presenter.times)-1])

	l.Step(MaxTickDelta)
	assert.Equal(t, MetaFail, l.State(), "3600 frames of 1/60 end a 60 second level")
	assert.Equal(t, "00:00", presenter.times[len(presenter.times)-1])
	assert.Equal(t, MetaFail, presenter.overlays[len(presenter.overlays)-1])
}

func TestLogFieldsKeepLevelNumber(t *testing.T) {
	previous := logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(previous) })
	hook := logtest.NewGlobal()

	l, _ := newTestLevel(t, quietLevel)
	require.NoError(t, l.Pause())

	var checked int
	for _, entry := range hook.AllEntries() {
		if entry.Message != "level: loaded" && entry.Message != "level: meta state" {
			continue
		}
		checked++
		assert.Equal(t, 1, entry.Data["level_number"], entry.Message)
		assert.NotContains(t, entry.Data, "level", entry.Message)

		line, err := entry.String()
		require.NoError(t, err)
		assert.Contains(t, line, "level_number=1")
		assert.NotContains(t, line, "fields.level")
	}
	assert.GreaterOrEqual(t, checked, 2)
}

const quietLevel = `
timeLimit: 30
numberOfKeysRequired: 2
initialPlayerFacing: right
remainingLives: 2
playerSpawn: {x: 80, y: 80}
objects:
  - {kind: coin, position: {x: 300, y: 300}}
  - {kind: key, position: {x: 340, y: 300}}
  - {kind: heart, position: {x: 380, y: 300}}
  - {kind: clock, position: {x: 420, y: 300}}
  - {kind: key, position: {x: 460, y: 300}}
`

func objectOfKind(t *testing.T, l *Level, kind component.ObjectKind) ecs.Entity {
	t.Helper()
	var found ecs.Entity
	ecs.ForEach(l.World(), component.ObjectComponent.Kind(), func(e ecs.Entity, o *component.Object) {
		if o.Kind == kind && !found.Valid() {
			found = e
		}
	})
	require.True(t, found.Valid(), "no %s in level", kind)
	return found
}

func TestCollectibleAppliesOnce(t *testing.T) {
	testCases := []struct {
		kind          component.ObjectKind
		reversed      bool
		wantCounters  Counters
		wantRemaining float64
	}{
		{kind: component.ObjectCoin, wantCounters: Counters{Coins: 1, Lives: 2, MissingKeys: 2}, wantRemaining: 30},
		{kind: component.ObjectKey, wantCounters: Counters{Lives: 2, MissingKeys: 1}, wantRemaining: 30},
		{kind: component.ObjectHeart, reversed: true, wantCounters: Counters{Lives: 3, MissingKeys: 2}, wantRemaining: 30},
		{kind: component.ObjectClock, wantCounters: Counters{Lives: 2, MissingKeys: 2}, wantRemaining: 40},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			l, presenter := newTestLevel(t, quietLevel)
			obj := objectOfKind(t, l, tc.kind)

			for range 3 {
				if tc.reversed {
					l.ContactBegin(l.Player(), obj)
				} else {
					l.ContactBegin(obj, l.Player())
				}
			}

			assert.Equal(t, tc.wantCounters, l.Counters())
			assert.Equal(t, tc.wantRemaining, l.Remaining())
			assert.Equal(t, []ecs.Entity{obj}, presenter.removed)

			render, ok := ecs.Get(l.World(), obj, component.RenderComponent.Kind())
			require.True(t, ok)
			assert.True(t, render.Removed)

			l.Step(0)
			assert.False(t, l.World().IsAlive(obj))
			assert.False(t, l.World().PhysicsWorld().HasBody(obj))

			l.ContactBegin(obj, l.Player())
			assert.Equal(t, tc.wantCounters, l.Counters())
		})
	}
}

func TestContactEndIsIgnored(t *testing.T) {
	l, presenter := newTestLevel(t, quietLevel)
	coin := objectOfKind(t, l, component.ObjectCoin)

	l.ContactEnd(coin, l.Player())

	assert.Equal(t, 0, l.Counters().Coins)
	assert.Empty(t, presenter.removed)
}

func TestUnregisteredContact(t *testing.T) {
	t.Run("strict panics", func(t *testing.T) {
		l, _ := newTestLevel(t, quietLevel)
		coin := objectOfKind(t, l, component.ObjectCoin)
		key := objectOfKind(t, l, component.ObjectKey)

		assert.Panics(t, func() { l.ContactBegin(coin, key) })
	})

	t.Run("lenient ignores", func(t *testing.T) {
		l, presenter := newTestLevel(t, quietLevel, func(c *Config) { c.StrictContacts = false })
		coin := objectOfKind(t, l, component.ObjectCoin)
		key := objectOfKind(t, l, component.ObjectKey)

		assert.NotPanics(t, func() { l.ContactBegin(coin, key) })
		assert.Equal(t, Counters{Lives: 2, MissingKeys: 2}, l.Counters())
		assert.Empty(t, presenter.removed)
	})
}

const duelLevel = `
timeLimit: 30
numberOfKeysRequired: 1
initialPlayerFacing: up
remainingLives: 1
playerSpawn: {x: 80, y: 80}
enemies:
  - isInitiallyFollowing: %s
    initialWaitSeconds: 20
    recomputeIntervalSeconds: 1
    position: {x: 560, y: 400}
`

func playerState(t *testing.T, l *Level) component.CharacterState {
	t.Helper()
	intel, ok := ecs.Get(l.World(), l.Player(), component.IntelligenceComponent.Kind())
	require.True(t, ok)
	return intel.State()
}

func TestPlayerHit(t *testing.T) {
	testCases := []struct {
		name      string
		following string
		wantHit   bool
	}{
		{name: "following enemy hits", following: "true", wantHit: true},
		{name: "escaping enemy is harmless", following: "false"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newTestLevel(t, fmt.Sprintf(duelLevel, tc.following))
			enemy := l.Enemies()[0]

			l.ContactBegin(l.Player(), enemy)
			assert.Equal(t, component.PlayerAppear, playerState(t, l), "no hit while appearing")

			stepFor(l, 0.75)
			require.Equal(t, component.PlayerMoving, playerState(t, l))

			l.ContactBegin(enemy, l.Player())
			if !tc.wantHit {
				assert.Equal(t, component.PlayerMoving, playerState(t, l))
				assert.Equal(t, 1, l.Counters().Lives)
				return
			}
			assert.Equal(t, component.PlayerHit, playerState(t, l))
			assert.Equal(t, 0, l.Counters().Lives)

			l.ContactBegin(l.Player(), enemy)
			assert.Equal(t, 0, l.Counters().Lives, "hit does not stack")

			stepFor(l, 0.5)
			assert.Equal(t, MetaActive, l.State(), "fail waits for the hit to play out")

			stepFor(l, 0.75)
			assert.Equal(t, MetaFail, l.State())
		})
	}
}

func TestSuccessSubmitsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSubmitter := highscoremock.NewMockSubmitter(ctrl)
	mockSubmitter.EXPECT().
		SubmitScore(gomock.Any(), "ada", 1).
		DoAndReturn(func(ctx context.Context, _ string, _ int) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		}).
		Times(1)
	async := highscore.NewAsync(mockSubmitter, time.Second)

	l, presenter := newTestLevel(t, quietLevel, func(c *Config) { c.Scores = async })

	l.ContactBegin(objectOfKind(t, l, component.ObjectCoin), l.Player())
	for range 2 {
		l.ContactBegin(objectOfKind(t, l, component.ObjectKey), l.Player())
		l.Step(tick)
	}

	assert.Equal(t, MetaSuccess, l.State())
	assert.Equal(t, MetaSuccess, presenter.overlays[len(presenter.overlays)-1])

	stepFor(l, 1)
	require.ErrorIs(t, l.Pause(), fsm.ErrIllegalTransition)
	assert.Equal(t, MetaSuccess, l.State())

	async.Wait()
}

func TestPauseFreezesLevel(t *testing.T) {
	l, presenter := newTestLevel(t, quietLevel)
	stepFor(l, 1)
	render, ok := ecs.Get(l.World(), l.Player(), component.RenderComponent.Kind())
	require.True(t, ok)
	before := render.Position

	require.NoError(t, l.Pause())
	assert.Equal(t, MetaPaused, presenter.overlays[len(presenter.overlays)-1])

	remaining := l.Remaining()
	l.HandleSwipe(common.SwipeRight)
	stepFor(l, 2)
	assert.Equal(t, remaining, l.Remaining())
	assert.Equal(t, before, render.Position)

	require.NoError(t, l.PressButton(ButtonResume))
	assert.Equal(t, MetaActive, l.State())
	assert.Equal(t, MetaActive, presenter.overlays[len(presenter.overlays)-1])

	l.HandleSwipe(common.SwipeRight)
	stepFor(l, 0.5)
	assert.Equal(t, remaining-0.5, l.Remaining())
	assert.Greater(t, render.Position.X, before.X)
	assert.InDelta(t, before.Y, render.Position.Y, 1e-6)
}

func TestActiveCountdown(t *testing.T) {
	l, presenter := newTestLevel(t, quietLevel)
	assert.Equal(t, "00:30", presenter.times[len(presenter.times)-1])

	stepFor(l, 10)
	assert.Equal(t, 20.0, l.Remaining())
	assert.Equal(t, "00:20", presenter.times[len(presenter.times)-1])
	assert.Equal(t, Counters{Lives: 2, MissingKeys: 2}, presenter.counters[len(presenter.counters)-1])
}

func TestTickClampsDelta(t *testing.T) {
	l, _ := newTestLevel(t, quietLevel)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	l.Tick(start)
	assert.Equal(t, 30.0, l.Remaining(), "first tick has no delta")

	l.Tick(start.Add(5 * time.Second))
	assert.InDelta(t, 30-MaxTickDelta, l.Remaining(), 1e-9)

	l.Tick(start.Add(5*time.Second + 10*time.Millisecond))
	assert.InDelta(t, 30-MaxTickDelta-0.01, l.Remaining(), 1e-9)
}

func TestPressButton(t *testing.T) {
	testCases := []struct {
		button Button
		want   scene.ID
	}{
		{button: ButtonHome, want: scene.Home},
		{button: ButtonBackToMenu, want: scene.Home},
		{button: ButtonSettings, want: scene.Settings},
		{button: ButtonProceed, want: scene.NextLevel},
		{button: ButtonReplay, want: scene.CurrentLevel},
		{button: ButtonRetry, want: scene.CurrentLevel},
		{button: ButtonSelectLevel, want: scene.SelectLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.button.String(), func(t *testing.T) {
			var got []scene.ID
			l, _ := newTestLevel(t, quietLevel, func(c *Config) {
				c.OnSceneRequest = func(id scene.ID) { got = append(got, id) }
			})

			require.NoError(t, l.PressButton(tc.button))
			assert.Equal(t, []scene.ID{tc.want}, got)
		})
	}
}

func TestSetEnemyFollowing(t *testing.T) {
	l, _ := newTestLevel(t, fmt.Sprintf(duelLevel, "true"))
	enemy := l.Enemies()[0]

	l.SetAllEnemiesFollowing(false)
	l.Step(tick)

	intel, ok := ecs.Get(l.World(), enemy, component.IntelligenceComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.EnemyEscaping, intel.State())
	assert.False(t, l.SetEnemyFollowing(l.Player(), true))
}
