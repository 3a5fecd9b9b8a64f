package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/lumaxman/assets"
	"github.com/milk9111/lumaxman/highscore"
	"github.com/milk9111/lumaxman/level"
	"github.com/milk9111/lumaxman/levels"
	"github.com/milk9111/lumaxman/prefabs"
	"github.com/milk9111/lumaxman/scene"
)

const (
	baseWidth  = 640
	baseHeight = 480
)

type GameConfig struct {
	Assets  *assets.Registry
	Tuning  prefabs.GameplaySpec
	Scores  *highscore.Async
	UserID  string
	Seed    uint64
	Debug   bool
	Watcher *prefabs.Watcher
}

type Game struct {
	frames int

	cfg       GameConfig
	tuning    prefabs.GameplaySpec
	input     *Input
	presenter *screenPresenter
	scenes    *scene.Manager

	level   *level.Level
	pending []scene.ID
	status  string
	debug   bool
}

func NewGame(cfg GameConfig) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		tuning:    cfg.Tuning,
		input:     NewInput(),
		presenter: newScreenPresenter(),
		debug:     cfg.Debug,
	}
	scenes, err := scene.NewManager(&scene.ManagerConfig{
		LevelCount: levels.Count(),
		LoadLevel:  g.loadLevel,
		OnChange:   g.sceneChanged,
	})
	if err != nil {
		return nil, err
	}
	g.scenes = scenes
	return g, nil
}

// loadLevel builds level n with the latest tuning.
func (g *Game) loadLevel(n int) error {
	lvl, err := levels.Load(n)
	if err != nil {
		return err
	}
	g.presenter.reset()
	l, err := level.New(level.Config{
		Level:          lvl,
		Assets:         g.cfg.Assets,
		Tuning:         g.tuning,
		Presenter:      g.presenter,
		Scores:         g.cfg.Scores,
		UserID:         g.cfg.UserID,
		OnSceneRequest: g.requestScene,
		Seed:           g.cfg.Seed,
	})
	if err != nil {
		return err
	}
	g.level = l
	return nil
}

func (g *Game) sceneChanged(id scene.ID) {
	if !id.IsLevel() {
		g.level = nil
	}
}

// requestScene queues a scene change. Changes apply between ticks so a
// level is never replaced while it runs.
func (g *Game) requestScene(id scene.ID) {
	g.pending = append(g.pending, id)
}

func (g *Game) applyPending() {
	pending := g.pending
	g.pending = nil
	for _, id := range pending {
		if err := g.scenes.Request(id); err != nil {
			g.status = err.Error()
			continue
		}
		g.status = ""
	}
}

func (g *Game) reloadTuning() {
	if g.cfg.Watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.cfg.Watcher.Events:
			if !ok {
				return
			}
			tuning, err := prefabs.LoadGameplaySpec()
			if err != nil {
				logrus.WithError(err).WithField("file", name).Warn("game: tuning reload failed")
				continue
			}
			g.tuning = tuning
			logrus.WithField("file", name).Info("game: tuning reloaded, applies on next level")
		case err, ok := <-g.cfg.Watcher.Errors:
			if ok {
				logrus.WithError(err).Warn("game: watcher error")
			}
			return
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	g.reloadTuning()
	g.input.Update()
	if g.input.Debug {
		g.debug = !g.debug
	}

	if g.level != nil {
		g.updateLevel()
	} else {
		g.updateMenu()
	}
	g.applyPending()
	return nil
}

func (g *Game) updateLevel() {
	l := g.level
	state := l.State()

	if state == level.MetaActive {
		for _, s := range g.input.Swipes {
			l.HandleSwipe(s)
		}
		if g.input.Pause {
			_ = l.Pause()
		}
	} else if b, ok := overlayButton(state, g.input); ok {
		if err := l.PressButton(b); err != nil {
			logrus.WithError(err).WithField("button", b).Warn("game: button failed")
		}
	}

	l.Tick(time.Now())
}

func (g *Game) updateMenu() {
	in := g.input
	switch current := g.scenes.Current(); current.Kind {
	case scene.KindHome:
		switch {
		case in.Confirm:
			g.requestScene(scene.Level(1))
		case in.Select:
			g.requestScene(scene.SelectLevel)
		}
	case scene.KindSelectLevel:
		switch {
		case in.Digit > 0:
			g.requestScene(scene.Level(in.Digit))
		case in.Pause || in.Home:
			g.requestScene(scene.Home)
		}
	default:
		if in.Confirm || in.Home || in.Pause {
			g.requestScene(scene.Home)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.level == nil {
		g.drawMenu(screen)
		return
	}

	drawSpace(screen, g.level.World().PhysicsWorld(), baseHeight)
	if g.debug {
		drawGraph(screen, g.level.Graph(), baseHeight)
		g.presenter.drawLabels(screen, baseHeight)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f", ebiten.ActualFPS()), 0, baseHeight-16)
	}
	ebitenutil.DebugPrint(screen, g.presenter.hudText(g.level.Number()))
	drawOverlay(screen, g.presenter.overlay, baseWidth, baseHeight)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	var text string
	switch current := g.scenes.Current(); current.Kind {
	case scene.KindHome:
		text = "LuMaxMan\n\n[Enter] Play\n[L] Select level"
	case scene.KindSelectLevel:
		text = fmt.Sprintf("Select level\n\n[1-%d] Level\n[H] Home", levels.Count())
	case scene.KindEnd:
		text = "You finished every level!\n\n[Enter] Home"
	default:
		text = current.String() + "\n\n[H] Home"
	}
	if g.status != "" {
		text += "\n\n" + g.status
	}
	ebitenutil.DebugPrintAt(screen, text, 40, 40)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
