package main

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/milk9111/lumaxman/assets"
	"github.com/milk9111/lumaxman/highscore"
	"github.com/milk9111/lumaxman/prefabs"
	"github.com/milk9111/lumaxman/scene"
)

var playOpts struct {
	level int
	user  string
	seed  uint64
	debug bool
	watch bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a window",
	RunE:  runPlay,
}

func init() {
	f := playCmd.Flags()
	f.IntVarP(&playOpts.level, "level", "l", 0, "start directly in this level; 0 opens the home screen")
	f.StringVar(&playOpts.user, "user", "player", "user scores are submitted for")
	f.Uint64Var(&playOpts.seed, "seed", uint64(time.Now().UnixNano()), "seed for wandering enemies")
	f.BoolVar(&playOpts.debug, "debug", false, "draw the obstacle graph and animation labels")
	f.BoolVar(&playOpts.watch, "watch", false, "reload tuning when files under ./prefabs change")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tuning, err := prefabs.LoadGameplaySpec()
	if err != nil {
		return err
	}
	reg, err := assets.LoadDefault()
	if err != nil {
		return err
	}
	store, closeStore, err := openScoreStore(ctx, redisAddr)
	if err != nil {
		return err
	}
	defer closeStore()
	scores := highscore.NewAsync(store, highscore.DefaultSubmitTimeout)
	defer scores.Wait()

	var watcher *prefabs.Watcher
	if playOpts.watch {
		watcher, err = prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			logrus.WithError(err).Warn("play: watching disabled")
		} else {
			defer watcher.Close()
		}
	}

	game, err := NewGame(GameConfig{
		Assets:  reg,
		Tuning:  tuning,
		Scores:  scores,
		UserID:  playOpts.user,
		Seed:    playOpts.seed,
		Debug:   playOpts.debug,
		Watcher: watcher,
	})
	if err != nil {
		return err
	}
	if playOpts.level > 0 {
		game.requestScene(scene.Level(playOpts.level))
	}

	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("LuMaxMan")
	return ebiten.RunGame(game)
}
