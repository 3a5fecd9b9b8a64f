package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milk9111/lumaxman/assets"
	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/highscore"
	"github.com/milk9111/lumaxman/level"
	"github.com/milk9111/lumaxman/levels"
	"github.com/milk9111/lumaxman/prefabs"
)

var simulateOpts struct {
	level   int
	seconds float64
	swipes  string
	user    string
	seed    uint64
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a level headless and print the outcome",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVarP(&simulateOpts.level, "level", "l", 1, "level number")
	f.Float64VarP(&simulateOpts.seconds, "seconds", "s", 0, "seconds to simulate; 0 runs until the level ends")
	f.StringVar(&simulateOpts.swipes, "swipes", "", `scripted swipes as "time:direction" pairs, e.g. "0.6:right,2:up"`)
	f.StringVar(&simulateOpts.user, "user", "player", "user the score is submitted for")
	f.Uint64Var(&simulateOpts.seed, "seed", 1, "seed for wandering enemies")
}

// timedSwipe is a swipe delivered once the simulated clock reaches At.
type timedSwipe struct {
	At    float64
	Swipe common.Swipe
}

func parseSwipes(s string) ([]timedSwipe, error) {
	var out []timedSwipe
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		at, name, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("swipe %q: want time:direction", part)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(at), 64)
		if err != nil || t < 0 {
			return nil, fmt.Errorf("swipe %q: bad time", part)
		}
		swipe, err := common.ParseSwipe(name)
		if err != nil {
			return nil, err
		}
		out = append(out, timedSwipe{At: t, Swipe: swipe})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out, nil
}

// simulation is the result of a headless run.
type simulation struct {
	State     level.MetaState
	Elapsed   float64
	Remaining float64
	Counters  level.Counters
}

// simulate steps l with a fixed delta until it ends or limit seconds pass.
func simulate(l *level.Level, limit float64, swipes []timedSwipe) simulation {
	if limit <= 0 {
		limit = l.Remaining() + 3600
	}
	elapsed := 0.0
	for elapsed < limit && !l.IsTerminal() {
		for len(swipes) > 0 && swipes[0].At <= elapsed {
			l.HandleSwipe(swipes[0].Swipe)
			swipes = swipes[1:]
		}
		l.Step(level.MaxTickDelta)
		elapsed += level.MaxTickDelta
	}
	return simulation{
		State:     l.State(),
		Elapsed:   elapsed,
		Remaining: l.Remaining(),
		Counters:  l.Counters(),
	}
}

func (s simulation) print(w io.Writer, number int) {
	fmt.Fprintf(w, "level %d: %s after %.2fs (remaining %s)\n", number, s.State, s.Elapsed, level.FormatRemaining(s.Remaining))
	fmt.Fprintf(w, "coins %d, lives %d, missing keys %d\n", s.Counters.Coins, s.Counters.Lives, s.Counters.MissingKeys)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	swipes, err := parseSwipes(simulateOpts.swipes)
	if err != nil {
		return err
	}
	lvl, err := levels.Load(simulateOpts.level)
	if err != nil {
		return err
	}
	tuning, err := prefabs.LoadGameplaySpec()
	if err != nil {
		return err
	}
	reg, err := assets.LoadDefault()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, closeStore, err := openScoreStore(ctx, redisAddr)
	if err != nil {
		return err
	}
	defer closeStore()
	scores := highscore.NewAsync(store, highscore.DefaultSubmitTimeout)
	defer scores.Wait()

	l, err := level.New(level.Config{
		Level:  lvl,
		Assets: reg,
		Tuning: tuning,
		Scores: scores,
		UserID: simulateOpts.user,
		Seed:   simulateOpts.seed,
	})
	if err != nil {
		return err
	}

	simulate(l, simulateOpts.seconds, swipes).print(cmd.OutOrStdout(), lvl.Number)
	return nil
}
