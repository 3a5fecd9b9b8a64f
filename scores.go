package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/milk9111/lumaxman/highscore"
)

// scoreStore is what the commands need from persistence.
type scoreStore interface {
	highscore.Submitter
	Top(ctx context.Context, n int) ([]highscore.Record, error)
}

var (
	redisAddr string
	scoresTop int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the leaderboard",
	RunE:  runScores,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", os.Getenv("REDIS_ADDR"), "Redis address for highscores; empty keeps scores in memory")
	scoresCmd.Flags().IntVarP(&scoresTop, "top", "n", 10, "number of entries")
}

// openScoreStore connects to Redis when an address is configured and falls
// back to an in-memory store otherwise.
func openScoreStore(ctx context.Context, addr string) (scoreStore, func(), error) {
	if addr == "" {
		logrus.Warn("highscore: no redis address, scores stay in memory")
		return highscore.NewMemory(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	store, err := highscore.NewRedis(&highscore.RedisConfig{Client: client})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return store, func() { _ = client.Close() }, nil
}

func runScores(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, closeStore, err := openScoreStore(ctx, redisAddr)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := store.Top(ctx, scoresTop)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, r := range records {
		fmt.Fprintf(out, "%2d. %-16s %4d  %s\n", i+1, r.UserID, r.Score, r.CreatedAt.Format(time.DateTime))
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "no scores yet")
	}
	return nil
}
