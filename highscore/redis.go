package highscore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	leaderboardKey  = "highscore:leaderboard"
	recordKeyPrefix = "highscore:record:"
)

// RedisConfig configures the Redis-backed store.
type RedisConfig struct {
	Client redis.UniversalClient
	// Now defaults to time.Now.
	Now func() time.Time
}

func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return fmt.Errorf("%w: config cannot be nil", ErrInvalidArgument)
	}
	if cfg.Client == nil {
		return fmt.Errorf("%w: client cannot be nil", ErrInvalidArgument)
	}
	return nil
}

// RedisStore keeps a sorted-set leaderboard of record IDs and a hash per
// record.
type RedisStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedis(cfg *RedisConfig) (*RedisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &RedisStore{client: cfg.Client, now: now}, nil
}

func recordKey(id string) string {
	return recordKeyPrefix + id
}

func (s *RedisStore) SubmitScore(ctx context.Context, userID string, score int) error {
	if userID == "" {
		return fmt.Errorf("%w: user ID cannot be empty", ErrInvalidArgument)
	}
	if score < 0 {
		return fmt.Errorf("%w: score cannot be negative", ErrInvalidArgument)
	}

	id := uuid.NewString()
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, recordKey(id),
		"user_id", userID,
		"score", score,
		"created_at", s.now().Unix(),
	)
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(score), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("highscore: submit score for %s: %w", userID, err)
	}
	return nil
}

// Top returns the n best records, highest first.
func (s *RedisStore) Top(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive", ErrInvalidArgument)
	}

	entries, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("highscore: read leaderboard: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, z := range entries {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		rec, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get loads one record by ID.
func (s *RedisStore) Get(ctx context.Context, id string) (Record, error) {
	fields, err := s.client.HGetAll(ctx, recordKey(id)).Result()
	if err != nil {
		return Record{}, fmt.Errorf("highscore: read record %s: %w", id, err)
	}
	if len(fields) == 0 {
		return Record{}, fmt.Errorf("%w: record %s", ErrNotFound, id)
	}

	score, err := strconv.Atoi(fields["score"])
	if err != nil {
		return Record{}, fmt.Errorf("highscore: record %s: bad score: %w", id, err)
	}
	created, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("highscore: record %s: bad timestamp: %w", id, err)
	}

	return Record{
		ID:        id,
		UserID:    fields["user_id"],
		Score:     score,
		CreatedAt: time.Unix(created, 0),
	}, nil
}
