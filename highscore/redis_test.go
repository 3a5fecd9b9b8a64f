package highscore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/milk9111/lumaxman/highscore"
)

type RedisStoreTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	store     *highscore.RedisStore
	ctx       context.Context
}

func (s *RedisStoreTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store, err := highscore.NewRedis(&highscore.RedisConfig{
		Client: s.client,
		Now:    func() time.Time { return time.Unix(1700000000, 0) },
	})
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *RedisStoreTestSuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
	s.miniRedis.Close()
}

func (s *RedisStoreTestSuite) TestNewRedisValidatesConfig() {
	testCases := []struct {
		name   string
		config *highscore.RedisConfig
	}{
		{name: "nil config"},
		{name: "nil client", config: &highscore.RedisConfig{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := highscore.NewRedis(tc.config)
			s.ErrorIs(err, highscore.ErrInvalidArgument)
		})
	}
}

func (s *RedisStoreTestSuite) TestSubmitAndTop() {
	s.Require().NoError(s.store.SubmitScore(s.ctx, "ada", 12))
	s.Require().NoError(s.store.SubmitScore(s.ctx, "bob", 30))
	s.Require().NoError(s.store.SubmitScore(s.ctx, "cy", 7))

	top, err := s.store.Top(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("bob", top[0].UserID)
	s.Equal(30, top[0].Score)
	s.Equal("ada", top[1].UserID)
	s.Equal(time.Unix(1700000000, 0), top[0].CreatedAt)
	s.NotEmpty(top[0].ID)

	all, err := s.store.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RedisStoreTestSuite) TestSubmitRejectsBadInput() {
	s.ErrorIs(s.store.SubmitScore(s.ctx, "", 1), highscore.ErrInvalidArgument)
	s.ErrorIs(s.store.SubmitScore(s.ctx, "ada", -1), highscore.ErrInvalidArgument)

	_, err := s.store.Top(s.ctx, 0)
	s.ErrorIs(err, highscore.ErrInvalidArgument)
}

func (s *RedisStoreTestSuite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, "nope")
	s.ErrorIs(err, highscore.ErrNotFound)
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}
