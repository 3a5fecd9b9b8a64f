package highscore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/milk9111/lumaxman/highscore"
	highscoremock "github.com/milk9111/lumaxman/highscore/mock"
)

func TestAsyncSubmit(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "success"},
		{name: "failure is swallowed", err: errors.New("backend down")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSubmitter := highscoremock.NewMockSubmitter(ctrl)
			mockSubmitter.EXPECT().
				SubmitScore(gomock.Any(), "ada", 42).
				DoAndReturn(func(ctx context.Context, _ string, _ int) error {
					_, hasDeadline := ctx.Deadline()
					assert.True(t, hasDeadline)
					return tc.err
				}).
				Times(1)

			async := highscore.NewAsync(mockSubmitter, time.Second)
			async.Submit("ada", 42)
			async.Wait()
		})
	}
}

func TestAsyncNilSubmitter(t *testing.T) {
	async := highscore.NewAsync(nil, 0)
	async.Submit("ada", 1)
	async.Wait()
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := highscore.NewMemory()
	require.NoError(t, store.SubmitScore(ctx, "ada", 5))
	require.NoError(t, store.SubmitScore(ctx, "bob", 9))
	assert.ErrorIs(t, store.SubmitScore(ctx, "", 1), highscore.ErrInvalidArgument)

	top, err := store.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "bob", top[0].UserID)
}
