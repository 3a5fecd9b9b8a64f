package assets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	r, err := LoadDefault()
	require.NoError(t, err)

	set, err := r.AnimationSet("player")
	require.NoError(t, err)

	clip, ok := set.Clip(component.AnimationMoving, common.DirectionUp)
	require.True(t, ok)
	assert.Equal(t, "player_moving_up", clip.ID)
	assert.True(t, clip.Loop)

	appear, ok := set.Clip(component.AnimationAppear, common.DirectionLeft)
	require.True(t, ok)
	assert.Equal(t, "player_appear", appear.ID)
	assert.False(t, appear.Loop)

	_, err = r.AnimationSet("dragon")
	assert.ErrorIs(t, err, ErrUnknownSet)
}

func TestParseManifestErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"bad_yaml", "characters: ["},
		{"unknown_state", "characters:\n  x:\n    dance: { frames: 1 }\n"},
		{"zero_frames", "characters:\n  x:\n    idle: { frames: 0 }\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRegistry()
			assert.Error(t, r.Load([]byte(c.data)))
			select {
			case <-r.Ready():
			default:
				t.Fatalf("registry must be ready after a failed load")
			}
		})
	}
}

func TestLoadAsyncSignalsCompletion(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	r := NewRegistry()
	r.LoadAsync(func() ([]byte, error) { return LoadFile(DefaultManifest) })
	require.NoError(t, r.Wait(ctx))
	_, err := r.AnimationSet("enemy")
	assert.NoError(t, err)

	failing := NewRegistry()
	failing.LoadAsync(func() ([]byte, error) { return nil, errors.New("disk gone") })
	assert.Error(t, failing.Wait(ctx))
}
