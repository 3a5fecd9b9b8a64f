package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, failing map[int]bool) (*Manager, *[]ID) {
	t.Helper()
	var changes []ID
	m, err := NewManager(&ManagerConfig{
		LevelCount: 3,
		LoadLevel: func(n int) error {
			if failing[n] {
				return errors.New("broken level file")
			}
			return nil
		},
		OnChange: func(id ID) { changes = append(changes, id) },
	})
	require.NoError(t, err)
	return m, &changes
}

func TestManagerConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  *ManagerConfig
	}{
		{name: "nil"},
		{name: "no levels", cfg: &ManagerConfig{LoadLevel: func(int) error { return nil }}},
		{name: "no loader", cfg: &ManagerConfig{LevelCount: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewManager(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestManagerResolve(t *testing.T) {
	m, _ := newTestManager(t, nil)

	_, err := m.Resolve(CurrentLevel)
	assert.ErrorIs(t, err, ErrNoCurrentLevel)
	_, err = m.Resolve(Level(4))
	assert.ErrorIs(t, err, ErrUnknownLevel)

	require.NoError(t, m.Request(Level(2)))

	tests := []struct {
		in   ID
		want ID
	}{
		{in: CurrentLevel, want: Level(2)},
		{in: NextLevel, want: Level(3)},
		{in: Home, want: Home},
		{in: Settings, want: Settings},
	}
	for _, tc := range tests {
		t.Run(tc.in.String(), func(t *testing.T) {
			got, err := m.Resolve(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	require.NoError(t, m.Request(NextLevel))
	got, err := m.Resolve(NextLevel)
	require.NoError(t, err)
	assert.Equal(t, End, got, "after the last level comes the end")
}

func TestManagerFallsBackOnLoadFailure(t *testing.T) {
	m, changes := newTestManager(t, map[int]bool{2: true})

	require.NoError(t, m.Request(SelectLevel))
	require.NoError(t, m.Request(Level(1)))
	err := m.Request(NextLevel)
	require.Error(t, err)

	assert.Equal(t, SelectLevel, m.Current())
	assert.Equal(t, []ID{SelectLevel, Level(1), SelectLevel}, *changes)
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "level_3", Level(3).String())
	assert.Equal(t, "home", Home.String())
	assert.True(t, Level(1).IsLevel())
	assert.False(t, NextLevel.IsLevel())
}
