package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lumaxman/assets"
	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/level"
	"github.com/milk9111/lumaxman/levels"
	"github.com/milk9111/lumaxman/prefabs"
)

func TestParseSwipes(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    []timedSwipe
		wantErr bool
	}{
		{name: "empty", in: ""},
		{
			name: "sorted by time",
			in:   "2:up, 0.5:right",
			want: []timedSwipe{{At: 0.5, Swipe: common.SwipeRight}, {At: 2, Swipe: common.SwipeUp}},
		},
		{name: "missing time", in: "right", wantErr: true},
		{name: "negative time", in: "-1:left", wantErr: true},
		{name: "bad direction", in: "1:sideways", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSwipes(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func newSimLevel(t *testing.T, n int) *level.Level {
	t.Helper()
	lvl, err := levels.Load(n)
	require.NoError(t, err)
	reg, err := assets.LoadDefault()
	require.NoError(t, err)

	l, err := level.New(level.Config{
		Level:  lvl,
		Assets: reg,
		Tuning: prefabs.DefaultGameplaySpec(),
		UserID: "ada",
		Seed:   1,
	})
	require.NoError(t, err)
	return l
}

func TestSimulateCollectsAlongTheCorridor(t *testing.T) {
	l := newSimLevel(t, 1)
	swipes, err := parseSwipes("0.6:right")
	require.NoError(t, err)

	result := simulate(l, 4.5, swipes)

	assert.Equal(t, level.MetaActive, result.State)
	assert.InDelta(t, 4.5, result.Elapsed, level.MaxTickDelta+1e-9)
	assert.Equal(t, 2, result.Counters.Coins)
	assert.Equal(t, 1, result.Counters.MissingKeys)

	var out bytes.Buffer
	result.print(&out, 1)
	assert.Contains(t, out.String(), "level 1: active")
	assert.Contains(t, out.String(), "coins 2")
}

func TestSimulateStopsAtTerminalState(t *testing.T) {
	l := newSimLevel(t, 1)

	result := simulate(l, 0, nil)

	assert.Contains(t, []level.MetaState{level.MetaFail, level.MetaSuccess}, result.State)
	assert.True(t, l.IsTerminal())
}

func TestOverlayButton(t *testing.T) {
	testCases := []struct {
		name   string
		state  level.MetaState
		input  Input
		want   level.Button
		wantOK bool
	}{
		{name: "resume from pause", state: level.MetaPaused, input: Input{Pause: true}, want: level.ButtonResume, wantOK: true},
		{name: "retry after fail", state: level.MetaFail, input: Input{Retry: true}, want: level.ButtonRetry, wantOK: true},
		{name: "replay after success", state: level.MetaSuccess, input: Input{Retry: true}, want: level.ButtonReplay, wantOK: true},
		{name: "next after success", state: level.MetaSuccess, input: Input{Next: true}, want: level.ButtonProceed, wantOK: true},
		{name: "no next after fail", state: level.MetaFail, input: Input{Next: true}},
		{name: "select from pause", state: level.MetaPaused, input: Input{Select: true}, want: level.ButtonSelectLevel, wantOK: true},
		{name: "home", state: level.MetaFail, input: Input{Home: true}, want: level.ButtonHome, wantOK: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := overlayButton(tc.state, &tc.input)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
