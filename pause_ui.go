package main

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/lumaxman/level"
)

var overlayTitles = map[level.MetaState]string{
	level.MetaPaused:  "Paused",
	level.MetaFail:    "Game over",
	level.MetaSuccess: "Level complete",
}

var overlayButtons = map[level.MetaState][]string{
	level.MetaPaused:  {"[Esc] Resume", "[R] Retry", "[L] Select level", "[H] Home"},
	level.MetaFail:    {"[R] Retry", "[H] Home"},
	level.MetaSuccess: {"[N] Next level", "[R] Replay", "[H] Home"},
}

// overlayButton maps a key action to the overlay button it presses in
// state, if that overlay shows one.
func overlayButton(state level.MetaState, in *Input) (level.Button, bool) {
	switch {
	case in.Pause && state == level.MetaPaused:
		return level.ButtonResume, true
	case in.Retry && state == level.MetaSuccess:
		return level.ButtonReplay, true
	case in.Retry:
		return level.ButtonRetry, true
	case in.Next && state == level.MetaSuccess:
		return level.ButtonProceed, true
	case in.Select && state == level.MetaPaused:
		return level.ButtonSelectLevel, true
	case in.Home:
		return level.ButtonHome, true
	}
	return 0, false
}

// drawOverlay dims the screen and lists the buttons of state. Nothing is
// drawn while the level is active.
func drawOverlay(screen *ebiten.Image, state level.MetaState, width, height float32) {
	title, ok := overlayTitles[state]
	if !ok {
		return
	}
	vector.FillRect(screen, 0, 0, width, height, color.RGBA{A: 160}, false)

	pw, ph := width/2, height/2
	px, py := (width-pw)/2, (height-ph)/2
	vector.FillRect(screen, px, py, pw, ph, color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 230}, false)
	vector.StrokeRect(screen, px, py, pw, ph, 2, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 200}, false)

	text := title + "\n\n" + strings.Join(overlayButtons[state], "\n")
	ebitenutil.DebugPrintAt(screen, text, int(px)+24, int(py)+24)
}
