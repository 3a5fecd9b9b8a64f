package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/lumaxman/common"
)

// Input holds the keyboard actions of one frame. Every field is an edge:
// it is set only on the frame the key went down.
type Input struct {
	// Swipes lists the arrow/WASD presses in the order they happened.
	Swipes []common.Swipe
	// Pause toggles the pause overlay (Escape or P).
	Pause bool
	// Confirm is Enter or Space.
	Confirm bool
	Home    bool
	Next    bool
	Retry   bool
	Select  bool
	// Digit is the number key pressed, or 0.
	Digit int
	// Debug toggles the physics overlay (F3).
	Debug bool

	keys []ebiten.Key
}

var swipeKeys = map[ebiten.Key]common.Swipe{
	ebiten.KeyArrowUp:    common.SwipeUp,
	ebiten.KeyW:          common.SwipeUp,
	ebiten.KeyArrowDown:  common.SwipeDown,
	ebiten.KeyS:          common.SwipeDown,
	ebiten.KeyArrowLeft:  common.SwipeLeft,
	ebiten.KeyA:          common.SwipeLeft,
	ebiten.KeyArrowRight: common.SwipeRight,
	ebiten.KeyD:          common.SwipeRight,
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard.
func (i *Input) Update() {
	i.keys = inpututil.AppendJustPressedKeys(i.keys[:0])

	i.Swipes = i.Swipes[:0]
	i.Digit = 0
	for _, k := range i.keys {
		if s, ok := swipeKeys[k]; ok {
			i.Swipes = append(i.Swipes, s)
		}
		if k >= ebiten.KeyDigit1 && k <= ebiten.KeyDigit9 {
			i.Digit = int(k-ebiten.KeyDigit1) + 1
		}
	}

	i.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
	i.Confirm = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	i.Home = inpututil.IsKeyJustPressed(ebiten.KeyH)
	i.Next = inpututil.IsKeyJustPressed(ebiten.KeyN)
	i.Retry = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.Select = inpututil.IsKeyJustPressed(ebiten.KeyL)
	i.Debug = inpututil.IsKeyJustPressed(ebiten.KeyF3)
}
