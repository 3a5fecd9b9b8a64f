package component

import "github.com/jakecoffman/cp"

// Player carries the per-level counters of the player character.
type Player struct {
	Lives       int
	Coins       int
	MissingKeys int
	Spawn       cp.Vector
	// Hits counts entries into the hit state this level.
	Hits int
}

var PlayerComponent = NewComponent[Player]()
