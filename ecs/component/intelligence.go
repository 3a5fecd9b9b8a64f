package component

import (
	"fmt"

	"github.com/milk9111/lumaxman/fsm"
)

// CharacterState tags every state a character machine can be in.
type CharacterState int

const (
	StateNone CharacterState = iota
	PlayerAppear
	PlayerMoving
	PlayerHit
	EnemyFollowing
	EnemyEscaping
)

var characterStateNames = map[CharacterState]string{
	StateNone:      "none",
	PlayerAppear:   "player_appear",
	PlayerMoving:   "player_moving",
	PlayerHit:      "player_hit",
	EnemyFollowing: "enemy_following",
	EnemyEscaping:  "enemy_escaping",
}

func (s CharacterState) String() string {
	if name, ok := characterStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MachineKind selects the state table an Intelligence follows.
type MachineKind int

const (
	MachinePlayer MachineKind = iota + 1
	MachineEnemy
)

// Intelligence binds a character state machine to an entity.
type Intelligence struct {
	Machine MachineKind
	Initial CharacterState
	fsm.Runtime[CharacterState]
}

// State returns the active state, or StateNone before the machine starts.
func (i *Intelligence) State() CharacterState {
	s, ok := i.Current()
	if !ok {
		return StateNone
	}
	return s
}

var IntelligenceComponent = NewComponent[Intelligence]()
