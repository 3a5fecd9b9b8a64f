package level

import (
	"fmt"

	"github.com/milk9111/lumaxman/fsm"
	"github.com/sirupsen/logrus"
)

// MetaState is the state of the level as a whole.
type MetaState int

const (
	MetaActive MetaState = iota
	MetaPaused
	MetaFail
	MetaSuccess
)

func (s MetaState) String() string {
	switch s {
	case MetaActive:
		return "active"
	case MetaPaused:
		return "paused"
	case MetaFail:
		return "fail"
	case MetaSuccess:
		return "success"
	default:
		return fmt.Sprintf("meta(%d)", int(s))
	}
}

type metaMachine = fsm.Definition[MetaState, *Level]

type metaHandler = fsm.Handler[MetaState, *Level]

func newMetaMachine() *metaMachine {
	return fsm.NewDefinition[MetaState, *Level]("level").
		State(MetaActive, metaHandler{
			Enter:  (*Level).enterActive,
			Update: (*Level).updateActive,
		}).
		State(MetaPaused, metaHandler{Enter: overlayEnter(MetaPaused)}).
		State(MetaFail, metaHandler{Enter: overlayEnter(MetaFail)}).
		State(MetaSuccess, metaHandler{Enter: (*Level).enterSuccess}).
		Allow(MetaActive, MetaPaused, MetaFail, MetaSuccess).
		Allow(MetaPaused, MetaActive)
}

func (l *Level) enterActive(from MetaState, hadFrom bool) {
	l.presenter.ShowOverlay(MetaActive)
	l.logMeta(MetaActive, from, hadFrom)
}

// overlayEnter builds the Enter handler of a state whose only effect is
// showing its overlay. Ticks in those states freeze the world.
func overlayEnter(state MetaState) func(*Level, MetaState, bool) {
	return func(l *Level, from MetaState, hadFrom bool) {
		l.presenter.ShowOverlay(state)
		l.logMeta(state, from, hadFrom)
	}
}

func (l *Level) enterSuccess(from MetaState, hadFrom bool) {
	l.presenter.ShowOverlay(MetaSuccess)
	l.logMeta(MetaSuccess, from, hadFrom)
	l.submitScore()
}

func (l *Level) logMeta(state, from MetaState, hadFrom bool) {
	fields := logrus.Fields{"level_number": l.number, "state": state}
	if hadFrom {
		fields["from"] = from
	}
	logrus.WithFields(fields).Info("level: meta state")
}
