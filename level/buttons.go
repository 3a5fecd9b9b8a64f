package level

import (
	"fmt"

	"github.com/milk9111/lumaxman/scene"
	"github.com/sirupsen/logrus"
)

// Button identifies an overlay button.
type Button int

const (
	ButtonResume Button = iota
	ButtonHome
	ButtonSettings
	ButtonProceed
	ButtonBackToMenu
	ButtonReplay
	ButtonRetry
	ButtonSelectLevel
)

func (b Button) String() string {
	switch b {
	case ButtonResume:
		return "resume"
	case ButtonHome:
		return "home"
	case ButtonSettings:
		return "settings"
	case ButtonProceed:
		return "proceed"
	case ButtonBackToMenu:
		return "back_to_menu"
	case ButtonReplay:
		return "replay"
	case ButtonRetry:
		return "retry"
	case ButtonSelectLevel:
		return "select_level"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

var buttonScenes = map[Button]scene.ID{
	ButtonHome:        scene.Home,
	ButtonSettings:    scene.Settings,
	ButtonProceed:     scene.NextLevel,
	ButtonBackToMenu:  scene.Home,
	ButtonReplay:      scene.CurrentLevel,
	ButtonRetry:       scene.CurrentLevel,
	ButtonSelectLevel: scene.SelectLevel,
}

// PressButton handles an overlay button. Resume returns to Active; the
// other buttons request a scene through OnSceneRequest.
func (l *Level) PressButton(b Button) error {
	if b == ButtonResume {
		return l.Resume()
	}
	id, ok := buttonScenes[b]
	if !ok {
		return fmt.Errorf("level: unknown button %s", b)
	}
	logrus.WithFields(logrus.Fields{"level_number": l.number, "button": b, "scene": id}).Debug("level: scene requested")
	if l.onSceneRequest != nil {
		l.onSceneRequest(id)
	}
	return nil
}
