package game

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"gstrike/internal/sim"
)

// Terminals report key presses and auto-repeats but never releases, so a key
// counts as held until keyTimeout passes without another press.
const keyTimeout = 150 * time.Millisecond

type action uint8

const (
	actLeft action = iota
	actRight
	actUp
	actDown
	actFire
	numActions
)

func actionFor(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actLeft, true
	case tcell.KeyRight:
		return actRight, true
	case tcell.KeyUp:
		return actUp, true
	case tcell.KeyDown:
		return actDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return actFire, true
		case 'a', 'A':
			return actLeft, true
		case 'd', 'D':
			return actRight, true
		case 'w', 'W':
			return actUp, true
		case 's', 'S':
			return actDown, true
		}
	}
	return 0, false
}

// keyState records the last press of every action.
type keyState struct {
	pressed [numActions]time.Time
}

func (k *keyState) press(a action, at time.Time) {
	k.pressed[a] = at
}

func (k *keyState) held(a action, now time.Time) bool {
	t := k.pressed[a]
	return !t.IsZero() && now.Sub(t) < keyTimeout
}

func (k *keyState) reset() {
	*k = keyState{}
}

// apply writes the held keys into in. Up doubles as jump.
func (k *keyState) apply(in *sim.Input, now time.Time) {
	in.Left = k.held(actLeft, now)
	in.Right = k.held(actRight, now)
	in.Up = k.held(actUp, now)
	in.Down = k.held(actDown, now)
	in.Fire = k.held(actFire, now)
	in.SetJump(in.Up)
}
