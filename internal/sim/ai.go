package sim

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// updateEnemies runs every live enemy's behavior for this tick. Behaviors may
// append hostile shots but never enemies, so the pointers stay valid.
func (w *World) updateEnemies() {
	for i := range w.enemies {
		e := &w.enemies[i]
		if e.Dead {
			continue
		}
		switch e.Subtype {
		case Runner:
			w.updateRunner(e)
		case Drone:
			w.updateDrone(e)
		case Jumper:
			w.updateJumper(e)
		case Boss:
			w.updateBoss(e)
		}
	}
}

// updateRunner keeps the velocity set at spawn and fires a horizontal shot
// at the player on its attack cadence while on screen and facing them.
func (w *World) updateRunner(e *Enemy) {
	arch := w.archetypes[Runner]
	integrate(&e.Body, w.cfg.Physics.Gravity)

	e.AttackTimer++
	if arch.FireEvery > 0 && e.AttackTimer >= arch.FireEvery && w.onScreen(&e.Body) {
		toPlayer := sign(w.player.Center().X - e.Center().X)
		if toPlayer == e.Dir {
			c := e.Center()
			w.fireShot(c, Vec2{X: float64(e.Dir) * arch.ShotSpeed}, e.Color)
			e.AttackTimer = 0
		}
	}

	if w.offscreen(&e.Body, w.cfg.Physics.OffscreenMargin) {
		e.Dead = true
	}
}

// updateDrone follows a scripted bobbing path rather than integrated physics
// and bombs straight down when it passes over the player.
func (w *World) updateDrone(e *Enemy) {
	arch := w.archetypes[Drone]
	e.Pos.X += e.Vel.X
	e.Vel.Y = 0
	e.Pos.Y = e.baseY + arch.BobAmplitude*math.Sin(float64(w.frame)*arch.BobFrequency)

	e.AttackTimer++
	dx := math.Abs(e.Center().X - w.player.Center().X)
	if dx < arch.BombRange && e.AttackTimer >= arch.FireEvery && w.rng.Float64() < arch.BombChance {
		w.fireShot(Vec2{X: e.Center().X, Y: e.Bottom()}, Vec2{Y: arch.ShotSpeed}, e.Color)
		e.AttackTimer = 0
	}

	if w.offscreen(&e.Body, w.cfg.Physics.OffscreenMargin) {
		e.Dead = true
	}
}

// updateJumper leaps toward the player's current side at random while grounded.
func (w *World) updateJumper(e *Enemy) {
	arch := w.archetypes[Jumper]
	if e.Grounded {
		if w.rng.Float64() < arch.JumpChance {
			e.Dir = sign(w.player.Center().X - e.Center().X)
			e.Vel.X = float64(e.Dir) * arch.Speed
			e.Vel.Y = arch.JumpImpulse
			e.Grounded = false
		} else {
			e.Vel.X *= w.cfg.Physics.Friction
		}
	}
	integrate(&e.Body, w.cfg.Physics.Gravity)

	if w.offscreen(&e.Body, w.cfg.Physics.OffscreenMargin) {
		e.Dead = true
	}
}

// updateBoss advances the three-phase boss. Entering ends the tick the stop
// position is reached; the hp check can then promote it to phase two at once.
func (w *World) updateBoss(e *Enemy) {
	bc := w.cfg.Boss
	bs := e.Boss

	if bs.Phase == PhaseEntering {
		stopX := w.width - bc.StopOffset
		e.Vel = Vec2{X: -bc.EnterSpeed}
		e.Pos.X += e.Vel.X
		if e.Pos.X > stopX {
			return
		}
		e.Pos.X = stopX
		e.Vel = Vec2{}
		bs.Phase = PhaseOne
		e.AttackTimer = 0
		w.emit(Event{Kind: EventBossPhase, Pos: e.Center()})
	}
	w.checkBossPhase(e)

	e.Pos.Y = bs.HoverY + bc.HoverAmplitude*math.Sin(float64(w.frame)*bc.HoverFrequency)
	e.Dir = sign(w.player.Center().X - e.Center().X)

	cooldown := bc.Phase1Cooldown
	if bs.Phase == PhaseTwo {
		cooldown = bc.Phase2Cooldown
	}
	e.AttackTimer++
	if e.AttackTimer < cooldown {
		return
	}
	e.AttackTimer = 0

	c := e.Center()
	target := w.player.Center()
	angle := math.Atan2(target.Y-c.Y, target.X-c.X)
	w.fireShot(c, Vec2{X: math.Cos(angle) * bc.ShotSpeed, Y: math.Sin(angle) * bc.ShotSpeed}, e.Color)
	if bs.Phase == PhaseTwo {
		w.fireShot(c, Vec2{X: float64(e.Dir) * bc.ShotSpeed}, e.Color)
	}
}

// checkBossPhase promotes the boss to phase two once hp drops below half.
// The transition depends only on hp and never reverses.
func (w *World) checkBossPhase(e *Enemy) {
	bs := e.Boss
	if bs == nil || bs.Phase != PhaseOne || e.HP*2 >= e.MaxHP {
		return
	}
	bs.Phase = PhaseTwo
	e.Color = w.rageColor
	e.AttackTimer = 0
	w.emit(Event{Kind: EventBossPhase, Pos: e.Center()})
	w.log.Info("boss enraged", zap.Int("hp", e.HP), zap.Int("frame", w.frame))
}

func (w *World) fireShot(center, vel Vec2, color uint32) {
	size := w.cfg.Boss.ShotSize
	w.shots = append(w.shots, EnemyShot{
		Body: Body{
			ID:    uuid.NewString(),
			Kind:  KindBossProjectile,
			Pos:   Vec2{X: center.X - size/2, Y: center.Y - size/2},
			Vel:   vel,
			Size:  Size{W: size, H: size},
			Dir:   sign(vel.X),
			HP:    1,
			MaxHP: 1,
		},
		Color: color,
	})
	w.emit(Event{Kind: EventEnemyFire, Pos: center})
}

func (w *World) onScreen(b *Body) bool {
	return b.Pos.X+b.Size.W > 0 && b.Pos.X < w.width
}
