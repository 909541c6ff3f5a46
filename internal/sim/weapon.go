package sim

import (
	"github.com/google/uuid"
)

// fire spawns the equipped weapon's pattern on frames divisible by its rate.
// Cadence is quantized to the tick rate.
func (w *World) fire(in Input) {
	if !in.Fire {
		return
	}
	p := &w.player
	wpn := w.weapons[p.Weapon]
	if w.frame%wpn.Rate != 0 {
		return
	}

	x := p.Pos.X + p.Size.W
	if p.Dir < 0 {
		x = p.Pos.X - wpn.Width
	}
	y := p.Pos.Y + p.Size.H/2 - wpn.Height/2

	spread := wpn.Spread
	if len(spread) == 0 {
		spread = []float64{0}
	}
	for _, vy := range spread {
		w.bullets = append(w.bullets, Bullet{
			Body: Body{
				ID:    uuid.NewString(),
				Kind:  KindBullet,
				Pos:   Vec2{X: x, Y: y},
				Vel:   Vec2{X: float64(p.Dir) * wpn.Speed, Y: vy},
				Size:  Size{W: wpn.Width, H: wpn.Height},
				Dir:   p.Dir,
				HP:    1,
				MaxHP: 1,
			},
			Weapon:      p.Weapon,
			Penetration: wpn.Penetration,
			TTL:         wpn.TTL,
			Lift:        wpn.Lift,
			Color:       w.weaponColor[p.Weapon],
		})
	}
	w.emit(Event{Kind: EventShot, Pos: Vec2{X: x, Y: y}})
}

// updateBullets moves player bullets. Bullets are gravity-exempt; flame
// bullets gain lift each tick and burn out when their ttl runs down.
func (w *World) updateBullets() {
	margin := w.cfg.Physics.BulletMargin
	for i := range w.bullets {
		b := &w.bullets[i]
		if b.Dead {
			continue
		}
		b.Vel.Y -= b.Lift
		integrate(&b.Body, 0)
		if b.TTL > 0 {
			b.TTL--
			if b.TTL == 0 {
				b.Dead = true
				continue
			}
		}
		if b.Pos.X+b.Size.W < -margin || b.Pos.X > w.width+margin ||
			b.Pos.Y+b.Size.H < -margin || b.Pos.Y > w.height+margin {
			b.Dead = true
		}
	}
}

// updateShots moves hostile projectiles in straight lines.
func (w *World) updateShots() {
	margin := w.cfg.Physics.BulletMargin
	for i := range w.shots {
		s := &w.shots[i]
		if s.Dead {
			continue
		}
		integrate(&s.Body, 0)
		if w.offscreen(&s.Body, margin) || s.Pos.Y+s.Size.H < -margin {
			s.Dead = true
		}
	}
}

// updatePowerups drifts pickups across the screen until they leave it.
func (w *World) updatePowerups() {
	margin := w.cfg.Physics.BulletMargin
	for i := range w.powerups {
		pu := &w.powerups[i]
		if pu.Dead {
			continue
		}
		integrate(&pu.Body, 0)
		if w.offscreen(&pu.Body, margin) {
			pu.Dead = true
		}
	}
}
