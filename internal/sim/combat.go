package sim

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const hurtColor = 0xff2020

// resolveCollisions evaluates every pairwise rule once, after all movement.
// Destruction only marks entities Dead; flagged entities are skipped by later
// pairs but stay in place until the purge.
func (w *World) resolveCollisions() {
	w.collectPowerups()
	w.resolveBulletHits()
	w.resolvePlayerHits()
}

func (w *World) collectPowerups() {
	p := &w.player
	for i := range w.powerups {
		pu := &w.powerups[i]
		if pu.Dead || !p.Overlaps(&pu.Body) {
			continue
		}
		p.Weapon = pu.Weapon
		w.score += w.cfg.Combat.PowerupScore
		pu.Dead = true
		w.burst(pu.Center(), w.cfg.Combat.PickupParticles, pu.Color)
		w.emit(Event{Kind: EventPickup, Pos: pu.Center()})
	}
}

// resolveBulletHits applies one damage per bullet/enemy contact. A bullet with
// penetration left survives the hit; it never damages the same enemy twice.
func (w *World) resolveBulletHits() {
	for i := range w.bullets {
		b := &w.bullets[i]
		for j := range w.enemies {
			if b.Dead {
				break
			}
			e := &w.enemies[j]
			if e.Dead || b.hasStruck(e.ID) || !b.Overlaps(&e.Body) {
				continue
			}
			b.struck = append(b.struck, e.ID)
			if b.Penetration > 1 {
				b.Penetration--
			} else {
				b.Dead = true
			}
			w.damageEnemy(e)
		}
	}
}

func (w *World) damageEnemy(e *Enemy) {
	cc := w.cfg.Combat
	e.HP--
	w.burst(e.Center(), cc.HitParticles, e.Color)
	w.emit(Event{Kind: EventHit, Pos: e.Center()})
	if e.HP > 0 {
		w.checkBossPhase(e)
		return
	}

	e.HP = 0
	e.Dead = true
	if e.Subtype == Boss {
		w.score += cc.BossScore
		w.bossActive = false
		w.burst(e.Center(), cc.BossParticles, e.Color)
		w.emit(Event{Kind: EventBossKill, Pos: e.Center()})
		w.log.Info("boss defeated", zap.Int("score", w.score), zap.Int("frame", w.frame))
		return
	}
	w.score += cc.KillScore
	w.burst(e.Center(), cc.KillParticles, e.Color)
	w.emit(Event{Kind: EventKill, Pos: e.Center()})
}

// resolvePlayerHits applies enemy contact and hostile shots to the player.
// Enemies survive contact; shots are consumed. Each hit starts an
// invulnerability window during which hostile contact is ignored.
func (w *World) resolvePlayerHits() {
	p := &w.player
	for i := range w.enemies {
		e := &w.enemies[i]
		if p.HP <= 0 || p.Invulnerable > 0 {
			return
		}
		if e.Dead || !p.Overlaps(&e.Body) {
			continue
		}
		w.hurtPlayer(e.Center())
	}
	for i := range w.shots {
		s := &w.shots[i]
		if p.HP <= 0 || p.Invulnerable > 0 {
			return
		}
		if s.Dead || !p.Overlaps(&s.Body) {
			continue
		}
		s.Dead = true
		w.hurtPlayer(s.Center())
	}
}

// hurtPlayer applies contact damage and knocks the player away from source.
func (w *World) hurtPlayer(source Vec2) {
	cc := w.cfg.Combat
	p := &w.player
	p.HP -= cc.ContactDamage
	if p.HP < 0 {
		p.HP = 0
	}

	away := p.Center().X - source.X
	dir := sign(away)
	if away == 0 {
		dir = -p.Dir
	}
	p.Vel.X = float64(dir) * cc.KnockbackX
	p.Vel.Y = -cc.KnockbackY
	p.Grounded = false
	p.Invulnerable = cc.InvulnerableTicks

	w.burst(p.Center(), cc.HitParticles, hurtColor)
	w.emit(Event{Kind: EventPlayerHurt, Pos: p.Center()})
}

// burst emits n cosmetic particles flying outward from center.
func (w *World) burst(center Vec2, n int, color uint32) {
	cc := w.cfg.Combat
	for i := 0; i < n; i++ {
		angle := w.rng.Float64() * 2 * math.Pi
		speed := cc.ParticleSpeed * (0.3 + 0.7*w.rng.Float64())
		w.particles = append(w.particles, Particle{
			Body: Body{
				ID:    uuid.NewString(),
				Kind:  KindParticle,
				Pos:   Vec2{X: center.X - particleSize/2, Y: center.Y - particleSize/2},
				Vel:   Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
				Size:  Size{W: particleSize, H: particleSize},
				Dir:   1,
				HP:    1,
				MaxHP: 1,
			},
			TTL:   cc.ParticleTTL/2 + w.rng.Intn(cc.ParticleTTL/2+1),
			Color: color,
		})
	}
}

// updateParticles drifts particles until their ttl expires.
func (w *World) updateParticles() {
	for i := range w.particles {
		pt := &w.particles[i]
		if pt.Dead {
			continue
		}
		integrate(&pt.Body, 0)
		pt.TTL--
		if pt.TTL <= 0 {
			pt.Dead = true
		}
	}
}
