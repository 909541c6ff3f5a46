package sim

import (
	"go.uber.org/zap"
)

type EventKind uint8

const (
	EventShot EventKind = iota
	EventEnemyFire
	EventHit
	EventKill
	EventPickup
	EventPlayerHurt
	EventBossSpawn
	EventBossPhase
	EventBossKill
)

func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventEnemyFire:
		return "enemy_fire"
	case EventHit:
		return "hit"
	case EventKill:
		return "kill"
	case EventPickup:
		return "pickup"
	case EventPlayerHurt:
		return "player_hurt"
	case EventBossSpawn:
		return "boss_spawn"
	case EventBossPhase:
		return "boss_phase"
	case EventBossKill:
		return "boss_kill"
	}
	return "unknown"
}

// Event is something that happened during a tick, for sound and logging.
type Event struct {
	Kind EventKind
	Pos  Vec2
}

// HUD is the display snapshot. It is derived state and never read back.
type HUD struct {
	Frame      int
	HP         int
	MaxHP      int
	Score      int
	Weapon     WeaponKind
	BossActive bool
	BossHP     int
	BossMaxHP  int
}

// GameOver is raised exactly once per run, on the tick player hp reaches zero.
type GameOver struct {
	Score int
	Frame int
}

// Outcome is what one tick produced.
type Outcome struct {
	Events   []Event
	HUD      *HUD      // nil between HUD refreshes
	GameOver *GameOver // nil unless raised this tick
}

// Step advances the world by one tick in a fixed order. The tick is skipped
// entirely, with no mutation, while the viewport is unusable.
func (w *World) Step(in *Input) Outcome {
	if !w.Ready() {
		return Outcome{}
	}
	snap, jump := in.take()

	w.frame++
	w.events = w.events[:0]

	if w.player.HP > 0 {
		w.movePlayer(snap, jump)
		w.fire(snap)
	}
	w.spawn()
	w.updateEnemies()
	w.updateBullets()
	w.updateShots()
	w.updatePowerups()
	w.updateParticles()
	w.resolvePlatforms()
	w.resolveCollisions()
	w.purge()

	out := Outcome{}
	if len(w.events) > 0 {
		out.Events = append([]Event(nil), w.events...)
	}
	if w.player.HP <= 0 && !w.gameOverSent {
		w.gameOverSent = true
		out.GameOver = &GameOver{Score: w.score, Frame: w.frame}
		w.log.Info("game over", zap.Int("score", w.score), zap.Int("frame", w.frame))
	}
	if w.frame == 1 || w.frame%w.cfg.HUD.Interval == 0 || out.GameOver != nil {
		hud := w.HUD()
		out.HUD = &hud
	}
	return out
}

// HUD computes the current display snapshot.
func (w *World) HUD() HUD {
	h := HUD{
		Frame:      w.frame,
		HP:         w.player.HP,
		MaxHP:      w.player.MaxHP,
		Score:      w.score,
		Weapon:     w.player.Weapon,
		BossActive: w.bossActive,
	}
	if b := w.findBoss(); b != nil {
		h.BossHP = b.HP
		h.BossMaxHP = b.MaxHP
	}
	return h
}

// purge drops every entity marked Dead. It is the only place entities leave
// the world, and running it again removes nothing.
func (w *World) purge() {
	w.enemies = compact(w.enemies, func(e *Enemy) bool { return e.Dead })
	w.bullets = compact(w.bullets, func(b *Bullet) bool { return b.Dead })
	w.shots = compact(w.shots, func(s *EnemyShot) bool { return s.Dead })
	w.particles = compact(w.particles, func(p *Particle) bool { return p.Dead })
	w.powerups = compact(w.powerups, func(p *Powerup) bool { return p.Dead })
}

func compact[T any](s []T, dead func(*T) bool) []T {
	active := s[:0]
	for i := range s {
		if !dead(&s[i]) {
			active = append(active, s[i])
		}
	}
	clear(s[len(active):])
	return active
}
