package sim

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// spawn runs the frame-gated spawners. The boss check runs first so that the
// tick it appears on already suppresses ambient spawns.
func (w *World) spawn() {
	if !w.bossSpawned && w.score >= w.cfg.Boss.ScoreThreshold && w.findBoss() == nil {
		w.spawnBoss()
	}
	if w.bossActive {
		return
	}
	if w.frame%w.cfg.Spawn.EnemyInterval == 0 {
		w.spawnEnemy(w.drawSubtype())
	}
	if w.frame%w.cfg.Spawn.PowerupInterval == 0 {
		w.spawnPowerup()
	}
}

// drawSubtype makes the weighted draw over the enemy table.
func (w *World) drawSubtype() Subtype {
	r := w.rng.Intn(w.totalWeight)
	for _, st := range w.subtypes {
		r -= w.archetypes[st].Weight
		if r < 0 {
			return st
		}
	}
	return w.subtypes[len(w.subtypes)-1]
}

func (w *World) spawnEnemy(st Subtype) {
	arch := w.archetypes[st]
	size := Size{W: arch.Width, H: arch.Height}

	// Enter from a random edge, facing inward.
	dir := 1
	x := -size.W
	if w.rng.Intn(2) == 1 {
		dir = -1
		x = w.width
	}

	e := Enemy{
		Body: Body{
			ID:    uuid.NewString(),
			Kind:  KindEnemy,
			Pos:   Vec2{X: x, Y: w.floorTop() - size.H},
			Size:  size,
			Dir:   dir,
			HP:    arch.HP,
			MaxHP: arch.HP,
		},
		Subtype: st,
		Color:   w.enemyColor[st],
	}

	switch st {
	case Runner:
		e.Dir = sign(w.player.Center().X - e.Center().X)
		e.Vel.X = float64(e.Dir) * arch.Speed
		e.Grounded = true
	case Drone:
		e.Pos.Y = w.height*0.1 + w.rng.Float64()*w.height*0.35
		e.baseY = e.Pos.Y
		e.Vel.X = float64(dir) * arch.Speed
	case Jumper:
		e.Grounded = true
	}

	w.enemies = append(w.enemies, e)
}

// spawnPowerup drops a non-default weapon that drifts in from the right edge
// at a height the player can reach with a jump.
func (w *World) spawnPowerup() {
	def, _ := ParseWeapon(w.cfg.Player.Weapon)
	choices := make([]WeaponKind, 0, len(weaponKinds)-1)
	for _, k := range weaponKinds {
		if k != def {
			choices = append(choices, k)
		}
	}
	kind := choices[w.rng.Intn(len(choices))]

	sc := w.cfg.Spawn
	w.powerups = append(w.powerups, Powerup{
		Body: Body{
			ID:    uuid.NewString(),
			Kind:  KindPowerup,
			Pos:   Vec2{X: w.width, Y: w.floorTop() - sc.PowerupSize - 20 - w.rng.Float64()*80},
			Vel:   Vec2{X: -sc.PowerupSpeed},
			Size:  Size{W: sc.PowerupSize, H: sc.PowerupSize},
			Dir:   -1,
			HP:    1,
			MaxHP: 1,
		},
		Weapon: kind,
		Color:  w.weaponColor[kind],
	})
}

// spawnBoss places the boss just past the right edge in its entering phase
// and raises the boss-active flag.
func (w *World) spawnBoss() {
	bc := w.cfg.Boss
	hoverY := w.height * 0.2
	w.enemies = append(w.enemies, Enemy{
		Body: Body{
			ID:    uuid.NewString(),
			Kind:  KindEnemy,
			Pos:   Vec2{X: w.width + 20, Y: hoverY},
			Size:  Size{W: bc.Width, H: bc.Height},
			Dir:   -1,
			HP:    bc.HP,
			MaxHP: bc.HP,
		},
		Subtype: Boss,
		Color:   w.bossColor,
		Boss:    &BossState{Phase: PhaseEntering, HoverY: hoverY},
	})
	w.bossActive = true
	w.bossSpawned = true
	w.emit(Event{Kind: EventBossSpawn, Pos: Vec2{X: w.width, Y: hoverY}})
	w.log.Info("boss spawned", zap.Int("score", w.score), zap.Int("frame", w.frame))
}
