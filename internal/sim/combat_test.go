package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRifleFiresOnFireRateDivisor(t *testing.T) {
	w := newTestWorld(t)
	w.player.Pos.X = 100
	w.player.Dir = 1
	in := &Input{Fire: true}

	for i := 0; i < 50; i++ {
		w.Step(in)
	}

	require.Len(t, w.bullets, 5)
	for _, b := range w.bullets {
		assert.Equal(t, Vec2{X: 12, Y: 0}, b.Vel)
		assert.Equal(t, 1, b.Penetration)
		assert.Equal(t, Rifle, b.Weapon)
	}
}

func TestSpreadFiresThreeDivergentBullets(t *testing.T) {
	w := newTestWorld(t)
	w.player.Weapon = Spread
	w.player.Dir = -1
	w.frame = 14
	in := &Input{Fire: true}

	w.Step(in)

	require.Len(t, w.bullets, 3)
	var vys []float64
	for _, b := range w.bullets {
		assert.Equal(t, -10.0, b.Vel.X)
		vys = append(vys, b.Vel.Y)
	}
	assert.ElementsMatch(t, []float64{0, -2, 2}, vys)
}

func TestFlameBurnsOutAfterTTL(t *testing.T) {
	w := newTestWorld(t)
	w.player.Weapon = Flame
	w.frame = 3
	in := &Input{Fire: true}

	w.Step(in)
	require.Len(t, w.bullets, 1)
	id := w.bullets[0].ID
	lastVY := w.bullets[0].Vel.Y

	in.Fire = false
	// The firing tick already burned one unit of the 30-tick ttl.
	for tick := 1; tick < 29; tick++ {
		w.Step(in)
		require.Len(t, w.bullets, 1, "flame gone early at tick %d", tick)
		assert.Less(t, w.bullets[0].Vel.Y, lastVY, "flame drifts upward")
		lastVY = w.bullets[0].Vel.Y
	}
	w.Step(in)
	for _, b := range w.bullets {
		assert.NotEqual(t, id, b.ID)
	}
}

func TestBulletsExpireOffscreen(t *testing.T) {
	w := newTestWorld(t)
	i := placeBullet(w, Rifle, w.Width()+45, 100)
	w.bullets[i].Vel.X = 12

	w.updateBullets()

	assert.True(t, w.bullets[i].Dead)
}

func TestEnemyDestroyedOnThirdHit(t *testing.T) {
	w := newTestWorld(t)
	j := placeEnemy(w, Runner, 400, 300, 3)

	for hit := 1; hit <= 3; hit++ {
		before := w.Score()
		placeBullet(w, Rifle, 405, 310)
		w.resolveCollisions()
		w.purge()

		if hit < 3 {
			require.Len(t, w.enemies, 1)
			assert.Equal(t, 3-hit, w.enemies[j].HP)
			assert.Equal(t, before, w.Score(), "no score before the kill")
		} else {
			assert.Empty(t, w.enemies)
			assert.Equal(t, before+100, w.Score())
		}
		assert.Empty(t, w.bullets, "rifle bullets die on their first hit")
	}
}

func TestLaserPenetratesFiveEnemies(t *testing.T) {
	w := newTestWorld(t)
	for k := 0; k < 6; k++ {
		placeEnemy(w, Runner, 400, 300, 2)
	}
	b := placeBullet(w, Laser, 395, 310)

	w.resolveBulletHits()

	assert.True(t, w.bullets[b].Dead)
	for k := 0; k < 5; k++ {
		assert.Equal(t, 1, w.enemies[k].HP, "enemy %d should be hit", k)
	}
	assert.Equal(t, 2, w.enemies[5].HP, "the sixth enemy is out of penetration")
}

func TestLaserSurvivesFourHits(t *testing.T) {
	w := newTestWorld(t)
	for k := 0; k < 4; k++ {
		placeEnemy(w, Runner, 400, 300, 2)
	}
	b := placeBullet(w, Laser, 395, 310)

	w.resolveBulletHits()

	assert.False(t, w.bullets[b].Dead)
	assert.Equal(t, 1, w.bullets[b].Penetration)
}

func TestRifleHitsOnlyOneOfOverlappingEnemies(t *testing.T) {
	w := newTestWorld(t)
	placeEnemy(w, Runner, 400, 300, 2)
	placeEnemy(w, Runner, 400, 300, 2)
	placeBullet(w, Rifle, 405, 310)

	w.resolveBulletHits()

	assert.Equal(t, 1, w.enemies[0].HP)
	assert.Equal(t, 2, w.enemies[1].HP)
}

func TestPenetratingBulletNeverHitsSameEnemyTwice(t *testing.T) {
	w := newTestWorld(t)
	j := placeEnemy(w, Runner, 400, 300, 5)
	b := placeBullet(w, Laser, 395, 310)

	w.resolveBulletHits()
	w.resolveBulletHits()

	assert.Equal(t, 4, w.enemies[j].HP)
	assert.Equal(t, 4, w.bullets[b].Penetration)
}

func TestDeadEnemyIsNotScoredTwice(t *testing.T) {
	w := newTestWorld(t)
	placeEnemy(w, Runner, 400, 300, 1)
	placeBullet(w, Rifle, 405, 310)
	placeBullet(w, Rifle, 405, 320)

	w.resolveBulletHits()

	assert.Equal(t, 100, w.Score())
	assert.True(t, w.enemies[0].Dead)
	assert.False(t, w.bullets[1].Dead, "the second bullet finds only a flagged enemy")
}

func TestHitsEmitParticlesColoredByTarget(t *testing.T) {
	w := newTestWorld(t)
	j := placeEnemy(w, Runner, 400, 300, 3)
	w.enemies[j].Color = 0x123456
	placeBullet(w, Rifle, 405, 310)

	w.resolveBulletHits()

	require.Len(t, w.particles, w.cfg.Combat.HitParticles)
	for _, p := range w.particles {
		assert.Equal(t, uint32(0x123456), p.Color)
	}
}

func TestBossKillClearsBossFlag(t *testing.T) {
	w := newTestWorld(t)
	w.spawnBoss()
	require.True(t, w.BossActive())
	w.enemies[0].HP = 1
	w.enemies[0].Pos = Vec2{X: 400, Y: 200}
	placeBullet(w, Rifle, 420, 220)

	w.resolveCollisions()
	w.purge()

	assert.False(t, w.BossActive())
	assert.Equal(t, 5000, w.Score())
	assert.Empty(t, w.enemies)
	assert.Len(t, w.particles, w.cfg.Combat.HitParticles+w.cfg.Combat.BossParticles)
}

func TestPowerupPickupEquipsWeapon(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	w.powerups = append(w.powerups, Powerup{
		Body:   Body{ID: "pu", Kind: KindPowerup, Pos: p.Pos, Size: Size{W: 24, H: 24}, HP: 1, MaxHP: 1},
		Weapon: Laser,
		Color:  0x00ffff,
	})

	w.resolveCollisions()
	w.purge()

	assert.Equal(t, Laser, w.Player().Weapon)
	assert.Equal(t, 500, w.Score())
	assert.Empty(t, w.powerups)
	assert.Len(t, w.particles, w.cfg.Combat.PickupParticles)
}

func TestEnemyShotHurtsAndKnocksBackPlayer(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	c := p.Center()
	w.fireShot(Vec2{X: c.X + 5, Y: c.Y}, Vec2{X: -6}, 0xffffff)
	w.fireShot(Vec2{X: c.X + 5, Y: c.Y}, Vec2{X: -6}, 0xffffff)

	w.resolvePlayerHits()

	assert.Equal(t, 90, w.player.HP)
	assert.True(t, w.shots[0].Dead)
	assert.False(t, w.shots[1].Dead, "the second shot passes during invulnerability")
	assert.Equal(t, -w.cfg.Combat.KnockbackX, w.player.Vel.X, "knocked away from the source")
	assert.Equal(t, -w.cfg.Combat.KnockbackY, w.player.Vel.Y)
	assert.False(t, w.player.Grounded)
	assert.Equal(t, w.cfg.Combat.InvulnerableTicks, w.player.Invulnerable)
}

func TestEnemyContactHurtsButKeepsEnemy(t *testing.T) {
	w := newTestWorld(t)
	w.cfg.Combat.InvulnerableTicks = 0
	p := w.Player()
	j := placeEnemy(w, Runner, p.Pos.X-20, p.Pos.Y, 3)

	w.resolvePlayerHits()

	assert.Equal(t, 90, w.player.HP)
	assert.False(t, w.enemies[j].Dead)
	assert.Equal(t, w.cfg.Combat.KnockbackX, w.player.Vel.X)
}

func TestPlayerHPNeverNegative(t *testing.T) {
	w := newTestWorld(t)
	w.cfg.Combat.InvulnerableTicks = 0
	w.player.HP = 5
	p := w.Player()
	placeEnemy(w, Runner, p.Pos.X, p.Pos.Y, 3)

	out := w.Step(&Input{})

	assert.Equal(t, 0, w.Player().HP)
	require.NotNil(t, out.GameOver)
}
