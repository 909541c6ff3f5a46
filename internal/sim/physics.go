package sim

// movePlayer drives the player from the input snapshot and integrates it.
// Horizontal input sets velocity outright; with no input the velocity decays
// by friction and is never snapped to zero.
func (w *World) movePlayer(in Input, jump bool) {
	p := &w.player
	pc := w.cfg.Player

	if p.Invulnerable > 0 {
		p.Invulnerable--
	}

	switch {
	case in.Left && !in.Right:
		p.Vel.X = -pc.Speed
		p.Dir = -1
	case in.Right && !in.Left:
		p.Vel.X = pc.Speed
		p.Dir = 1
	default:
		p.Vel.X *= w.cfg.Physics.Friction
	}

	if jump && p.Grounded {
		p.Vel.Y = pc.JumpImpulse
		p.Grounded = false
	}

	integrate(&p.Body, w.cfg.Physics.Gravity)

	if p.Pos.X < 0 {
		p.Pos.X = 0
	}
	if p.Pos.X+p.Size.W > w.width {
		p.Pos.X = w.width - p.Size.W
	}

	// Falling out of the world is fatal.
	if p.Pos.Y > w.height {
		p.HP = 0
	}
}

// integrate applies gravity (0 for gravity-exempt bodies) then advances by one tick.
func integrate(b *Body, gravity float64) {
	b.Vel.Y += gravity
	b.Pos.X += b.Vel.X
	b.Pos.Y += b.Vel.Y
}

// resolvePlatforms lands the player and ground-bound enemies. Drones and the
// boss never touch platforms.
func (w *World) resolvePlatforms() {
	w.land(&w.player.Body, &w.player.Grounded)
	for i := range w.enemies {
		e := &w.enemies[i]
		if e.Dead || e.Subtype == Drone || e.Subtype == Boss {
			continue
		}
		w.land(&e.Body, &e.Grounded)
	}
}

// land snaps b onto the first platform whose top its feet reached this tick.
// Only descending bodies land, so a jump passes up through a platform. The
// tolerance band below the top catches fast falls.
func (w *World) land(b *Body, grounded *bool) {
	*grounded = false
	if b.Vel.Y < 0 {
		return
	}
	tolerance := w.cfg.Physics.LandingTolerance
	bottom := b.Bottom()
	for i := range w.platforms {
		pl := &w.platforms[i].Body
		if b.Pos.X+b.Size.W <= pl.Pos.X || b.Pos.X >= pl.Pos.X+pl.Size.W {
			continue
		}
		if bottom < pl.Pos.Y || bottom > pl.Pos.Y+tolerance {
			continue
		}
		b.Vel.Y = 0
		b.Pos.Y = pl.Pos.Y - b.Size.H
		*grounded = true
		return
	}
}

// offscreen reports whether b has left the play area by more than margin on
// either side or below the bottom edge.
func (w *World) offscreen(b *Body, margin float64) bool {
	return b.Pos.X+b.Size.W < -margin ||
		b.Pos.X > w.width+margin ||
		b.Pos.Y > w.height+margin
}
