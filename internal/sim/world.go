package sim

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gstrike/internal/config"
	"gstrike/internal/data"
)

const (
	floorHeight     = 32.0
	platformHeight  = 12.0
	particleSize    = 3.0
	startPlayerXDiv = 4.0
)

// World is the whole simulation context: entity arenas, counters and the
// random source. It is owned by a single goroutine; only Step mutates it.
type World struct {
	cfg  *config.Config
	rng  *rand.Rand
	base *zap.Logger
	log  *zap.Logger

	weapons     map[WeaponKind]data.Weapon
	weaponColor map[WeaponKind]uint32
	archetypes  map[Subtype]data.Enemy
	enemyColor  map[Subtype]uint32
	subtypes    []Subtype // spawn draw order
	totalWeight int
	bossColor   uint32
	rageColor   uint32

	runID  string
	width  float64
	height float64

	frame        int
	score        int
	bossActive   bool
	bossSpawned  bool
	gameOverSent bool

	player    Player
	platforms []Platform
	enemies   []Enemy
	bullets   []Bullet
	shots     []EnemyShot
	particles []Particle
	powerups  []Powerup

	events []Event
}

// NewWorld validates the tables against the known weapon kinds and enemy
// subtypes. The world has no viewport until Resize is called.
func NewWorld(cfg *config.Config, tables *data.Tables, rng *rand.Rand, log *zap.Logger) (*World, error) {
	w := &World{
		cfg:         cfg,
		rng:         rng,
		base:        log,
		log:         log,
		weapons:     make(map[WeaponKind]data.Weapon, len(weaponKinds)),
		weaponColor: make(map[WeaponKind]uint32, len(weaponKinds)),
		archetypes:  make(map[Subtype]data.Enemy, 3),
		enemyColor:  make(map[Subtype]uint32, 4),
	}

	for _, k := range weaponKinds {
		wpn, ok := tables.Weapons.Get(k.String())
		if !ok {
			return nil, fmt.Errorf("weapon table: missing %q", k)
		}
		c, err := data.ParseColor(wpn.Color)
		if err != nil {
			return nil, fmt.Errorf("weapon table: %w", err)
		}
		w.weapons[k] = wpn
		w.weaponColor[k] = c
	}
	if _, ok := ParseWeapon(cfg.Player.Weapon); !ok {
		return nil, fmt.Errorf("player weapon %q is not a weapon kind", cfg.Player.Weapon)
	}

	for _, name := range tables.Enemies.Subtypes() {
		st, ok := ParseSubtype(name)
		if !ok || st == Boss {
			return nil, fmt.Errorf("enemy table: unknown subtype %q", name)
		}
		arch, _ := tables.Enemies.Get(name)
		c, err := data.ParseColor(arch.Color)
		if err != nil {
			return nil, fmt.Errorf("enemy table: %w", err)
		}
		w.archetypes[st] = arch
		w.enemyColor[st] = c
		w.subtypes = append(w.subtypes, st)
		w.totalWeight += arch.Weight
	}
	for _, st := range []Subtype{Runner, Drone, Jumper} {
		if _, ok := w.archetypes[st]; !ok {
			return nil, fmt.Errorf("enemy table: missing %q", st)
		}
	}

	var err error
	if w.bossColor, err = data.ParseColor(cfg.Boss.Color); err != nil {
		return nil, fmt.Errorf("boss color: %w", err)
	}
	if w.rageColor, err = data.ParseColor(cfg.Boss.RageColor); err != nil {
		return nil, fmt.Errorf("boss rage color: %w", err)
	}
	w.enemyColor[Boss] = w.bossColor

	return w, nil
}

// Resize sets the viewport in world pixels and starts a new run laid out for it.
func (w *World) Resize(width, height float64) {
	w.width = width
	w.height = height
	w.Reset()
}

// Reset discards all transient run state and lays the level out again.
func (w *World) Reset() {
	w.runID = uuid.NewString()
	w.log = w.base.With(zap.String("run", w.runID))

	w.frame = 0
	w.score = 0
	w.bossActive = false
	w.bossSpawned = false
	w.gameOverSent = false
	w.enemies = w.enemies[:0]
	w.bullets = w.bullets[:0]
	w.shots = w.shots[:0]
	w.particles = w.particles[:0]
	w.powerups = w.powerups[:0]
	w.events = w.events[:0]

	w.layoutPlatforms()

	weapon, _ := ParseWeapon(w.cfg.Player.Weapon)
	pc := w.cfg.Player
	w.player = Player{
		Body: Body{
			ID:    uuid.NewString(),
			Kind:  KindPlayer,
			Pos:   Vec2{X: math.Round(w.width / startPlayerXDiv), Y: w.floorTop() - pc.Height},
			Size:  Size{W: pc.Width, H: pc.Height},
			Dir:   1,
			HP:    pc.MaxHP,
			MaxHP: pc.MaxHP,
		},
		Grounded: true,
		Weapon:   weapon,
	}
}

// layoutPlatforms lays a full-width floor and 3-5 floating platforms spaced
// evenly across the viewport, each low enough to be reached with one jump.
// Coordinates are whole pixels so landing snaps are exact.
func (w *World) layoutPlatforms() {
	w.platforms = w.platforms[:0]
	if w.width <= 0 || w.height <= 0 {
		return
	}

	floorY := math.Round(w.height - floorHeight)
	w.platforms = append(w.platforms, w.newPlatform(0, floorY, w.width, floorHeight))

	pc := w.cfg.Player
	reach := pc.JumpImpulse * pc.JumpImpulse / (2 * w.cfg.Physics.Gravity)
	numPlatforms := 3 + w.rng.Intn(3)
	spacing := w.width / float64(numPlatforms+1)
	for i := 0; i < numPlatforms; i++ {
		centerX := spacing * float64(i+1)
		rise := 0.4*reach + w.rng.Float64()*0.45*reach
		width := math.Round(spacing * (0.45 + w.rng.Float64()*0.3))
		w.platforms = append(w.platforms, w.newPlatform(
			math.Round(centerX-width/2),
			math.Round(floorY-rise),
			width,
			platformHeight,
		))
	}
}

func (w *World) newPlatform(x, y, width, height float64) Platform {
	return Platform{Body: Body{
		ID:    uuid.NewString(),
		Kind:  KindPlatform,
		Pos:   Vec2{X: x, Y: y},
		Size:  Size{W: width, H: height},
		Dir:   1,
		HP:    1,
		MaxHP: 1,
	}}
}

func (w *World) floorTop() float64 {
	if len(w.platforms) == 0 {
		return w.height
	}
	return w.platforms[0].Pos.Y
}

func (w *World) Frame() int       { return w.frame }
func (w *World) Score() int       { return w.score }
func (w *World) BossActive() bool { return w.bossActive }
func (w *World) RunID() string    { return w.runID }
func (w *World) Player() Player   { return w.player }
func (w *World) Width() float64   { return w.width }
func (w *World) Height() float64  { return w.height }

// Ready reports whether the viewport can host a tick.
func (w *World) Ready() bool { return w.width > 0 && w.height > 0 }

func (w *World) emit(e Event) { w.events = append(w.events, e) }

func sign(d float64) int {
	if d < 0 {
		return -1
	}
	return 1
}

func (w *World) findBoss() *Enemy {
	for i := range w.enemies {
		if w.enemies[i].Subtype == Boss && !w.enemies[i].Dead {
			return &w.enemies[i]
		}
	}
	return nil
}

// Scene is the read-only rendering sink: copies of every entity set.
type Scene struct {
	Width, Height float64
	Frame         int
	Player        Player
	Platforms     []Platform
	Enemies       []Enemy
	Bullets       []Bullet
	Shots         []EnemyShot
	Particles     []Particle
	Powerups      []Powerup
}

// Scene copies the current entity sets for drawing.
func (w *World) Scene() Scene {
	enemies := slices.Clone(w.enemies)
	for i := range enemies {
		if enemies[i].Boss != nil {
			bs := *enemies[i].Boss
			enemies[i].Boss = &bs
		}
	}
	return Scene{
		Width:     w.width,
		Height:    w.height,
		Frame:     w.frame,
		Player:    w.player,
		Platforms: slices.Clone(w.platforms),
		Enemies:   enemies,
		Bullets:   slices.Clone(w.bullets),
		Shots:     slices.Clone(w.shots),
		Particles: slices.Clone(w.particles),
		Powerups:  slices.Clone(w.powerups),
	}
}
