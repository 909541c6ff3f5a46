package sim

// Kind discriminates the entity records held by a World.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindBullet
	KindParticle
	KindPlatform
	KindPowerup
	KindBossProjectile
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	case KindParticle:
		return "particle"
	case KindPlatform:
		return "platform"
	case KindPowerup:
		return "powerup"
	case KindBossProjectile:
		return "boss_projectile"
	}
	return "unknown"
}

// Subtype selects the behavior of an Enemy.
type Subtype uint8

const (
	Runner Subtype = iota
	Drone
	Jumper
	Boss
)

func (s Subtype) String() string {
	switch s {
	case Runner:
		return "runner"
	case Drone:
		return "drone"
	case Jumper:
		return "jumper"
	case Boss:
		return "boss"
	}
	return "unknown"
}

// ParseSubtype maps a table name to a Subtype.
func ParseSubtype(s string) (Subtype, bool) {
	switch s {
	case "runner":
		return Runner, true
	case "drone":
		return Drone, true
	case "jumper":
		return Jumper, true
	case "boss":
		return Boss, true
	}
	return 0, false
}

// WeaponKind selects a player fire pattern.
type WeaponKind uint8

const (
	Rifle WeaponKind = iota
	Spread
	Laser
	Flame
)

var weaponKinds = []WeaponKind{Rifle, Spread, Laser, Flame}

func (k WeaponKind) String() string {
	switch k {
	case Rifle:
		return "rifle"
	case Spread:
		return "spread"
	case Laser:
		return "laser"
	case Flame:
		return "flame"
	}
	return "unknown"
}

func ParseWeapon(s string) (WeaponKind, bool) {
	for _, k := range weaponKinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// BossPhase is the ordinal stage of the boss state machine. It only increases.
type BossPhase uint8

const (
	PhaseEntering BossPhase = iota
	PhaseOne
	PhaseTwo
)

type Vec2 struct {
	X, Y float64
}

type Size struct {
	W, H float64
}

// Body is the kinematic and combat header shared by every entity.
// Pos is the top-left corner of the bounding box.
type Body struct {
	ID    string
	Kind  Kind
	Pos   Vec2
	Vel   Vec2
	Size  Size
	Dir   int // 1 right, -1 left
	HP    int
	MaxHP int
	Dead  bool // marked for deletion; removed by the end-of-tick purge
}

// Overlaps reports whether the two bounding boxes intersect. Touching edges do not.
func (b *Body) Overlaps(o *Body) bool {
	return b.Pos.X < o.Pos.X+o.Size.W &&
		b.Pos.X+b.Size.W > o.Pos.X &&
		b.Pos.Y < o.Pos.Y+o.Size.H &&
		b.Pos.Y+b.Size.H > o.Pos.Y
}

func (b *Body) Center() Vec2 {
	return Vec2{X: b.Pos.X + b.Size.W/2, Y: b.Pos.Y + b.Size.H/2}
}

func (b *Body) Bottom() float64 {
	return b.Pos.Y + b.Size.H
}

type Player struct {
	Body
	Grounded     bool
	Weapon       WeaponKind
	Invulnerable int // ticks left during which hostile contact is ignored
}

// BossState is carried only by enemies of subtype Boss.
type BossState struct {
	Phase  BossPhase
	HoverY float64
}

type Enemy struct {
	Body
	Subtype     Subtype
	Grounded    bool
	AttackTimer int
	Color       uint32
	Boss        *BossState

	baseY float64 // drone bob center
}

type Bullet struct {
	Body
	Weapon      WeaponKind
	Penetration int     // remaining enemies this bullet may damage
	TTL         int     // ticks left; 0 means no lifetime limit
	Lift        float64 // upward velocity gained per tick
	Color       uint32

	struck []string // enemies already damaged by this bullet
}

func (b *Bullet) hasStruck(id string) bool {
	for _, s := range b.struck {
		if s == id {
			return true
		}
	}
	return false
}

// EnemyShot is a hostile projectile fired by an enemy or the boss.
type EnemyShot struct {
	Body
	Color uint32
}

type Particle struct {
	Body
	TTL   int
	Color uint32
}

type Platform struct {
	Body
}

type Powerup struct {
	Body
	Weapon WeaponKind
	Color  uint32
}
