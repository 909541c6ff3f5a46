package data

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaults embed.FS

const (
	weaponsFile = "weapons.yaml"
	enemiesFile = "enemies.yaml"
)

// Weapon is one player weapon pattern.
type Weapon struct {
	Kind        string    `yaml:"kind"`
	Rate        int       `yaml:"rate"` // fire-rate divisor in ticks
	Speed       float64   `yaml:"speed"`
	Width       float64   `yaml:"width"`
	Height      float64   `yaml:"height"`
	Penetration int       `yaml:"penetration"`
	TTL         int       `yaml:"ttl"`    // 0 = lives until off-screen
	Lift        float64   `yaml:"lift"`   // upward velocity gained per tick
	Spread      []float64 `yaml:"spread"` // vertical velocity per bullet; empty = one straight bullet
	Color       string    `yaml:"color"`
}

// Enemy is one ambient enemy archetype. Fields that do not apply to a
// subtype are left zero.
type Enemy struct {
	Subtype      string  `yaml:"subtype"`
	Weight       int     `yaml:"weight"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	HP           int     `yaml:"hp"`
	Speed        float64 `yaml:"speed"`
	FireEvery    int     `yaml:"fire_every"`
	ShotSpeed    float64 `yaml:"shot_speed"`
	BombRange    float64 `yaml:"bomb_range"`
	BombChance   float64 `yaml:"bomb_chance"`
	BobAmplitude float64 `yaml:"bob_amplitude"`
	BobFrequency float64 `yaml:"bob_frequency"`
	JumpChance   float64 `yaml:"jump_chance"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	Color        string  `yaml:"color"`
}

type weaponFile struct {
	Weapons []Weapon `yaml:"weapons"`
}

type enemyFile struct {
	Enemies []Enemy `yaml:"enemies"`
}

// WeaponTable holds weapon patterns indexed by kind, in file order.
type WeaponTable struct {
	byKind map[string]Weapon
	order  []string
}

// Get returns the pattern for kind.
func (t *WeaponTable) Get(kind string) (Weapon, bool) {
	w, ok := t.byKind[kind]
	return w, ok
}

// Kinds returns weapon kinds in file order.
func (t *WeaponTable) Kinds() []string {
	return append([]string(nil), t.order...)
}

func (t *WeaponTable) Count() int {
	return len(t.order)
}

// EnemyTable holds enemy archetypes indexed by subtype, in file order.
type EnemyTable struct {
	bySubtype map[string]Enemy
	order     []string
}

func (t *EnemyTable) Get(subtype string) (Enemy, bool) {
	e, ok := t.bySubtype[subtype]
	return e, ok
}

// Subtypes returns enemy subtypes in file order.
func (t *EnemyTable) Subtypes() []string {
	return append([]string(nil), t.order...)
}

func (t *EnemyTable) Count() int {
	return len(t.order)
}

// TotalWeight is the sum of all archetype spawn weights.
func (t *EnemyTable) TotalWeight() int {
	total := 0
	for _, s := range t.order {
		total += t.bySubtype[s].Weight
	}
	return total
}

// Tables bundles every data table the simulation reads.
type Tables struct {
	Weapons *WeaponTable
	Enemies *EnemyTable
}

// Load reads weapons.yaml and enemies.yaml from dir. An empty dir loads the
// embedded defaults.
func Load(dir string) (*Tables, error) {
	read := func(name string) ([]byte, error) {
		if dir == "" {
			return defaults.ReadFile("defaults/" + name)
		}
		return os.ReadFile(filepath.Join(dir, name))
	}

	raw, err := read(weaponsFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", weaponsFile, err)
	}
	weapons, err := parseWeapons(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", weaponsFile, err)
	}

	raw, err = read(enemiesFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", enemiesFile, err)
	}
	enemies, err := parseEnemies(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", enemiesFile, err)
	}

	return &Tables{Weapons: weapons, Enemies: enemies}, nil
}

// MustDefaults loads the embedded tables and panics if they are broken.
func MustDefaults() *Tables {
	t, err := Load("")
	if err != nil {
		panic(err)
	}
	return t
}

func parseWeapons(raw []byte) (*WeaponTable, error) {
	var f weaponFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	t := &WeaponTable{byKind: make(map[string]Weapon, len(f.Weapons))}
	for _, w := range f.Weapons {
		if w.Kind == "" {
			return nil, fmt.Errorf("weapon without kind")
		}
		if _, dup := t.byKind[w.Kind]; dup {
			return nil, fmt.Errorf("duplicate weapon %q", w.Kind)
		}
		if w.Rate <= 0 || w.Speed <= 0 {
			return nil, fmt.Errorf("weapon %q: rate and speed must be positive", w.Kind)
		}
		if w.Penetration < 1 {
			w.Penetration = 1
		}
		if _, err := ParseColor(w.Color); err != nil {
			return nil, fmt.Errorf("weapon %q: %w", w.Kind, err)
		}
		t.byKind[w.Kind] = w
		t.order = append(t.order, w.Kind)
	}
	return t, nil
}

func parseEnemies(raw []byte) (*EnemyTable, error) {
	var f enemyFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	t := &EnemyTable{bySubtype: make(map[string]Enemy, len(f.Enemies))}
	for _, e := range f.Enemies {
		if e.Subtype == "" {
			return nil, fmt.Errorf("enemy without subtype")
		}
		if _, dup := t.bySubtype[e.Subtype]; dup {
			return nil, fmt.Errorf("duplicate enemy %q", e.Subtype)
		}
		if e.HP <= 0 || e.Weight < 0 {
			return nil, fmt.Errorf("enemy %q: hp must be positive and weight non-negative", e.Subtype)
		}
		if _, err := ParseColor(e.Color); err != nil {
			return nil, fmt.Errorf("enemy %q: %w", e.Subtype, err)
		}
		t.bySubtype[e.Subtype] = e
		t.order = append(t.order, e.Subtype)
	}
	if t.TotalWeight() <= 0 {
		return nil, fmt.Errorf("enemy weights sum to zero")
	}
	return t, nil
}

// ParseColor parses "#rrggbb" into a packed 0xRRGGBB value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
