package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Audio    AudioConfig    `toml:"audio"`
	Briefing BriefingConfig `toml:"briefing"`
	Data     DataConfig     `toml:"data"`
	Physics  PhysicsConfig  `toml:"physics"`
	Player   PlayerConfig   `toml:"player"`
	Spawn    SpawnConfig    `toml:"spawn"`
	Boss     BossConfig     `toml:"boss"`
	Combat   CombatConfig   `toml:"combat"`
	HUD      HUDConfig      `toml:"hud"`
}

type DisplayConfig struct {
	FPS        int     `toml:"fps"`
	CellWidth  float64 `toml:"cell_width"`  // world pixels per terminal column
	CellHeight float64 `toml:"cell_height"` // world pixels per terminal row
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // the terminal belongs to the renderer
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"` // 0.0-1.0
	SampleRate int     `toml:"sample_rate"`
}

type BriefingConfig struct {
	URL     string        `toml:"url"`
	Timeout time.Duration `toml:"timeout"`
}

type DataConfig struct {
	Dir string `toml:"dir"` // empty = embedded tables
}

// PhysicsConfig values are per tick.
type PhysicsConfig struct {
	Gravity          float64 `toml:"gravity"`
	Friction         float64 `toml:"friction"`
	LandingTolerance float64 `toml:"landing_tolerance"`
	OffscreenMargin  float64 `toml:"offscreen_margin"`
	BulletMargin     float64 `toml:"bullet_margin"`
}

type PlayerConfig struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	Speed       float64 `toml:"speed"`
	JumpImpulse float64 `toml:"jump_impulse"`
	MaxHP       int     `toml:"max_hp"`
	Weapon      string  `toml:"weapon"`
}

type SpawnConfig struct {
	EnemyInterval   int     `toml:"enemy_interval"`
	PowerupInterval int     `toml:"powerup_interval"`
	PowerupSpeed    float64 `toml:"powerup_speed"`
	PowerupSize     float64 `toml:"powerup_size"`
}

type BossConfig struct {
	ScoreThreshold int     `toml:"score_threshold"`
	HP             int     `toml:"hp"`
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"`
	EnterSpeed     float64 `toml:"enter_speed"`
	StopOffset     float64 `toml:"stop_offset"` // distance of the stop x from the right edge
	HoverAmplitude float64 `toml:"hover_amplitude"`
	HoverFrequency float64 `toml:"hover_frequency"`
	Phase1Cooldown int     `toml:"phase1_cooldown"`
	Phase2Cooldown int     `toml:"phase2_cooldown"`
	ShotSpeed      float64 `toml:"shot_speed"`
	ShotSize       float64 `toml:"shot_size"`
	Color          string  `toml:"color"`
	RageColor      string  `toml:"rage_color"`
}

type CombatConfig struct {
	ContactDamage     int     `toml:"contact_damage"`
	KnockbackX        float64 `toml:"knockback_x"`
	KnockbackY        float64 `toml:"knockback_y"`
	InvulnerableTicks int     `toml:"invulnerable_ticks"`
	PowerupScore      int     `toml:"powerup_score"`
	KillScore         int     `toml:"kill_score"`
	BossScore         int     `toml:"boss_score"`
	HitParticles      int     `toml:"hit_particles"`
	KillParticles     int     `toml:"kill_particles"`
	BossParticles     int     `toml:"boss_particles"`
	PickupParticles   int     `toml:"pickup_particles"`
	ParticleTTL       int     `toml:"particle_ttl"`
	ParticleSpeed     float64 `toml:"particle_speed"`
}

type HUDConfig struct {
	Interval int `toml:"interval"` // ticks between HUD snapshots
}

// Load reads the TOML file at path over Default. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Display.FPS <= 0:
		return fmt.Errorf("display.fps must be positive, got %d", c.Display.FPS)
	case c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0:
		return fmt.Errorf("display cell size must be positive")
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("physics.gravity must be positive, got %v", c.Physics.Gravity)
	case c.Spawn.EnemyInterval <= 0 || c.Spawn.PowerupInterval <= 0:
		return fmt.Errorf("spawn intervals must be positive")
	case c.Boss.Phase1Cooldown <= 0 || c.Boss.Phase2Cooldown <= 0:
		return fmt.Errorf("boss cooldowns must be positive")
	case c.Boss.HP <= 0 || c.Player.MaxHP <= 0:
		return fmt.Errorf("hp values must be positive")
	case c.HUD.Interval <= 0:
		return fmt.Errorf("hud.interval must be positive, got %d", c.HUD.Interval)
	}
	return nil
}

func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			FPS:        60,
			CellWidth:  8,
			CellHeight: 16,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "gstrike.log",
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.4,
			SampleRate: 44100,
		},
		Briefing: BriefingConfig{
			Timeout: 3 * time.Second,
		},
		Physics: PhysicsConfig{
			Gravity:          0.6,
			Friction:         0.8,
			LandingTolerance: 20,
			OffscreenMargin:  100,
			BulletMargin:     50,
		},
		Player: PlayerConfig{
			Width:       32,
			Height:      48,
			Speed:       6,
			JumpImpulse: -14,
			MaxHP:       100,
			Weapon:      "rifle",
		},
		Spawn: SpawnConfig{
			EnemyInterval:   100,
			PowerupInterval: 900,
			PowerupSpeed:    1.5,
			PowerupSize:     24,
		},
		Boss: BossConfig{
			ScoreThreshold: 1500,
			HP:             150,
			Width:          96,
			Height:         96,
			EnterSpeed:     2,
			StopOffset:     160,
			HoverAmplitude: 40,
			HoverFrequency: 0.03,
			Phase1Cooldown: 80,
			Phase2Cooldown: 40,
			ShotSpeed:      6,
			ShotSize:       12,
			Color:          "#b040ff",
			RageColor:      "#ff3030",
		},
		Combat: CombatConfig{
			ContactDamage:     10,
			KnockbackX:        8,
			KnockbackY:        6,
			InvulnerableTicks: 20,
			PowerupScore:      500,
			KillScore:         100,
			BossScore:         5000,
			HitParticles:      6,
			KillParticles:     12,
			BossParticles:     60,
			PickupParticles:   16,
			ParticleTTL:       30,
			ParticleSpeed:     4,
		},
		HUD: HUDConfig{
			Interval: 6,
		},
	}
}
