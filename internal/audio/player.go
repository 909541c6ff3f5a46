package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"gstrike/internal/config"
	"gstrike/internal/sim"
)

// maxVoices bounds how many effects one tick may start.
const maxVoices = 4

var sounds = map[sim.EventKind]effect{
	sim.EventShot:       {freq: 880, endFreq: 440, dur: 40 * time.Millisecond, wave: waveSquare, gain: 0.25},
	sim.EventEnemyFire:  {freq: 330, endFreq: 220, dur: 60 * time.Millisecond, wave: waveSquare, gain: 0.2},
	sim.EventHit:        {freq: 0, endFreq: 0, dur: 30 * time.Millisecond, wave: waveNoise, gain: 0.2},
	sim.EventKill:       {freq: 0, endFreq: 0, dur: 120 * time.Millisecond, wave: waveNoise, gain: 0.4},
	sim.EventPickup:     {freq: 660, endFreq: 1320, dur: 150 * time.Millisecond, wave: waveSine, gain: 0.5},
	sim.EventPlayerHurt: {freq: 200, endFreq: 90, dur: 180 * time.Millisecond, wave: waveSquare, gain: 0.5},
	sim.EventBossSpawn:  {freq: 110, endFreq: 55, dur: 600 * time.Millisecond, wave: waveSquare, gain: 0.6},
	sim.EventBossPhase:  {freq: 150, endFreq: 600, dur: 400 * time.Millisecond, wave: waveSquare, gain: 0.6},
	sim.EventBossKill:   {freq: 0, endFreq: 0, dur: 900 * time.Millisecond, wave: waveNoise, gain: 0.8},
}

// Player turns simulation events into short synthesized sounds. A Player
// whose output failed to open stays usable and silent.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	enabled bool
	muted   bool
	play    func(beep.Streamer)
	stop    func()
	log     *zap.Logger
}

// New opens the speaker. Failure is logged and leaves the Player disabled.
func New(cfg config.AudioConfig, log *zap.Logger) *Player {
	p := &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		log:    log,
	}
	if !cfg.Enabled {
		log.Info("audio disabled by config")
		return p
	}

	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		log.Warn("audio unavailable", zap.Error(err))
		return p
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	p.play = func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}
	p.stop = func() {
		speaker.Clear()
		speaker.Close()
	}
	p.enabled = true
	return p
}

func newPlayer(rate beep.SampleRate, volume float64, play func(beep.Streamer)) *Player {
	return &Player{rate: rate, volume: volume, play: play, enabled: true, log: zap.NewNop()}
}

// Handle plays one sound per distinct event kind in events, in order of
// first appearance.
func (p *Player) Handle(events []sim.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.muted || len(events) == 0 {
		return
	}

	var seen [sim.EventBossKill + 1]bool
	voices := 0
	for _, ev := range events {
		if voices == maxVoices {
			return
		}
		fx, ok := sounds[ev.Kind]
		if !ok || seen[ev.Kind] {
			continue
		}
		seen[ev.Kind] = true
		voices++
		gen := newToneGenerator(fx, p.rate)
		p.play(withVolume(beep.Take(gen.total, gen), p.volume))
	}
}

// ToggleMute flips the mute state and reports the new one.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Close stops playback and releases the output device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	p.enabled = false
	if p.stop != nil {
		p.stop()
	}
}
