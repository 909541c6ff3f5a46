package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type wave uint8

const (
	waveSine wave = iota
	waveSquare
	waveNoise
)

// effect describes one synthesized sound: a frequency sweep from freq to
// endFreq over dur, shaped by a linear release.
type effect struct {
	freq    float64
	endFreq float64
	dur     time.Duration
	wave    wave
	gain    float64
}

// toneGenerator streams a single swept tone and then ends.
type toneGenerator struct {
	fx      effect
	rate    beep.SampleRate
	total   int
	pos     int
	phase   float64
	noise   uint32
	attackN int
}

func newToneGenerator(fx effect, rate beep.SampleRate) *toneGenerator {
	return &toneGenerator{
		fx:      fx,
		rate:    rate,
		total:   rate.N(fx.dur),
		noise:   0x9e3779b9,
		attackN: rate.N(2 * time.Millisecond),
	}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.fx.freq + (g.fx.endFreq-g.fx.freq)*progress

		var val float64
		switch g.fx.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * g.phase)
		case waveSquare:
			val = 1
			if g.phase >= 0.5 {
				val = -1
			}
		case waveNoise:
			// xorshift keeps the generator free of shared rand state
			g.noise ^= g.noise << 13
			g.noise ^= g.noise >> 17
			g.noise ^= g.noise << 5
			val = float64(g.noise)/float64(math.MaxUint32)*2 - 1
		}

		env := 1 - progress
		if g.pos < g.attackN {
			env *= float64(g.pos) / float64(g.attackN)
		}
		val *= env * g.fx.gain

		samples[i][0] = val
		samples[i][1] = val

		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error { return nil }

// withVolume scales s linearly; zero or negative volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
