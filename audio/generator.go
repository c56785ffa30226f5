package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator generates a sine tone with a short attack and release
type ToneGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int // envelope length
}

// NewToneGenerator creates a tone generator shaped for the given duration
func NewToneGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:      sr,
		freq:    freq,
		samples: sr.N(d),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	edge := g.samples / 8
	if edge < 1 {
		edge = 1
	}
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Linear ramps at both ends avoid clicks
		envelope := 1.0
		if g.pos < edge {
			envelope = float64(g.pos) / float64(edge)
		} else if remaining := g.samples - g.pos; remaining < edge {
			envelope = math.Max(float64(remaining)/float64(edge), 0)
		}

		sample := 0.2 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Harmonics for a harsh edge
		sample := 0.0
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Min(float64(g.pos)/float64(g.sr)/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
