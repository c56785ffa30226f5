package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/astral/parameter"
)

// drain reads s to completion and returns the sample count and peak amplitude
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayTick(3)
	sm.PlayFound()
	sm.PlayNotFound()
	sm.ToggleMute()
	sm.Cleanup()
}

// TestSoundManagerInitialization verifies sound manager can be initialized and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	// Speaker initialization fails on machines without an audio device
	err := sm.Initialize()
	if err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}

	sm.PlayTick(0)
	sm.Cleanup()
	sm.PlayFound()
}

func TestStreamerDurations(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
		want time.Duration
	}{
		{"tick", Tick(0), parameter.TickSoundDuration},
		{"chime", Chime(), parameter.ChimeSoundDuration},
		{"buzz", Buzz(), parameter.BuzzSoundDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(tt.s)
			if want := sampleRate.N(tt.want); n != want {
				t.Errorf("Expected %d samples, got %d", want, n)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("Peak amplitude out of range: %f", peak)
			}
		})
	}
}

func TestToneGeneratorEnvelope(t *testing.T) {
	g := NewToneGenerator(sampleRate, 440, 10*time.Millisecond)
	buf := make([][2]float64, sampleRate.N(10*time.Millisecond))
	g.Stream(buf)

	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if last := buf[len(buf)-1][0]; math.Abs(last) > 0.01 {
		t.Errorf("Expected faded last sample, got %f", last)
	}
	for i := range buf {
		if buf[i][0] != buf[i][1] {
			t.Fatalf("Channels differ at %d", i)
		}
	}
	if g.Err() != nil {
		t.Errorf("Unexpected error: %v", g.Err())
	}
}

func TestTickPitchIsCapped(t *testing.T) {
	// Sample count stays fixed regardless of pitch
	n, _ := drain(Tick(100000))
	if want := sampleRate.N(parameter.TickSoundDuration); n != want {
		t.Errorf("Expected %d samples, got %d", want, n)
	}
}

func TestSoundManagerToggleMute(t *testing.T) {
	sm := NewSoundManager()

	if !sm.ToggleMute() {
		t.Error("Expected first toggle to mute")
	}
	if sm.ToggleMute() {
		t.Error("Expected second toggle to unmute")
	}
}
