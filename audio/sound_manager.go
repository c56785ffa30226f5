package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/astral/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays search cues through the speaker
// Every Play call is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds; the speaker itself stays open
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// ToggleMute flips output without releasing the speaker and returns the new muted state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// PlayTick plays a short blip whose pitch rises with the path position
func (sm *SoundManager) PlayTick(pathIndex int) {
	sm.play(Tick(pathIndex))
}

// PlayFound plays the two-note chime for a found path
func (sm *SoundManager) PlayFound() {
	sm.play(Chime())
}

// PlayNotFound plays a low buzz
func (sm *SoundManager) PlayNotFound() {
	sm.play(Buzz())
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Tick returns the finite streamer behind PlayTick
func Tick(pathIndex int) beep.Streamer {
	freq := parameter.TickSoundFreqBase + parameter.TickSoundFreqStep*float64(pathIndex)
	if freq > parameter.TickSoundFreqMax {
		freq = parameter.TickSoundFreqMax
	}
	return beep.Take(sampleRate.N(parameter.TickSoundDuration), NewToneGenerator(sampleRate, freq, parameter.TickSoundDuration))
}

// Chime returns the finite streamer behind PlayFound
func Chime() beep.Streamer {
	half := parameter.ChimeSoundDuration / 2
	return beep.Seq(
		beep.Take(sampleRate.N(half), NewToneGenerator(sampleRate, parameter.ChimeSoundFreqLow, half)),
		beep.Take(sampleRate.N(half), NewToneGenerator(sampleRate, parameter.ChimeSoundFreqHigh, half)),
	)
}

// Buzz returns the finite streamer behind PlayNotFound
func Buzz() beep.Streamer {
	return beep.Take(sampleRate.N(parameter.BuzzSoundDuration), NewBuzzGenerator(sampleRate, parameter.BuzzSoundFreq))
}
