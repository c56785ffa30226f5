package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 100 * time.Millisecond
)

// Path Tick Sound
const (
	TickSoundDuration = 25 * time.Millisecond
	TickSoundFreqBase = 440.0
	TickSoundFreqStep = 12.0 // Hz added per path cell, capped by TickSoundFreqMax
	TickSoundFreqMax  = 1760.0
)

// Found Chime
const (
	ChimeSoundDuration = 300 * time.Millisecond
	ChimeSoundFreqLow  = 523.25 // C5
	ChimeSoundFreqHigh = 783.99 // G5
)

// Not Found Buzz
const (
	BuzzSoundDuration = 150 * time.Millisecond
	BuzzSoundFreq     = 120.0
)
