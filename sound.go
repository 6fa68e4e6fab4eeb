//go:build !libretro

package lrscript

import "math"

// chimeNote is one voice of an arpeggio
type chimeNote struct {
	freq   float64
	start  float64
	volume float64
}

// generateSavedChime creates a short two-note confirmation (48kHz stereo S16LE)
func generateSavedChime() []byte {
	return synthesize(0.4, []chimeNote{
		{523.25, 0.0, 0.4},
		{783.99, 0.08, 0.3},
	})
}

// generateCompleteChime creates a rising major arpeggio (48kHz stereo S16LE)
func generateCompleteChime() []byte {
	return synthesize(0.8, []chimeNote{
		{261.63, 0.0, 0.4},
		{329.63, 0.08, 0.3},
		{392.00, 0.16, 0.3},
		{523.25, 0.24, 0.25},
	})
}

// synthesize mixes notes with a raised-cosine attack and exponential decay
func synthesize(duration float64, notes []chimeNote) []byte {
	numSamples := int(float64(audioSampleRate) * duration)
	samples := make([]byte, numSamples*4) // 2 bytes * 2 channels

	const attackTime = 0.05
	decayTime := duration * 0.75

	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(audioSampleRate)
		sample := 0.0

		for _, note := range notes {
			if t < note.start {
				continue
			}

			noteT := t - note.start
			var envelope float64
			if noteT < attackTime {
				envelope = (1 - math.Cos(math.Pi*noteT/attackTime)) / 2
			} else {
				envelope = math.Exp(-2.5 * (noteT - attackTime) / decayTime)
			}

			fundamental := math.Sin(2 * math.Pi * note.freq * noteT)
			harmonic := math.Sin(2*math.Pi*note.freq*2*noteT) * 0.15
			sample += (fundamental + harmonic) * envelope * note.volume
		}

		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}

		value := int16(sample * 12000)

		idx := i * 4
		samples[idx] = byte(value)
		samples[idx+1] = byte(value >> 8)
		samples[idx+2] = byte(value)
		samples[idx+3] = byte(value >> 8)
	}

	return samples
}
