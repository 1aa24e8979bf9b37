package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
)

func drain(streamer beep.Streamer) int {
	total := 0
	samples := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(samples)
		total += n
		if !ok {
			return total
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := NewTone(rate, 440, 100*time.Millisecond)

	assert.Equal(t, rate.N(100*time.Millisecond), drain(tone))
	assert.NoError(t, tone.Err())
}

func TestToneSamplesInRange(t *testing.T) {
	tone := NewTone(beep.SampleRate(44100), 440, 50*time.Millisecond)

	samples := make([][2]float64, 1000)
	n, ok := tone.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 1000, n)

	for i := 0; i < n; i++ {
		assert.InDelta(t, 0, samples[i][0], 0.3)
		assert.Equal(t, samples[i][0], samples[i][1])
	}
}

func TestChimeLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	note := rate.N(120 * time.Millisecond)

	assert.Equal(t, 5*note, drain(NewChime(rate)))
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	var p Player

	assert.NotPanics(t, func() {
		p.PlayMark()
		p.PlayWin()
		p.Close()
	})
}
