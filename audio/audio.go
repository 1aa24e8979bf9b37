package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	log "github.com/sirupsen/logrus"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Player plays the game's sound effects. The zero value is muted until
// Initialize succeeds.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if p.mixer == nil {
		p.mixer = &beep.Mixer{}
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// PlayMark plays a short click for a marked number
func (p *Player) PlayMark() {
	p.play(NewTone(sampleRate, 880, 60*time.Millisecond))
}

// PlayUnmark plays a lower click for an unmarked number
func (p *Player) PlayUnmark() {
	p.play(NewTone(sampleRate, 440, 60*time.Millisecond))
}

// PlayWin plays a rising three-note chime
func (p *Player) PlayWin() {
	p.play(NewChime(sampleRate))
}

func (p *Player) play(streamer beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	log.Trace("queued sound")
}

// Tone is a sine note which fades out over its duration
type Tone struct {
	sr     beep.SampleRate
	freq   float64
	length int
	pos    int
}

func NewTone(sr beep.SampleRate, freq float64, duration time.Duration) *Tone {
	return &Tone{
		sr:     sr,
		freq:   freq,
		length: sr.N(duration),
	}
}

func (g *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}

	for i := range samples {
		if g.pos >= g.length {
			return i, true
		}

		t := float64(g.pos) / float64(g.sr)
		envelope := 1 - float64(g.pos)/float64(g.length)
		sample := 0.3 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Tone) Err() error {
	return nil
}

// NewChime returns C5, E5, G5 played one after another
func NewChime(sr beep.SampleRate) beep.Streamer {
	note := 120 * time.Millisecond
	return beep.Seq(
		NewTone(sr, 523.25, note),
		NewTone(sr, 659.25, note),
		NewTone(sr, 783.99, 3*note),
	)
}
