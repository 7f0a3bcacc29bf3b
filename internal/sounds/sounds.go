// Package sounds plays short sine-tone cues for recording lifecycle events.
// Cues are generated, not shipped as asset files.
package sounds

import (
	"log"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

// Playback rate, separate from the recording rate.
const outputRate = beep.SampleRate(44100)

type tone struct {
	freq     int
	duration time.Duration
	volume   float64
}

var cues = map[string][]tone{
	"start": {{600, 80 * time.Millisecond, 0.3}},
	"stop":  {{800, 60 * time.Millisecond, 0.25}, {1200, 80 * time.Millisecond, 0.25}},
	"error": {{300, 120 * time.Millisecond, 0.3}, {200, 150 * time.Millisecond, 0.3}},
	"warn":  {{500, 100 * time.Millisecond, 0.25}},
	"ready": {{800, 50 * time.Millisecond, 0.15}, {1000, 50 * time.Millisecond, 0.15}, {1200, 60 * time.Millisecond, 0.15}},
}

// Player plays cues on a single background worker so Play never blocks the
// pipeline. Cues queued while one is playing are dropped rather than piled
// up.
type Player struct {
	enabled bool
	queue   chan string

	initOnce sync.Once
	initErr  error
}

func NewPlayer(enabled bool) *Player {
	p := &Player{
		enabled: enabled,
		queue:   make(chan string, 4),
	}
	if enabled {
		go p.worker()
	}
	return p
}

// Play enqueues a named cue. Unknown names and a full queue are both
// non-events.
func (p *Player) Play(name string) {
	if !p.enabled {
		return
	}
	if _, ok := cues[name]; !ok {
		log.Printf("sounds: unknown cue %q", name)
		return
	}
	select {
	case p.queue <- name:
	default:
	}
}

// Close stops the worker. Play after Close is a no-op for the queue that
// remains.
func (p *Player) Close() {
	if p.enabled {
		close(p.queue)
	}
}

func (p *Player) worker() {
	for name := range p.queue {
		p.playCue(cues[name])
	}
}

func (p *Player) playCue(tones []tone) {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(outputRate, outputRate.N(time.Second/10))
	})
	if p.initErr != nil {
		log.Printf("sounds: speaker init failed: %v", p.initErr)
		return
	}

	var parts []beep.Streamer
	for i, tn := range tones {
		sine, err := generators.SinTone(outputRate, tn.freq)
		if err != nil {
			log.Printf("sounds: generate %dHz tone: %v", tn.freq, err)
			return
		}
		parts = append(parts, &effects.Gain{
			Streamer: beep.Take(outputRate.N(tn.duration), sine),
			Gain:     tn.volume - 1,
		})
		if i < len(tones)-1 {
			parts = append(parts, beep.Silence(outputRate.N(20*time.Millisecond)))
		}
	}

	done := make(chan struct{})
	parts = append(parts, beep.Callback(func() { close(done) }))
	speaker.Play(beep.Seq(parts...))
	<-done
}
