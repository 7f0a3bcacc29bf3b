// Package vad trims leading and trailing silence from s16le PCM using an
// RMS energy gate over fixed windows.
package vad

import (
	"encoding/binary"
	"log"
	"math"
	"time"
)

const windowDuration = 30 * time.Millisecond

type Config struct {
	SampleRate  int
	Threshold   float64       // RMS gate on samples normalized to [-1, 1]
	MinSpeech   time.Duration // total speech below this counts as silence
	PadDuration time.Duration // context kept around the speech region
}

func DefaultConfig() Config {
	return Config{
		SampleRate:  16000,
		Threshold:   0.015,
		MinSpeech:   250 * time.Millisecond,
		PadDuration: 100 * time.Millisecond,
	}
}

type Trimmer struct {
	config Config
}

func NewTrimmer(config Config) *Trimmer {
	return &Trimmer{config: config}
}

// Trim returns the slice of pcm spanning the first through last speech
// window, padded on both sides, or nil when no speech was detected.
func (t *Trimmer) Trim(pcm []byte) []byte {
	winBytes := 2 * t.config.SampleRate * int(windowDuration.Milliseconds()) / 1000
	if winBytes == 0 || len(pcm) < winBytes {
		return nil
	}

	firstWin, lastWin := -1, -1
	speechWins := 0
	numWins := len(pcm) / winBytes
	for w := 0; w < numWins; w++ {
		if windowRMS(pcm[w*winBytes:(w+1)*winBytes]) > t.config.Threshold {
			if firstWin == -1 {
				firstWin = w
			}
			lastWin = w
			speechWins++
		}
	}

	if firstWin == -1 {
		log.Printf("vad: no speech detected")
		return nil
	}

	speech := time.Duration(speechWins) * windowDuration
	if speech < t.config.MinSpeech {
		log.Printf("vad: speech too short (%v)", speech)
		return nil
	}

	padWins := int(t.config.PadDuration / windowDuration)
	start := (firstWin - padWins) * winBytes
	if start < 0 {
		start = 0
	}
	end := (lastWin + 1 + padWins) * winBytes
	if end > len(pcm) {
		end = len(pcm)
	}

	log.Printf("vad: trimmed %d -> %d bytes", len(pcm), end-start)
	return pcm[start:end]
}

// windowRMS computes root-mean-square energy of one s16le window,
// normalized to [0, 1].
func windowRMS(window []byte) float64 {
	var sum float64
	n := len(window) / 2
	if n == 0 {
		return 0
	}
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(window[2*i:]))
		v := float64(s) / 32768.0
		sum += v * v
	}
	return math.Sqrt(sum / float64(n))
}
