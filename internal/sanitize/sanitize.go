// Package sanitize rejects speech-recognizer hallucinations and filters
// low-confidence segments before the transcript reaches the formatter.
package sanitize

import (
	"log"
	"strings"
	"unicode"
)

// Known recognizer hallucination phrases, matched against the whole
// transcript after trimming, lowercasing and stripping trailing punctuation.
var blocklist = map[string]struct{}{
	"thank you for watching":     {},
	"thanks for watching":        {},
	"please subscribe":           {},
	"thanks for listening":       {},
	"thank you for listening":    {},
	"please like and subscribe":  {},
	"see you in the next video":  {},
	"see you next time":          {},
	"don't forget to subscribe":  {},
	"like comment and subscribe": {},
	"subscribe to my channel":    {},
}

// Segment is one recognizer output segment with confidence metadata.
// Streaming calls produce no segments; only the full pass carries them.
type Segment struct {
	Text         string
	NoSpeechProb float64
	AvgLogProb   float64
}

// Thresholds control segment-level confidence filtering.
type Thresholds struct {
	MaxNoSpeechProb float64 // segments above this are dropped
	MinAvgLogProb   float64 // segments below this are dropped
}

func DefaultThresholds() Thresholds {
	return Thresholds{MaxNoSpeechProb: 0.6, MinAvgLogProb: -1.2}
}

// Clean applies the hallucination guards to raw recognizer text and returns
// the cleaned transcript, or "" if the text is rejected. It is a pure
// function of its input and the static blocklist.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	key := strings.TrimRight(strings.ToLower(text), ".!?, ")
	if _, blocked := blocklist[key]; blocked {
		log.Printf("sanitize: blocked (blocklist): %q", text)
		return ""
	}

	// Music notes are a common silent-audio hallucination artifact.
	if strings.ContainsAny(text, "♪♫") {
		log.Printf("sanitize: blocked (music notes): %q", text)
		return ""
	}

	if !containsAlnum(text) {
		log.Printf("sanitize: blocked (no alphanumeric): %q", text)
		return ""
	}

	if hasRepetition(strings.ToLower(text)) {
		log.Printf("sanitize: blocked (repetition): %q", text)
		return ""
	}

	return text
}

// CleanSegments drops segments that fail the confidence thresholds,
// concatenates the rest and applies Clean to the result.
func CleanSegments(segments []Segment, th Thresholds) string {
	var kept []string
	for _, seg := range segments {
		if seg.NoSpeechProb > th.MaxNoSpeechProb {
			log.Printf("sanitize: dropping segment (no_speech_prob=%.2f): %q", seg.NoSpeechProb, seg.Text)
			continue
		}
		if seg.AvgLogProb < th.MinAvgLogProb {
			log.Printf("sanitize: dropping segment (avg_log_prob=%.2f): %q", seg.AvgLogProb, seg.Text)
			continue
		}
		kept = append(kept, seg.Text)
	}
	return Clean(strings.Join(kept, ""))
}

func containsAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// hasRepetition reports whether s contains a substring of length >= 4
// immediately repeated at least three times. Go's regexp has no
// backreferences, so this is a direct scan.
func hasRepetition(s string) bool {
	n := len(s)
	for l := 4; l*3 <= n; l++ {
		for i := 0; i+3*l <= n; i++ {
			if s[i:i+l] == s[i+l:i+2*l] && s[i:i+l] == s[i+2*l:i+3*l] {
				return true
			}
		}
	}
	return false
}
