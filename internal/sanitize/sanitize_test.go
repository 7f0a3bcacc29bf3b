package sanitize

import "testing"

func TestCleanPassesNormalText(t *testing.T) {
	tests := []string{
		"sue do apt dash get install dash y git",
		"ls dash la",
		"hello world",
	}
	for _, in := range tests {
		if got := Clean(in); got != in {
			t.Errorf("Clean(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestCleanBlocklist(t *testing.T) {
	tests := []string{
		"thanks for watching",
		"Thanks for watching!",
		"THANKS FOR WATCHING.",
		"Please like and subscribe",
	}
	for _, in := range tests {
		if got := Clean(in); got != "" {
			t.Errorf("Clean(%q) = %q, want rejected", in, got)
		}
	}
}

func TestCleanBlocklistRequiresExactMatch(t *testing.T) {
	// Blocklist entries only reject the whole transcript, not substrings.
	in := "say thanks for watching the logs"
	if got := Clean(in); got != in {
		t.Errorf("Clean(%q) = %q, want passed through", in, got)
	}
}

func TestCleanMusicNotes(t *testing.T) {
	if got := Clean("♪ smooth jazz ♪"); got != "" {
		t.Errorf("Clean() = %q, want rejected", got)
	}
}

func TestCleanNoAlphanumeric(t *testing.T) {
	for _, in := range []string{"...", "?!", "  ", ""} {
		if got := Clean(in); got != "" {
			t.Errorf("Clean(%q) = %q, want rejected", in, got)
		}
	}
}

func TestCleanRepetition(t *testing.T) {
	tests := []struct {
		in       string
		rejected bool
	}{
		{"okay okay okay okay okay okay", true}, // "okay " repeated
		{"abcdabcdabcd", true},                  // 4-char unit, 3 times
		{"abcabcabc", false},                    // unit too short
		{"abcdabcd", false},                     // only 2 repeats
		{"cd directory", false},
	}
	for _, tt := range tests {
		got := Clean(tt.in)
		if tt.rejected && got != "" {
			t.Errorf("Clean(%q) = %q, want rejected", tt.in, got)
		}
		if !tt.rejected && got == "" {
			t.Errorf("Clean(%q) rejected, want passed through", tt.in)
		}
	}
}

func TestCleanSegments(t *testing.T) {
	th := DefaultThresholds()
	segs := []Segment{
		{Text: "ls ", NoSpeechProb: 0.1, AvgLogProb: -0.3},
		{Text: "garbage ", NoSpeechProb: 0.9, AvgLogProb: -0.3},  // no-speech too high
		{Text: "more garbage ", NoSpeechProb: 0.1, AvgLogProb: -2.5}, // logprob too low
		{Text: "dash la", NoSpeechProb: 0.2, AvgLogProb: -0.5},
	}
	if got := CleanSegments(segs, th); got != "ls dash la" {
		t.Errorf("CleanSegments() = %q, want %q", got, "ls dash la")
	}
}

func TestCleanSegmentsAllDropped(t *testing.T) {
	th := DefaultThresholds()
	segs := []Segment{
		{Text: "noise", NoSpeechProb: 0.99, AvgLogProb: -3.0},
	}
	if got := CleanSegments(segs, th); got != "" {
		t.Errorf("CleanSegments() = %q, want empty", got)
	}
}
