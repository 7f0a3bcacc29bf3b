// Package testutil holds helpers shared by package tests.
package testutil

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/voxterm/voxterm/internal/config"
)

// TestConfig returns a valid configuration for tests: local paths, no API
// keys, everything noisy turned off.
func TestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Transcriber.Backend = "whisper-cpp"
	cfg.Transcriber.APIKey = ""
	cfg.Sounds.Enabled = false
	cfg.Notifications.Type = "log"
	cfg.History.Enabled = false
	return cfg
}

// WriteConfigFile writes TOML content into a temp config file and returns
// its path.
func WriteConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

// SinePCM generates s16le mono PCM containing a sine tone, for feeding the
// trimmer and recorder paths.
func SinePCM(sampleRate int, freq float64, d time.Duration, amplitude float64) []byte {
	n := int(d.Seconds() * float64(sampleRate))
	pcm := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		v := int16(amplitude * 32767 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(v))
	}
	return pcm
}
