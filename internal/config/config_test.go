package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadFile() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[transcriber]
backend = "whisper-cpp"
model = "small.en"
language = "en"
threads = 2

[streaming]
enabled = true

[injection]
backends = ["wtype", "clipboard"]
auto_enter = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.Transcriber.Backend != "whisper-cpp" {
		t.Errorf("Backend = %s, want whisper-cpp", cfg.Transcriber.Backend)
	}
	if cfg.Transcriber.Threads != 2 {
		t.Errorf("Threads = %d, want 2", cfg.Transcriber.Threads)
	}
	if !cfg.Streaming.Enabled {
		t.Error("Streaming.Enabled = false, want true")
	}
	// unset sections fall back to defaults
	if cfg.Streaming.Freshness != time.Second {
		t.Errorf("Streaming.Freshness = %v, want 1s default", cfg.Streaming.Freshness)
	}
	if got := len(cfg.Injection.Backends); got != 2 {
		t.Errorf("len(Injection.Backends) = %d, want 2", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadFileAppliesThreadsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Transcriber.Threads < 1 {
		t.Errorf("Threads = %d, want >= 1", cfg.Transcriber.Threads)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.Recording.SampleRate = 0 }},
		{"zero channels", func(c *Config) { c.Recording.Channels = 0 }},
		{"unknown backend", func(c *Config) { c.Transcriber.Backend = "siri" }},
		{"streaming interval", func(c *Config) { c.Streaming.Enabled = true; c.Streaming.Interval = 0 }},
		{"streaming freshness", func(c *Config) { c.Streaming.Enabled = true; c.Streaming.Freshness = 0 }},
		{"no speech prob", func(c *Config) { c.Sanitizer.MaxNoSpeechProb = 1.5 }},
		{"vad threshold", func(c *Config) { c.Vad.Threshold = 0 }},
		{"empty injection backends", func(c *Config) { c.Injection.Backends = nil }},
		{"unknown injection backend", func(c *Config) { c.Injection.Backends = []string{"telepathy"} }},
		{"unknown notification type", func(c *Config) { c.Notifications.Enabled = true; c.Notifications.Type = "fax" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
