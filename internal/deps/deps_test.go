package deps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/voxterm/voxterm/internal/config"
)

func TestRunWithEmptyPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	checks := Run(*config.DefaultConfig())
	if len(checks) == 0 {
		t.Fatal("Run() returned no checks")
	}

	byName := map[string]Check{}
	for _, c := range checks {
		byName[c.Name] = c
	}

	if c := byName["pw-record"]; c.Status != StatusFail || !c.Required {
		t.Errorf("pw-record check = %+v, want required fail", c)
	}
	if c := byName["transcriber"]; c.Status != StatusFail {
		t.Errorf("transcriber check = %+v, want fail", c)
	}
	if c := byName["wtype"]; c.Status != StatusWarn || c.Required {
		t.Errorf("wtype check = %+v, want optional warn", c)
	}

	if Healthy(checks) {
		t.Error("Healthy() = true with required checks failing")
	}
}

func TestTranscriberCheckWithAPIKey(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")

	checks := Run(*config.DefaultConfig())
	for _, c := range checks {
		if c.Name == "transcriber" {
			if c.Status != StatusOK {
				t.Errorf("transcriber check = %+v, want ok via API key", c)
			}
			return
		}
	}
	t.Fatal("no transcriber check in Run() output")
}

func TestTranscriberCheckMissingModel(t *testing.T) {
	dir := t.TempDir()
	cli := filepath.Join(dir, "whisper-cli")
	if err := os.WriteFile(cli, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
	t.Setenv("OPENAI_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.Transcriber.ModelPath = filepath.Join(dir, "missing.bin")

	c := checkTranscriber(cfg.Transcriber)
	if c.Status != StatusFail {
		t.Errorf("checkTranscriber() = %+v, want fail for missing model", c)
	}
	if c.Hint == "" {
		t.Error("checkTranscriber() missing hint for missing model")
	}
}

func TestHealthyIgnoresOptionalWarnings(t *testing.T) {
	checks := []Check{
		{Name: "pw-record", Status: StatusOK, Required: true},
		{Name: "wtype", Status: StatusWarn},
	}
	if !Healthy(checks) {
		t.Error("Healthy() = false with only optional warnings")
	}
}
