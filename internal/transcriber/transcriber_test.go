package transcriber

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestDetectUnavailable(t *testing.T) {
	// No whisper-cli on PATH and no API key anywhere.
	t.Setenv("PATH", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Detect(Config{Backend: "auto", Model: "base.en"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Detect(auto) error = %v, want ErrUnavailable", err)
	}
}

func TestDetectUnknownBackend(t *testing.T) {
	_, err := Detect(Config{Backend: "vosk"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Detect(vosk) error = %v, want ErrUnavailable", err)
	}
}

func TestDetectOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Detect(Config{Backend: "openai"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Detect(openai, no key) error = %v, want ErrUnavailable", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	r, err := Detect(Config{Backend: "openai"})
	if err != nil {
		t.Fatalf("Detect(openai, key in env) error = %v", err)
	}
	if r.Name() != "openai" {
		t.Errorf("Name() = %q, want %q", r.Name(), "openai")
	}
}

func TestDetectWhisperCppMissingModel(t *testing.T) {
	// Put a fake whisper-cli on PATH but no model file.
	dir := t.TempDir()
	cli := filepath.Join(dir, "whisper-cli")
	if err := os.WriteFile(cli, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	_, err := Detect(Config{
		Backend:   "whisper-cpp",
		ModelPath: filepath.Join(dir, "missing.bin"),
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Detect(whisper-cpp, no model) error = %v, want ErrUnavailable", err)
	}
}

func TestWriteTempWAV(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0xff, 0x7f, 0x00, 0x80, 0x01, 0x00}

	path, err := writeTempWAV(pcm, 16000)
	if err != nil {
		t.Fatalf("writeTempWAV() error = %v", err)
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode wav: %v", err)
	}
	if dec.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		t.Errorf("NumChans = %d, want 1", dec.NumChans)
	}

	want := []int{0, 32767, -32768, 1}
	if len(buf.Data) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(want))
	}
	for i, w := range want {
		if buf.Data[i] != w {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], w)
		}
	}
}

func TestDefaultModelPath(t *testing.T) {
	p := DefaultModelPath("base.en")
	if p == "" {
		t.Fatal("DefaultModelPath() = empty")
	}
	if filepath.Base(p) != "ggml-base.en.bin" {
		t.Errorf("DefaultModelPath() = %q, want ggml-base.en.bin basename", p)
	}
}

func TestWhisperCppDefaults(t *testing.T) {
	w := newWhisperCpp(Config{
		Backend:   "whisper-cpp",
		ModelPath: "/models/ggml-base.en.bin",
		Language:  "en",
		Threads:   4,
	})
	if w.modelPath != "/models/ggml-base.en.bin" {
		t.Errorf("modelPath = %q, want explicit path kept", w.modelPath)
	}
	if w.sampleRate() != 16000 {
		t.Errorf("sampleRate() = %d, want 16000 default", w.sampleRate())
	}
}
