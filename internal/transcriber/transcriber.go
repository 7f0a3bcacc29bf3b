// Package transcriber provides the speech recognizer interface and its two
// backends: a local whisper-cli process and the OpenAI transcription API.
// The backend is chosen once at startup by a capability probe; the daemon
// cannot run without one.
package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/voxterm/voxterm/internal/sanitize"
)

// ErrUnavailable means no usable recognizer backend exists. Fatal at
// startup.
var ErrUnavailable = errors.New("no usable transcription backend")

// Result is the full-pass recognizer output. Segments carry per-segment
// confidence when the backend provides it; backends without segment-level
// output leave Segments nil and callers fall back to Text.
type Result struct {
	Text     string
	Segments []sanitize.Segment
}

// Recognizer is the capability interface the pipeline is written against.
// Transcribe is the authoritative full pass; TranscribeFast is the
// lower-latency best-effort pass used by the streaming loop.
type Recognizer interface {
	Name() string
	Transcribe(ctx context.Context, pcm []byte) (Result, error)
	TranscribeFast(ctx context.Context, pcm []byte) (string, error)
}

type Config struct {
	Backend       string // "auto", "whisper-cpp", "openai"
	Model         string
	ModelPath     string
	Language      string
	Threads       int
	APIKey        string
	InitialPrompt string
	SampleRate    int
}

// Detect resolves the configured backend to a concrete Recognizer. With
// "auto" it prefers the local whisper-cli install and falls back to OpenAI
// when an API key is present.
func Detect(cfg Config) (Recognizer, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	switch cfg.Backend {
	case "whisper-cpp":
		if err := checkWhisperCli(cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return newWhisperCpp(cfg), nil

	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("%w: openai backend requires an API key (transcriber.api_key or OPENAI_API_KEY)", ErrUnavailable)
		}
		return newOpenAI(cfg, apiKey), nil

	case "auto", "":
		if err := checkWhisperCli(cfg); err == nil {
			return newWhisperCpp(cfg), nil
		}
		if apiKey != "" {
			return newOpenAI(cfg, apiKey), nil
		}
		return nil, fmt.Errorf("%w: install whisper.cpp or set an OpenAI API key", ErrUnavailable)

	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrUnavailable, cfg.Backend)
	}
}

// WarmUp runs one dummy transcription on a second of silence to absorb
// model cold-start latency. Best-effort.
func WarmUp(ctx context.Context, r Recognizer, sampleRate int) {
	start := time.Now()
	silence := make([]byte, 2*sampleRate)
	if _, err := r.TranscribeFast(ctx, silence); err != nil {
		log.Printf("transcriber: warm-up failed: %v", err)
		return
	}
	log.Printf("transcriber: warm-up complete in %v", time.Since(start))
}

// DefaultModelPath returns ~/.local/share/voxterm/models/ggml-<model>.bin.
func DefaultModelPath(model string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "voxterm", "models", "ggml-"+model+".bin")
}

func checkWhisperCli(cfg Config) error {
	if _, err := exec.LookPath("whisper-cli"); err != nil {
		return fmt.Errorf("whisper-cli not found: %w", err)
	}
	modelPath := cfg.ModelPath
	if modelPath == "" {
		modelPath = DefaultModelPath(cfg.Model)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("model file not found: %s", modelPath)
	}
	return nil
}
