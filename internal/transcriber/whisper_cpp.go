package transcriber

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// whisperCpp shells out to the whisper.cpp CLI. One invocation per
// utterance; no daemon, no cgo.
type whisperCpp struct {
	config    Config
	modelPath string
}

func newWhisperCpp(cfg Config) *whisperCpp {
	modelPath := cfg.ModelPath
	if modelPath == "" {
		modelPath = DefaultModelPath(cfg.Model)
	}
	return &whisperCpp{config: cfg, modelPath: modelPath}
}

func (w *whisperCpp) Name() string { return "whisper-cpp" }

func (w *whisperCpp) Transcribe(ctx context.Context, pcm []byte) (Result, error) {
	text, err := w.run(ctx, pcm, false)
	if err != nil {
		return Result{}, err
	}
	// whisper-cli prints plain text only; segment confidence is an API
	// backend feature.
	return Result{Text: text}, nil
}

func (w *whisperCpp) TranscribeFast(ctx context.Context, pcm []byte) (string, error) {
	return w.run(ctx, pcm, true)
}

func (w *whisperCpp) run(ctx context.Context, pcm []byte, fast bool) (string, error) {
	wavPath, err := writeTempWAV(pcm, w.sampleRate())
	if err != nil {
		return "", err
	}
	defer os.Remove(wavPath)

	args := []string{
		"-m", w.modelPath,
		"-f", wavPath,
		"-nt", // no timestamps
		"-np", // no progress prints
	}
	if w.config.Language != "" && w.config.Language != "auto" {
		args = append(args, "-l", w.config.Language)
	}
	if w.config.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(w.config.Threads))
	}
	if w.config.InitialPrompt != "" {
		args = append(args, "--prompt", w.config.InitialPrompt)
	}
	if fast {
		// Greedy single-path decode for the streaming pre-pass.
		args = append(args, "-bs", "1", "-bo", "1")
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, "whisper-cli", args...)
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("whisper-cli failed: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("whisper-cli failed: %w", err)
	}

	text := strings.TrimSpace(string(out))
	log.Printf("transcriber: whisper-cpp %s pass took %v (%d bytes in)", passName(fast), time.Since(start), len(pcm))
	return text, nil
}

func (w *whisperCpp) sampleRate() int {
	if w.config.SampleRate > 0 {
		return w.config.SampleRate
	}
	return 16000
}

func passName(fast bool) string {
	if fast {
		return "fast"
	}
	return "full"
}
