// Package recording captures microphone audio through a pw-record child
// process. Samples accumulate in an in-memory utterance buffer that supports
// a destructive take (Stop) and a non-destructive peek (Snapshot) for the
// streaming pre-transcription loop.
package recording

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	SampleRate int
	Channels   int
	Device     string
	BufferSize int
}

func DefaultConfig() Config {
	return Config{
		SampleRate: 16000,
		Channels:   1,
		Device:     "",
		BufferSize: 8192,
	}
}

// Recorder owns one utterance buffer. Start spawns the capture process;
// Snapshot copies the in-progress buffer; Stop tears capture down and takes
// the buffer. A single mutex scopes every buffer access so a read can never
// interleave with an in-progress append.
type Recorder struct {
	config    Config
	recording atomic.Bool

	bufMu sync.Mutex
	buf   []byte

	procMu sync.Mutex // guards cmd and cancel
	cmd    *exec.Cmd
	cancel context.CancelFunc

	wg sync.WaitGroup
}

func NewRecorder(config Config) *Recorder {
	return &Recorder{config: config}
}

func (r *Recorder) IsRecording() bool {
	return r.recording.Load()
}

func (r *Recorder) Start(ctx context.Context) error {
	if r.recording.Load() {
		return fmt.Errorf("already recording")
	}
	if err := r.validateConfig(); err != nil {
		return err
	}
	if err := CheckPipeWireAvailable(); err != nil {
		return fmt.Errorf("PipeWire not available: %w", err)
	}

	captureCtx, cancel := context.WithCancel(ctx)

	r.bufMu.Lock()
	r.buf = nil
	r.bufMu.Unlock()

	r.procMu.Lock()
	r.cancel = cancel
	r.procMu.Unlock()

	r.recording.Store(true)
	r.wg.Add(1)
	go r.captureLoop(captureCtx)

	return nil
}

// Snapshot returns a copy of the audio captured so far, or nil when the
// buffer is empty. The buffer itself is left untouched.
func (r *Recorder) Snapshot() []byte {
	r.bufMu.Lock()
	defer r.bufMu.Unlock()
	if len(r.buf) == 0 {
		return nil
	}
	out := make([]byte, len(r.buf))
	copy(out, r.buf)
	return out
}

// Stop tears down the capture process, waits for the capture loop to exit
// and returns the full utterance, or nil when nothing was captured. The
// buffer is cleared.
func (r *Recorder) Stop() []byte {
	r.procMu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.procMu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()

	r.bufMu.Lock()
	defer r.bufMu.Unlock()
	out := r.buf
	r.buf = nil
	if len(out) == 0 {
		return nil
	}
	return out
}

// Duration converts a sample buffer length to wall time for this recorder's
// format (s16le).
func (r *Recorder) Duration(pcm []byte) time.Duration {
	bytesPerSecond := r.config.SampleRate * r.config.Channels * 2
	if bytesPerSecond == 0 {
		return 0
	}
	return time.Duration(len(pcm)) * time.Second / time.Duration(bytesPerSecond)
}

func (r *Recorder) captureLoop(ctx context.Context) {
	defer func() {
		r.recording.Store(false)

		// Ensure the child process is reaped.
		r.procMu.Lock()
		if r.cmd != nil {
			_ = r.cmd.Wait()
			r.cmd = nil
		}
		r.procMu.Unlock()

		r.wg.Done()
	}()

	cmd := exec.CommandContext(ctx, "pw-record", r.buildPwRecordArgs()...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Printf("recording: create stdout pipe: %v", err)
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		log.Printf("recording: create stderr pipe: %v", err)
		return
	}

	r.procMu.Lock()
	r.cmd = cmd
	r.procMu.Unlock()

	if err := cmd.Start(); err != nil {
		log.Printf("recording: start pw-record: %v", err)
		return
	}

	// Log stderr lines to aid diagnostics.
	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			log.Printf("recording: pw-record: %s", scanner.Text())
		}
	}()

	chunk := make([]byte, r.config.BufferSize)
	for {
		n, readErr := stdout.Read(chunk)
		if n > 0 {
			r.bufMu.Lock()
			r.buf = append(r.buf, chunk[:n]...)
			r.bufMu.Unlock()
		}

		if readErr != nil {
			if !errors.Is(readErr, io.EOF) && ctx.Err() == nil {
				log.Printf("recording: read audio: %v", readErr)
			}
			return
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (r *Recorder) buildPwRecordArgs() []string {
	args := []string{
		"--format", "s16",
		"--rate", strconv.Itoa(r.config.SampleRate),
		"--channels", strconv.Itoa(r.config.Channels),
	}
	if r.config.Device != "" {
		args = append(args, "--target", r.config.Device)
	}
	args = append(args, "-") // raw samples to stdout
	return args
}

func (r *Recorder) validateConfig() error {
	if r.config.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", r.config.SampleRate)
	}
	if r.config.Channels <= 0 {
		return fmt.Errorf("invalid channels: %d", r.config.Channels)
	}
	if r.config.BufferSize <= 0 {
		return fmt.Errorf("invalid buffer size: %d", r.config.BufferSize)
	}
	return nil
}

// CheckPipeWireAvailable verifies the capture tool is installed.
func CheckPipeWireAvailable() error {
	if _, err := exec.LookPath("pw-record"); err != nil {
		return fmt.Errorf("pw-record not found: %w (install pipewire-utils)", err)
	}
	return nil
}
