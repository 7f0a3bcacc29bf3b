// Package pipeline orchestrates one utterance from hotkey press to injected
// text: capture, optional streaming pre-transcription, silence trimming,
// recognition, sanitizing, formatting and injection.
package pipeline

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/voxterm/voxterm/internal/config"
	"github.com/voxterm/voxterm/internal/format"
	"github.com/voxterm/voxterm/internal/sanitize"
	"github.com/voxterm/voxterm/internal/transcriber"
)

// Outcome classifies how an utterance ended. Every Release resolves to
// exactly one outcome.
type Outcome string

const (
	OutcomeInjected      Outcome = "injected"       // text typed into the focused window
	OutcomeClipboard     Outcome = "clipboard"      // typing failed, text left on the clipboard
	OutcomeNoAudio       Outcome = "no-audio"       // nothing captured
	OutcomeNoSpeech      Outcome = "no-speech"      // captured audio was all silence
	OutcomeRejected      Outcome = "rejected"       // transcript failed sanitizing
	OutcomeEmptyFormat   Outcome = "empty-format"   // formatting left nothing to type
	OutcomeRecognizerErr Outcome = "recognizer-err" // transcription failed
	OutcomeInjectionErr  Outcome = "injection-err"  // every injection backend failed
)

// Capturer is the audio source. Snapshot peeks at the in-progress buffer;
// Stop drains it.
type Capturer interface {
	Start(ctx context.Context) error
	Snapshot() []byte
	Stop() []byte
	Duration(pcm []byte) time.Duration
	IsRecording() bool
}

// Trimmer removes leading and trailing silence, returning nil when the clip
// holds no speech.
type Trimmer interface {
	Trim(pcm []byte) []byte
}

// Injector delivers text to the focused window and names the backend that
// succeeded.
type Injector interface {
	Inject(ctx context.Context, text string) (backend string, err error)
}

// CuePlayer plays short audio cues. Implementations must not block.
type CuePlayer interface {
	Play(cue string)
}

// Notifier surfaces pipeline state to the user.
type Notifier interface {
	Notify(kind, message string)
}

// HistoryLogger records finished utterances. Errors are the logger's
// problem; the pipeline never fails an utterance over history.
type HistoryLogger interface {
	Record(raw, formatted string, took time.Duration)
}

type Pipeline struct {
	source func() config.Config
	// config is the snapshot taken from source at Press; the streaming loop
	// and finalization of one session always see the same settings.
	config atomic.Pointer[config.Config]

	capturer   Capturer
	trimmer    Trimmer
	recognizer transcriber.Recognizer
	formatter  *format.Formatter
	injector   Injector
	cues       CuePlayer
	notifier   Notifier
	history    HistoryLogger

	cache *Cache

	// active flips on Press and off on Release; CompareAndSwap coalesces
	// repeated edges from a held or bouncing hotkey.
	active atomic.Bool

	streamMu     sync.Mutex
	streamCancel context.CancelFunc
	streamDone   chan struct{}

	// finalizeMu serializes finalization so a toggle-happy user cannot run
	// two transcriptions over the same recognizer concurrently.
	finalizeMu sync.Mutex
}

type Deps struct {
	Capturer   Capturer
	Trimmer    Trimmer
	Recognizer transcriber.Recognizer
	Formatter  *format.Formatter
	Injector   Injector
	Cues       CuePlayer
	Notifier   Notifier
	History    HistoryLogger
}

// New builds a pipeline over a fixed configuration.
func New(cfg config.Config, deps Deps) *Pipeline {
	return NewWithSource(func() config.Config { return cfg }, deps)
}

// NewWithSource builds a pipeline that re-reads its configuration from source
// at every press, so reloads picked up by the config manager apply to the
// next session. An in-flight session keeps the snapshot it started with.
func NewWithSource(source func() config.Config, deps Deps) *Pipeline {
	p := &Pipeline{
		source:     source,
		capturer:   deps.Capturer,
		trimmer:    deps.Trimmer,
		recognizer: deps.Recognizer,
		formatter:  deps.Formatter,
		injector:   deps.Injector,
		cues:       deps.Cues,
		notifier:   deps.Notifier,
		history:    deps.History,
		cache:      NewCache(),
	}
	cfg := source()
	p.config.Store(&cfg)
	return p
}

func (p *Pipeline) cfg() config.Config {
	return *p.config.Load()
}

// Press starts capture. A press while already capturing is a no-op.
func (p *Pipeline) Press(ctx context.Context) error {
	if !p.active.CompareAndSwap(false, true) {
		return nil
	}

	cfg := p.source()
	p.config.Store(&cfg)

	p.cache.Reset()
	if err := p.capturer.Start(ctx); err != nil {
		p.active.Store(false)
		p.cues.Play("error")
		p.notifier.Notify("error", "recording failed: "+err.Error())
		return err
	}

	if cfg.Streaming.Enabled {
		p.startStreamLoop(ctx)
	}

	p.cues.Play("start")
	p.notifier.Notify("recording", "listening")
	return nil
}

// Release stops capture and finalizes the utterance. A release without a
// matching press is a no-op.
func (p *Pipeline) Release(ctx context.Context) Outcome {
	if !p.active.CompareAndSwap(true, false) {
		return OutcomeNoAudio
	}

	p.stopStreamLoop()
	p.cues.Play("stop")

	pcm := p.capturer.Stop()
	return p.finalize(ctx, pcm)
}

// Toggle presses when idle and releases when capturing.
func (p *Pipeline) Toggle(ctx context.Context) {
	if p.active.Load() {
		p.Release(ctx)
		return
	}
	if err := p.Press(ctx); err != nil {
		log.Printf("pipeline: toggle press: %v", err)
	}
}

func (p *Pipeline) IsActive() bool {
	return p.active.Load()
}

func (p *Pipeline) startStreamLoop(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.streamMu.Lock()
	p.streamCancel = cancel
	p.streamDone = done
	p.streamMu.Unlock()

	go p.streamLoop(loopCtx, done)
}

// stopStreamLoop cancels the streaming loop and waits for it to exit, but
// never longer than the configured stop timeout: a fast pass stuck inside
// the recognizer must not delay finalization.
func (p *Pipeline) stopStreamLoop() {
	p.streamMu.Lock()
	cancel := p.streamCancel
	done := p.streamDone
	p.streamCancel = nil
	p.streamDone = nil
	p.streamMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()

	timeout := p.cfg().Streaming.StopTimeout
	select {
	case <-done:
	case <-time.After(timeout):
		log.Printf("pipeline: streaming loop did not stop within %v", timeout)
	}
}

// streamLoop periodically transcribes a snapshot of the in-progress buffer
// with the fast pass and caches the sanitized result. Cancellation pre-empts
// both the tick wait and the recognizer call.
func (p *Pipeline) streamLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	streaming := p.cfg().Streaming
	ticker := time.NewTicker(streaming.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		snap := p.capturer.Snapshot()
		if p.capturer.Duration(snap) < streaming.MinClip {
			continue
		}

		text, err := p.recognizer.TranscribeFast(ctx, snap)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("pipeline: streaming pass: %v", err)
			continue
		}

		if cleaned := sanitize.Clean(text); cleaned != "" {
			p.cache.Put(cleaned, time.Now())
			log.Printf("pipeline: cached streaming transcript (%d bytes audio)", len(snap))
		}
	}
}

func (p *Pipeline) finalize(ctx context.Context, pcm []byte) Outcome {
	p.finalizeMu.Lock()
	defer p.finalizeMu.Unlock()

	start := time.Now()

	if len(pcm) == 0 {
		p.notifier.Notify("warn", "no audio captured")
		p.cues.Play("warn")
		return OutcomeNoAudio
	}

	// A fresh streaming transcript skips trimming and full recognition
	// entirely.
	text, cached := p.cachedTranscript(start)
	if !cached {
		trimmed := p.trimmer.Trim(pcm)
		if trimmed == nil {
			p.notifier.Notify("warn", "no speech detected")
			p.cues.Play("warn")
			return OutcomeNoSpeech
		}

		var outcome Outcome
		text, outcome = p.transcribe(ctx, trimmed)
		if outcome != "" {
			return outcome
		}
	}

	formatted := p.formatter.Format(text)
	if formatted == "" {
		p.notifier.Notify("warn", "nothing left after formatting")
		p.cues.Play("warn")
		return OutcomeEmptyFormat
	}

	backend, err := p.injector.Inject(ctx, formatted)
	took := time.Since(start)
	if err != nil {
		log.Printf("pipeline: injection failed: %v", err)
		p.notifier.Notify("error", "injection failed")
		p.cues.Play("error")
		return OutcomeInjectionErr
	}

	p.history.Record(text, formatted, took)
	p.cues.Play("ready")

	if backend == "clipboard" {
		p.notifier.Notify("clipboard", formatted)
		return OutcomeClipboard
	}
	p.notifier.Notify("done", formatted)
	return OutcomeInjected
}

// cachedTranscript returns the streaming cache entry when streaming is on
// and the entry is still fresh. The fast path skips the full recognizer
// pass entirely.
func (p *Pipeline) cachedTranscript(now time.Time) (string, bool) {
	streaming := p.cfg().Streaming
	if !streaming.Enabled {
		return "", false
	}
	text, ok := p.cache.Get(now, streaming.Freshness)
	if ok {
		log.Printf("pipeline: using fresh streaming transcript")
	}
	return text, ok
}

// transcribe runs the full pass and sanitizes the result. A non-empty
// outcome means the utterance is over.
func (p *Pipeline) transcribe(ctx context.Context, pcm []byte) (string, Outcome) {
	result, err := p.recognizer.Transcribe(ctx, pcm)
	if err != nil {
		log.Printf("pipeline: transcription failed: %v", err)
		p.notifier.Notify("error", "transcription failed")
		p.cues.Play("error")
		return "", OutcomeRecognizerErr
	}

	var text string
	if len(result.Segments) > 0 {
		sc := p.cfg().Sanitizer
		th := sanitize.Thresholds{
			MaxNoSpeechProb: sc.MaxNoSpeechProb,
			MinAvgLogProb:   sc.MinAvgLogProb,
		}
		text = sanitize.CleanSegments(result.Segments, th)
	} else {
		text = sanitize.Clean(result.Text)
	}

	if text == "" {
		p.notifier.Notify("warn", "nothing to type")
		p.cues.Play("warn")
		return "", OutcomeRejected
	}
	return text, ""
}
