package daemon

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/voxterm/voxterm/internal/config"
	"github.com/voxterm/voxterm/internal/corrections"
	"github.com/voxterm/voxterm/internal/format"
	"github.com/voxterm/voxterm/internal/history"
	"github.com/voxterm/voxterm/internal/injection"
	"github.com/voxterm/voxterm/internal/notify"
	"github.com/voxterm/voxterm/internal/pipeline"
	"github.com/voxterm/voxterm/internal/recording"
	"github.com/voxterm/voxterm/internal/sounds"
	"github.com/voxterm/voxterm/internal/transcriber"
	"github.com/voxterm/voxterm/internal/vad"
)

// Build assembles the full pipeline from configuration. Collaborators are
// built once from the startup snapshot; pipeline-level settings re-read
// source at every press, so a config reload applies to the next session.
// A missing transcription backend is fatal; everything else degrades.
func Build(source func() config.Config, version string) (*Daemon, error) {
	cfg := source()
	recognizer, err := transcriber.Detect(transcriber.Config{
		Backend:       cfg.Transcriber.Backend,
		Model:         cfg.Transcriber.Model,
		ModelPath:     cfg.Transcriber.ModelPath,
		Language:      cfg.Transcriber.Language,
		Threads:       cfg.Transcriber.Threads,
		APIKey:        cfg.Transcriber.APIKey,
		InitialPrompt: cfg.Transcriber.InitialPrompt,
		SampleRate:    cfg.Recording.SampleRate,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("daemon: using %s transcription backend", recognizer.Name())

	overlay := loadCorrections()

	recorder := recording.NewRecorder(recording.Config{
		SampleRate: cfg.Recording.SampleRate,
		Channels:   cfg.Recording.Channels,
		Device:     cfg.Recording.Device,
		BufferSize: cfg.Recording.BufferSize,
	})

	trimmer := vad.NewTrimmer(vad.Config{
		SampleRate:  cfg.Recording.SampleRate,
		Threshold:   cfg.Vad.Threshold,
		MinSpeech:   cfg.Vad.MinSpeech,
		PadDuration: cfg.Vad.PadDuration,
	})

	p := pipeline.NewWithSource(source, pipeline.Deps{
		Capturer:   recorder,
		Trimmer:    trimmer,
		Recognizer: recognizer,
		Formatter:  format.New(overlay),
		Injector:   injection.New(cfg.Injection),
		Cues:       sounds.NewPlayer(cfg.Sounds.Enabled),
		Notifier:   notify.New(cfg.Notifications.Enabled, cfg.Notifications.Type),
		History:    history.NewLogger(cfg.History.Enabled, cfg.History.Dir),
	})

	// Absorb model cold-start before the first real utterance.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		transcriber.WarmUp(ctx, recognizer, cfg.Recording.SampleRate)
	}()

	return New(p, version), nil
}

// Serve loads configuration, builds the daemon and runs it until shutdown.
func Serve(version string) error {
	mgr, err := config.NewManager()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reloaded settings apply to the next recording session.
	if err := mgr.StartWatching(ctx); err != nil {
		log.Printf("daemon: config watching disabled: %v", err)
	}
	defer mgr.Stop()

	d, err := Build(func() config.Config { return *mgr.GetConfig() }, version)
	if err != nil {
		return err
	}
	return d.Run()
}

func loadCorrections() *corrections.Set {
	path, err := corrections.DefaultPath()
	if err != nil {
		log.Printf("daemon: corrections path: %v", err)
		return nil
	}
	set, err := corrections.Load(path)
	if err != nil {
		log.Printf("daemon: ignoring corrections: %v", err)
		return nil
	}
	if set.Count() > 0 {
		log.Printf("daemon: loaded %d corrections from %s", set.Count(), path)
	}
	return set
}
