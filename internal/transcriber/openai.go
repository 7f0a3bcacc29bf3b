package transcriber

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/voxterm/voxterm/internal/sanitize"
)

const openAIModel = "whisper-1"

// openAIBackend sends utterances to the OpenAI transcription API. The full
// pass requests verbose JSON so segment confidences are available; the fast
// pass requests plain text.
type openAIBackend struct {
	client *openai.Client
	config Config
}

func newOpenAI(cfg Config, apiKey string) *openAIBackend {
	return &openAIBackend{
		client: openai.NewClient(apiKey),
		config: cfg,
	}
}

func (o *openAIBackend) Name() string { return "openai" }

func (o *openAIBackend) Transcribe(ctx context.Context, pcm []byte) (Result, error) {
	if len(pcm) == 0 {
		return Result{}, nil
	}

	wavPath, err := writeTempWAV(pcm, o.sampleRate())
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(wavPath)

	req := openai.AudioRequest{
		Model:    openAIModel,
		FilePath: wavPath,
		Language: o.config.Language,
		Prompt:   o.config.InitialPrompt,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	start := time.Now()
	resp, err := o.client.CreateTranscription(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("openai transcription: %w", err)
	}

	segs := make([]sanitize.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segs = append(segs, sanitize.Segment{
			Text:         s.Text,
			NoSpeechProb: s.NoSpeechProb,
			AvgLogProb:   s.AvgLogprob,
		})
	}

	log.Printf("transcriber: openai full pass took %v (%d bytes, %d segments)", time.Since(start), len(pcm), len(segs))
	return Result{Text: resp.Text, Segments: segs}, nil
}

func (o *openAIBackend) TranscribeFast(ctx context.Context, pcm []byte) (string, error) {
	if len(pcm) == 0 {
		return "", nil
	}

	wavPath, err := writeTempWAV(pcm, o.sampleRate())
	if err != nil {
		return "", err
	}
	defer os.Remove(wavPath)

	req := openai.AudioRequest{
		Model:    openAIModel,
		FilePath: wavPath,
		Language: o.config.Language,
		Prompt:   o.config.InitialPrompt,
	}

	start := time.Now()
	resp, err := o.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}

	log.Printf("transcriber: openai fast pass took %v (%d bytes)", time.Since(start), len(pcm))
	return resp.Text, nil
}

func (o *openAIBackend) sampleRate() int {
	if o.config.SampleRate > 0 {
		return o.config.SampleRate
	}
	return 16000
}
