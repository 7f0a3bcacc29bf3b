package config

import "time"

type Config struct {
	Recording     RecordingConfig     `toml:"recording"`
	Transcriber   TranscriberConfig   `toml:"transcriber"`
	Streaming     StreamingConfig     `toml:"streaming"`
	Sanitizer     SanitizerConfig     `toml:"sanitizer"`
	Vad           VadConfig           `toml:"vad"`
	Injection     InjectionConfig     `toml:"injection"`
	Notifications NotificationsConfig `toml:"notifications"`
	Sounds        SoundsConfig        `toml:"sounds"`
	History       HistoryConfig       `toml:"history"`
}

type RecordingConfig struct {
	SampleRate int    `toml:"sample_rate"`
	Channels   int    `toml:"channels"`
	Device     string `toml:"device"`
	BufferSize int    `toml:"buffer_size"`
}

type TranscriberConfig struct {
	Backend       string `toml:"backend"` // "auto", "whisper-cpp", "openai"
	Model         string `toml:"model"`
	ModelPath     string `toml:"model_path"`
	Language      string `toml:"language"`
	Threads       int    `toml:"threads"` // CPU threads for local transcription (0 = auto: NumCPU-1)
	APIKey        string `toml:"api_key"`
	InitialPrompt string `toml:"initial_prompt"`
}

// StreamingConfig controls the background pre-transcription loop that runs
// while the hotkey is held.
type StreamingConfig struct {
	Enabled     bool          `toml:"enabled"`
	Interval    time.Duration `toml:"interval"`     // tick between snapshot transcriptions
	MinClip     time.Duration `toml:"min_clip"`     // snapshots shorter than this are skipped
	Freshness   time.Duration `toml:"freshness"`    // max cache age finalize may reuse
	StopTimeout time.Duration `toml:"stop_timeout"` // bounded wait for the loop to observe cancellation
}

type SanitizerConfig struct {
	MaxNoSpeechProb float64 `toml:"max_no_speech_prob"`
	MinAvgLogProb   float64 `toml:"min_avg_log_prob"`
}

type VadConfig struct {
	Threshold   float64       `toml:"threshold"` // RMS gate on normalized samples
	MinSpeech   time.Duration `toml:"min_speech"`
	PadDuration time.Duration `toml:"padding"`
}

type InjectionConfig struct {
	Backends         []string      `toml:"backends"`
	AutoEnter        bool          `toml:"auto_enter"`
	YdotoolTimeout   time.Duration `toml:"ydotool_timeout"`
	WtypeTimeout     time.Duration `toml:"wtype_timeout"`
	ClipboardTimeout time.Duration `toml:"clipboard_timeout"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "terminal", "log", "none"
}

type SoundsConfig struct {
	Enabled bool `toml:"enabled"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // empty = ~/.local/share/voxterm
}
