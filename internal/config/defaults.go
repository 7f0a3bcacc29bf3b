package config

import "time"

// DefaultConfig returns the initial configuration used for onboarding.
func DefaultConfig() *Config {
	return &Config{
		Recording: RecordingConfig{
			SampleRate: 16000,
			Channels:   1,
			Device:     "",
			BufferSize: 8192,
		},
		Transcriber: TranscriberConfig{
			Backend:  "auto",
			Model:    "base.en",
			Language: "en",
			Threads:  0,
			InitialPrompt: "ls cd git commit push pull sudo apt pip npm docker kubectl " +
				"grep sed awk cat echo chmod chown mkdir rm -rf --help -la " +
				"python node bash zsh ssh scp curl wget tar zip unzip " +
				"| > >> < && || ; $ ~ / ./ ../",
		},
		Streaming: StreamingConfig{
			Enabled:     false,
			Interval:    1500 * time.Millisecond,
			MinClip:     time.Second,
			Freshness:   time.Second,
			StopTimeout: 3 * time.Second,
		},
		Sanitizer: SanitizerConfig{
			MaxNoSpeechProb: 0.6,
			MinAvgLogProb:   -1.2,
		},
		Vad: VadConfig{
			Threshold:   0.015,
			MinSpeech:   250 * time.Millisecond,
			PadDuration: 100 * time.Millisecond,
		},
		Injection: InjectionConfig{
			Backends:         []string{"ydotool", "wtype", "clipboard"},
			AutoEnter:        false,
			YdotoolTimeout:   5 * time.Second,
			WtypeTimeout:     5 * time.Second,
			ClipboardTimeout: 3 * time.Second,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Type:    "terminal",
		},
		Sounds: SoundsConfig{
			Enabled: true,
		},
		History: HistoryConfig{
			Enabled: true,
			Dir:     "",
		},
	}
}
