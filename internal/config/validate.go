package config

import "fmt"

func (c *Config) Validate() error {
	if c.Recording.SampleRate <= 0 {
		return fmt.Errorf("invalid recording.sample_rate: %d", c.Recording.SampleRate)
	}
	if c.Recording.Channels <= 0 {
		return fmt.Errorf("invalid recording.channels: %d", c.Recording.Channels)
	}
	if c.Recording.BufferSize <= 0 {
		return fmt.Errorf("invalid recording.buffer_size: %d", c.Recording.BufferSize)
	}

	switch c.Transcriber.Backend {
	case "auto", "whisper-cpp", "openai":
	default:
		return fmt.Errorf("invalid transcriber.backend: %s (must be auto, whisper-cpp or openai)", c.Transcriber.Backend)
	}

	if c.Streaming.Enabled {
		if c.Streaming.Interval <= 0 {
			return fmt.Errorf("invalid streaming.interval: %v", c.Streaming.Interval)
		}
		if c.Streaming.Freshness <= 0 {
			return fmt.Errorf("invalid streaming.freshness: %v", c.Streaming.Freshness)
		}
		if c.Streaming.StopTimeout <= 0 {
			return fmt.Errorf("invalid streaming.stop_timeout: %v", c.Streaming.StopTimeout)
		}
	}

	if c.Sanitizer.MaxNoSpeechProb < 0 || c.Sanitizer.MaxNoSpeechProb > 1 {
		return fmt.Errorf("invalid sanitizer.max_no_speech_prob: %v (must be in [0,1])", c.Sanitizer.MaxNoSpeechProb)
	}

	if c.Vad.Threshold <= 0 || c.Vad.Threshold >= 1 {
		return fmt.Errorf("invalid vad.threshold: %v (must be in (0,1))", c.Vad.Threshold)
	}

	if len(c.Injection.Backends) == 0 {
		return fmt.Errorf("invalid injection.backends: empty")
	}
	for _, b := range c.Injection.Backends {
		switch b {
		case "ydotool", "wtype", "clipboard":
		default:
			return fmt.Errorf("invalid injection backend: %s (must be ydotool, wtype or clipboard)", b)
		}
	}

	if c.Notifications.Enabled {
		switch c.Notifications.Type {
		case "desktop", "terminal", "log", "none", "":
		default:
			return fmt.Errorf("invalid notifications.type: %s", c.Notifications.Type)
		}
	}

	return nil
}
