// Package deps runs the doctor checks: which external tools are installed,
// which are missing, and what to install. Required checks gate the daemon;
// the rest degrade gracefully.
package deps

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"

	"github.com/voxterm/voxterm/internal/config"
	"github.com/voxterm/voxterm/internal/transcriber"
)

type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// Check is one doctor line: what was probed, how it went, and what to do
// about it.
type Check struct {
	Name     string
	Status   Status
	Detail   string
	Hint     string
	Required bool
}

// Run probes every external dependency for the given configuration.
func Run(cfg config.Config) []Check {
	return []Check{
		checkCapture(),
		checkTranscriber(cfg.Transcriber),
		checkTool("ydotool", "ydotool typing backend", "install the ydotool package and start ydotoold", false),
		checkTool("wtype", "wtype typing backend", "install the wtype package", false),
		checkClipboard(),
		checkTool("notify-send", "desktop notifications", "install libnotify", false),
	}
}

// Healthy reports whether every required check passed.
func Healthy(checks []Check) bool {
	for _, c := range checks {
		if c.Required && c.Status == StatusFail {
			return false
		}
	}
	return true
}

func checkCapture() Check {
	c := Check{Name: "pw-record", Detail: "PipeWire audio capture", Required: true}
	if _, err := exec.LookPath("pw-record"); err != nil {
		c.Status = StatusFail
		c.Hint = "install pipewire-utils"
		return c
	}
	c.Status = StatusOK
	return c
}

func checkTranscriber(tc config.TranscriberConfig) Check {
	c := Check{Name: "transcriber", Required: true}

	_, cliErr := exec.LookPath("whisper-cli")
	modelPath := tc.ModelPath
	if modelPath == "" {
		modelPath = transcriber.DefaultModelPath(tc.Model)
	}
	_, modelErr := os.Stat(modelPath)

	hasLocal := cliErr == nil && modelErr == nil
	hasAPI := tc.APIKey != "" || os.Getenv("OPENAI_API_KEY") != ""

	switch {
	case hasLocal:
		c.Status = StatusOK
		c.Detail = fmt.Sprintf("whisper.cpp with model %s", modelPath)
	case hasAPI:
		c.Status = StatusOK
		c.Detail = "OpenAI transcription API"
	case cliErr == nil:
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("whisper-cli found but model missing: %s", modelPath)
		c.Hint = "download a ggml model or set transcriber.model_path"
	default:
		c.Status = StatusFail
		c.Detail = "no transcription backend"
		c.Hint = "install whisper.cpp or set OPENAI_API_KEY"
	}
	return c
}

func checkClipboard() Check {
	c := Check{Name: "clipboard", Detail: "clipboard fallback"}
	if clipboard.Unsupported {
		c.Status = StatusWarn
		c.Hint = "install wl-clipboard, xclip or xsel"
		return c
	}
	c.Status = StatusOK
	return c
}

func checkTool(binary, detail, hint string, required bool) Check {
	c := Check{Name: binary, Detail: detail, Hint: hint, Required: required}
	if _, err := exec.LookPath(binary); err != nil {
		c.Status = StatusWarn
		if required {
			c.Status = StatusFail
		}
		return c
	}
	c.Status = StatusOK
	c.Hint = ""
	return c
}
