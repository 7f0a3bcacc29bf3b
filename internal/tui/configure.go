// Package tui implements the interactive configuration wizard and the
// shared terminal styling.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/voxterm/voxterm/internal/config"
)

// ConfigureResult carries the wizard outcome back to the CLI.
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// Configure runs the setup form over the given configuration and returns
// the edited copy. Esc cancels without touching the original.
func Configure(existing *config.Config) (*ConfigureResult, error) {
	cfg := *existing

	backend := cfg.Transcriber.Backend
	model := cfg.Transcriber.Model
	apiKey := cfg.Transcriber.APIKey
	language := cfg.Transcriber.Language
	backends := append([]string(nil), cfg.Injection.Backends...)
	autoEnter := cfg.Injection.AutoEnter
	streaming := cfg.Streaming.Enabled
	soundsOn := cfg.Sounds.Enabled
	notifyType := cfg.Notifications.Type
	historyOn := cfg.History.Enabled

	fmt.Println(Logo())
	fmt.Println()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription backend").
				Description("auto prefers a local whisper.cpp install").
				Options(
					huh.NewOption("Auto-detect", "auto"),
					huh.NewOption("whisper.cpp (local)", "whisper-cpp"),
					huh.NewOption("OpenAI API", "openai"),
				).
				Value(&backend),
			huh.NewSelect[string]().
				Title("Whisper model").
				Options(
					huh.NewOption("tiny.en (fastest)", "tiny.en"),
					huh.NewOption("base.en (recommended)", "base.en"),
					huh.NewOption("small.en (more accurate)", "small.en"),
					huh.NewOption("medium.en (slow)", "medium.en"),
				).
				Value(&model),
			huh.NewInput().
				Title("OpenAI API key").
				Description("leave empty to use OPENAI_API_KEY").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewInput().
				Title("Language").
				Description("ISO 639-1 code, e.g. en").
				Value(&language),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Injection backends").
				Description("tried in order until one works").
				Options(
					huh.NewOption("ydotool", "ydotool"),
					huh.NewOption("wtype", "wtype"),
					huh.NewOption("clipboard", "clipboard"),
				).
				Value(&backends),
			huh.NewConfirm().
				Title("Auto-enter").
				Description("press enter after typing the command").
				Value(&autoEnter),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Streaming transcription").
				Description("transcribe while the hotkey is held for lower latency").
				Value(&streaming),
			huh.NewConfirm().
				Title("Sound cues").
				Value(&soundsOn),
			huh.NewSelect[string]().
				Title("Notifications").
				Options(
					huh.NewOption("Terminal", "terminal"),
					huh.NewOption("Desktop (notify-send)", "desktop"),
					huh.NewOption("Log only", "log"),
					huh.NewOption("None", "none"),
				).
				Value(&notifyType),
			huh.NewConfirm().
				Title("Transcription history").
				Description("append every utterance to history.log").
				Value(&historyOn),
		),
	).WithTheme(theme())

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return &ConfigureResult{Cancelled: true}, nil
		}
		return nil, err
	}

	cfg.Transcriber.Backend = backend
	cfg.Transcriber.Model = model
	cfg.Transcriber.APIKey = apiKey
	cfg.Transcriber.Language = language
	cfg.Injection.Backends = backends
	cfg.Injection.AutoEnter = autoEnter
	cfg.Streaming.Enabled = streaming
	cfg.Sounds.Enabled = soundsOn
	cfg.Notifications.Type = notifyType
	cfg.Notifications.Enabled = notifyType != "none"
	cfg.History.Enabled = historyOn

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &ConfigureResult{Config: &cfg}, nil
}

// SummaryLine renders one settings line for the post-wizard recap.
func SummaryLine(label, value string) string {
	return StyleMuted.Render(label+": ") + StyleSuccess.Render(value)
}

// FormatBool renders a yes/no value for summaries.
func FormatBool(v bool) string {
	return strconv.FormatBool(v)
}

// CorrectionsNote reminds the user that the corrections overlay is only read
// at daemon startup, unlike config.toml.
func CorrectionsNote(path string) string {
	return StyleMuted.Render("Corrections in " + path + " are read once at daemon startup; restart voxterm after editing them.")
}

func theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Focused.Base = lipgloss.NewStyle().BorderForeground(ColorPrimary)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(ColorSubtle)

	return t
}
