// Package notify surfaces pipeline state to the user: desktop notifications
// through notify-send, styled lines on the daemon's terminal, plain log
// lines, or nothing.
package notify

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/charmbracelet/lipgloss"
)

// Notification kinds. The terminal notifier maps each to an icon and color;
// the desktop notifier maps "error" to critical urgency.
const (
	KindRecording = "recording"
	KindDone      = "done"
	KindClipboard = "clipboard"
	KindWarn      = "warn"
	KindError     = "error"
	KindInfo      = "info"
)

type Notifier interface {
	Notify(kind, message string)
}

// New returns the notifier for the configured type. Disabled or unknown
// types fall back to Nop.
func New(enabled bool, typ string) Notifier {
	if !enabled {
		return Nop{}
	}
	switch typ {
	case "desktop":
		return Desktop{}
	case "terminal":
		return NewTerminal(os.Stdout)
	case "log":
		return Log{}
	default:
		return Nop{}
	}
}

type Desktop struct{}

func (Desktop) Notify(kind, message string) {
	args := []string{"-a", "voxterm"}
	if kind == KindError {
		args = append(args, "-u", "critical")
	}
	args = append(args, fmt.Sprintf("voxterm: %s", message))

	if err := exec.Command("notify-send", args...).Run(); err != nil {
		log.Printf("notify: notify-send failed: %v", err)
	}
}

// Terminal prints one styled line per event on the daemon's terminal.
type Terminal struct {
	out    io.Writer
	styles map[string]lipgloss.Style
	icons  map[string]string
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out: out,
		styles: map[string]lipgloss.Style{
			KindRecording: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			KindDone:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			KindClipboard: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			KindWarn:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			KindError:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			KindInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		},
		icons: map[string]string{
			KindRecording: "● REC",
			KindDone:      "✓",
			KindClipboard: "⎘",
			KindWarn:      "⚠",
			KindError:     "✗",
			KindInfo:      "ℹ",
		},
	}
}

func (t *Terminal) Notify(kind, message string) {
	icon, ok := t.icons[kind]
	if !ok {
		icon = "·"
	}
	style, ok := t.styles[kind]
	if !ok {
		style = lipgloss.NewStyle()
	}
	fmt.Fprintf(t.out, "%s %s\n", style.Render(icon), message)
}

// Log writes notifications to the standard logger. Useful when the daemon
// runs under a service manager that captures stderr.
type Log struct{}

func (Log) Notify(kind, message string) {
	log.Printf("notify: [%s] %s", kind, message)
}

// Nop does absolutely nothing. Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) Notify(kind, message string) {}
