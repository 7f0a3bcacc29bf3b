package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewSelectsNotifier(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		typ     string
		want    string
	}{
		{"disabled", false, "desktop", "notify.Nop"},
		{"desktop", true, "desktop", "notify.Desktop"},
		{"terminal", true, "terminal", "*notify.Terminal"},
		{"log", true, "log", "notify.Log"},
		{"none", true, "none", "notify.Nop"},
		{"unknown", true, "smoke-signals", "notify.Nop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(tt.enabled, tt.typ)
			got := typeName(n)
			if got != tt.want {
				t.Errorf("New(%v, %q) = %s, want %s", tt.enabled, tt.typ, got, tt.want)
			}
		})
	}
}

func typeName(n Notifier) string {
	switch n.(type) {
	case Nop:
		return "notify.Nop"
	case Desktop:
		return "notify.Desktop"
	case *Terminal:
		return "*notify.Terminal"
	case Log:
		return "notify.Log"
	default:
		return "unknown"
	}
}

func TestTerminalOutput(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Notify(KindDone, "git status")
	out := buf.String()
	if !strings.Contains(out, "git status") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "✓") {
		t.Errorf("output %q missing done icon", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output %q not newline terminated", out)
	}
}

func TestTerminalUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Notify("mystery", "hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output %q missing message for unknown kind", buf.String())
	}
}
