// Package history keeps an append-only log of finished utterances for
// review and debugging. History failures never fail an utterance.
package history

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fileName = "history.log"

// Logger appends one line per utterance to history.log in its directory.
type Logger struct {
	enabled bool
	dir     string
}

// DefaultDir is ~/.local/share/voxterm, overridable with
// VOXTERM_HISTORY_DIR.
func DefaultDir() string {
	if dir := os.Getenv("VOXTERM_HISTORY_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "voxterm")
}

func NewLogger(enabled bool, dir string) *Logger {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Logger{enabled: enabled, dir: dir}
}

// Record appends one entry. When formatting changed the text, both the raw
// transcript and the formatted result are kept.
func (l *Logger) Record(raw, formatted string, took time.Duration) {
	if !l.enabled || l.dir == "" {
		return
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		log.Printf("history: create dir: %v", err)
		return
	}

	f, err := os.OpenFile(filepath.Join(l.dir, fileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("history: open log: %v", err)
		return
	}
	defer f.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	ms := took.Milliseconds()

	var line string
	if raw == formatted {
		line = fmt.Sprintf("[%s] (%dms) %s\n", timestamp, ms, formatted)
	} else {
		line = fmt.Sprintf("[%s] (%dms) raw: %q -> %s\n", timestamp, ms, raw, formatted)
	}

	if _, err := f.WriteString(line); err != nil {
		log.Printf("history: write entry: %v", err)
	}
}

// Tail returns the last n entries, oldest first. A missing log is an empty
// history, not an error.
func (l *Logger) Tail(n int) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
