// Package injection delivers formatted text to the focused window. Backends
// are tried in the configured order; the clipboard is the last resort and is
// reported separately so callers can tell the user to paste.
package injection

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/voxterm/voxterm/internal/config"
)

// Backend is one way of getting text into the focused window.
type Backend interface {
	Name() string
	Available() error
	Inject(ctx context.Context, text string) error
}

// Injector walks a backend chain until one succeeds.
type Injector struct {
	backends  []Backend
	autoEnter bool
}

// New builds the chain from the configured backend order. Unknown names are
// skipped with a log line rather than failing the daemon.
func New(cfg config.InjectionConfig) *Injector {
	var backends []Backend
	for _, name := range cfg.Backends {
		switch name {
		case "ydotool":
			backends = append(backends, newYdotoolBackend(cfg.YdotoolTimeout))
		case "wtype":
			backends = append(backends, newWtypeBackend(cfg.WtypeTimeout))
		case "clipboard":
			backends = append(backends, newClipboardBackend(cfg.ClipboardTimeout))
		default:
			log.Printf("injection: unknown backend %q, skipping", name)
		}
	}
	return &Injector{backends: backends, autoEnter: cfg.AutoEnter}
}

// NewWithBackends builds an injector over an explicit chain.
func NewWithBackends(backends []Backend, autoEnter bool) *Injector {
	return &Injector{backends: backends, autoEnter: autoEnter}
}

// Inject tries each backend in order and returns the name of the one that
// succeeded. Auto-enter appends a newline so typed commands execute
// immediately; it is never applied to the clipboard backend, where a stray
// newline would run the command on paste.
func (i *Injector) Inject(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("nothing to inject")
	}
	if len(i.backends) == 0 {
		return "", fmt.Errorf("no injection backends configured")
	}

	var errs []string
	for _, b := range i.backends {
		if err := b.Available(); err != nil {
			log.Printf("injection: %s unavailable: %v", b.Name(), err)
			errs = append(errs, fmt.Sprintf("%s: %v", b.Name(), err))
			continue
		}

		payload := text
		if i.autoEnter && b.Name() != "clipboard" {
			payload = text + "\n"
		}

		start := time.Now()
		if err := b.Inject(ctx, payload); err != nil {
			log.Printf("injection: %s failed: %v", b.Name(), err)
			errs = append(errs, fmt.Sprintf("%s: %v", b.Name(), err))
			continue
		}

		log.Printf("injection: %s delivered %d chars in %v", b.Name(), len(payload), time.Since(start))
		return b.Name(), nil
	}

	return "", fmt.Errorf("all injection backends failed: %s", strings.Join(errs, "; "))
}
