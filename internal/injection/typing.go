package injection

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

type wtypeBackend struct {
	timeout time.Duration
}

func newWtypeBackend(timeout time.Duration) *wtypeBackend {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &wtypeBackend{timeout: timeout}
}

func (w *wtypeBackend) Name() string { return "wtype" }

func (w *wtypeBackend) Available() error {
	if _, err := exec.LookPath("wtype"); err != nil {
		return fmt.Errorf("wtype not found: %w (install wtype package)", err)
	}
	return nil
}

func (w *wtypeBackend) Inject(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "wtype", text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wtype failed: %w", err)
	}
	return nil
}
