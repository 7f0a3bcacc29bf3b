package injection

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

type clipboardBackend struct {
	timeout time.Duration
}

func newClipboardBackend(timeout time.Duration) *clipboardBackend {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &clipboardBackend{timeout: timeout}
}

func (c *clipboardBackend) Name() string { return "clipboard" }

func (c *clipboardBackend) Available() error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard tool found (install wl-clipboard, xclip or xsel)")
	}
	return nil
}

// Inject copies text to the system clipboard. The library call has no
// context support, so the timeout is enforced around it.
func (c *clipboardBackend) Inject(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- clipboard.WriteAll(text)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("clipboard write failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("clipboard write timed out: %w", ctx.Err())
	}
}
