package injection

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/voxterm/voxterm/internal/config"
)

type fakeBackend struct {
	name         string
	availableErr error
	injectErr    error
	got          []string
}

func (f *fakeBackend) Name() string     { return f.name }
func (f *fakeBackend) Available() error { return f.availableErr }

func (f *fakeBackend) Inject(ctx context.Context, text string) error {
	if f.injectErr != nil {
		return f.injectErr
	}
	f.got = append(f.got, text)
	return nil
}

func TestInjectFirstBackendWins(t *testing.T) {
	first := &fakeBackend{name: "ydotool"}
	second := &fakeBackend{name: "wtype"}
	inj := NewWithBackends([]Backend{first, second}, false)

	backend, err := inj.Inject(context.Background(), "ls -la")
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if backend != "ydotool" {
		t.Errorf("Inject() backend = %q, want %q", backend, "ydotool")
	}
	if len(second.got) != 0 {
		t.Error("second backend was called after first succeeded")
	}
}

func TestInjectFallsThrough(t *testing.T) {
	first := &fakeBackend{name: "ydotool", availableErr: errors.New("not installed")}
	second := &fakeBackend{name: "wtype", injectErr: errors.New("compositor said no")}
	third := &fakeBackend{name: "clipboard"}
	inj := NewWithBackends([]Backend{first, second, third}, false)

	backend, err := inj.Inject(context.Background(), "echo hi")
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if backend != "clipboard" {
		t.Errorf("Inject() backend = %q, want %q", backend, "clipboard")
	}
}

func TestInjectAllFail(t *testing.T) {
	inj := NewWithBackends([]Backend{
		&fakeBackend{name: "ydotool", injectErr: errors.New("boom")},
		&fakeBackend{name: "wtype", availableErr: errors.New("missing")},
	}, false)

	_, err := inj.Inject(context.Background(), "text")
	if err == nil {
		t.Fatal("Inject() error = nil, want all-failed error")
	}
	for _, want := range []string{"ydotool", "wtype"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestInjectEmptyText(t *testing.T) {
	inj := NewWithBackends([]Backend{&fakeBackend{name: "ydotool"}}, false)
	if _, err := inj.Inject(context.Background(), ""); err == nil {
		t.Error("Inject(\"\") error = nil, want error")
	}
}

func TestInjectNoBackends(t *testing.T) {
	inj := NewWithBackends(nil, false)
	if _, err := inj.Inject(context.Background(), "text"); err == nil {
		t.Error("Inject() with empty chain error = nil, want error")
	}
}

func TestAutoEnterAppendsNewline(t *testing.T) {
	typing := &fakeBackend{name: "ydotool"}
	inj := NewWithBackends([]Backend{typing}, true)

	if _, err := inj.Inject(context.Background(), "git status"); err != nil {
		t.Fatal(err)
	}
	if got := typing.got[0]; got != "git status\n" {
		t.Errorf("typed %q, want trailing newline", got)
	}
}

func TestAutoEnterSkipsClipboard(t *testing.T) {
	clip := &fakeBackend{name: "clipboard"}
	inj := NewWithBackends([]Backend{clip}, true)

	if _, err := inj.Inject(context.Background(), "rm -rf build"); err != nil {
		t.Fatal(err)
	}
	if got := clip.got[0]; got != "rm -rf build" {
		t.Errorf("clipboard got %q, want no trailing newline", got)
	}
}

func TestNewBuildsConfiguredChain(t *testing.T) {
	cfg := config.InjectionConfig{
		Backends:       []string{"wtype", "clipboard", "teleport"},
		YdotoolTimeout: time.Second,
	}
	inj := New(cfg)

	if len(inj.backends) != 2 {
		t.Fatalf("New() built %d backends, want 2 (unknown skipped)", len(inj.backends))
	}
	if inj.backends[0].Name() != "wtype" || inj.backends[1].Name() != "clipboard" {
		t.Errorf("chain order = %s, %s; want wtype, clipboard",
			inj.backends[0].Name(), inj.backends[1].Name())
	}
}
