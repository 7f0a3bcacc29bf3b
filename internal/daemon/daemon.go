// Package daemon runs the long-lived voxterm process: it owns the control
// socket, wires the pipeline together from configuration and translates
// one-byte commands into hotkey edges.
package daemon

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/voxterm/voxterm/internal/bus"
	"github.com/voxterm/voxterm/internal/pipeline"
)

// Session is the slice of the pipeline the daemon drives. It exists so the
// command handling can be tested without audio hardware.
type Session interface {
	Press(ctx context.Context) error
	Release(ctx context.Context) pipeline.Outcome
	Toggle(ctx context.Context)
	IsActive() bool
}

type Daemon struct {
	// mu serializes hotkey edges: each connection is handled on its own
	// goroutine, and a press arriving mid-release must wait for the
	// release to finish instead of hitting a half-stopped capturer.
	mu      sync.Mutex
	session Session
	version string

	ctx    context.Context
	cancel context.CancelFunc
}

func New(session Session, version string) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		session: session,
		version: version,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Run owns the control socket until shutdown. Exactly one daemon per user:
// a stale pid file is tolerated, a live one is not.
func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("create pid file: %w", err)
	}
	defer bus.RemovePidFile()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		log.Printf("daemon: received %v, shutting down", sig)
		d.cancel()
	}()

	// Unblock Accept on shutdown.
	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	log.Printf("daemon: listening on control socket")

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				log.Printf("daemon: shutdown requested")
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go d.handle(c)
	}
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("daemon: client read: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}
	if len(line) == 0 {
		fmt.Fprint(c, "ERR empty\n")
		return
	}

	switch line[0] {
	case bus.CmdPress:
		d.mu.Lock()
		err := d.session.Press(d.ctx)
		d.mu.Unlock()
		if err != nil {
			fmt.Fprintf(c, "ERR press: %v\n", err)
			return
		}
		fmt.Fprint(c, "OK recording\n")

	case bus.CmdRelease:
		d.mu.Lock()
		outcome := d.session.Release(d.ctx)
		d.mu.Unlock()
		fmt.Fprintf(c, "OK outcome=%s\n", outcome)

	case bus.CmdToggle:
		d.mu.Lock()
		d.session.Toggle(d.ctx)
		d.mu.Unlock()
		fmt.Fprint(c, "OK toggled\n")

	case bus.CmdStatus:
		fmt.Fprintf(c, "STATUS status=%s\n", d.statusString())

	case bus.CmdVersion:
		fmt.Fprintf(c, "STATUS proto=%s version=%s\n", bus.ProtoVer, d.version)

	case bus.CmdQuit:
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()

	default:
		log.Printf("daemon: unknown command %q", line[0])
		fmt.Fprintf(c, "ERR unknown=%q\n", line[0])
	}
}

func (d *Daemon) statusString() string {
	if d.session.IsActive() {
		return "recording"
	}
	return "idle"
}
