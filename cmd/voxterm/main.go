package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxterm/voxterm/internal/bus"
	"github.com/voxterm/voxterm/internal/config"
	"github.com/voxterm/voxterm/internal/corrections"
	"github.com/voxterm/voxterm/internal/daemon"
	"github.com/voxterm/voxterm/internal/deps"
	"github.com/voxterm/voxterm/internal/history"
	"github.com/voxterm/voxterm/internal/tui"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voxterm",
	Short: "Push-to-talk speech input for the command line",
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		pressCmd(),
		releaseCmd(),
		toggleCmd(),
		statusCmd(),
		versionCmd(),
		stopCmd(),
		historyCmd(),
		doctorCmd(),
		configureCmd(),
	)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(tui.Logo())
			cfg := loadConfigOrDefault()
			fmt.Println(tui.SummaryLine("backend", cfg.Transcriber.Backend))
			fmt.Println(tui.SummaryLine("streaming", tui.FormatBool(cfg.Streaming.Enabled)))
			fmt.Println(tui.SummaryLine("injection", fmt.Sprint(cfg.Injection.Backends)))
			fmt.Println()
			return daemon.Serve(version)
		},
	}
}

func pressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "press",
		Short: "Start recording (bind to hotkey key-down)",
		RunE:  sendCmd(bus.CmdPress, "start recording"),
	}
}

func releaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release",
		Short: "Stop recording and type the result (bind to hotkey key-up)",
		RunE:  sendCmd(bus.CmdRelease, "stop recording"),
	}
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Toggle recording on/off",
		RunE:  sendCmd(bus.CmdToggle, "toggle recording"),
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get current daemon status",
		RunE:  sendCmd(bus.CmdStatus, "get status"),
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show daemon and protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("voxterm %s\n", version)
			resp, err := bus.SendCommand(bus.CmdVersion)
			if err != nil {
				// still useful without a running daemon
				return nil
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE:  sendCmd(bus.CmdQuit, "stop daemon"),
	}
}

func sendCmd(b byte, action string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		resp, err := bus.SendCommand(b)
		if err != nil {
			return fmt.Errorf("failed to %s (is the daemon running?): %w", action, err)
		}
		fmt.Print(resp)
		return nil
	}
}

func historyCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transcriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrDefault()
			l := history.NewLogger(true, cfg.History.Dir)
			lines, err := l.Tail(n)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Println("No history yet.")
				return nil
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "lines", "n", 20, "number of entries to show")
	return cmd
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrDefault()
			checks := deps.Run(*cfg)

			for _, c := range checks {
				var mark string
				switch c.Status {
				case deps.StatusOK:
					mark = tui.StyleSuccess.Render("✓")
				case deps.StatusWarn:
					mark = tui.StyleWarning.Render("!")
				default:
					mark = tui.StyleError.Render("✗")
				}
				line := fmt.Sprintf("%s %-12s %s", mark, c.Name, c.Detail)
				if c.Hint != "" && c.Status != deps.StatusOK {
					line += tui.StyleMuted.Render("  → " + c.Hint)
				}
				fmt.Println(line)
			}

			if !deps.Healthy(checks) {
				return errors.New("required dependencies missing")
			}
			fmt.Println(tui.StyleSuccess.Render("\nAll required dependencies available."))
			return nil
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrDefault()

			result, err := tui.Configure(cfg)
			if err != nil {
				return err
			}
			if result.Cancelled {
				fmt.Println("Configuration unchanged.")
				return nil
			}

			if err := config.Save(result.Config); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			path, _ := config.GetConfigPath()
			fmt.Println(tui.StyleSuccess.Render("Configuration saved to " + path))
			fmt.Println(tui.SummaryLine("backend", result.Config.Transcriber.Backend))
			fmt.Println(tui.SummaryLine("streaming", tui.FormatBool(result.Config.Streaming.Enabled)))
			fmt.Println(tui.SummaryLine("auto-enter", tui.FormatBool(result.Config.Injection.AutoEnter)))
			if corrPath, err := corrections.DefaultPath(); err == nil {
				fmt.Println(tui.CorrectionsNote(corrPath))
			}
			return nil
		},
	}
}

func loadConfigOrDefault() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}
