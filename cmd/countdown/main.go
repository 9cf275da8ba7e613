package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/countdown/internal/config"
	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/ticker"
	"github.com/ensigniasec/countdown/internal/tui"
	"github.com/ensigniasec/countdown/internal/validate"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile string
	verbose    bool
	minutes    int
	seconds    int

	rootCmd = &cobra.Command{
		Use:   "countdown",
		Short: "A small terminal countdown timer.",
		Long:  `Pick minutes and seconds, start the countdown, pause or reset it. When the countdown runs out it returns to the picker with the duration you chose.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			initial := initialDuration(cmd, cfg.Data.Default)
			if err := tui.Run(cmd.Context(), cfg.Data, initial); err != nil {
				logrus.Fatalf("TUI mode failed: %v", err)
			}
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr so countdown output on stdout stays clean.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().IntVarP(&minutes, "minutes", "m", 0, "Minutes to preselect (0-59); overrides the config default")
	rootCmd.PersistentFlags().IntVarP(&seconds, "seconds", "s", 0, "Seconds to preselect (0-59); overrides the config default")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a countdown without the interactive picker",
	Long:  "Run a countdown in plain output mode, printing MM:SS once per second. Type 'p' + enter to pause or resume, 'r' + enter (or Ctrl-C) to reset.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		d := initialDuration(cmd, cfg.Data.Default)
		if d.IsZero() {
			logrus.Fatal("Refusing to start: choose a duration with --minutes/--seconds or set a default in the config.")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out, err := runHeadless(ctx, d, os.Stdin, os.Stdout, cfg.Data.UI.Bell)
		if err != nil && !errors.Is(err, context.Canceled) {
			logrus.Fatal(err)
		}
		logrus.WithFields(logrus.Fields{"session": out.SessionID, "reason": out.Reason.String()}).Debug("session ended")
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := config.New(configFile)
		if err != nil {
			logrus.Fatal(err)
		}
		b, err := c.Marshal()
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(os.Stdout, "# %s\n%s", c.Path, b)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file if none exists",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := config.NewOrExisting(configFile)
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(os.Stdout, "Config written to %s\n", c.Path)
	},
}

func main() {
	Execute()
}

func loadConfig() *config.Config {
	c, err := config.NewOrExisting(configFile)
	if err != nil {
		logrus.Fatalf("Unable to open or create config: %v", err)
	}
	return c
}

// initialDuration applies --minutes/--seconds on top of the configured default.
func initialDuration(cmd *cobra.Command, def countdown.Duration) countdown.Duration {
	d := def
	flags := cmd.Flags()
	if flags.Changed("minutes") {
		if err := validate.Var(minutes, validate.PickerRange); err != nil {
			logrus.Fatalf("Invalid --minutes %d: expected a value between 0 and 59.", minutes)
		}
		d.Minutes = minutes
	}
	if flags.Changed("seconds") {
		if err := validate.Var(seconds, validate.PickerRange); err != nil {
			logrus.Fatalf("Invalid --seconds %d: expected a value between 0 and 59.", seconds)
		}
		d.Seconds = seconds
	}
	return d
}

// runHeadless drives one session to completion, echoing each transition to w
// and reading pause/reset commands from in.
func runHeadless(ctx context.Context, d countdown.Duration, in io.Reader, w io.Writer, bell bool) (countdown.Outcome, error) {
	coord := countdown.NewCoordinator(d)
	driver := ticker.New(coord, ticker.WithObserver(func(s countdown.Snapshot) {
		if s.Active {
			fmt.Fprintf(w, "%s %5.1f%% %s\n", s.Clock, s.Percent, s.Phase)
		}
	}))

	go readCommands(in, driver)

	out, err := driver.Run(ctx)
	switch {
	case err != nil && !errors.Is(err, context.Canceled):
		return out, err
	case out.Reason == countdown.ReasonExpired:
		if bell {
			fmt.Fprint(w, "\a")
		}
		fmt.Fprintf(w, "Time's up! (%s)\n", out.Duration)
	default:
		fmt.Fprintf(w, "Reset. (%s)\n", out.Duration)
	}
	return out, err
}

func readCommands(in io.Reader, driver *ticker.Driver) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "p", "pause", "play":
			driver.TogglePause()
		case "r", "reset":
			driver.Reset()
		}
	}
}
