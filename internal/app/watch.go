package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/daypattern/internal/config"
	"github.com/blackwell-systems/daypattern/internal/logging"
	"github.com/blackwell-systems/daypattern/internal/output"
	"github.com/blackwell-systems/daypattern/internal/watcher"
)

var (
	watchDaemon   bool
	watchInterval string
	watchStop     bool
	watchQuiet    bool
)

// minWatchInterval keeps the poll from hammering the database.
const minWatchInterval = 30 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll logged metrics and notify on new suggestions",
	Long: `Run a monitor that periodically summarizes the recent window of logged
days. New high and medium priority suggestions raise a desktop notification
and a terminal alert; each one is reported once until the data changes.

Examples:
  daypattern watch                    # run in foreground (ctrl-c to stop)
  daypattern watch --daemon           # run in background, write PID file
  daypattern watch --interval 1h      # check every hour (default: watch.interval)
  daypattern watch --stop             # stop the background daemon`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Check interval as duration string (e.g. 15m, 1h)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "Stop a running background daemon")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	rootCmd.AddCommand(watchCmd)
}

// pidFilePath returns the path to the daemon PID file.
func pidFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.pid")
}

// logFilePath returns the path to the daemon log file.
func logFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.log")
}

// resolveInterval prefers the flag, then the config value.
func resolveInterval(flag string, cfg *config.Config) (time.Duration, error) {
	var (
		interval time.Duration
		err      error
	)
	if flag != "" {
		interval, err = time.ParseDuration(flag)
		if err != nil {
			return 0, fmt.Errorf("invalid interval %q: %w", flag, err)
		}
	} else if interval, err = cfg.WatchInterval(); err != nil {
		return 0, err
	}
	if interval < minWatchInterval {
		return 0, fmt.Errorf("interval must be at least %s, got %s", minWatchInterval, interval)
	}
	return interval, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchStop {
		return stopDaemon(cmd.OutOrStdout())
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	interval, err := resolveInterval(watchInterval, e.cfg)
	if err != nil {
		return err
	}

	if watchDaemon {
		return runDaemon(e, interval)
	}
	return runForeground(cmd.OutOrStdout(), e, interval)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), shutdownSignals...)
}

// runForeground runs the watcher in the foreground with live terminal output.
func runForeground(out io.Writer, e *env, interval time.Duration) error {
	ctx, cancel := signalContext()
	defer cancel()

	db, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if !watchQuiet {
		fmt.Fprintf(out, "daypattern watching the last %d days... (checking every %s)\n", e.cfg.WindowDays, interval)
	}

	alertFn := func(a watcher.Alert) {
		if err := watcher.Notify(a); err != nil {
			e.log.Debug("notify failed", zap.Error(err))
		}
		if !watchQuiet {
			printAlert(out, a)
		}
	}

	w := watcher.New(db, e.engine, e.cfg.WindowDays, interval, alertFn, e.log)
	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Fprintln(out, "\nStopped.")
		}
		return nil
	}
	return err
}

// runDaemon sets up the PID file and a JSON log file, then runs the watcher.
// The actual backgrounding should be done by the caller (nohup, &, etc.)
// since Go cannot reliably fork.
func runDaemon(e *env, interval time.Duration) error {
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if pid, err := readPID(); err == nil {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d). Use --stop to stop it", pid)
		}
		// Stale PID file.
		_ = os.Remove(pidFilePath())
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer func() { _ = os.Remove(pidFilePath()) }()

	log, err := logging.NewFile(logFilePath(), e.cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("daemon started", zap.Int("pid", pid), zap.Duration("interval", interval))

	alertFn := func(a watcher.Alert) {
		if err := watcher.Notify(a); err != nil {
			log.Warn("notify failed", zap.Error(err))
		}
	}

	w := watcher.New(db, e.engine, e.cfg.WindowDays, interval, alertFn, log)
	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("daemon stopped")
		return nil
	}
	return err
}

// readPID reads the daemon PID from the PID file.
func readPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// printAlert formats and prints an alert to the terminal.
func printAlert(out io.Writer, a watcher.Alert) {
	fmt.Fprintf(out, "[%s] %s %s\n", a.Time.Format("15:04:05"), alertIcon(a.Level), output.StyleBold.Render(a.Title))
	if a.Message != "" {
		fmt.Fprintf(out, "         %s\n", a.Message)
	}
}

// alertIcon returns the terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case "critical":
		return "\xf0\x9f\x94\xb4" // red circle
	case "warning":
		return "\xe2\x9a\xa0\xef\xb8\x8f" // warning sign
	case "info":
		return "\xe2\x9c\x93" // check mark
	default:
		return " "
	}
}

// stopDaemon signals the daemon named in the PID file. A PID file that points
// at a dead process is removed and reported as an error.
func stopDaemon(out io.Writer) error {
	pid, err := readPID()
	if err != nil {
		return fmt.Errorf("no watch daemon running: %w", err)
	}
	if !processExists(pid) {
		_ = os.Remove(pidFilePath())
		return fmt.Errorf("no watch daemon running (removed stale PID file for %d)", pid)
	}
	if err := terminate(pid); err != nil {
		return fmt.Errorf("stopping watch daemon (PID %d): %w", pid, err)
	}
	_ = os.Remove(pidFilePath())
	fmt.Fprintf(out, "Stopped watch daemon (PID %d)\n", pid)
	return nil
}
