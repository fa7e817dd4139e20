package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/daypattern/internal/config"
	"github.com/blackwell-systems/daypattern/internal/output"
	"github.com/blackwell-systems/daypattern/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the daypattern setup is healthy",
	Long: `Run a series of health checks against your daypattern configuration and
database. Prints a pass/fail line for each check and a summary of how many
checks passed.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	// Config errors are reported as a failed check rather than aborting.
	e, err := loadEnv()
	var checks []doctorCheck
	checks = append(checks, checkConfig(flagConfig, err))
	if err == nil {
		defer e.close()
		checks = append(checks, checkDatabase(cmd.Context(), e.cfg, time.Now())...)
		checks = append(checks, doctorCheck{
			Name:    "Advisories",
			Passed:  true,
			Message: fmt.Sprintf("%d compiled", len(e.cfg.Advisories)),
		})
	}
	checks = append(checks, checkWatchDaemon())

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(out, doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		})
	}

	fmt.Fprintln(out, output.Section("Doctor"))
	fmt.Fprintln(out)
	for _, c := range checks {
		renderDoctorCheck(out, c)
	}
	fmt.Fprintln(out)

	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Fprintf(out, " %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Fprintf(out, " %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(out io.Writer, c doctorCheck) {
	mark := output.StyleSuccess.Render("✓")
	if !c.Passed {
		mark = output.StyleError.Render("✗")
	}
	fmt.Fprintf(out, " %s %s %s\n", mark, output.StyleLabel.Render(c.Name), output.StyleMuted.Render(c.Message))
}

// checkConfig reports where configuration came from and whether it loaded.
func checkConfig(path string, loadErr error) doctorCheck {
	if loadErr != nil {
		return doctorCheck{Name: "Config", Passed: false, Message: loadErr.Error()}
	}
	if path == "" {
		path = filepath.Join(config.ConfigDir(), config.DefaultConfigFile)
	}
	if _, err := os.Stat(path); err != nil {
		return doctorCheck{Name: "Config", Passed: true, Message: "no config file, using defaults"}
	}
	return doctorCheck{Name: "Config", Passed: true, Message: path}
}

// checkDatabase opens the database and reports schema and data coverage.
func checkDatabase(ctx context.Context, cfg *config.Config, now time.Time) []doctorCheck {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return []doctorCheck{{Name: "SQLite database", Passed: false, Message: err.Error()}}
	}
	defer func() { _ = db.Close() }()

	checks := []doctorCheck{{Name: "SQLite database", Passed: true, Message: cfg.DBPath}}

	version, err := db.SchemaVersion()
	checks = append(checks, doctorCheck{
		Name:    "Schema",
		Passed:  err == nil,
		Message: fmt.Sprintf("version %d", version),
	})

	total, err := db.CountMetrics(ctx)
	if err != nil {
		return append(checks, doctorCheck{Name: "Logged days", Passed: false, Message: err.Error()})
	}
	recent, err := db.RecentMetrics(ctx, cfg.WindowDays, now)
	if err != nil {
		return append(checks, doctorCheck{Name: "Logged days", Passed: false, Message: err.Error()})
	}
	msg := fmt.Sprintf("%d total, %d in the last %d days", total, len(recent), cfg.WindowDays)
	if len(recent) == 0 {
		msg += " (run 'daypattern log' to add today)"
	}
	return append(checks, doctorCheck{Name: "Logged days", Passed: len(recent) > 0, Message: msg})
}

// checkWatchDaemon checks whether the watch daemon PID file exists and the
// process is running.
func checkWatchDaemon() doctorCheck {
	pid, err := readPID()
	if err != nil {
		if os.IsNotExist(err) {
			return doctorCheck{Name: "Watch daemon", Passed: true, Message: "not running"}
		}
		return doctorCheck{Name: "Watch daemon", Passed: false, Message: fmt.Sprintf("unreadable PID file: %v", err)}
	}
	if !processExists(pid) {
		return doctorCheck{Name: "Watch daemon", Passed: false, Message: fmt.Sprintf("stale PID file (PID %d not running)", pid)}
	}
	return doctorCheck{Name: "Watch daemon", Passed: true, Message: fmt.Sprintf("running (PID %d)", pid)}
}
