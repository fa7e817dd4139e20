package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/daypattern/internal/output"
	"github.com/blackwell-systems/daypattern/internal/suggest"
)

var (
	logDate   string
	logSleep  float64
	logWork   float64
	logSocial float64
	logScreen float64
	logEnergy int
	logDelete bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a day's metrics",
	Long: `Record sleep, work hours, social time, screen time and an energy rating
for one day. Logging the same day again replaces the earlier values.

Hours are 0-24; energy is a 1-10 rating.

Examples:
  daypattern log --sleep 7.5 --work 9 --social 1 --screen 6 --energy 6
  daypattern log --date 2024-03-08 --sleep 6 --work 11 --social 0.5 --screen 9 --energy 3
  daypattern log --date yesterday --delete`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Day to record, YYYY-MM-DD, today or yesterday (default today)")
	logCmd.Flags().Float64Var(&logSleep, "sleep", 0, "Hours slept")
	logCmd.Flags().Float64Var(&logWork, "work", 0, "Hours worked")
	logCmd.Flags().Float64Var(&logSocial, "social", 0, "Hours spent with other people")
	logCmd.Flags().Float64Var(&logScreen, "screen", 0, "Hours of screen time")
	logCmd.Flags().IntVar(&logEnergy, "energy", 0, "Emotional energy rating, 1-10")
	logCmd.Flags().BoolVar(&logDelete, "delete", false, "Remove the record for --date instead of writing one")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	day, err := parseDay(logDate, time.Now())
	if err != nil {
		return err
	}

	if !logDelete {
		for _, name := range []string{"sleep", "work", "social", "screen", "energy"} {
			if !cmd.Flags().Changed(name) {
				return fmt.Errorf("--%s is required", name)
			}
		}
	}

	db, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	out := cmd.OutOrStdout()

	if logDelete {
		deleted, err := db.DeleteMetric(cmd.Context(), day)
		if err != nil {
			return fmt.Errorf("deleting %s: %w", day.Format(suggest.DateLayout), err)
		}
		if !deleted {
			return fmt.Errorf("nothing logged for %s", day.Format(suggest.DateLayout))
		}
		fmt.Fprintf(out, "Deleted %s\n", day.Format(suggest.DateLayout))
		return nil
	}

	m := suggest.DailyMetric{
		Date:            day,
		SleepHours:      logSleep,
		WorkHours:       logWork,
		SocialTime:      logSocial,
		ScreenTime:      logScreen,
		EmotionalEnergy: logEnergy,
	}
	if err := db.UpsertMetric(cmd.Context(), m); err != nil {
		return err
	}
	e.log.Debug("logged day", zap.String("date", m.Day()))

	if flagJSON {
		return writeJSON(out, m)
	}

	fmt.Fprintf(out, "Logged %s: sleep %.1fh, work %.1fh, social %.1fh, screen %.1fh, energy %s\n",
		m.Day(), m.SleepHours, m.WorkHours, m.SocialTime, m.ScreenTime, output.EnergyMeter(m.EmotionalEnergy))
	return nil
}
