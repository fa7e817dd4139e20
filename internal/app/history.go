package app

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/daypattern/internal/output"
	"github.com/blackwell-systems/daypattern/internal/store"
	"github.com/blackwell-systems/daypattern/internal/suggest"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently logged days",
	Long: `List the logged days in the recent window, oldest first, with bars for
work and screen hours and the change in work hours from the window average.

Examples:
  daypattern history
  daypattern history --days 30 --json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 14, "Number of recent days to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	db, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	records, err := db.RecentMetrics(cmd.Context(), historyDays, time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		if records == nil {
			records = []store.Record{}
		}
		return writeJSON(out, records)
	}

	fmt.Fprintln(out, output.Section(fmt.Sprintf("Last %d days", historyDays)))
	if len(records) == 0 {
		fmt.Fprintln(out, " Nothing logged yet. Try `daypattern log`.")
		return nil
	}

	summary, err := suggest.Aggregate(store.Metrics(records))
	if err != nil {
		return err
	}

	tbl := output.NewTable("Date", "Sleep", "Work", "vs avg", "Screen", "Social", "Energy")
	for _, r := range records {
		tbl.AddRow(
			r.Day(),
			fmt.Sprintf("%.1fh", r.SleepHours),
			output.HoursBar(r.WorkHours, 8, 10, 12),
			output.TrendArrow(round1(r.WorkHours-summary.WorkHours), false),
			output.HoursBar(r.ScreenTime, 8, 10, 12),
			fmt.Sprintf("%.1fh", r.SocialTime),
			output.EnergyMeter(r.EmotionalEnergy),
		)
	}
	fmt.Fprint(out, tbl.Render())
	fmt.Fprintf(out, "\n %s %s\n",
		output.StyleLabel.Render("Average energy"),
		output.StyleValue.Render(fmt.Sprintf("%.1f/10", summary.EmotionalEnergy)))
	return nil
}

// round1 rounds to one decimal so float noise does not render as a trend.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
