package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/daypattern/internal/output"
	"github.com/blackwell-systems/daypattern/internal/store"
	"github.com/blackwell-systems/daypattern/internal/suggest"
)

var (
	suggestDays    int
	suggestWindows string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ranked suggestions for recent days",
	Long: `Average the logged days in a recent window and print deduplicated
suggestions, highest priority first. With --windows several windows are
evaluated side by side, for example this week against this month.

Examples:
  daypattern suggest
  daypattern suggest --days 3
  daypattern suggest --windows 7,30 --json`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVar(&suggestDays, "days", 0, "Window size in days (default from config window_days)")
	suggestCmd.Flags().StringVar(&suggestWindows, "windows", "", "Comma-separated window sizes, e.g. 7,30")
	suggestCmd.MarkFlagsMutuallyExclusive("days", "windows")
	rootCmd.AddCommand(suggestCmd)
}

// windowReport is the result for one window.
type windowReport struct {
	Days        int                  `json:"days"`
	Samples     int                  `json:"samples"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// parseWindows parses "7,30" into sorted, distinct window sizes.
func parseWindows(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	sizes, err := cast.ToIntSliceE(parts)
	if err != nil {
		return nil, fmt.Errorf("invalid --windows %q: %w", s, err)
	}

	seen := make(map[int]bool, len(sizes))
	var out []int
	for _, n := range sizes {
		if n < 1 {
			return nil, fmt.Errorf("invalid --windows %q: window sizes must be at least 1", s)
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out, nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	windows := []int{e.cfg.WindowDays}
	switch {
	case suggestWindows != "":
		if windows, err = parseWindows(suggestWindows); err != nil {
			return err
		}
	case suggestDays != 0:
		if suggestDays < 1 {
			return fmt.Errorf("--days must be at least 1, got %d", suggestDays)
		}
		windows = []int{suggestDays}
	}

	db, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	reports, err := suggestWindowsReport(cmd.Context(), db, e.engine, windows, time.Now())
	if err != nil {
		return err
	}
	e.log.Debug("suggest", zap.Ints("windows", windows))

	out := cmd.OutOrStdout()
	if flagJSON {
		if len(reports) == 1 {
			return writeJSON(out, reports[0])
		}
		return writeJSON(out, reports)
	}
	renderReports(out, reports)
	return nil
}

// suggestWindowsReport evaluates every window concurrently. Results keep the
// order of windows.
func suggestWindowsReport(ctx context.Context, db *store.DB, engine *suggest.Engine, windows []int, now time.Time) ([]windowReport, error) {
	reports := make([]windowReport, len(windows))

	g, ctx := errgroup.WithContext(ctx)
	for i, days := range windows {
		g.Go(func() error {
			records, err := db.RecentMetrics(ctx, days, now)
			if err != nil {
				return fmt.Errorf("window %dd: %w", days, err)
			}
			report := windowReport{Days: days, Samples: len(records), Suggestions: []suggest.Suggestion{}}
			if len(records) > 0 {
				suggestions, err := engine.Suggest(store.Metrics(records))
				if err != nil {
					return fmt.Errorf("window %dd: %w", days, err)
				}
				if suggestions != nil {
					report.Suggestions = suggestions
				}
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func renderReports(w io.Writer, reports []windowReport) {
	for _, r := range reports {
		fmt.Fprintln(w, output.Section(fmt.Sprintf("Last %d days (%d logged)", r.Days, r.Samples)))
		if r.Samples == 0 {
			fmt.Fprintln(w, " "+output.StyleMuted.Render("Nothing logged in this window."))
			continue
		}
		fmt.Fprint(w, output.SuggestionList(r.Suggestions))
	}
}
