package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/daypattern/internal/suggest"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load days from a YAML or JSON file",
	Long: `Import daily metrics from a YAML or JSON file. The file is either a list of
days or a mapping with a "days" list. Every row is validated first and all
problems are reported together; nothing is written unless every row is valid.
Days already in the database are replaced.

Example file:
  days:
    - date: 2024-03-01
      sleep_hours: 7.5
      work_hours: 9
      social_time: 1
      screen_time: 6
      emotional_energy: 6`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate the file without writing anything")
	rootCmd.AddCommand(importCmd)
}

// importRow is one day in an import file. Pointers distinguish a missing
// value from zero.
type importRow struct {
	Date            string   `yaml:"date"`
	SleepHours      *float64 `yaml:"sleep_hours"`
	WorkHours       *float64 `yaml:"work_hours"`
	SocialTime      *float64 `yaml:"social_time"`
	ScreenTime      *float64 `yaml:"screen_time"`
	EmotionalEnergy *int     `yaml:"emotional_energy"`
}

type importFile struct {
	Days []importRow `yaml:"days"`
}

// decodeImport parses an import document. JSON is valid YAML, so one decoder
// serves both.
func decodeImport(data []byte) ([]importRow, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("import file is empty")
	}

	root := doc.Content[0]
	var rows []importRow
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&rows); err != nil {
			return nil, fmt.Errorf("decoding days: %w", err)
		}
	case yaml.MappingNode:
		var f importFile
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding days: %w", err)
		}
		rows = f.Days
	default:
		return nil, errors.New("import file must be a list of days or a mapping with a days list")
	}
	if len(rows) == 0 {
		return nil, errors.New("import file contains no days")
	}
	return rows, nil
}

// validateImport converts rows to metrics, collecting every problem.
func validateImport(rows []importRow) ([]suggest.DailyMetric, error) {
	var result *multierror.Error
	metrics := make([]suggest.DailyMetric, 0, len(rows))
	seen := make(map[string]int, len(rows))

	for i, row := range rows {
		n := i + 1
		date, err := time.Parse(suggest.DateLayout, row.Date)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("row %d: invalid date %q: expected YYYY-MM-DD", n, row.Date))
			continue
		}
		if prev, dup := seen[row.Date]; dup {
			result = multierror.Append(result, fmt.Errorf("row %d: %s already given in row %d", n, row.Date, prev))
			continue
		}
		seen[row.Date] = n

		missing := false
		for _, f := range []struct {
			name    string
			present bool
		}{
			{"sleep_hours", row.SleepHours != nil},
			{"work_hours", row.WorkHours != nil},
			{"social_time", row.SocialTime != nil},
			{"screen_time", row.ScreenTime != nil},
			{"emotional_energy", row.EmotionalEnergy != nil},
		} {
			if !f.present {
				result = multierror.Append(result, fmt.Errorf("row %d (%s): missing %s", n, row.Date, f.name))
				missing = true
			}
		}
		if missing {
			continue
		}

		m := suggest.DailyMetric{
			Date:            date,
			SleepHours:      *row.SleepHours,
			WorkHours:       *row.WorkHours,
			SocialTime:      *row.SocialTime,
			ScreenTime:      *row.ScreenTime,
			EmotionalEnergy: *row.EmotionalEnergy,
		}
		if err := suggest.ValidateMetric(m); err != nil {
			result = multierror.Append(result, fmt.Errorf("row %d (%s): %w", n, row.Date, err))
			continue
		}
		metrics = append(metrics, m)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return metrics, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}
	rows, err := decodeImport(data)
	if err != nil {
		return err
	}
	metrics, err := validateImport(rows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if importDryRun {
		fmt.Fprintf(out, "%d days valid, nothing written (dry run)\n", len(metrics))
		return nil
	}

	db, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.UpsertMetrics(cmd.Context(), metrics); err != nil {
		return fmt.Errorf("importing: %w", err)
	}
	e.log.Info("import complete", zap.String("file", args[0]), zap.Int("days", len(metrics)))

	fmt.Fprintf(out, "Imported %d days from %s\n", len(metrics), args[0])
	return nil
}
