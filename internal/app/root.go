// Package app contains the Cobra command tree for daypattern.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/daypattern/internal/mcp"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
	mcp.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "daypattern",
	Short: "Daily wellness tracking with break and balance suggestions",
	Long: `daypattern records a few numbers about each day (sleep, work hours,
social time, screen time and an energy rating) and turns recent patterns into
ranked, actionable suggestions: take a break, step away from the screen,
recharge, or reach out to someone.

Run 'daypattern' with no arguments to see the available commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "daypattern", appVersion)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use a subcommand:")
		fmt.Fprintln(out, "  log       Record a day's metrics")
		fmt.Fprintln(out, "  history   Show recently logged days")
		fmt.Fprintln(out, "  suggest   Ranked suggestions for recent days")
		fmt.Fprintln(out, "  check     Instant check of today's work and screen hours")
		fmt.Fprintln(out, "  import    Load days from a YAML or JSON file")
		fmt.Fprintln(out, "  watch     Poll logged metrics and notify on new suggestions")
		fmt.Fprintln(out, "  mcp       Serve suggestions over MCP stdio")
		fmt.Fprintln(out, "  doctor    Check configuration, database and daemon health")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/daypattern/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}
