package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/daypattern/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve suggestions over MCP stdio",
	Long: `Start a Model Context Protocol stdio server so an assistant can read
and record your days. The server exposes three tools:

  get_suggestions  Ranked suggestions for the last N logged days
  check_day        Instant check of work hours and screen time
  log_day          Record one day's metrics

Logs go to stderr; stdout carries only protocol messages.

Example MCP configuration:
  {"mcpServers":{"daypattern":{"command":"daypattern","args":["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := signalContext()
	defer cancel()

	srv := mcp.NewServer(db, e.engine, e.cfg.WindowDays, e.log)
	return srv.Run(ctx, os.Stdin, cmd.OutOrStdout())
}
