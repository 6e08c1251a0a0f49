package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridvoice/gridvoice/internal/cli"
	"github.com/gridvoice/gridvoice/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridvoice",
		Short: "GridVoice CLI - utility customer support assistant",
		Long: `GridVoice CLI talks to a running gridvoiced instance.

Environment variables:
  GRIDVOICE_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.ChatCmd())
	rootCmd.AddCommand(client.StatsCmd())
	rootCmd.AddCommand(client.HistoryCmd())
	rootCmd.AddCommand(client.ReportCmd())
	rootCmd.AddCommand(client.EnergyCmd())

	cli.HandleHelpJSON(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
