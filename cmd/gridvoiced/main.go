package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridvoice/gridvoice/internal/cli"
	"github.com/gridvoice/gridvoice/internal/cli/admin"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridvoiced",
		Short: "GridVoice daemon - utility customer support assistant",
		Long: `GridVoice daemon serves the customer support assistant API:
chat, intent catalog, usage statistics, energy estimates and speech.

Environment variables are read with the GRIDVOICE_ prefix; a .env
file in the working directory is loaded when present.`,
		Version: version,
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	cli.HandleHelpJSON(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
