package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ArchiveResponse represents the report archive API response.
type ArchiveResponse struct {
	Key string `json:"key"`
}

// ReportCmd creates the report command.
func ReportCmd() *cobra.Command {
	var archive bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the daily usage report",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := NewAPIClientWithCmd(cmd)

			if archive {
				resp, err := api.Post("/v1/report/archive", nil)
				if err != nil {
					return err
				}
				var out ArchiveResponse
				if err := json.Unmarshal(resp.Data, &out); err != nil {
					return fmt.Errorf("failed to parse archive response: %w", err)
				}
				fmt.Printf("Report archived as %s\n", out.Key)
				return nil
			}

			body, err := api.GetRaw("/v1/report")
			if err != nil {
				return err
			}
			fmt.Print(string(body))
			return nil
		},
	}

	cmd.Flags().BoolVar(&archive, "archive", false, "Archive the current report to object storage")

	return cmd
}
