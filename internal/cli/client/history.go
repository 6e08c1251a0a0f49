package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ExchangeResponse represents one history entry from the API.
type ExchangeResponse struct {
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
	UserText  string `json:"user_text"`
	BotText   string `json:"bot_text"`
}

// HistoryCmd creates the history command.
func HistoryCmd() *cobra.Command {
	var (
		limit   int
		csvPath string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show conversation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := NewAPIClientWithCmd(cmd)
			outputJSON, _ := cmd.Flags().GetBool("output")

			if csvPath != "" {
				body, err := api.GetRaw("/v1/history/export")
				if err != nil {
					return err
				}
				if err := os.WriteFile(csvPath, body, 0o644); err != nil {
					return fmt.Errorf("failed to write CSV file: %w", err)
				}
				fmt.Printf("History exported to %s\n", csvPath)
				return nil
			}

			path := "/v1/history"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			resp, err := api.Get(path)
			if err != nil {
				return err
			}

			if outputJSON {
				out, _ := json.MarshalIndent(json.RawMessage(resp.Data), "", "  ")
				fmt.Println(string(out))
				return nil
			}

			var history []ExchangeResponse
			if err := json.Unmarshal(resp.Data, &history); err != nil {
				return fmt.Errorf("failed to parse history response: %w", err)
			}

			if len(history) == 0 {
				fmt.Println("No conversations yet.")
				return nil
			}

			for _, ex := range history {
				fmt.Printf("[%s] %s\n", ex.Timestamp, ex.SessionID)
				fmt.Printf("  user: %s\n", ex.UserText)
				fmt.Printf("  bot:  %s\n", ex.BotText)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the most recent N exchanges")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Export history as CSV to the given file")

	return cmd
}
