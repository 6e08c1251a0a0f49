package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// StatsResponse represents the stats API response.
type StatsResponse struct {
	TotalQuestions    int     `json:"total_questions"`
	AnsweredQuestions int     `json:"answered_questions"`
	AnswerRate        float64 `json:"answer_rate"`
	AvgResponseTime   float64 `json:"avg_response_time"`
	TopQueries        []struct {
		Query string `json:"query"`
		Count int    `json:"count"`
	} `json:"top_queries"`
}

// StatsCmd creates the stats command.
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := NewAPIClientWithCmd(cmd)
			outputJSON, _ := cmd.Flags().GetBool("output")

			resp, err := api.Get("/v1/stats")
			if err != nil {
				return err
			}

			if outputJSON {
				out, _ := json.MarshalIndent(json.RawMessage(resp.Data), "", "  ")
				fmt.Println(string(out))
				return nil
			}

			var stats StatsResponse
			if err := json.Unmarshal(resp.Data, &stats); err != nil {
				return fmt.Errorf("failed to parse stats response: %w", err)
			}

			fmt.Printf("Total questions:    %d\n", stats.TotalQuestions)
			fmt.Printf("Answered questions: %d\n", stats.AnsweredQuestions)
			fmt.Printf("Answer rate:        %.1f%%\n", stats.AnswerRate)
			fmt.Printf("Avg response time:  %.2f s\n", stats.AvgResponseTime)

			if len(stats.TopQueries) > 0 {
				fmt.Println("Top queries:")
				for i, q := range stats.TopQueries {
					fmt.Printf("  %d. %s (%d times)\n", i+1, q.Query, q.Count)
				}
			}
			return nil
		},
	}
}
