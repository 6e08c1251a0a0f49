package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ConsumptionResponse represents the energy consumption API response.
type ConsumptionResponse struct {
	TotalKWh   float64 `json:"total_kwh"`
	TotalCost  float64 `json:"total_cost"`
	DayCost    float64 `json:"day_cost"`
	NightCost  float64 `json:"night_cost"`
	Appliances []struct {
		Name        string  `json:"name"`
		MonthlyKWh  float64 `json:"monthly_kwh"`
		MonthlyCost float64 `json:"monthly_cost"`
	} `json:"appliances"`
}

// EnergyCmd creates the energy command group.
func EnergyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Energy consumption estimates",
	}

	cmd.AddCommand(energyConsumptionCmd())
	cmd.AddCommand(energyReportCmd())

	return cmd
}

func energyConsumptionCmd() *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:   "consumption",
		Short: "Estimate monthly consumption and cost",
		Long: `Estimates monthly consumption for an appliance profile.
Without --profile, the server's default household profile is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			api := NewAPIClientWithCmd(cmd)
			outputJSON, _ := cmd.Flags().GetBool("output")

			var body interface{}
			if profilePath != "" {
				raw, err := os.ReadFile(profilePath)
				if err != nil {
					return fmt.Errorf("failed to read profile file: %w", err)
				}
				var profile json.RawMessage
				if err := json.Unmarshal(raw, &profile); err != nil {
					return fmt.Errorf("profile file is not valid JSON: %w", err)
				}
				body = map[string]json.RawMessage{"appliances": profile}
			}

			resp, err := api.Post("/v1/energy/consumption", body)
			if err != nil {
				return err
			}

			if outputJSON {
				out, _ := json.MarshalIndent(json.RawMessage(resp.Data), "", "  ")
				fmt.Println(string(out))
				return nil
			}

			var consumption ConsumptionResponse
			if err := json.Unmarshal(resp.Data, &consumption); err != nil {
				return fmt.Errorf("failed to parse consumption response: %w", err)
			}

			fmt.Printf("Monthly consumption: %.2f kWh\n", consumption.TotalKWh)
			fmt.Printf("Monthly cost:        %.2f UAH (day %.2f, night %.2f)\n",
				consumption.TotalCost, consumption.DayCost, consumption.NightCost)
			for _, app := range consumption.Appliances {
				fmt.Printf("  %-20s %8.2f kWh  %8.2f UAH\n", app.Name, app.MonthlyKWh, app.MonthlyCost)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "JSON file with an appliance list")

	return cmd
}

func energyReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the monthly consumption report",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := NewAPIClientWithCmd(cmd)

			body, err := api.GetRaw("/v1/energy/report")
			if err != nil {
				return err
			}
			fmt.Print(string(body))
			return nil
		},
	}
}
