// Package energy implements the household consumption calculator: monthly
// kWh and cost estimates per appliance, savings projections for a set of
// efficiency recommendations, and a plain-text monthly report.
package energy

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const daysInMonth = 30

// Consumption above this level marks an appliance as a replacement
// candidate in generated recommendations.
const highConsumptionKWh = 50

// Tariffs holds the per-kWh rates in UAH.
type Tariffs struct {
	ResidentialDay   float64
	ResidentialNight float64
	Commercial       float64
	Industrial       float64
}

// Appliance describes one appliance profile used as calculator input.
type Appliance struct {
	Name        string  `json:"name"`
	PowerW      float64 `json:"power_w"`
	HoursPerDay float64 `json:"hours_per_day"`
	Quantity    int     `json:"quantity"`
}

// ApplianceUsage is the per-appliance slice of a consumption estimate.
type ApplianceUsage struct {
	Name        string  `json:"name"`
	PowerW      float64 `json:"power_w"`
	HoursPerDay float64 `json:"hours_per_day"`
	Quantity    int     `json:"quantity"`
	MonthlyKWh  float64 `json:"monthly_kwh"`
	MonthlyCost float64 `json:"monthly_cost"`
}

// Consumption is a monthly consumption and cost estimate.
type Consumption struct {
	TotalKWh   float64          `json:"total_kwh"`
	TotalCost  float64          `json:"total_cost"`
	DayCost    float64          `json:"day_cost"`
	NightCost  float64          `json:"night_cost"`
	Appliances []ApplianceUsage `json:"appliances"`
}

// Recommendation is one efficiency measure with its expected effect.
type Recommendation struct {
	Text           string  `json:"text"`
	SavingsPercent float64 `json:"savings_percent"`
	Investment     float64 `json:"investment"`
}

// RecommendationSavings is the projected effect of one recommendation.
type RecommendationSavings struct {
	Text           string  `json:"text"`
	SavingsPercent float64 `json:"savings_percent"`
	SavingsKWh     float64 `json:"savings_kwh"`
	SavingsCost    float64 `json:"savings_cost"`
	Investment     float64 `json:"investment"`
	ROIMonths      float64 `json:"roi_months"`
}

// Savings aggregates the projected effect of a recommendation set.
type Savings struct {
	CurrentKWh      float64                 `json:"current_kwh"`
	TotalSavingsKWh float64                 `json:"total_savings_kwh"`
	TotalSavings    float64                 `json:"total_savings_cost"`
	NewKWh          float64                 `json:"new_kwh"`
	SavingsPercent  float64                 `json:"savings_percent"`
	Recommendations []RecommendationSavings `json:"recommendations"`
}

// Calculator estimates consumption and savings against a tariff table.
// A single day/night split approximates time-of-use billing: appliances
// running at most 8 hours a day are billed entirely at the day rate,
// longer-running ones 70% day and 30% night.
type Calculator struct {
	tariffs Tariffs
	now     func() time.Time
}

func NewCalculator(tariffs Tariffs) *Calculator {
	return NewCalculatorWithClock(tariffs, time.Now)
}

func NewCalculatorWithClock(tariffs Tariffs, now func() time.Time) *Calculator {
	return &Calculator{tariffs: tariffs, now: now}
}

// DefaultAppliances is the baseline household profile used when the
// caller supplies none.
func DefaultAppliances() []Appliance {
	return []Appliance{
		{Name: "Refrigerator", PowerW: 150, HoursPerDay: 24, Quantity: 1},
		{Name: "LED lamps", PowerW: 10, HoursPerDay: 5, Quantity: 10},
		{Name: "Computer", PowerW: 100, HoursPerDay: 8, Quantity: 1},
		{Name: "TV", PowerW: 80, HoursPerDay: 4, Quantity: 1},
		{Name: "Washing machine", PowerW: 2000, HoursPerDay: 0.5, Quantity: 1},
		{Name: "Electric kettle", PowerW: 2200, HoursPerDay: 0.1, Quantity: 1},
		{Name: "Water heater", PowerW: 2000, HoursPerDay: 2, Quantity: 1},
	}
}

// MonthlyConsumption estimates a 30-day month for the given appliance
// profile. Zero-quantity appliances are skipped. Pass nil to use the
// default profile.
func (c *Calculator) MonthlyConsumption(appliances []Appliance) Consumption {
	if appliances == nil {
		appliances = DefaultAppliances()
	}

	var out Consumption
	var totalKWh, totalCost, dayCost, nightCost float64

	for _, app := range appliances {
		if app.Quantity == 0 {
			continue
		}

		monthlyKWh := app.PowerW * app.HoursPerDay * daysInMonth * float64(app.Quantity) / 1000

		var dayKWh, nightKWh float64
		if app.HoursPerDay <= 8 {
			dayKWh = monthlyKWh
		} else {
			dayKWh = monthlyKWh * 0.7
			nightKWh = monthlyKWh * 0.3
		}

		applianceDayCost := dayKWh * c.tariffs.ResidentialDay
		applianceNightCost := nightKWh * c.tariffs.ResidentialNight
		monthlyCost := applianceDayCost + applianceNightCost

		totalKWh += monthlyKWh
		totalCost += monthlyCost
		dayCost += applianceDayCost
		nightCost += applianceNightCost

		out.Appliances = append(out.Appliances, ApplianceUsage{
			Name:        app.Name,
			PowerW:      app.PowerW,
			HoursPerDay: app.HoursPerDay,
			Quantity:    app.Quantity,
			MonthlyKWh:  round2(monthlyKWh),
			MonthlyCost: round2(monthlyCost),
		})
	}

	out.TotalKWh = round2(totalKWh)
	out.TotalCost = round2(totalCost)
	out.DayCost = round2(dayCost)
	out.NightCost = round2(nightCost)
	return out
}

// Savings projects the effect of a recommendation set against current
// monthly consumption. Per-recommendation and total savings are capped at
// the current consumption; ROI is months to recoup the investment from
// the monthly cost saving, one decimal.
func (c *Calculator) Savings(currentKWh float64, recommendations []Recommendation) Savings {
	out := Savings{CurrentKWh: currentKWh}

	var totalKWh, totalCost float64
	for _, rec := range recommendations {
		savingsKWh := currentKWh * rec.SavingsPercent / 100
		if savingsKWh > currentKWh {
			savingsKWh = currentKWh
		}
		savingsCost := savingsKWh * c.tariffs.ResidentialDay

		var roi float64
		if savingsCost > 0 {
			roi = round1(rec.Investment / savingsCost)
		}

		out.Recommendations = append(out.Recommendations, RecommendationSavings{
			Text:           rec.Text,
			SavingsPercent: rec.SavingsPercent,
			SavingsKWh:     round2(savingsKWh),
			SavingsCost:    round2(savingsCost),
			Investment:     rec.Investment,
			ROIMonths:      roi,
		})

		totalKWh += savingsKWh
		totalCost += savingsCost
	}

	if totalKWh > currentKWh {
		totalKWh = currentKWh
		totalCost = currentKWh * c.tariffs.ResidentialDay
	}

	out.TotalSavingsKWh = round2(totalKWh)
	out.TotalSavings = round2(totalCost)
	out.NewKWh = round2(currentKWh - totalKWh)
	if currentKWh > 0 {
		out.SavingsPercent = round1(totalKWh / currentKWh * 100)
	}
	return out
}

// Recommendations derives efficiency measures from a consumption
// estimate: a replacement suggestion for every high-consumption appliance
// plus the fixed general list.
func (c *Calculator) Recommendations(consumption Consumption) []Recommendation {
	var recs []Recommendation

	for _, app := range consumption.Appliances {
		if app.MonthlyKWh > highConsumptionKWh {
			recs = append(recs, Recommendation{
				Text:           fmt.Sprintf("Replace %s with an energy-efficient model", app.Name),
				SavingsPercent: 30,
				Investment:     5000,
			})
		}
	}

	recs = append(recs,
		Recommendation{Text: "Install LED lighting instead of incandescent lamps", SavingsPercent: 5, Investment: 1000},
		Recommendation{Text: "Run appliances at night (after 23:00)", SavingsPercent: 15, Investment: 0},
		Recommendation{Text: "Install a timer for the heater or water heater", SavingsPercent: 10, Investment: 1500},
		Recommendation{Text: "Unplug appliances left in standby mode", SavingsPercent: 3, Investment: 0},
		Recommendation{Text: "Install solar panels (3 kW system)", SavingsPercent: 40, Investment: 80000},
	)
	return recs
}

// MonthlyReport renders a plain-text summary for the default appliance
// profile: totals, the top five appliances by consumption and the top
// three recommendations with their projected savings.
func (c *Calculator) MonthlyReport() string {
	consumption := c.MonthlyConsumption(nil)
	savings := c.Savings(consumption.TotalKWh, c.Recommendations(consumption))

	var b strings.Builder
	b.WriteString("MONTHLY CONSUMPTION REPORT\n")
	fmt.Fprintf(&b, "Date: %s\n\n", c.now().Format("02.01.2006"))

	b.WriteString("Total consumption:\n")
	fmt.Fprintf(&b, "  Consumption: %.2f kWh\n", consumption.TotalKWh)
	fmt.Fprintf(&b, "  Cost: %.2f UAH\n", consumption.TotalCost)
	fmt.Fprintf(&b, "  Day cost: %.2f UAH\n", consumption.DayCost)
	fmt.Fprintf(&b, "  Night cost: %.2f UAH\n\n", consumption.NightCost)

	b.WriteString("Top 5 appliances by consumption:\n")
	ranked := make([]ApplianceUsage, len(consumption.Appliances))
	copy(ranked, consumption.Appliances)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MonthlyKWh > ranked[j].MonthlyKWh
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	for i, app := range ranked {
		fmt.Fprintf(&b, "  %d. %s: %.2f kWh (%.2f UAH)\n", i+1, app.Name, app.MonthlyKWh, app.MonthlyCost)
	}

	b.WriteString("\nPotential savings:\n")
	fmt.Fprintf(&b, "  Possible savings: %.2f kWh (%.1f%%)\n", savings.TotalSavingsKWh, savings.SavingsPercent)
	fmt.Fprintf(&b, "  Monetary savings: %.2f UAH/month\n", savings.TotalSavings)
	fmt.Fprintf(&b, "  New consumption: %.2f kWh\n\n", savings.NewKWh)

	b.WriteString("Recommendations:\n")
	recs := savings.Recommendations
	if len(recs) > 3 {
		recs = recs[:3]
	}
	for i, rec := range recs {
		fmt.Fprintf(&b, "  %d. %s\n     Savings: %.2f UAH/month, ROI: %.1f months\n", i+1, rec.Text, rec.SavingsCost, rec.ROIMonths)
	}

	return b.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
