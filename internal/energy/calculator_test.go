package energy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTariffs() Tariffs {
	return Tariffs{
		ResidentialDay:   2.64,
		ResidentialNight: 1.32,
		Commercial:       4.20,
		Industrial:       3.85,
	}
}

func TestCalculator_MonthlyConsumption_SingleAppliance(t *testing.T) {
	c := NewCalculator(testTariffs())

	// 100 W * 4 h * 30 d / 1000 = 12 kWh, all at the day rate.
	got := c.MonthlyConsumption([]Appliance{
		{Name: "TV", PowerW: 100, HoursPerDay: 4, Quantity: 1},
	})

	require.Len(t, got.Appliances, 1)
	assert.InDelta(t, 12.0, got.TotalKWh, 0.001)
	assert.InDelta(t, 31.68, got.TotalCost, 0.001)
	assert.InDelta(t, 31.68, got.DayCost, 0.001)
	assert.Zero(t, got.NightCost)
}

func TestCalculator_MonthlyConsumption_DayNightSplit(t *testing.T) {
	c := NewCalculator(testTariffs())

	// 150 W * 24 h * 30 d / 1000 = 108 kWh, split 70/30.
	got := c.MonthlyConsumption([]Appliance{
		{Name: "Refrigerator", PowerW: 150, HoursPerDay: 24, Quantity: 1},
	})

	assert.InDelta(t, 108.0, got.TotalKWh, 0.001)
	assert.InDelta(t, 108*0.7*2.64, got.DayCost, 0.01)
	assert.InDelta(t, 108*0.3*1.32, got.NightCost, 0.01)
	assert.InDelta(t, got.DayCost+got.NightCost, got.TotalCost, 0.01)
}

func TestCalculator_MonthlyConsumption_QuantityMultiplies(t *testing.T) {
	c := NewCalculator(testTariffs())

	got := c.MonthlyConsumption([]Appliance{
		{Name: "LED lamps", PowerW: 10, HoursPerDay: 5, Quantity: 10},
	})

	// 10 W * 5 h * 30 d * 10 / 1000 = 15 kWh.
	assert.InDelta(t, 15.0, got.TotalKWh, 0.001)
}

func TestCalculator_MonthlyConsumption_SkipsZeroQuantity(t *testing.T) {
	c := NewCalculator(testTariffs())

	got := c.MonthlyConsumption([]Appliance{
		{Name: "TV", PowerW: 100, HoursPerDay: 4, Quantity: 1},
		{Name: "Heater", PowerW: 2000, HoursPerDay: 6, Quantity: 0},
	})

	require.Len(t, got.Appliances, 1)
	assert.Equal(t, "TV", got.Appliances[0].Name)
}

func TestCalculator_MonthlyConsumption_DefaultProfile(t *testing.T) {
	c := NewCalculator(testTariffs())

	got := c.MonthlyConsumption(nil)

	assert.Len(t, got.Appliances, len(DefaultAppliances()))
	assert.Greater(t, got.TotalKWh, 0.0)
	assert.Greater(t, got.TotalCost, 0.0)
}

func TestCalculator_Savings(t *testing.T) {
	c := NewCalculator(testTariffs())

	got := c.Savings(100, []Recommendation{
		{Text: "LED lighting", SavingsPercent: 5, Investment: 1000},
		{Text: "Night usage", SavingsPercent: 15, Investment: 0},
	})

	require.Len(t, got.Recommendations, 2)

	led := got.Recommendations[0]
	assert.InDelta(t, 5.0, led.SavingsKWh, 0.001)
	assert.InDelta(t, 13.2, led.SavingsCost, 0.001)
	assert.InDelta(t, 75.8, led.ROIMonths, 0.001)

	night := got.Recommendations[1]
	assert.InDelta(t, 15.0, night.SavingsKWh, 0.001)
	assert.Zero(t, night.ROIMonths)

	assert.InDelta(t, 20.0, got.TotalSavingsKWh, 0.001)
	assert.InDelta(t, 80.0, got.NewKWh, 0.001)
	assert.InDelta(t, 20.0, got.SavingsPercent, 0.001)
}

func TestCalculator_Savings_CappedAtCurrentConsumption(t *testing.T) {
	c := NewCalculator(testTariffs())

	got := c.Savings(10, []Recommendation{
		{Text: "A", SavingsPercent: 80, Investment: 0},
		{Text: "B", SavingsPercent: 80, Investment: 0},
	})

	assert.InDelta(t, 10.0, got.TotalSavingsKWh, 0.001)
	assert.Zero(t, got.NewKWh)
	assert.InDelta(t, 100.0, got.SavingsPercent, 0.001)
}

func TestCalculator_Savings_ZeroConsumption(t *testing.T) {
	c := NewCalculator(testTariffs())

	got := c.Savings(0, []Recommendation{
		{Text: "A", SavingsPercent: 30, Investment: 5000},
	})

	assert.Zero(t, got.TotalSavingsKWh)
	assert.Zero(t, got.SavingsPercent)
	assert.Zero(t, got.Recommendations[0].ROIMonths)
}

func TestCalculator_Recommendations(t *testing.T) {
	c := NewCalculator(testTariffs())

	consumption := c.MonthlyConsumption([]Appliance{
		{Name: "Refrigerator", PowerW: 150, HoursPerDay: 24, Quantity: 1}, // 108 kWh
		{Name: "TV", PowerW: 100, HoursPerDay: 4, Quantity: 1},            // 12 kWh
	})
	recs := c.Recommendations(consumption)

	// One replacement suggestion plus five general ones.
	require.Len(t, recs, 6)
	assert.Contains(t, recs[0].Text, "Refrigerator")
	assert.Equal(t, 30.0, recs[0].SavingsPercent)
	assert.Equal(t, 5000.0, recs[0].Investment)
}

func TestCalculator_MonthlyReport(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewCalculatorWithClock(testTariffs(), func() time.Time { return now })

	report := c.MonthlyReport()

	assert.Equal(t, report, c.MonthlyReport())
	assert.Contains(t, report, "MONTHLY CONSUMPTION REPORT")
	assert.Contains(t, report, "Date: 10.03.2025")
	assert.Contains(t, report, "Top 5 appliances by consumption:")
	assert.Contains(t, report, "1. Water heater:")
	assert.Contains(t, report, "Recommendations:")
}
