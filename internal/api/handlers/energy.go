package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gridvoice/gridvoice/internal/api"
	"github.com/gridvoice/gridvoice/internal/energy"
	"github.com/gridvoice/gridvoice/internal/telemetry"
)

type EnergyHandler struct {
	calc *energy.Calculator
}

func NewEnergyHandler(calc *energy.Calculator) *EnergyHandler {
	return &EnergyHandler{calc: calc}
}

type ConsumptionRequest struct {
	Appliances []energy.Appliance `json:"appliances"`
}

// Consumption estimates monthly consumption for the posted appliance
// profile; an empty body or empty list uses the default profile.
func (h *EnergyHandler) Consumption(w http.ResponseWriter, r *http.Request) {
	var req ConsumptionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	for i, app := range req.Appliances {
		if app.Name == "" {
			api.Error(w, http.StatusBadRequest, fmt.Sprintf("appliance %d: name is required", i))
			return
		}
		if app.PowerW < 0 || app.HoursPerDay < 0 || app.HoursPerDay > 24 || app.Quantity < 0 {
			api.Error(w, http.StatusBadRequest, fmt.Sprintf("appliance %d: invalid profile", i))
			return
		}
	}

	appliances := req.Appliances
	if len(appliances) == 0 {
		appliances = nil
	}

	_, span := telemetry.StartSpan(r.Context(), "energy.consumption", telemetry.SpanAttributes{Operation: "consumption"})
	consumption := h.calc.MonthlyConsumption(appliances)
	span.End()

	api.Success(w, http.StatusOK, consumption)
}

type SavingsRequest struct {
	CurrentKWh      float64                 `json:"current_kwh"`
	Appliances      []energy.Appliance      `json:"appliances"`
	Recommendations []energy.Recommendation `json:"recommendations"`
}

// Savings projects savings for the posted profile. When current_kwh is
// zero it is derived from the appliance profile first; when no
// recommendations are posted they are generated from the consumption.
func (h *EnergyHandler) Savings(w http.ResponseWriter, r *http.Request) {
	var req SavingsRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.CurrentKWh < 0 {
		api.Error(w, http.StatusBadRequest, "current_kwh must not be negative")
		return
	}

	appliances := req.Appliances
	if len(appliances) == 0 {
		appliances = nil
	}

	_, span := telemetry.StartSpan(r.Context(), "energy.savings", telemetry.SpanAttributes{Operation: "savings"})
	consumption := h.calc.MonthlyConsumption(appliances)
	currentKWh := req.CurrentKWh
	if currentKWh == 0 {
		currentKWh = consumption.TotalKWh
	}
	recommendations := req.Recommendations
	if len(recommendations) == 0 {
		recommendations = h.calc.Recommendations(consumption)
	}
	savings := h.calc.Savings(currentKWh, recommendations)
	span.End()

	api.Success(w, http.StatusOK, savings)
}

// Report returns the monthly consumption report as plain text.
func (h *EnergyHandler) Report(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, h.calc.MonthlyReport())
}
