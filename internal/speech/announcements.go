package speech

import (
	"context"
	"fmt"
)

// AnnouncementKind names a canned voice announcement.
type AnnouncementKind string

const (
	AnnouncementWelcome         AnnouncementKind = "welcome"
	AnnouncementPaymentReminder AnnouncementKind = "payment_reminder"
	AnnouncementPlannedOutage   AnnouncementKind = "planned_outage"
	AnnouncementTariffChange    AnnouncementKind = "tariff_change"
	AnnouncementMeterReading    AnnouncementKind = "meter_reading"
)

// AnnouncementParams fills the variable parts of announcement texts.
// Empty fields fall back to generic wording.
type AnnouncementParams struct {
	Date      string `json:"date,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Area      string `json:"area,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	DayRate   string `json:"day_rate,omitempty"`
	NightRate string `json:"night_rate,omitempty"`
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// AnnouncementText renders the text for an announcement kind. Unknown
// kinds return ok=false.
func AnnouncementText(kind AnnouncementKind, params AnnouncementParams) (string, bool) {
	switch kind {
	case AnnouncementWelcome:
		return "Welcome to the GridVoice voice assistant! How can I help you?", true
	case AnnouncementPaymentReminder:
		return fmt.Sprintf(
			"This is a reminder to pay your bill by %s. Amount due: %s UAH.",
			orDefault(params.Date, "the end of the month"),
			orDefault(params.Amount, "see your bill"),
		), true
	case AnnouncementPlannedOutage:
		return fmt.Sprintf(
			"Attention! Planned maintenance in %s from %s to %s. Please prepare for a temporary power outage.",
			orDefault(params.Area, "your area"),
			orDefault(params.Start, "10:00"),
			orDefault(params.End, "16:00"),
		), true
	case AnnouncementTariffChange:
		return fmt.Sprintf(
			"Please note the tariff change effective %s. Day rate: %s UAH/kWh, night rate: %s UAH/kWh.",
			orDefault(params.Date, "next month"),
			orDefault(params.DayRate, "2.64"),
			orDefault(params.NightRate, "1.32"),
		), true
	case AnnouncementMeterReading:
		return "This is a reminder to submit your meter readings by the 25th of the current month. You can do this through your personal account or the chat assistant.", true
	default:
		return "", false
	}
}

// Announcement renders and synthesizes a canned announcement with the
// client's default voice.
func (c *Client) Announcement(ctx context.Context, kind AnnouncementKind, params AnnouncementParams) ([]byte, error) {
	text, ok := AnnouncementText(kind, params)
	if !ok {
		return nil, fmt.Errorf("unknown announcement kind %q", kind)
	}
	return c.Synthesize(ctx, text, "", Prosody{})
}
