package domain

import "time"

// Exchange is one user-utterance/bot-reply pair recorded in the
// conversation history. Exchanges are append-only and never mutated.
type Exchange struct {
	SessionID string
	Timestamp time.Time
	UserText  string
	BotText   string
}

// NewExchange creates a new Exchange instance
func NewExchange(sessionID string, timestamp time.Time, userText, botText string) *Exchange {
	return &Exchange{
		SessionID: sessionID,
		Timestamp: timestamp,
		UserText:  userText,
		BotText:   botText,
	}
}
