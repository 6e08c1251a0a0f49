package bot

import (
	"fmt"

	"github.com/gridvoice/gridvoice/internal/domain"
)

// Contact holds the company contact details rendered into canned replies.
type Contact struct {
	Phone     string
	Email     string
	Emergency string
}

// DefaultIntents returns the built-in intent catalog for a utility-company
// support assistant. Declaration order matters: it is the tie-break order
// for intent detection.
func DefaultIntents(contact Contact) []domain.Intent {
	return []domain.Intent{
		{
			Name:     "greeting",
			Triggers: []string{"hello", "good morning", "good afternoon", "good evening", "hi"},
			Templates: []string{
				"Good day! Welcome to the GridVoice support assistant.",
				"Welcome! How can we help you?",
				"Hello! Glad to see you.",
			},
		},
		{
			Name:     "farewell",
			Triggers: []string{"bye", "goodbye", "see you", "thanks", "thank you"},
			Templates: []string{
				"Goodbye! Reach out any time you have questions.",
				"Glad we could help! Have a nice day.",
				"Thank you for contacting us!",
			},
		},
		{
			Name:     "payment",
			Triggers: []string{"payment", "bill", "money", "invoice", "receipt", "pay"},
			Templates: []string{
				"I can help you with bill payments.",
			},
		},
		{
			Name:     "outage",
			Triggers: []string{"outage", "blackout", "no power", "no electricity", "emergency"},
			Templates: []string{
				fmt.Sprintf("I can help with outage information. For emergencies call %s.", contact.Emergency),
			},
		},
		{
			Name:     "tariff",
			Triggers: []string{"tariff", "price", "cost", "rate", "kwh"},
			Templates: []string{
				"I can provide tariff information.",
			},
		},
		{
			Name:     "meter",
			Triggers: []string{"meter", "reading", "readings", "submit reading"},
			Templates: []string{
				"I can help you submit meter readings.",
			},
		},
		{
			Name:     "connection",
			Triggers: []string{"connection", "new building", "premises", "technical conditions", "connect"},
			Templates: []string{
				"I can provide information about new connections.",
			},
		},
		{
			Name:     "document",
			Triggers: []string{"document", "paper", "certificate", "application", "request"},
			Templates: []string{
				"I can help with documents.",
			},
		},
		{
			Name:     "contact",
			Triggers: []string{"phone", "contact", "address", "support", "hotline"},
			Templates: []string{
				fmt.Sprintf("You can reach us at %s or %s.", contact.Phone, contact.Email),
			},
		},
	}
}

// DefaultFallbackResponses is the pool of generic replies used when
// neither the knowledge base nor any intent clears its threshold.
func DefaultFallbackResponses() []string {
	return []string{
		"Sorry, I did not understand your request. Could you rephrase it?",
		"I am not sure I understood correctly. Please clarify.",
		"This question needs clarification. Could you describe it in more detail?",
		"I need a bit more information to give you an accurate answer.",
		"Please contact an operator for detailed information.",
	}
}
