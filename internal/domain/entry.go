package domain

import "fmt"

// Entry represents a scripted question/answer pair in the knowledge base.
// Entries are immutable after load; keywords are matched by containment
// against normalized queries.
type Entry struct {
	ID       int
	Question string
	Answer   string
	Category string
	Keywords []string
}

// NewEntry creates a new Entry instance
func NewEntry(id int, question, answer, category string, keywords []string) *Entry {
	return &Entry{
		ID:       id,
		Question: question,
		Answer:   answer,
		Category: category,
		Keywords: keywords,
	}
}

// ValidateEntry validates an Entry instance
func ValidateEntry(e *Entry) error {
	if e == nil {
		return fmt.Errorf("entry cannot be nil")
	}

	if e.Question == "" {
		return fmt.Errorf("entry Question is required")
	}

	if e.Answer == "" {
		return fmt.Errorf("entry Answer is required")
	}

	return nil
}
