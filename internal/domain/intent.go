package domain

import "fmt"

// IntentUnknown is returned by intent detection when no trigger phrase
// clears the similarity threshold.
const IntentUnknown = "unknown"

// Intent maps a named user purpose to its trigger phrases and the pool of
// canned reply templates. The catalog is fixed at construction; declaration
// order is the tie-break order for matching.
type Intent struct {
	Name      string
	Triggers  []string
	Templates []string
}

// NewIntent creates a new Intent instance
func NewIntent(name string, triggers, templates []string) *Intent {
	return &Intent{
		Name:      name,
		Triggers:  triggers,
		Templates: templates,
	}
}

// ValidateIntent validates a single Intent instance
func ValidateIntent(i *Intent) error {
	if i == nil {
		return fmt.Errorf("intent cannot be nil")
	}

	if i.Name == "" {
		return fmt.Errorf("intent Name is required")
	}

	if i.Name == IntentUnknown {
		return fmt.Errorf("intent Name %q is reserved", IntentUnknown)
	}

	if len(i.Triggers) == 0 {
		return fmt.Errorf("intent %q must have at least one trigger phrase", i.Name)
	}

	if len(i.Templates) == 0 {
		return fmt.Errorf("intent %q must have at least one response template", i.Name)
	}

	return nil
}

// ValidateIntents validates an ordered intent catalog, including name
// uniqueness across the set.
func ValidateIntents(intents []Intent) error {
	seen := make(map[string]struct{}, len(intents))
	for idx := range intents {
		if err := ValidateIntent(&intents[idx]); err != nil {
			return err
		}
		if _, ok := seen[intents[idx].Name]; ok {
			return fmt.Errorf("intent %q declared more than once", intents[idx].Name)
		}
		seen[intents[idx].Name] = struct{}{}
	}
	return nil
}
