package bot

import (
	"github.com/gridvoice/gridvoice/internal/domain"
)

// Acceptance thresholds are part of the response-selection contract: the
// knowledge base is conservative to avoid false positives, intent
// detection is slightly more permissive.
const (
	knowledgeThreshold = 0.7
	intentThreshold    = 0.6
)

// ResponseSource says which stage of the precedence chain produced a reply.
type ResponseSource int

const (
	SourceKnowledgeBase ResponseSource = iota
	SourceIntent
	SourceFallback
)

func (s ResponseSource) String() string {
	switch s {
	case SourceKnowledgeBase:
		return "knowledge_base"
	case SourceIntent:
		return "intent"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// RandomSource supplies uniform random indices for template selection. It
// is the only non-deterministic element of the engine and is injected so
// tests can pin the choice.
type RandomSource interface {
	Intn(n int) int
}

// Matcher scores normalized input against the knowledge base and the
// intent catalog and selects a response by precedence: knowledge base
// first, then intent templates, then the fallback pool.
type Matcher struct {
	kb       *KnowledgeBase
	intents  []domain.Intent
	fallback []string
	rng      RandomSource
}

// NewMatcher creates a Matcher. The intent catalog must already be
// validated; the fallback pool must be non-empty.
func NewMatcher(kb *KnowledgeBase, intents []domain.Intent, fallback []string, rng RandomSource) *Matcher {
	return &Matcher{
		kb:       kb,
		intents:  intents,
		fallback: fallback,
		rng:      rng,
	}
}

// DetectIntent returns the name of the best-matching intent for normalized
// text, or IntentUnknown when no trigger phrase scores above the
// threshold. The single best (intent, trigger) pair across the whole
// catalog wins; ties keep the first pair encountered in declaration order.
func (m *Matcher) DetectIntent(normalized string) string {
	best := domain.IntentUnknown
	bestScore := 0.0

	for i := range m.intents {
		for _, trigger := range m.intents[i].Triggers {
			score := Similarity(normalized, Normalize(trigger))
			if score > bestScore && score > intentThreshold {
				bestScore = score
				best = m.intents[i].Name
			}
		}
	}

	return best
}

// Respond resolves a reply for the normalized query given an already
// detected intent name. Precedence: knowledge-base hits win outright, then
// a non-unknown intent picks uniformly from its template pool, and the
// fallback pool covers the rest.
func (m *Matcher) Respond(normalized, intent string) (reply string, source ResponseSource) {
	if answer, ok := m.kb.Find(normalized); ok {
		return answer, SourceKnowledgeBase
	}

	if intent != domain.IntentUnknown {
		return m.pickTemplate(intent), SourceIntent
	}

	return m.fallback[m.rng.Intn(len(m.fallback))], SourceFallback
}

func (m *Matcher) pickTemplate(intentName string) string {
	for i := range m.intents {
		if m.intents[i].Name == intentName {
			templates := m.intents[i].Templates
			return templates[m.rng.Intn(len(templates))]
		}
	}
	// DetectIntent only returns catalog names; reaching here means the
	// catalog changed mid-call, which construction-time immutability
	// rules out.
	return m.fallback[m.rng.Intn(len(m.fallback))]
}
