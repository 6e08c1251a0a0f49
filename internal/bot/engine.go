// Package bot implements the message-understanding and response-selection
// engine: text normalization, knowledge-base lookup, intent detection,
// fallback policy and running usage statistics.
package bot

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gridvoice/gridvoice/internal/domain"
)

// EngineConfig bundles the catalogs and injectable collaborators for an
// Engine. Knowledge is required; zero-value fields fall back to defaults
// (built-in fallback pool, wall clock, time-seeded random source).
type EngineConfig struct {
	Knowledge *KnowledgeBase
	Intents   []domain.Intent
	Fallback  []string
	Rand      RandomSource
	Clock     func() time.Time
}

// Result describes one processed message.
type Result struct {
	Reply    string
	Intent   string
	Answered bool
}

// Engine is the dialogue façade: it normalizes an utterance, resolves a
// response through the matcher and records the exchange in the session
// ledger. Construct one per deployment unit and share it; the ledger
// serializes its own mutations.
type Engine struct {
	matcher *Matcher
	ledger  *SessionLedger
	intents []domain.Intent
	now     func() time.Time
}

// NewEngine validates the intent catalog and assembles an engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Knowledge == nil {
		return nil, fmt.Errorf("engine requires a knowledge base")
	}

	if err := domain.ValidateIntents(cfg.Intents); err != nil {
		return nil, fmt.Errorf("invalid intent catalog: %w", err)
	}

	fallback := cfg.Fallback
	if len(fallback) == 0 {
		fallback = DefaultFallbackResponses()
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Engine{
		matcher: NewMatcher(cfg.Knowledge, cfg.Intents, fallback, rng),
		ledger:  NewSessionLedgerWithClock(clock),
		intents: cfg.Intents,
		now:     clock,
	}, nil
}

// Process handles one utterance end to end and returns the reply text. It
// is total: any input, including the empty string, yields a non-empty
// reply and a recorded exchange.
func (e *Engine) Process(utterance, sessionID string) string {
	return e.ProcessMessage(utterance, sessionID).Reply
}

// ProcessMessage is Process with the detected intent and answered flag
// exposed for callers that surface them (the HTTP API does).
func (e *Engine) ProcessMessage(utterance, sessionID string) Result {
	startedAt := e.now()

	normalized := Normalize(utterance)
	intent := e.matcher.DetectIntent(normalized)
	reply, source := e.matcher.Respond(normalized, intent)

	wasFallback := source == SourceFallback
	e.ledger.Record(startedAt, sessionID, utterance, reply, wasFallback)

	return Result{
		Reply:    reply,
		Intent:   intent,
		Answered: !wasFallback,
	}
}

// Intents returns the engine's intent catalog in declaration order.
func (e *Engine) Intents() []domain.Intent {
	return e.intents
}

// Statistics returns the current aggregate view from the session ledger.
func (e *Engine) Statistics() domain.Statistics {
	return e.ledger.Statistics()
}

// History returns the conversation history in insertion order.
func (e *Engine) History() []domain.Exchange {
	return e.ledger.History()
}

// DailyReport returns the plain-text usage summary.
func (e *Engine) DailyReport() string {
	return e.ledger.DailyReport()
}
