package bot

import (
	"testing"
	"time"

	"github.com/gridvoice/gridvoice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(EngineConfig{
		Knowledge: LoadKnowledgeBase(writeTestFAQ(t)),
		Intents:   DefaultIntents(testContact()),
		Rand:      &stubRand{},
	})
	require.NoError(t, err)
	return engine
}

func TestNewEngine_RequiresKnowledgeBase(t *testing.T) {
	_, err := NewEngine(EngineConfig{})
	assert.Error(t, err)
}

func TestNewEngine_RejectsInvalidIntents(t *testing.T) {
	_, err := NewEngine(EngineConfig{
		Knowledge: NewKnowledgeBase(nil, nil),
		Intents: []domain.Intent{
			{Name: "broken", Triggers: nil, Templates: []string{"x"}},
		},
	})
	assert.Error(t, err)
}

func TestEngine_ProcessGreeting(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.ProcessMessage("hello there", "s1")

	assert.Equal(t, "greeting", result.Intent)
	assert.True(t, result.Answered)
	assert.Contains(t, DefaultIntents(testContact())[0].Templates, result.Reply)
}

func TestEngine_ProcessKnowledgeBaseHit(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.ProcessMessage("I want to pay my bill", "s1")

	assert.True(t, result.Answered)
	assert.Equal(t, "Pay via the portal.", result.Reply)
}

func TestEngine_ProcessUnrecognized(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.ProcessMessage("what is the weather today", "s1")

	assert.Equal(t, domain.IntentUnknown, result.Intent)
	assert.False(t, result.Answered)
	assert.Contains(t, DefaultFallbackResponses(), result.Reply)
}

func TestEngine_ProcessEmptyInput(t *testing.T) {
	engine := newTestEngine(t)

	reply := engine.Process("", "s1")

	assert.NotEmpty(t, reply)
	assert.Contains(t, DefaultFallbackResponses(), reply)

	stats := engine.Statistics()
	assert.Equal(t, 1, stats.TotalQuestions)
	assert.Equal(t, 0, stats.AnsweredQuestions)
}

func TestEngine_ProcessNeverReturnsEmptyReply(t *testing.T) {
	engine := newTestEngine(t)

	inputs := []string{
		"",
		"   ",
		"?!.,",
		"hello",
		"blackout in my street",
		"asdkjh qweoiu zzz",
	}
	for _, input := range inputs {
		assert.NotEmpty(t, engine.Process(input, "s1"), "input %q", input)
	}
}

func TestEngine_AnswerRate(t *testing.T) {
	engine := newTestEngine(t)

	engine.Process("hello there", "s1")
	engine.Process("I want to pay my bill", "s1")
	engine.Process("what is the weather today", "s1")

	stats := engine.Statistics()
	assert.Equal(t, 3, stats.TotalQuestions)
	assert.Equal(t, 2, stats.AnsweredQuestions)
	assert.InDelta(t, 66.67, stats.AnswerRate, 0.01)
}

func TestEngine_HistoryRecordsEveryExchange(t *testing.T) {
	engine := newTestEngine(t)

	engine.Process("hello", "alpha")
	engine.Process("nonsense gibberish", "beta")

	history := engine.History()
	require.Len(t, history, 2)
	assert.Equal(t, "alpha", history[0].SessionID)
	assert.Equal(t, "hello", history[0].UserText)
	assert.Equal(t, "beta", history[1].SessionID)
	assert.NotEmpty(t, history[1].BotText)
}

func TestEngine_DailyReport(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	engine, err := NewEngine(EngineConfig{
		Knowledge: LoadKnowledgeBase(writeTestFAQ(t)),
		Intents:   DefaultIntents(testContact()),
		Rand:      &stubRand{},
		Clock:     func() time.Time { return now },
	})
	require.NoError(t, err)

	engine.Process("hello", "s1")

	report := engine.DailyReport()
	assert.Contains(t, report, "Date: 10.03.2025")
	assert.Contains(t, report, "Total questions: 1")
}

func TestEngine_Intents(t *testing.T) {
	engine := newTestEngine(t)

	intents := engine.Intents()
	require.NotEmpty(t, intents)
	assert.Equal(t, "greeting", intents[0].Name)
}
