package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock advances by step on every call.
type fixedClock struct {
	now  time.Time
	step time.Duration
}

func (c *fixedClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func TestSessionLedger_Empty(t *testing.T) {
	l := NewSessionLedger()

	stats := l.Statistics()
	assert.Equal(t, 0, stats.TotalQuestions)
	assert.Equal(t, 0, stats.AnsweredQuestions)
	assert.Zero(t, stats.AnswerRate)
	assert.Zero(t, stats.AvgResponseTime)
	assert.Empty(t, stats.TopQueries)
	assert.Empty(t, l.History())
}

func TestSessionLedger_Record(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), step: time.Second}
	l := NewSessionLedgerWithClock(clock.Now)

	started := time.Date(2025, 3, 10, 8, 59, 59, 500_000_000, time.UTC)
	l.Record(started, "s1", "Hello!", "Welcome!", false)
	l.Record(started, "s1", "what is the weather", "Sorry, I did not understand.", true)

	stats := l.Statistics()
	assert.Equal(t, 2, stats.TotalQuestions)
	assert.Equal(t, 1, stats.AnsweredQuestions)
	assert.InDelta(t, 50.0, stats.AnswerRate, 0.001)

	history := l.History()
	require.Len(t, history, 2)
	assert.Equal(t, "s1", history[0].SessionID)
	assert.Equal(t, "Hello!", history[0].UserText)
	assert.Equal(t, "Welcome!", history[0].BotText)
}

func TestSessionLedger_CountersNeverDecrease(t *testing.T) {
	l := NewSessionLedger()

	prevTotal, prevAnswered := 0, 0
	for i := 0; i < 20; i++ {
		l.Record(time.Now(), "s", "hi", "hello", i%3 == 0)
		stats := l.Statistics()
		assert.GreaterOrEqual(t, stats.TotalQuestions, prevTotal)
		assert.GreaterOrEqual(t, stats.AnsweredQuestions, prevAnswered)
		prevTotal, prevAnswered = stats.TotalQuestions, stats.AnsweredQuestions
	}
}

func TestSessionLedger_NegativeElapsedClampedToZero(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	l := NewSessionLedgerWithClock(func() time.Time { return now })

	l.Record(now.Add(time.Hour), "s", "hi", "hello", false)

	assert.Zero(t, l.Statistics().AvgResponseTime)
}

func TestSessionLedger_QueryFrequencyUsesNormalizedText(t *testing.T) {
	l := NewSessionLedger()

	l.Record(time.Now(), "s", "How do I pay?", "reply", false)
	l.Record(time.Now(), "s", "  how   do i PAY!  ", "reply", false)

	stats := l.Statistics()
	require.Len(t, stats.TopQueries, 1)
	assert.Equal(t, "how do i pay", stats.TopQueries[0].Query)
	assert.Equal(t, 2, stats.TopQueries[0].Count)
}

func TestSessionLedger_TopQueriesOrdering(t *testing.T) {
	l := NewSessionLedger()

	record := func(text string, times int) {
		for i := 0; i < times; i++ {
			l.Record(time.Now(), "s", text, "reply", false)
		}
	}

	record("alpha", 1)
	record("beta", 3)
	record("gamma", 2)
	record("delta", 2)
	record("epsilon", 1)
	record("zeta", 1)

	top := l.Statistics().TopQueries
	require.Len(t, top, topQueryCount)
	assert.Equal(t, "beta", top[0].Query)
	// Equal counts keep first-encounter order.
	assert.Equal(t, "gamma", top[1].Query)
	assert.Equal(t, "delta", top[2].Query)
	assert.Equal(t, "alpha", top[3].Query)
	assert.Equal(t, "epsilon", top[4].Query)
}

func TestSessionLedger_AvgResponseTime(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	l := NewSessionLedgerWithClock(clock.Now)

	l.Record(clock.now.Add(-100*time.Millisecond), "s", "one", "r", false)
	l.Record(clock.now.Add(-300*time.Millisecond), "s", "two", "r", false)

	assert.InDelta(t, 0.2, l.Statistics().AvgResponseTime, 0.0001)
}

func TestSessionLedger_DailyReportDeterministic(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	l := NewSessionLedgerWithClock(func() time.Time { return now })

	l.Record(now, "s", "hello", "Welcome!", false)
	l.Record(now, "s", "hello", "Welcome!", false)
	l.Record(now, "s", "nonsense", "Sorry.", true)

	report := l.DailyReport()
	assert.Equal(t, report, l.DailyReport())

	assert.Contains(t, report, "GRIDVOICE DAILY REPORT")
	assert.Contains(t, report, "Date: 10.03.2025")
	assert.Contains(t, report, "Total questions: 3")
	assert.Contains(t, report, "Answered questions: 2")
	assert.Contains(t, report, "Answer rate: 66.7%")
	assert.Contains(t, report, "1. hello (2 times)")
	assert.Contains(t, report, "End of report.")
}

func TestSessionLedger_HistoryReturnsCopy(t *testing.T) {
	l := NewSessionLedger()
	l.Record(time.Now(), "s", "hi", "hello", false)

	history := l.History()
	history[0].UserText = "mutated"

	assert.Equal(t, "hi", l.History()[0].UserText)
}
