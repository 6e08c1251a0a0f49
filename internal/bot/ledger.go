package bot

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gridvoice/gridvoice/internal/domain"
)

// topQueryCount is how many frequent queries statistics and reports show.
const topQueryCount = 5

// SessionLedger accumulates per-process usage statistics and the
// append-only conversation history. One engine instance owns one ledger;
// counters aggregate across every session the engine serves. All mutations
// happen under a mutex so the daemon can serve concurrent HTTP callers
// without breaking the monotonicity of the aggregates.
type SessionLedger struct {
	mu sync.Mutex

	history       []domain.Exchange
	total         int
	answered      int
	responseTimes []float64

	queryCounts map[string]int
	queryOrder  []string

	now func() time.Time
}

// NewSessionLedger creates an empty ledger using the wall clock.
func NewSessionLedger() *SessionLedger {
	return NewSessionLedgerWithClock(time.Now)
}

// NewSessionLedgerWithClock creates an empty ledger with an injected clock
// (for testing).
func NewSessionLedgerWithClock(now func() time.Time) *SessionLedger {
	return &SessionLedger{
		queryCounts: make(map[string]int),
		now:         now,
	}
}

// Record appends one processed exchange: history entry, counters, response
// time and normalized-query frequency. answered_questions only moves when
// the reply did not come from the fallback pool.
func (l *SessionLedger) Record(startedAt time.Time, sessionID, userText, botText string, wasFallback bool) {
	now := l.now()
	elapsed := now.Sub(startedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	normalized := Normalize(userText)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.history = append(l.history, domain.Exchange{
		SessionID: sessionID,
		Timestamp: now,
		UserText:  userText,
		BotText:   botText,
	})

	l.total++
	if !wasFallback {
		l.answered++
	}
	l.responseTimes = append(l.responseTimes, elapsed)

	if _, seen := l.queryCounts[normalized]; !seen {
		l.queryOrder = append(l.queryOrder, normalized)
	}
	l.queryCounts[normalized]++
}

// Statistics derives the read-only aggregate view. Rates and averages are
// zero when nothing has been recorded yet.
func (l *SessionLedger) Statistics() domain.Statistics {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := domain.Statistics{
		TotalQuestions:    l.total,
		AnsweredQuestions: l.answered,
	}

	if l.total > 0 {
		stats.AnswerRate = float64(l.answered) / float64(l.total) * 100
	}

	if len(l.responseTimes) > 0 {
		sum := 0.0
		for _, rt := range l.responseTimes {
			sum += rt
		}
		stats.AvgResponseTime = sum / float64(len(l.responseTimes))
	}

	stats.TopQueries = l.topQueriesLocked()
	return stats
}

// topQueriesLocked returns up to topQueryCount queries by descending
// count; equal counts keep first-encounter order. Caller holds l.mu.
func (l *SessionLedger) topQueriesLocked() []domain.QueryCount {
	ranked := make([]domain.QueryCount, 0, len(l.queryOrder))
	for _, q := range l.queryOrder {
		ranked = append(ranked, domain.QueryCount{Query: q, Count: l.queryCounts[q]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > topQueryCount {
		ranked = ranked[:topQueryCount]
	}
	return ranked
}

// History returns a copy of the append-only exchange log in insertion
// order.
func (l *SessionLedger) History() []domain.Exchange {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Exchange, len(l.history))
	copy(out, l.history)
	return out
}

// DailyReport assembles a plain-text summary of the current statistics.
// Output is deterministic for a fixed ledger state and clock.
func (l *SessionLedger) DailyReport() string {
	stats := l.Statistics()

	var b strings.Builder
	b.WriteString("GRIDVOICE DAILY REPORT\n")
	fmt.Fprintf(&b, "Date: %s\n\n", l.now().Format("02.01.2006"))

	b.WriteString("Overall statistics:\n")
	fmt.Fprintf(&b, "  Total questions: %d\n", stats.TotalQuestions)
	fmt.Fprintf(&b, "  Answered questions: %d\n", stats.AnsweredQuestions)
	fmt.Fprintf(&b, "  Answer rate: %.1f%%\n", stats.AnswerRate)
	fmt.Fprintf(&b, "  Average response time: %.2f s\n\n", stats.AvgResponseTime)

	b.WriteString("Top 5 frequent queries:\n")
	for i, qc := range stats.TopQueries {
		fmt.Fprintf(&b, "  %d. %s (%d times)\n", i+1, qc.Query, qc.Count)
	}

	b.WriteString("\nEnd of report.\n")
	return b.String()
}
