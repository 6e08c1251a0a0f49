package domain

// QueryCount pairs a normalized query with the number of times it was seen.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// Statistics is the derived read-only view over the session ledger's
// running aggregates. AnswerRate is a percentage; AvgResponseTime is in
// seconds. Both default to 0 when no questions have been processed.
// TopQueries holds at most the five most frequent normalized queries in
// descending count order, ties broken by first-encounter order.
type Statistics struct {
	TotalQuestions    int          `json:"total_questions"`
	AnsweredQuestions int          `json:"answered_questions"`
	AnswerRate        float64      `json:"answer_rate"`
	AvgResponseTime   float64      `json:"avg_response_time"`
	TopQueries        []QueryCount `json:"top_queries"`
}
