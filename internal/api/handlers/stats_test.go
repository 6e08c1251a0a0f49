package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gridvoice/gridvoice/internal/domain"
)

type MockStatsEngine struct {
	mock.Mock
}

func (m *MockStatsEngine) Statistics() domain.Statistics {
	args := m.Called()
	return args.Get(0).(domain.Statistics)
}

func (m *MockStatsEngine) History() []domain.Exchange {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Exchange)
}

func (m *MockStatsEngine) DailyReport() string {
	args := m.Called()
	return args.String(0)
}

type MockReportArchiver struct {
	mock.Mock
}

func (m *MockReportArchiver) Archive(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func testHistory() []domain.Exchange {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return []domain.Exchange{
		{SessionID: "s1", Timestamp: base, UserText: "hello", BotText: "Welcome!"},
		{SessionID: "s1", Timestamp: base.Add(time.Minute), UserText: "pay bill", BotText: "Use the portal."},
		{SessionID: "s2", Timestamp: base.Add(2 * time.Minute), UserText: "weather", BotText: "Please clarify."},
	}
}

func TestStatsHandler_Stats(t *testing.T) {
	engine := new(MockStatsEngine)
	engine.On("Statistics").Return(domain.Statistics{
		TotalQuestions:    3,
		AnsweredQuestions: 2,
		AnswerRate:        66.67,
		TopQueries:        []domain.QueryCount{{Query: "hello", Count: 1}},
	})

	handler := NewStatsHandler(engine, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	rec := httptest.NewRecorder()

	handler.Stats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.Statistics `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.TotalQuestions)
	assert.InDelta(t, 66.67, resp.Data.AnswerRate, 0.001)
}

func TestStatsHandler_History(t *testing.T) {
	engine := new(MockStatsEngine)
	engine.On("History").Return(testHistory())

	handler := NewStatsHandler(engine, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	rec := httptest.NewRecorder()

	handler.History(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []ExchangeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "hello", resp.Data[0].UserText)
	assert.Equal(t, "2025-03-10T09:00:00Z", resp.Data[0].Timestamp)
}

func TestStatsHandler_History_Limit(t *testing.T) {
	engine := new(MockStatsEngine)
	engine.On("History").Return(testHistory())

	handler := NewStatsHandler(engine, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/history?limit=2", nil)
	rec := httptest.NewRecorder()

	handler.History(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []ExchangeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	// The most recent exchanges are kept
	assert.Equal(t, "pay bill", resp.Data[0].UserText)
	assert.Equal(t, "weather", resp.Data[1].UserText)
}

func TestStatsHandler_History_InvalidLimit(t *testing.T) {
	engine := new(MockStatsEngine)
	engine.On("History").Return(testHistory())

	handler := NewStatsHandler(engine, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/history?limit=abc", nil)
	rec := httptest.NewRecorder()

	handler.History(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsHandler_ExportHistory(t *testing.T) {
	engine := new(MockStatsEngine)
	engine.On("History").Return(testHistory())

	handler := NewStatsHandler(engine, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/history/export", nil)
	rec := httptest.NewRecorder()

	handler.ExportHistory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "chat_history.csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"session_id", "timestamp", "user_text", "bot_text"}, records[0])
	assert.Equal(t, "hello", records[1][2])
}

func TestStatsHandler_Report(t *testing.T) {
	engine := new(MockStatsEngine)
	engine.On("DailyReport").Return("GRIDVOICE DAILY REPORT\nTotal questions: 3\n")

	handler := NewStatsHandler(engine, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/report", nil)
	rec := httptest.NewRecorder()

	handler.Report(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "GRIDVOICE DAILY REPORT")
}

func TestStatsHandler_ArchiveReport(t *testing.T) {
	engine := new(MockStatsEngine)
	archiver := new(MockReportArchiver)
	archiver.On("Archive", mock.Anything).Return("reports/2025-03/daily-2025-03-10.txt", nil)

	handler := NewStatsHandler(engine, archiver)

	req := httptest.NewRequest(http.MethodPost, "/v1/report/archive", nil)
	rec := httptest.NewRecorder()

	handler.ArchiveReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data ArchiveResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "reports/2025-03/daily-2025-03-10.txt", resp.Data.Key)
}

func TestStatsHandler_ArchiveReport_NotConfigured(t *testing.T) {
	handler := NewStatsHandler(new(MockStatsEngine), nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/report/archive", nil)
	rec := httptest.NewRecorder()

	handler.ArchiveReport(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatsHandler_ArchiveReport_StoreError(t *testing.T) {
	archiver := new(MockReportArchiver)
	archiver.On("Archive", mock.Anything).Return("", errors.New("s3 down"))

	handler := NewStatsHandler(new(MockStatsEngine), archiver)

	req := httptest.NewRequest(http.MethodPost, "/v1/report/archive", nil)
	rec := httptest.NewRecorder()

	handler.ArchiveReport(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
