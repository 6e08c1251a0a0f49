package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridvoice/gridvoice/internal/api/handlers"
	"github.com/gridvoice/gridvoice/internal/bot"
	"github.com/gridvoice/gridvoice/internal/energy"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	engine, err := bot.NewEngine(bot.EngineConfig{
		Knowledge: bot.NewKnowledgeBase(nil, nil),
		Intents: bot.DefaultIntents(bot.Contact{
			Phone:     "0 800 500 425",
			Email:     "support@gridvoice.ua",
			Emergency: "104",
		}),
	})
	require.NoError(t, err)

	calc := energy.NewCalculator(energy.Tariffs{ResidentialDay: 2.64, ResidentialNight: 1.32})

	return NewRouter(RouterConfig{
		ChatHandler:   handlers.NewChatHandler(engine),
		StatsHandler:  handlers.NewStatsHandler(engine, nil),
		EnergyHandler: handlers.NewEnergyHandler(calc),
		SpeechHandler: handlers.NewSpeechHandler(nil),
	})
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rec.Body.String())
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_ChatFlow(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(`{"message":"hello there"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Reply     string `json:"reply"`
			Intent    string `json:"intent"`
			Answered  bool   `json:"answered"`
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "greeting", resp.Data.Intent)
	assert.True(t, resp.Data.Answered)
	assert.NotEmpty(t, resp.Data.SessionID)

	// The exchange shows up in stats and history
	statsReq := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	statsRec := httptest.NewRecorder()
	router.ServeHTTP(statsRec, statsReq)
	require.Equal(t, http.StatusOK, statsRec.Code)
	assert.Contains(t, statsRec.Body.String(), `"total_questions":1`)

	histReq := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	histRec := httptest.NewRecorder()
	router.ServeHTTP(histRec, histReq)
	require.Equal(t, http.StatusOK, histRec.Code)
	assert.Contains(t, histRec.Body.String(), "hello there")
}

func TestRouter_Report(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/report", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "GRIDVOICE DAILY REPORT")
}

func TestRouter_ArchiveUnavailableWithoutS3(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/report/archive", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_SpeechUnavailableWithoutKey(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/speech/synthesize", strings.NewReader(`{"text":"hi"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_EnergyConsumption(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/energy/consumption", strings.NewReader(`{"appliances":[{"name":"TV","power_w":100,"hours_per_day":4,"quantity":1}]}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_kwh":12`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
