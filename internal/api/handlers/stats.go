package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gridvoice/gridvoice/internal/api"
	"github.com/gridvoice/gridvoice/internal/domain"
	"github.com/gridvoice/gridvoice/internal/telemetry"
)

// StatsEngine exposes the usage-statistics surface of the engine.
type StatsEngine interface {
	Statistics() domain.Statistics
	History() []domain.Exchange
	DailyReport() string
}

// ReportArchiver stores the current daily report and returns the object key.
type ReportArchiver interface {
	Archive(ctx context.Context) (string, error)
}

type StatsHandler struct {
	engine   StatsEngine
	archiver ReportArchiver
}

// NewStatsHandler creates a StatsHandler. archiver may be nil when object
// storage is not configured.
func NewStatsHandler(engine StatsEngine, archiver ReportArchiver) *StatsHandler {
	return &StatsHandler{engine: engine, archiver: archiver}
}

// Stats returns the aggregate usage statistics.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, h.engine.Statistics())
}

type ExchangeResponse struct {
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
	UserText  string `json:"user_text"`
	BotText   string `json:"bot_text"`
}

// History returns the conversation history, optionally limited to the
// most recent ?limit exchanges.
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	history := h.engine.History()

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			api.Error(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		if limit < len(history) {
			history = history[len(history)-limit:]
		}
	}

	out := make([]ExchangeResponse, 0, len(history))
	for _, ex := range history {
		out = append(out, ExchangeResponse{
			SessionID: ex.SessionID,
			Timestamp: ex.Timestamp.UTC().Format(time.RFC3339),
			UserText:  ex.UserText,
			BotText:   ex.BotText,
		})
	}

	api.Success(w, http.StatusOK, out)
}

// ExportHistory streams the conversation history as a CSV download.
func (h *StatsHandler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	history := h.engine.History()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="chat_history.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"session_id", "timestamp", "user_text", "bot_text"})
	for _, ex := range history {
		cw.Write([]string{
			ex.SessionID,
			ex.Timestamp.UTC().Format(time.RFC3339),
			ex.UserText,
			ex.BotText,
		})
	}
	cw.Flush()
}

// Report returns the daily usage report as plain text.
func (h *StatsHandler) Report(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, h.engine.DailyReport())
}

type ArchiveResponse struct {
	Key string `json:"key"`
}

// ArchiveReport stores the current daily report in object storage.
func (h *StatsHandler) ArchiveReport(w http.ResponseWriter, r *http.Request) {
	if h.archiver == nil {
		api.HandleError(w, domain.ErrArchiveNotConfigured)
		return
	}

	key, err := h.archiver.Archive(r.Context())
	if err != nil {
		telemetry.CaptureError(r.Context(), err)
		api.HandleError(w, domain.ErrStorageOperationFail.WithCause(err))
		return
	}

	api.Success(w, http.StatusOK, ArchiveResponse{Key: key})
}
