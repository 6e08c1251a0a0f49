package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/gridvoice/gridvoice/internal/api"
	"github.com/gridvoice/gridvoice/internal/bot"
	"github.com/gridvoice/gridvoice/internal/domain"
	"github.com/gridvoice/gridvoice/internal/telemetry"
)

// ChatEngine is the conversational surface the chat handler depends on.
type ChatEngine interface {
	ProcessMessage(utterance, sessionID string) bot.Result
	Intents() []domain.Intent
}

type ChatHandler struct {
	engine ChatEngine
}

func NewChatHandler(engine ChatEngine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	Intent    string `json:"intent"`
	Answered  bool   `json:"answered"`
	SessionID string `json:"session_id"`
}

// Chat processes one user message. A missing session_id starts a new
// session. Empty messages are valid input and get a fallback reply.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	_, span := telemetry.StartSpan(r.Context(), "engine.process", telemetry.SpanAttributes{
		SessionID: sessionID,
		Operation: "chat",
	})
	result := h.engine.ProcessMessage(req.Message, sessionID)
	span.End()

	api.Success(w, http.StatusOK, ChatResponse{
		Reply:     result.Reply,
		Intent:    result.Intent,
		Answered:  result.Answered,
		SessionID: sessionID,
	})
}

type IntentResponse struct {
	Name      string   `json:"name"`
	Triggers  []string `json:"triggers"`
	Templates int      `json:"templates"`
}

// Intents lists the intent catalog in detection order. Template texts
// stay internal; only their count is exposed.
func (h *ChatHandler) Intents(w http.ResponseWriter, r *http.Request) {
	intents := h.engine.Intents()

	out := make([]IntentResponse, 0, len(intents))
	for _, intent := range intents {
		out = append(out, IntentResponse{
			Name:      intent.Name,
			Triggers:  intent.Triggers,
			Templates: len(intent.Templates),
		})
	}

	api.Success(w, http.StatusOK, out)
}
