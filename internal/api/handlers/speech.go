package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gridvoice/gridvoice/internal/api"
	"github.com/gridvoice/gridvoice/internal/domain"
	"github.com/gridvoice/gridvoice/internal/speech"
)

// SpeechService is the synthesis and recognition surface the handler
// depends on.
type SpeechService interface {
	Synthesize(ctx context.Context, text, voice string, prosody speech.Prosody) ([]byte, error)
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Announcement(ctx context.Context, kind speech.AnnouncementKind, params speech.AnnouncementParams) ([]byte, error)
	Usage() speech.UsageStats
}

type SpeechHandler struct {
	svc SpeechService
}

// NewSpeechHandler creates a SpeechHandler. svc may be nil when the
// speech service is not configured; every endpoint then reports 503.
func NewSpeechHandler(svc SpeechService) *SpeechHandler {
	return &SpeechHandler{svc: svc}
}

func (h *SpeechHandler) configured(w http.ResponseWriter) bool {
	if h.svc == nil {
		api.HandleError(w, domain.ErrSpeechNotConfigured)
		return false
	}
	return true
}

type SynthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Rate  int    `json:"rate"`
	Pitch int    `json:"pitch"`
}

// Synthesize converts text to speech and returns WAV audio.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}

	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	audio, err := h.svc.Synthesize(r.Context(), req.Text, req.Voice, speech.Prosody{
		Rate:  req.Rate,
		Pitch: req.Pitch,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Write(audio)
}

type TranscribeResponse struct {
	Text string `json:"text"`
}

// Transcribe recognizes speech from a WAV body.
func (h *SpeechHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}

	audio, err := io.ReadAll(r.Body)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "failed to read audio body")
		return
	}
	if len(audio) == 0 {
		api.Error(w, http.StatusBadRequest, "audio body is empty")
		return
	}

	text, err := h.svc.Transcribe(r.Context(), audio)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, TranscribeResponse{Text: text})
}

type AnnouncementRequest struct {
	Kind   string                    `json:"kind"`
	Params speech.AnnouncementParams `json:"params"`
}

// Announce synthesizes one of the canned announcements.
func (h *SpeechHandler) Announce(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}

	var req AnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, ok := speech.AnnouncementText(speech.AnnouncementKind(req.Kind), req.Params); !ok {
		api.Error(w, http.StatusBadRequest, "unknown announcement kind")
		return
	}

	audio, err := h.svc.Announcement(r.Context(), speech.AnnouncementKind(req.Kind), req.Params)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Write(audio)
}

// Usage returns the speech service usage counters.
func (h *SpeechHandler) Usage(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}

	api.Success(w, http.StatusOK, h.svc.Usage())
}
