package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gridvoice/gridvoice/internal/api"
	"github.com/gridvoice/gridvoice/internal/api/handlers"
	"github.com/gridvoice/gridvoice/internal/api/middleware"
)

type RouterConfig struct {
	ChatHandler   *handlers.ChatHandler
	StatsHandler  *handlers.StatsHandler
	EnergyHandler *handlers.EnergyHandler
	SpeechHandler *handlers.SpeechHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", cfg.ChatHandler.Chat)
		r.Get("/intents", cfg.ChatHandler.Intents)

		r.Get("/stats", cfg.StatsHandler.Stats)
		r.Get("/history", cfg.StatsHandler.History)
		r.Get("/history/export", cfg.StatsHandler.ExportHistory)
		r.Get("/report", cfg.StatsHandler.Report)
		r.Post("/report/archive", cfg.StatsHandler.ArchiveReport)

		r.Route("/energy", func(r chi.Router) {
			r.Post("/consumption", cfg.EnergyHandler.Consumption)
			r.Post("/savings", cfg.EnergyHandler.Savings)
			r.Get("/report", cfg.EnergyHandler.Report)
		})

		r.Route("/speech", func(r chi.Router) {
			r.Post("/synthesize", cfg.SpeechHandler.Synthesize)
			r.Post("/transcribe", cfg.SpeechHandler.Transcribe)
			r.Post("/announce", cfg.SpeechHandler.Announce)
			r.Get("/usage", cfg.SpeechHandler.Usage)
		})
	})

	return r
}
