package httpserver

import (
	"net/http"
	"time"

	"secret-santa-go/internal/config"
	"secret-santa-go/internal/metrics"
	"secret-santa-go/internal/transport/httpserver/handler"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RateLimit.Enabled {
		r.Use(httprate.LimitByIP(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/participants", handlers.RegisterParticipant)
		r.Get("/participants", handlers.ListParticipants)
		r.Get("/participants/{id}", handlers.GetParticipant)
		r.Delete("/participants/{id}", handlers.RemoveParticipant)
		r.Post("/participants/{id}/verify", handlers.VerifyParticipant)
		r.Post("/participants/{id}/resend-code", handlers.ResendCode)

		r.Get("/participants/{id}/gifts", handlers.ListGiftItems)
		r.Post("/participants/{id}/gifts", handlers.AddGiftItem)
		r.Patch("/gifts/{item_id}", handlers.UpdateGiftItem)
		r.Delete("/gifts/{item_id}", handlers.DeleteGiftItem)

		r.Post("/events", handlers.CreateEvent)
		r.Get("/events", handlers.ListEvents)
		r.Get("/events/{id}", handlers.GetEvent)
		r.Post("/events/{id}/cancel", handlers.CancelEvent)
		r.Post("/events/{id}/draw", handlers.DrawEvent)
		r.Post("/events/{id}/undo-draw", handlers.UndoDraw)
		r.Get("/events/{id}/history", handlers.DrawHistory)
		r.Post("/events/{id}/participants/{participant_id}", handlers.IncludeParticipant)
		r.Delete("/events/{id}/participants/{participant_id}", handlers.ExcludeParticipant)
	})

	return r
}
