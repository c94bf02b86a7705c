package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// the webhook route carries the signature check; utility routes do not
	router.Group(func(r chi.Router) {
		r.Use(h.withSignatureCheck)
		r.Post("/webhook/flow", h.exchangeFlowData)
	})

	router.Get("/api/version/", h.getServerVersion)
	router.Get("/healthz", h.healthCheck)

	return router
}
