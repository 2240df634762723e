package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/clock", s.handleClock)
		r.Get("/game-id", s.handleGameID)
		r.Get("/chapter-name", s.handleChapterName)
		r.Post("/chapters", s.handleDescribeChapter)
	})
	return r
}
