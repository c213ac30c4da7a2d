package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/render"
)

// Handlers groups the API endpoints mounted by NewRouter.
type Handlers struct {
	Categories *category.HTTPHandler
	Questions  *question.HTTPHandler
	Quiz       *quiz.HTTPHandler
}

// Check is a named dependency probe used by /readyz.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// NewRouter wires middleware, health, metrics and the trivia API.
func NewRouter(cfg *config.App, logger zerolog.Logger, h Handlers, checks ...Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, requestID, requestLogger(logger), instrument, recoverer)
	r.Use(defaultCORSHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	if cfg.HTTP.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.RespondNotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.RespondMethodNotAllowed(w)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readiness(checks))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/categories", h.Categories.List)
	r.Get("/categories/{categoryID}/questions", h.Questions.ListByCategory)

	r.Route("/questions", func(qr chi.Router) {
		qr.Get("/", h.Questions.List)
		qr.Post("/", h.Questions.Create)
		qr.Post("/search", h.Questions.Search)
		qr.Delete("/{id}", h.Questions.Delete)
	})

	r.Post("/quizzes", h.Quiz.Next)

	return r
}

// NewHTTPServer wraps handler with the configured address and timeouts.
func NewHTTPServer(cfg *config.App, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
}

func readiness(checks []Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, c := range checks {
			if err := c.Ping(r.Context()); err != nil {
				loggerFor(r).Error().Err(err).Str("dependency", c.Name).Msg("readiness check failed")
				httperrors.RespondServiceUnavailable(w)
				return
			}
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
