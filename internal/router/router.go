package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/studyhive-dev/studyhive/internal/middleware"
	"github.com/studyhive-dev/studyhive/internal/middleware/metrics"
	rl "github.com/studyhive-dev/studyhive/internal/middleware/ratelimiter"
	"github.com/studyhive-dev/studyhive/internal/setup"
)

// New creates and configures the chi router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that group
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	cfg := deps.Config

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))
	r.Use(mw.SecurityHeaders(false))
	r.Use(metrics.Middleware)

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Credential endpoints, rate limited by IP
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
			r.Use(mw.GlobalRateLimit(rl.Rps100()))
			r.Post("/auth/signup", h.Signup)
			r.Post("/auth/signin", h.Signin)
		})

		// Public read endpoints, rate limited by IP
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(rl.Rps10(), mw.GetIP))
			r.Get("/users/{id}", h.GetProfile)
			r.Get("/questions", h.ListQuestions)
			r.Get("/questions/{question}/similar", h.SimilarQuestions)
			r.Get("/community/{country}", h.ListCommunityMessages)
		})

		// Endpoints requiring a resolved caller
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Use(mw.RateLimit(rl.Rps100(), mw.GetCallerId))

			r.Get("/me", h.Me)
			r.Post("/questions", h.CreateQuestion)
			r.Post("/questions/{question}/answers", h.SubmitAnswer)
			r.Delete("/questions/{question}/answers/{answer}", h.RemoveAnswer)
			r.Post("/questions/{question}/save", h.ToggleSaveQuestion)
			r.Post("/groups", h.CreateGroup)
			r.Get("/groups", h.ListGroups)
			// The weekly posting throttle lives in storage; this only smooths bursts
			r.With(mw.RateLimit(rl.OnceInSecond(), mw.GetCallerId)).
				Post("/community/{country}", h.PostCommunityMessage)
		})
	})

	// Avoid 404s for preflight requests
	r.MethodFunc("OPTIONS", "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
