package rest

import (
	"net/http"

	"github.com/heartmarshall/deutsch-vocab/internal/transport/middleware"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Practice *PracticeHandler
	Stats    *StatsHandler
	Attempts *AttemptsHandler
}

// RouterOptions configures middleware around the routes.
type RouterOptions struct {
	// Global wraps every route, outermost first.
	Global []middleware.Middleware
	// Answers wraps the endpoints that mutate progress through answers.
	Answers middleware.Middleware
}

// NewRouter mounts all routes on a ServeMux.
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	answers := opts.Answers
	if answers == nil {
		answers = func(next http.Handler) http.Handler { return next }
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/practice/next", h.Practice.Next)
	mux.Handle("POST /api/practice/answer", answers(http.HandlerFunc(h.Practice.Answer)))
	mux.Handle("POST /api/practice/correction", answers(http.HandlerFunc(h.Practice.Correction)))
	mux.HandleFunc("POST /api/practice/difficulty", h.Practice.Difficulty)

	mux.HandleFunc("GET /api/stats", h.Stats.Overview)
	mux.HandleFunc("GET /api/levels", h.Stats.Levels)
	mux.HandleFunc("GET /api/levels/{level}/stats", h.Stats.LevelStats)
	mux.HandleFunc("GET /api/levels/{level}/difficult", h.Stats.Difficult)
	mux.HandleFunc("POST /api/levels/{level}/reset", h.Practice.ResetLevel)
	mux.HandleFunc("POST /api/reset-all", h.Practice.ResetAll)

	mux.HandleFunc("GET /api/attempts", h.Attempts.List)

	return middleware.Chain(opts.Global...)(mux)
}
