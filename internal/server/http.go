package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Routes bundles the domain handlers mounted on the API mux.
type Routes struct {
	Categories *category.HTTPHandler
	Questions  *question.HTTPHandler
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

const readinessTimeout = 2 * time.Second

// NewHTTPServer wires the API routes plus health, readiness and metrics endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, routes Routes, checks map[string]ReadinessCheck) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewHandler(cfg.CORS, logger, routes, checks),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// NewHandler builds the full middleware chain around the route mux.
func NewHandler(cors config.CORS, logger zerolog.Logger, routes Routes, checks map[string]ReadinessCheck) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondSuccess(w, map[string]interface{}{"ping": "pong"})
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.Error().Err(err).Str("dependency", name).Msg("readiness check failed")
				httperrors.RespondServiceUnavailable(w)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	if routes.Categories != nil {
		mux.HandleFunc("GET /categories", routes.Categories.HandleList)
		mux.HandleFunc("GET /categories/{id}", routes.Categories.HandleGet)
	}

	if routes.Questions != nil {
		mux.HandleFunc("GET /questions", routes.Questions.HandleList)
		mux.HandleFunc("POST /questions", routes.Questions.HandlePost)
		mux.HandleFunc("GET /questions/{id}", routes.Questions.HandleGet)
		mux.HandleFunc("DELETE /questions/{id}", routes.Questions.HandleDelete)
		mux.HandleFunc("GET /categories/{id}/questions", routes.Questions.HandleCategoryQuestions)
		mux.HandleFunc("POST /quizzes", routes.Questions.HandleQuiz)
	}

	// Unmatched requests: 405 when the path exists under another method, else 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if allowed := allowedMethods(mux, r); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			httperrors.RespondMethodNotAllowed(w)
			return
		}
		httperrors.RespondNotFound(w)
	})

	return chain(cors, logger, mux)
}

// chain wraps the mux so the request logger sees every response, including
// the 500 written by recovery.
func chain(cors config.CORS, logger zerolog.Logger, mux http.Handler) http.Handler {
	h := withCORS(cors, mux)
	h = withRecovery(logger, h)
	return withRequestLogging(logger, h)
}

var routedMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete}

// allowedMethods lists the methods for which r's path resolves to a real
// route rather than the catch-all.
func allowedMethods(mux *http.ServeMux, r *http.Request) []string {
	var allowed []string
	for _, method := range routedMethods {
		if method == r.Method {
			continue
		}
		alt := r.Clone(r.Context())
		alt.Method = method
		if _, pattern := mux.Handler(alt); pattern != "" && pattern != "/" {
			allowed = append(allowed, method)
		}
	}
	return allowed
}
