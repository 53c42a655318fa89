package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

func defaultCORS() config.CORS {
	return config.CORS{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}
}

func serve(h http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPing(t *testing.T) {
	h := NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, nil)

	rec := serve(h, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"success": true, "ping": "pong"}, decode(t, rec))
}

func TestHealthz(t *testing.T) {
	h := NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, nil)

	rec := serve(h, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	healthy := map[string]ReadinessCheck{
		"postgres": func(context.Context) error { return nil },
	}
	rec := serve(NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, healthy), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	failing := map[string]ReadinessCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
	}
	rec = serve(NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, failing), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, float64(503), decode(t, rec)["error"])
}

func TestUnknownRouteIsEnvelope404(t *testing.T) {
	h := NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, nil)

	for _, path := range []string{"/nope", "/api/questions", "/categories"} {
		rec := serve(h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "resource not found", body["message"])
	}
}

func TestCORSHeadersOnEveryRoute(t *testing.T) {
	h := NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, nil)

	for _, path := range []string{"/", "/healthz", "/missing"} {
		rec := serve(h, http.MethodGet, path, http.Header{"Origin": {"http://localhost:3000"}})
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"), path)
		assert.Equal(t, "GET, POST, PATCH, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"), path)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, nil)

	rec := serve(h, http.MethodOptions, "/questions", http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {"DELETE"},
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	cors := defaultCORS()
	cors.AllowedOrigins = []string{"https://trivia.example"}
	h := NewHandler(cors, zerolog.Nop(), Routes{}, nil)

	allowed := serve(h, http.MethodGet, "/", http.Header{"Origin": {"https://trivia.example"}})
	assert.Equal(t, "https://trivia.example", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := serve(h, http.MethodGet, "/", http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDPropagation(t *testing.T) {
	h := NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, nil)

	generated := serve(h, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, generated.Header().Get(requestIDHeader))

	echoed := serve(h, http.MethodGet, "/healthz", http.Header{requestIDHeader: {"req-123"}})
	assert.Equal(t, "req-123", echoed.Header().Get(requestIDHeader))
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("unexpected nil")
	})
	h := withRecovery(zerolog.Nop(), boom)

	rec := serve(h, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode(t, rec)["message"])
}

func TestPanickingRequestIsLoggedAndCounted(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("unexpected nil")
	})
	h := chain(defaultCORS(), zerolog.Nop(), boom)
	rec := serve(h, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	metrics := serve(NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, nil), http.MethodGet, "/metrics", nil)
	assert.Contains(t, metrics.Body.String(), `trivia_http_requests_total{method="GET",route="unmatched",status="500"}`)
}

func TestWrongMethodOnKnownPath(t *testing.T) {
	h := NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, nil)

	for _, path := range []string{"/healthz", "/metrics", "/"} {
		rec := serve(h, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, "GET", rec.Header().Get("Allow"), path)
		body := decode(t, rec)
		assert.Equal(t, float64(405), body["error"])
		assert.Equal(t, "method not allowed", body["message"])
	}

	rec := serve(h, http.MethodPut, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWrongMethodOnAPIRoutes(t *testing.T) {
	routes := Routes{
		Categories: category.NewHTTPHandler(nil, zerolog.Nop()),
		Questions:  question.NewHTTPHandler(nil, nil, zerolog.Nop()),
	}
	h := NewHandler(defaultCORS(), zerolog.Nop(), routes, nil)

	cases := map[string]struct {
		method string
		allow  string
	}{
		"/questions/1": {http.MethodPatch, "GET, DELETE"},
		"/questions":   {http.MethodPut, "GET, POST"},
		"/quizzes":     {http.MethodGet, "POST"},
		"/categories":  {http.MethodDelete, "GET"},
	}
	for path, tc := range cases {
		rec := serve(h, tc.method, path, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, tc.allow, rec.Header().Get("Allow"), path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewHandler(defaultCORS(), zerolog.Nop(), Routes{}, nil)
	serve(h, http.MethodGet, "/healthz", nil)

	rec := serve(h, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trivia_http_requests_total")
}
