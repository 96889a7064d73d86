package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-catalog/internal/http/metric"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/middleware"
	"github.com/tuanvumaihuynh/product-catalog/internal/log"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

func TestRecoverer(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer(log.Discard()))
	r.Get("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"code":"internalServerError","message":"an unknown error occurred"}`, resp.Body.String())
}

func TestCorrelationID(t *testing.T) {
	var seen string
	r := chi.NewRouter()
	r.Use(middleware.CorrelationID())
	r.Get("/", func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = correlationid.FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(correlationid.Header, "req-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", resp.Header().Get(correlationid.Header))
}

func TestMetricsSkipsMetricsPath(t *testing.T) {
	m := metric.New()
	r := chi.NewRouter()
	r.Use(middleware.Metrics(m))
	r.Get(middleware.MetricsPath, func(http.ResponseWriter, *http.Request) {})
	r.Get("/api/tags/{id}", func(http.ResponseWriter, *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, middleware.MetricsPath, nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tags/3", nil))

	families, err := m.Registry.Gather()
	assert.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != "catalog_http_requests_total" {
			continue
		}
		for _, sample := range mf.GetMetric() {
			total += sample.GetCounter().GetValue()
			for _, label := range sample.GetLabel() {
				if label.GetName() == "route" {
					assert.Equal(t, "/api/tags/{id}", label.GetValue())
				}
			}
		}
	}
	assert.InDelta(t, 1, total, 0)
}
