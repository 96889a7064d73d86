package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	httpsvc "github.com/tuanvumaihuynh/product-catalog/internal/http"
	"github.com/tuanvumaihuynh/product-catalog/internal/log"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository/memory"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

type fakeHealthChecker struct {
	err error
}

func (h fakeHealthChecker) IsHealthy(context.Context) (bool, error) {
	return h.err == nil, h.err
}

type fixture struct {
	store      *memory.Store
	productSvc service.ProductService
	health     *fakeHealthChecker
	handler    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	repos := store.Repositories()
	logger := log.Discard()

	productSvc := service.NewProductService(logger, store, repos.Products, repos.ProductTags, repos.OutboxMsgs)
	t.Cleanup(productSvc.Wait)

	health := &fakeHealthChecker{}
	svc, err := httpsvc.New(
		config.HTTP{Swagger: true},
		logger,
		service.NewCategoryService(store, repos.Categories, repos.OutboxMsgs),
		productSvc,
		service.NewTagService(store, repos.Tags, repos.ProductTags, repos.OutboxMsgs),
		health,
	)
	require.NoError(t, err)

	handler, err := svc.Handler()
	require.NoError(t, err)

	return &fixture{
		store:      store,
		productSvc: productSvc,
		health:     health,
		handler:    handler,
	}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	f.handler.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v), resp.Body.String())
	return v
}

type entity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
	Error string `json:"error"`
}

func (f *fixture) create(t *testing.T, path, body string) int64 {
	t.Helper()

	resp := f.do(t, http.MethodPost, path, body)
	require.Less(t, resp.Code, 300, resp.Body.String())
	return decode[entity](t, resp).ID
}

func TestService_Middlewares(t *testing.T) {
	f := newFixture(t)

	t.Run("Should echo the correlation id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
		req.Header.Set(correlationid.Header, "abc-123")
		resp := httptest.NewRecorder()

		f.handler.ServeHTTP(resp, req)

		assert.Equal(t, "abc-123", resp.Header().Get(correlationid.Header))
	})

	t.Run("Should generate a correlation id", func(t *testing.T) {
		resp := f.do(t, http.MethodGet, "/api/tags", "")

		assert.NotEmpty(t, resp.Header().Get(correlationid.Header))
	})

	t.Run("Should expose request metrics by route", func(t *testing.T) {
		f.do(t, http.MethodGet, "/api/categories/42", "")

		resp := f.do(t, http.MethodGet, "/metrics", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "catalog_http_requests_total")
		assert.Contains(t, resp.Body.String(), `route="/api/categories/{id}"`)
	})

	t.Run("Should serve the docs", func(t *testing.T) {
		resp := f.do(t, http.MethodGet, "/docs/openapi.yml", "")

		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestService_Healthz(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())

	f.health.err = errors.New("connection refused")
	resp = f.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
