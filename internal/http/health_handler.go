package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type healthHandler struct {
	checker db.HealthChecker
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *healthHandler) Healthz(w http.ResponseWriter, r *http.Request) error {
	if ok, err := h.checker.IsHealthy(r.Context()); !ok {
		return apperr.DatabaseDownErr.WrapParent(fmt.Errorf("database health check: %w", err))
	}

	return writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
