package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/punchamoorthee/revenueops/internal/models"
)

const defaultListLimit = 50

// Scenarios is the scenario library the handlers call into.
type Scenarios interface {
	CreateScenario(ctx context.Context, req models.ScenarioRequest, idempotencyKey, reqHash string) (*models.ScenarioResponse, bool, error)
	GetScenario(ctx context.Context, id int64) (*models.ScenarioResponse, error)
	ListScenarios(ctx context.Context, limit int) ([]models.Scenario, error)
}

func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/scenarios"))
	defer timer.ObserveDuration()

	idemKey := r.Header.Get("Idempotency-Key")
	if idemKey == "" {
		h.respondError(w, http.StatusBadRequest, "Missing Idempotency-Key", "POST", "/scenarios")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Unreadable body", "POST", "/scenarios")
		return
	}
	hash := sha256.Sum256(body)
	reqHash := hex.EncodeToString(hash[:])

	var req models.ScenarioRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "POST", "/scenarios")
		return
	}

	resp, replayed, err := h.scenarios.CreateScenario(r.Context(), req, idemKey, reqHash)
	if err != nil {
		h.respondFailure(w, err, "POST", "/scenarios")
		return
	}

	if replayed {
		h.respondJSON(w, http.StatusOK, resp, "POST", "/scenarios")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/v1/scenarios/%d", resp.Scenario.ID))
	h.respondJSON(w, http.StatusCreated, resp, "POST", "/scenarios")
}

func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid scenario id", "GET", "/scenarios/{id}")
		return
	}

	resp, err := h.scenarios.GetScenario(r.Context(), id)
	if err != nil {
		h.respondFailure(w, err, "GET", "/scenarios/{id}")
		return
	}
	h.respondJSON(w, http.StatusOK, resp, "GET", "/scenarios/{id}")
}

func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			h.respondError(w, http.StatusBadRequest, "limit must be between 1 and 500", "GET", "/scenarios")
			return
		}
		limit = parsed
	}

	scenarios, err := h.scenarios.ListScenarios(r.Context(), limit)
	if err != nil {
		h.respondFailure(w, err, "GET", "/scenarios")
		return
	}
	h.respondJSON(w, http.StatusOK, scenarios, "GET", "/scenarios")
}
