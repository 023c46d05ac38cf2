package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/punchamoorthee/revenueops/internal/domain"
	"github.com/punchamoorthee/revenueops/internal/engine"
	"github.com/punchamoorthee/revenueops/internal/models"
	"github.com/punchamoorthee/revenueops/internal/service"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Metrics
var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "revenue_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "revenue_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})

	ruleApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "revenue_rule_applications_total",
		Help: "Rule variants that fired during evaluation",
	}, []string{"group", "variant"})
)

type Handler struct {
	engine    *engine.Engine
	scenarios Scenarios
	logger    *zap.Logger
}

// NewHandler wires the API. scenarios may be nil, in which case the scenario
// routes are not registered.
func NewHandler(e *engine.Engine, scenarios Scenarios, logger *zap.Logger) *Handler {
	return &Handler{engine: e, scenarios: scenarios, logger: logger}
}

// Router builds the full route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger(h.logger))
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/entries", h.EvaluateEntries).Methods(http.MethodPost)
	if h.scenarios != nil {
		apiV1.HandleFunc("/scenarios", h.CreateScenario).Methods(http.MethodPost)
		apiV1.HandleFunc("/scenarios", h.ListScenarios).Methods(http.MethodGet)
		apiV1.HandleFunc("/scenarios/{id:[0-9]+}", h.GetScenario).Methods(http.MethodGet)
	}
	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "GET", "/health")
}

// EvaluateEntries answers the fact object with the entries it implies.
func (h *Handler) EvaluateEntries(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/entries"))
	defer timer.ObserveDuration()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Unreadable body", "POST", "/entries")
		return
	}

	var req models.FactsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "POST", "/entries")
		return
	}

	facts, err := req.ToFacts()
	if err != nil {
		h.respondFailure(w, err, "POST", "/entries")
		return
	}

	trace, err := h.engine.Trace(facts)
	if err != nil {
		h.respondFailure(w, err, "POST", "/entries")
		return
	}
	for _, rule := range trace.Rules {
		ruleApplications.WithLabelValues(rule.Group, rule.Variant).Inc()
	}

	h.respondJSON(w, http.StatusOK, models.FromEntries(trace.Entries), "POST", "/entries")
}

// Helpers
func (h *Handler) respondJSON(w http.ResponseWriter, code int, payload interface{}, method, endpoint string) {
	httpReqTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) respondError(w http.ResponseWriter, code int, msg, method, endpoint string) {
	h.respondJSON(w, code, map[string]string{"error": msg}, method, endpoint)
}

// respondFailure maps domain and service errors to status codes.
func (h *Handler) respondFailure(w http.ResponseWriter, err error, method, endpoint string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.respondError(w, http.StatusBadRequest, err.Error(), method, endpoint)
	case errors.Is(err, domain.ErrFactConsistency):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), method, endpoint)
	case errors.Is(err, service.ErrScenarioNotFound):
		h.respondError(w, http.StatusNotFound, "Scenario not found", method, endpoint)
	case errors.Is(err, service.ErrIdempotencyConflict):
		h.respondError(w, http.StatusConflict, "Request in progress", method, endpoint)
	case errors.Is(err, service.ErrIdempotencyMismatch):
		h.respondError(w, http.StatusUnprocessableEntity, "Key reuse mismatch", method, endpoint)
	default:
		h.logger.Error("request failed", zap.String("endpoint", endpoint), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Internal Server Error", method, endpoint)
	}
}
