// Package httpapi exposes the conversion pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/doeshing/sqlchat-go/internal/domain"
	"github.com/doeshing/sqlchat-go/internal/observability"
	"github.com/doeshing/sqlchat-go/internal/ports"
)

// ConversionService is the use-case boundary consumed by the handlers.
type ConversionService interface {
	Convert(ctx context.Context, req domain.ConversionRequest) domain.ConversionResult
	ModelLoaded() bool
}

// Handler bundles the HTTP dependencies.
type Handler struct {
	Service ConversionService
	Storage ports.Storage
	History ports.HistoryRepository
	Logger  ports.Logger
}

// Routes assembles the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(observability.Middleware)
	r.Post("/api/query", h.handleQuery)
	r.Get("/api/schema", h.handleSchema)
	r.Get("/api/history", h.handleHistory)
	r.Get("/api/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req domain.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "问题不能为空"})
		return
	}

	result := h.Service.Convert(r.Context(), req)
	respondJSON(w, http.StatusOK, result)
}

type schemaResponse struct {
	Success bool   `json:"success"`
	Schema  string `json:"schema,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	description, err := h.Storage.SchemaDescription(r.Context())
	if err != nil {
		h.Logger.Error("schema description failed", err, nil)
		respondJSON(w, http.StatusInternalServerError, schemaResponse{Error: err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, schemaResponse{Success: true, Schema: description})
}

type historyResponse struct {
	Success bool                      `json:"success"`
	Records []domain.ConversionRecord `json:"records"`
	Error   string                    `json:"error,omitempty"`
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	records, err := h.History.Records(limit, r.URL.Query().Get("search"))
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, historyResponse{Error: err.Error()})
		return
	}
	if records == nil {
		records = []domain.ConversionRecord{}
	}
	respondJSON(w, http.StatusOK, historyResponse{Success: true, Records: records})
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		ModelLoaded: h.Service.ModelLoaded(),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
