// Package httpapi exposes the persisted records over a thin read-only HTTP
// API, plus the on-demand ingestion trigger. All real work happens in the
// use case and the storage port; handlers only translate HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"lvr-ingest/internal/core/domain"
	"lvr-ingest/internal/core/port"
	"lvr-ingest/internal/core/usecase"
)

// Handler wires the API routes.
type Handler struct {
	storage port.TransactionStoragePort
	ingest  *usecase.IngestSeasonUseCase
	log     zerolog.Logger
}

// NewHandler creates the handler.
func NewHandler(storage port.TransactionStoragePort, ingest *usecase.IngestSeasonUseCase, log zerolog.Logger) *Handler {
	return &Handler{storage: storage, ingest: ingest, log: log}
}

// Routes builds the chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/transactions", h.listTransactions)
		r.Get("/stats/districts", h.districtStats)
		r.Post("/ingest", h.triggerIngest)
	})
	return r
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	records, err := h.storage.Query(r.Context(), domain.TransactionFilter{
		District: q.Get("district"),
		Season:   q.Get("season"),
		Limit:    limit,
	})
	if err != nil {
		h.serverError(w, err, "query failed")
		return
	}
	if records == nil {
		records = []domain.TransactionRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(records),
		"items": records,
	})
}

func (h *Handler) districtStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.storage.AggregateByDistrict(r.Context(), r.URL.Query().Get("season"))
	if err != nil {
		h.serverError(w, err, "aggregate failed")
		return
	}
	if stats == nil {
		stats = []domain.DistrictStats{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": stats})
}

// triggerIngest runs a full pipeline pass synchronously. Safe to call
// repeatedly with the same period: the natural-key constraint turns re-runs
// into no-ops.
func (h *Handler) triggerIngest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	quarter, _ := strconv.Atoi(q.Get("quarter"))

	inserted, err := h.ingest.Execute(r.Context(), q.Get("season"), year, quarter)
	if err != nil {
		h.serverError(w, err, "ingestion failed to start")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inserted": inserted})
}

func (h *Handler) serverError(w http.ResponseWriter, err error, msg string) {
	h.log.Error().Err(err).Msg(msg)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
