package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ireporter/ireporter/internal/adapter/http/middleware"
	"github.com/ireporter/ireporter/internal/adapter/http/response"
	"github.com/ireporter/ireporter/internal/service/logger"
	"github.com/ireporter/ireporter/internal/service/ratelimit"
	"github.com/ireporter/ireporter/internal/usecase"
)

// RecordHandler handles HTTP requests for records
type RecordHandler struct {
	records *usecase.RecordUseCase
	logger  logger.Logger
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(records *usecase.RecordUseCase, log logger.Logger) *RecordHandler {
	return &RecordHandler{records: records, logger: log}
}

// RegisterRoutes registers record routes. The submission rate limit and window
// come from configuration; only record creation is limited.
func (h *RecordHandler) RegisterRoutes(router *mux.Router, auth *middleware.AuthMiddleware, limiter ratelimit.Service, limit int, window time.Duration) {
	limited := middleware.RateLimit(limiter, limit, window)

	router.HandleFunc("/api/v1/records", auth.RequireAuth(limited(h.CreateRecord))).Methods("POST")
	router.HandleFunc("/api/v1/records", h.ListRecords).Methods("GET")
	router.HandleFunc("/api/v1/records/stats", h.GetStats).Methods("GET")
	router.HandleFunc("/api/v1/records/{id}", h.GetRecord).Methods("GET")
	router.HandleFunc("/api/v1/records/{id}", auth.RequireAuth(h.UpdateRecord)).Methods("PUT")
	router.HandleFunc("/api/v1/records/{id}", auth.RequireAuth(h.DeleteRecord)).Methods("DELETE")
	router.HandleFunc("/api/v1/records/{id}/status", auth.RequireAdmin(h.UpdateRecordStatus)).Methods("PUT")
	router.HandleFunc("/api/v1/user_records", auth.RequireAuth(h.ListUserRecords)).Methods("GET")
	router.HandleFunc("/api/v1/user_records/stats", auth.RequireAuth(h.GetUserStats)).Methods("GET")
}

// CreateRecord handles record submission
func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req usecase.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	record, err := h.records.Create(r.Context(), actor, req)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("record created", map[string]interface{}{
		"record_id": record.ID,
		"owner_id":  record.OwnerID,
		"type":      record.RecordType,
	})
	response.Success(w, http.StatusCreated, "Record created", record)
}

// ListRecords handles the public listing with search, type filter, and pagination
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	page, err := h.records.List(r.Context(), "", parseListRequest(r))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Records retrieved", page)
}

// ListUserRecords lists the authenticated actor's own records
func (h *RecordHandler) ListUserRecords(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	page, err := h.records.List(r.Context(), actor.ID, parseListRequest(r))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Records retrieved", page)
}

// GetRecord retrieves a single record
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Record retrieved", record)
}

// UpdateRecord edits a record's content fields
func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req usecase.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	record, err := h.records.UpdateContent(r.Context(), actor, mux.Vars(r)["id"], req)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Record updated", record)
}

// DeleteRecord removes a record
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	if err := h.records.Delete(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("record deleted", map[string]interface{}{
		"record_id": mux.Vars(r)["id"],
		"actor_id":  actor.ID,
	})
	response.Success(w, http.StatusOK, "Record deleted", nil)
}

type updateStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// UpdateRecordStatus runs the admin status workflow
func (h *RecordHandler) UpdateRecordStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	record, err := h.records.UpdateStatus(r.Context(), actor, mux.Vars(r)["id"], req.Status, req.Comment)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("record status updated", map[string]interface{}{
		"record_id": record.ID,
		"status":    record.Status,
		"admin_id":  actor.ID,
	})
	response.Success(w, http.StatusOK, "Status updated", record)
}

// GetStats returns record counts grouped by status and type
func (h *RecordHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.records.GetStats(r.Context(), "")
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Stats retrieved", stats)
}

// GetUserStats returns the authenticated actor's own record counts
func (h *RecordHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	stats, err := h.records.GetStats(r.Context(), actor.ID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Stats retrieved", stats)
}

func parseListRequest(r *http.Request) usecase.ListRecordsRequest {
	q := r.URL.Query()

	req := usecase.ListRecordsRequest{
		Query:      q.Get("q"),
		RecordType: q.Get("type"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Page = page
	}
	if perPage, err := strconv.Atoi(q.Get("per_page")); err == nil {
		req.PerPage = perPage
	}
	return req
}
