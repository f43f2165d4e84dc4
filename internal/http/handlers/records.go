package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shebashio/backstage-chainloop-plugin/internal/models"
	"github.com/shebashio/backstage-chainloop-plugin/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// RecordsHandler serves the read-only record endpoints.
type RecordsHandler struct {
	repo   repository.PayloadRepository
	logger *slog.Logger
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(repo repository.PayloadRepository, logger *slog.Logger) *RecordsHandler {
	return &RecordsHandler{repo: repo, logger: logger}
}

// HandleRecords returns a paginated, searchable page of record summaries.
// With an entityUid query parameter the page is scoped to that entity;
// without one it spans all entities.
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	entityUID := q.Get("entityUid")
	search := q.Get("search")
	page := intParam(q.Get("page"), defaultPage)
	limit := intParam(q.Get("limit"), defaultLimit)

	var (
		result *models.RecordPage
		err    error
	)
	if entityUID != "" {
		result, err = h.repo.ListByEntity(r.Context(), entityUID, search, page, limit)
	} else {
		result, err = h.repo.ListAll(r.Context(), search, page, limit)
	}
	if err != nil {
		h.logger.Error("failed to fetch records", "entity_uid", entityUID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch records")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleDetails returns the full stored record by id, scoped to an
// entity. An unknown id and an id belonging to another entity are the
// same 404: existence of other entities' records is never revealed.
func (h *RecordsHandler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	entityUID := r.URL.Query().Get("entityUid")
	if entityUID == "" {
		writeError(w, http.StatusBadRequest, "Missing entityUid parameter")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}

	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to fetch record details", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch record details")
		return
	}
	if record == nil || record.EntityUID != entityUID {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// intParam parses a positive integer query parameter, falling back to
// def when the value is absent, non-numeric, or less than one.
func intParam(value string, def int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return def
	}
	return n
}
