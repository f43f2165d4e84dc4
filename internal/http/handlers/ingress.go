package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shebashio/backstage-chainloop-plugin/internal/repository"
)

// IngressHandler persists inbound webhook deliveries.
// Token verification happens in middleware before this handler runs.
type IngressHandler struct {
	repo    repository.PayloadRepository
	maxBody int64
	logger  *slog.Logger
}

// NewIngressHandler creates a new webhook ingress handler.
func NewIngressHandler(repo repository.PayloadRepository, maxBody int64, logger *slog.Logger) *IngressHandler {
	return &IngressHandler{
		repo:    repo,
		maxBody: maxBody,
		logger:  logger,
	}
}

// HandleWebhook stores the raw request body verbatim against the entity
// named in the URL. One row per call: retried deliveries with identical
// bodies create distinct rows.
func (h *IngressHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	entityUID := chi.URLParam(r, "uid")
	if entityUID == "" {
		writeError(w, http.StatusBadRequest, "Missing entity UID in URL")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("failed to read webhook body", "entity_uid", entityUID, "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	// The payload is open-ended JSON; it must parse, nothing more.
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	id, err := h.repo.Save(r.Context(), entityUID, body)
	if err != nil {
		h.logger.Error("failed to save payload", "entity_uid", entityUID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save payload")
		return
	}

	h.logger.Info("webhook payload saved", "entity_uid", entityUID, "id", id, "bytes", len(body))
	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// HandleEcho acknowledges receipt of an arbitrary body. Useful when
// wiring up a webhook sender before pointing it at the real route.
func (h *IngressHandler) HandleEcho(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	h.logger.Debug("echo request", "bytes", len(body))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
