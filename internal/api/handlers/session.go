package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/services"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/store"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// SessionHandler handles session summary and finalize endpoints
type SessionHandler struct {
	service *services.HoneypotService
	logger  *logger.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(svc *services.HoneypotService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: svc,
		logger:  log.WithComponent("session_handler"),
	}
}

// Summary handles GET /session/{sessionID}
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	summary, err := h.service.Summary(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			respondJSON(w, http.StatusOK, models.NotFoundResponse{
				Status:  "not_found",
				Message: "No intelligence found for this session ID.",
			})
			return
		}
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("summary failed")
		respondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Finalize handles POST /finalize/{sessionID}
func (h *SessionHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	resp, err := h.service.Finalize(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			respondJSON(w, http.StatusOK, models.NotFoundResponse{
				Status:  "not_found",
				Message: "No intelligence available for this session.",
			})
			return
		}
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("finalize failed")
		respondError(w, http.StatusInternalServerError, "failed to finalize session")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
