package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/services"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// HoneypotHandler handles scam message submissions
type HoneypotHandler struct {
	service *services.HoneypotService
	logger  *logger.Logger
}

// NewHoneypotHandler creates a new HoneypotHandler
func NewHoneypotHandler(svc *services.HoneypotService, log *logger.Logger) *HoneypotHandler {
	return &HoneypotHandler{
		service: svc,
		logger:  log.WithComponent("honeypot_handler"),
	}
}

// Submit handles POST /honeypot
func (h *HoneypotHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.HoneypotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		respondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if strings.TrimSpace(req.Message.Text) == "" {
		respondError(w, http.StatusBadRequest, "message.text is required")
		return
	}

	resp, err := h.service.Engage(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("engagement failed")
		respondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
