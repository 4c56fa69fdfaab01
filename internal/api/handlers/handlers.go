package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/services"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/cache"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/store"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Honeypot *HoneypotHandler
	Session  *SessionHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Service *services.HoneypotService
	Store   store.SessionStore
	Cache   *cache.RedisCache
	Logger  *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.Store, deps.Logger),
		Honeypot: NewHoneypotHandler(deps.Service, deps.Logger),
		Session:  NewSessionHandler(deps.Service, deps.Logger),
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
