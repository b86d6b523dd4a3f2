package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"gitanime-web/models"
	"gitanime-web/services"
)

// APIHandler serves the JSON endpoints consumed by the page scripts
type APIHandler struct {
	backend  *services.Backend
	sessions *services.SessionService
	logger   *log.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(backend *services.Backend, sessions *services.SessionService, logger *log.Logger) *APIHandler {
	return &APIHandler{
		backend:  backend,
		sessions: sessions,
		logger:   logger,
	}
}

// ScrapingStatus handles GET /api/scraping-status, relaying the
// backend's status so the polling scripts stay same-origin.
func (h *APIHandler) ScrapingStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.backend.ScrapingStatus(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch scraping status", "err", err)
		h.writeError(w, http.StatusBadGateway, services.UserMessage(err))
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

// Health handles GET /healthz
func (h *APIHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateSession handles POST /api/player/sessions
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VideoURL string `json:"videoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, view := h.sessions.Create(body.VideoURL)
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    id,
		"state": view,
	})
}

// GetSession handles GET /api/player/sessions/{id}
func (h *APIHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, ok := h.sessions.Get(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// SessionEvent handles POST /api/player/sessions/{id}/events, applying
// one control event and returning the resulting snapshot.
func (h *APIHandler) SessionEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var ev models.PlayerEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.sessions.Apply(id, ev)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownSession):
			h.writeError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, services.ErrUnknownEvent):
			h.writeError(w, http.StatusBadRequest, "Unknown event type: "+ev.Type)
		default:
			h.logger.Error("failed to apply player event", "session", id, "type", ev.Type, "err", err)
			h.writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

// DropSession handles DELETE /api/player/sessions/{id}
func (h *APIHandler) DropSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Drop(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "err", err)
	}
}

func (h *APIHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
