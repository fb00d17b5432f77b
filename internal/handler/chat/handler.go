package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	botservice "github.com/sterling-assoc/supportbot/internal/service/bot"
	"github.com/sterling-assoc/supportbot/pkg/utils"
)

// Handler exposes the conversation engine over HTTP for the widget.
type Handler struct {
	bot *botservice.Service
}

// New creates the chat handler.
func New(bot *botservice.Service) *Handler {
	return &Handler{bot: bot}
}

// RegisterRoutes registers the chat REST routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleStartSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Post("/messages", h.handleProcessMessage)
}

// handleStartSession provisions a fresh conversation.
func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	session := h.bot.StartSession(r.Context())
	utils.RespondJSON(w, http.StatusCreated, session)
}

// handleGetSession returns an active session, mainly for widget reconnects.
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.bot.Session(r.Context(), sessionID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, botservice.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}

// handleProcessMessage runs one conversation turn.
func (h *Handler) handleProcessMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Content   string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if payload.Content == "" {
		utils.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	response := h.bot.ProcessMessage(r.Context(), payload.SessionID, payload.Content)
	utils.RespondJSON(w, http.StatusOK, response)
}
