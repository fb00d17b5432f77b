package chat

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/sterling-assoc/supportbot/internal/model/chat"
	botservice "github.com/sterling-assoc/supportbot/internal/service/bot"
)

// WebSocketHandler carries the conversation over a websocket so the widget
// can show typing indicators while a turn is in flight.
type WebSocketHandler struct {
	bot      *botservice.Service
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewWebSocketHandler creates the websocket chat handler.
func NewWebSocketHandler(bot *botservice.Service, log zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		bot: bot,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// CORS is enforced by the widget-facing middleware.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes registers the websocket chat route.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type outgoingMessage struct {
	Type        string    `json:"type"`
	Message     string    `json:"message,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Step        chat.Step `json:"step,omitempty"`
	Timestamp   int64     `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	if _, err := h.bot.Session(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.log.Info().Str("sessionId", sessionID).Msg("websocket chat opened")
	h.write(conn, outgoingMessage{Type: "connected", Timestamp: time.Now().UnixMilli()})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Str("sessionId", sessionID).Msg("websocket chat read error")
			}
			return
		}

		switch inbound.Type {
		case "message":
			// The processing indicator covers the repository search and any
			// email dispatch; neither is cancelable once started.
			h.write(conn, outgoingMessage{Type: "processing", Timestamp: time.Now().UnixMilli()})

			response := h.bot.ProcessMessage(r.Context(), sessionID, inbound.Content)
			h.write(conn, outgoingMessage{
				Type:        "reply",
				Message:     response.Message,
				Suggestions: response.Suggestions,
				Step:        response.State.Step,
				Timestamp:   time.Now().UnixMilli(),
			})
		case "ping":
			h.write(conn, outgoingMessage{Type: "pong", Timestamp: time.Now().UnixMilli()})
		default:
			h.write(conn, outgoingMessage{
				Type:      "error",
				Message:   "unsupported message type",
				Timestamp: time.Now().UnixMilli(),
			})
		}
	}
}

func (h *WebSocketHandler) write(conn *websocket.Conn, msg outgoingMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		h.log.Warn().Err(err).Msg("websocket chat write error")
	}
}
