package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	chatmodel "github.com/sterling-assoc/supportbot/internal/model/chat"
	"github.com/sterling-assoc/supportbot/internal/model/transaction"
	"github.com/sterling-assoc/supportbot/internal/notify"
	"github.com/sterling-assoc/supportbot/internal/service/action"
	botservice "github.com/sterling-assoc/supportbot/internal/service/bot"
	"github.com/sterling-assoc/supportbot/internal/service/session"
)

func setupWebSocket(t *testing.T) (*httptest.Server, *botservice.Service) {
	t.Helper()
	repo := transaction.NewMemoryRepository(transaction.Seed())
	dispatcher := notify.NewLogDispatcher(zerolog.Nop())
	bot := botservice.NewService(session.NewMemoryStore(), repo, action.NewProcessor(dispatcher), zerolog.Nop())

	r := chi.NewRouter()
	NewWebSocketHandler(bot, zerolog.Nop()).RegisterWebSocketRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, bot
}

func dial(t *testing.T, server *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestWebSocketUnknownSession(t *testing.T) {
	server, _ := setupWebSocket(t)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/unknown"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail for unknown session")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 handshake response, got %+v", resp)
	}
}

func TestWebSocketTurn(t *testing.T) {
	server, bot := setupWebSocket(t)
	sess := bot.StartSession(context.Background())
	conn := dial(t, server, sess.ID)

	var out outgoingMessage
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read connected frame: %v", err)
	}
	if out.Type != "connected" {
		t.Fatalf("expected connected frame, got %s", out.Type)
	}

	if err := conn.WriteJSON(inboundMessage{Type: "message", Content: "I need help with a charge"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read processing frame: %v", err)
	}
	if out.Type != "processing" {
		t.Fatalf("expected processing frame, got %s", out.Type)
	}

	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read reply frame: %v", err)
	}
	if out.Type != "reply" {
		t.Fatalf("expected reply frame, got %s", out.Type)
	}
	if out.Step != chatmodel.StepCollectingCard {
		t.Fatalf("expected collecting_card after greeting, got %s", out.Step)
	}
	if out.Message == "" {
		t.Fatal("expected a reply message")
	}
}

func TestWebSocketPing(t *testing.T) {
	server, bot := setupWebSocket(t)
	sess := bot.StartSession(context.Background())
	conn := dial(t, server, sess.ID)

	var out outgoingMessage
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read connected frame: %v", err)
	}

	if err := conn.WriteJSON(inboundMessage{Type: "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if out.Type != "pong" {
		t.Fatalf("expected pong, got %s", out.Type)
	}
}
