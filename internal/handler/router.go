package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	chatHandler "github.com/sterling-assoc/supportbot/internal/handler/chat"
	middlewarePkg "github.com/sterling-assoc/supportbot/internal/middleware"
	botservice "github.com/sterling-assoc/supportbot/internal/service/bot"
	"github.com/sterling-assoc/supportbot/pkg/utils"
)

// NewRouter wires HTTP routes to the conversation engine.
func NewRouter(bot *botservice.Service, allowedOrigins []string, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(allowedOrigins))

	restHandler := chatHandler.New(bot)
	wsHandler := chatHandler.NewWebSocketHandler(bot, log)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status":         "ok",
				"activeSessions": bot.ActiveSessions(),
			})
		})

		api.Route("/chat", func(cr chi.Router) {
			restHandler.RegisterRoutes(cr)
			wsHandler.RegisterWebSocketRoutes(cr)
		})
	})

	return r
}
