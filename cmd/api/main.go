package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sterling-assoc/supportbot/internal/config"
	"github.com/sterling-assoc/supportbot/internal/handler"
	"github.com/sterling-assoc/supportbot/internal/logger"
	"github.com/sterling-assoc/supportbot/internal/model/transaction"
	"github.com/sterling-assoc/supportbot/internal/notify"
	"github.com/sterling-assoc/supportbot/internal/service/action"
	"github.com/sterling-assoc/supportbot/internal/service/bot"
	"github.com/sterling-assoc/supportbot/internal/service/session"
	"github.com/sterling-assoc/supportbot/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, continuing with system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	var repo transaction.Repository
	if cfg.Store.DBPath != "" {
		sqliteRepo, err := store.NewSQLite(cfg.Store.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.DBPath).Msg("failed to open transaction database")
		}
		defer sqliteRepo.Close()
		repo = sqliteRepo
		log.Info().Str("path", cfg.Store.DBPath).Msg("transaction repository: sqlite")
	} else {
		repo = transaction.NewMemoryRepository(transaction.Seed())
		log.Info().Msg("TRANSACTIONS_DB not set, using seeded in-memory transactions")
	}

	var dispatcher notify.Dispatcher
	if cfg.Email.Enabled() {
		dispatcher = notify.NewEmailJS(notify.Config{
			ServiceID:  cfg.Email.ServiceID,
			TemplateID: cfg.Email.TemplateID,
			PublicKey:  cfg.Email.PublicKey,
			BaseURL:    cfg.Email.BaseURL,
			Recipient:  cfg.Email.Recipient,
		}, log)
		log.Info().Msg("notification dispatcher: emailjs")
	} else {
		dispatcher = notify.NewLogDispatcher(log)
		log.Info().Msg("EmailJS credentials not found, using email simulation mode")
	}

	sessions := session.NewMemoryStore()
	session.StartSweeper(ctx, sessions, cfg.Sessions.TTL, cfg.Sessions.SweepInterval, log)

	botSvc := bot.NewService(sessions, repo, action.NewProcessor(dispatcher), log)
	router := handler.NewRouter(botSvc, cfg.Server.AllowedOrigins, log)

	startServer(ctx, cfg.Server.Addr, router, log)
}

func startServer(ctx context.Context, addr string, router http.Handler, log zerolog.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("support assistant backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
