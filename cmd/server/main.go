package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/chris/splitwise-sync/pkg/approval"
	"github.com/chris/splitwise-sync/pkg/config"
	"github.com/chris/splitwise-sync/pkg/dispatch"
	"github.com/chris/splitwise-sync/pkg/interactions"
	"github.com/chris/splitwise-sync/pkg/ledger/splitwise"
	"github.com/chris/splitwise-sync/pkg/logger"
	"github.com/chris/splitwise-sync/pkg/messenger/discord"
	"github.com/chris/splitwise-sync/pkg/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg config.Server
	if err := config.Load(ctx, &cfg); err != nil {
		fallback := logger.New(false)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Debug)

	verifier, err := interactions.NewVerifier(cfg.DiscordPublicKey)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DISCORD_PUBLIC_KEY")
	}

	msgr, err := discord.New(cfg.DiscordBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord client")
	}

	lgr := splitwise.New(cfg.SplitwiseAPIKey, "")

	processor := approval.NewProcessor(lgr, msgr, cfg.SplitwiseGroupID, log)
	queue := dispatch.NewQueue(cfg.DispatchBuffer, cfg.DispatchWorkers, processor, log)

	handler := interactions.NewHandler(verifier, queue, log)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(log))
	router.Get("/", handler.Healthz)
	router.Post("/interactions", handler.Interactions)

	server := &http.Server{Addr: cfg.Addr, Handler: router}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	// Stop accepting requests first, then drain decisions already accepted.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	queue.Close()

	log.Info().Msg("exiting")
}
