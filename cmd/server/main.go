package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/nexvox/internal/adapters/http"
	"github.com/dkeye/nexvox/internal/adapters/storage"
	"github.com/dkeye/nexvox/internal/app"
	"github.com/dkeye/nexvox/internal/app/orch"
	"github.com/dkeye/nexvox/internal/config"
	"github.com/dkeye/nexvox/internal/data"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Mode == "release" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	rooms, err := data.Rooms(cfg.Data.RoomsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load rooms")
	}
	users, err := data.Users(cfg.Data.UsersPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load users")
	}
	store, err := storage.NewFileStore(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}

	catalog := app.NewCatalog(store, rooms, nil)
	o := &orch.Orchestrator{
		Ctx:        ctx,
		Registry:   app.NewRegistry(),
		Rooms:      app.NewRoomDataService(catalog, users, cfg.Session.ResolveLatency, nil),
		Catalog:    catalog,
		Policy:     app.SimplePolicy{},
		SessionCfg: app.SessionConfig{
			SpeakerInterval: cfg.Session.SpeakerInterval,
			ToastTTL:        cfg.Session.ToastTTL,
			Breakpoint:      cfg.Session.Breakpoint,
		},
	}

	r := router.SetupRouter(ctx, cfg, o)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Int("rooms", len(rooms)).Int("users", len(users)).Msg("NexVox server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	o.Shutdown()
	log.Info().Msg("Server exited gracefully")
}
