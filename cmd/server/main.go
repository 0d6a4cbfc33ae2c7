package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/config"
	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/index"
	"github.com/agenthands/namesake/internal/logging"
	"github.com/agenthands/namesake/internal/server"
	"github.com/agenthands/namesake/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to a namesake.toml file")
	flag.Parse()

	bootLog := logging.New(logging.Options{})
	if err := godotenv.Load(); err != nil {
		bootLog.Debug().Msg("No .env file found, using defaults")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		bootLog.Fatal().Err(err).Msg("Invalid config")
	}
	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	addr := cfg.Server.Addr
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv, err := load(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load data")
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	logger.Info().Str("addr", addr).Msg("Starting server")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Server failed")
	}
	logger.Info().Msg("Server stopped")
}

func load(cfg *config.Config, logger zerolog.Logger) (*server.Server, error) {
	records, err := storage.LoadCatalog(cfg.Path(cfg.Data.Catalog))
	if err != nil {
		return nil, err
	}
	groups, err := storage.LoadAliases(cfg.Path(cfg.Data.CustomAliases), logger)
	if err != nil {
		return nil, err
	}
	store, conflicts := aliases.New(groups)
	for _, name := range conflicts {
		logger.Warn().Str("name", name).Msg("Alias claimed by more than one group, keeping the first")
	}

	logger.Info().
		Int("players", len(records)).
		Int("groups", store.Len()).
		Msg("Data loaded")
	return server.NewServer(index.New(records), store, logger), nil
}
