package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/distmalvinas/remito-service/internal/catalog"
	"github.com/distmalvinas/remito-service/internal/config"
	"github.com/distmalvinas/remito-service/internal/db"
	"github.com/distmalvinas/remito-service/internal/remito"
	"github.com/distmalvinas/remito-service/internal/render"
	"github.com/distmalvinas/remito-service/internal/sequence"
	"github.com/distmalvinas/remito-service/internal/transport"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "remito-service").Logger()

	log.Info().Msg("Remito service starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	source, err := catalog.NewSheetsSource(context.Background(), cfg.Sheets)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build sheets source")
	}
	catalogSvc := catalog.NewService(source)

	counter, cleanup, err := buildCounter(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build remito counter")
	}
	defer cleanup()

	rasterizer := render.NewTextRasterizer()
	assembler := render.NewPDFAssembler()
	sessions := remito.NewSessions(func() *remito.Composer {
		return remito.NewComposer(counter, rasterizer, assembler)
	})

	router := transport.NewRouter(catalogSvc, sessions, cfg.App.PublicDir)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}

// buildCounter picks the numbering backend: Postgres when DB_HOST is set, the
// local JSON file otherwise.
func buildCounter(cfg *config.Config) (remito.Counter, func(), error) {
	if cfg.Postgres.Host == "" {
		counter, err := sequence.NewFileCounter(cfg.Counter.FilePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.Counter.FilePath).Msg("Using file-backed remito counter")
		return counter, func() {}, nil
	}

	conn, err := db.Connect(cfg.Postgres)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("Using Postgres-backed remito counter")
	return sequence.NewPostgresCounter(conn), func() { conn.Close() }, nil
}
