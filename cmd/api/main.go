package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sumitdas1984/financial-data-extraction-tool/internal/config"
	httphandler "github.com/sumitdas1984/financial-data-extraction-tool/internal/http"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/logging"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/services/extraction"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/services/llm"
)

func main() {
	// Parse command line flags
	port := flag.String("port", "", "Port to run the server on (overrides PORT)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if *port != "" {
		cfg.Server.Port = *port
	}

	defaultProvider, err := llm.ParseProvider(cfg.LLM.DefaultProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid default provider")
	}

	// Initialize LLM clients and extraction service
	service := extraction.NewService(llm.NewCompleters(cfg.LLM, nil))

	// Initialize HTTP router
	router := httphandler.NewRouter(cfg.Server, cfg.RateLimit)

	// Register routes
	router.RegisterExtractionRoutes(httphandler.NewExtractionHandler(service, defaultProvider, cfg.Server.MaxBodyBytes))
	router.RegisterHealthRoutes()

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Cancel on interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Start server
	g.Go(func() error {
		log.Info().
			Str("addr", server.Addr).
			Str("default_provider", defaultProvider.String()).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		// Shutdown server gracefully
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}

	log.Info().Msg("Server stopped")
}
