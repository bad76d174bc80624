package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decarvalhoe/umbra-payment-service/config"
	httpHandler "github.com/decarvalhoe/umbra-payment-service/internal/adapter/http/handler"
	"github.com/decarvalhoe/umbra-payment-service/internal/core/domain"
	"github.com/decarvalhoe/umbra-payment-service/internal/service"
	"github.com/decarvalhoe/umbra-payment-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Umbra Payment Service")

	// Initialize core services
	ledgerSvc := service.NewLedgerService(cfg.Wallet.Currency, log)
	gachaSvc, err := service.NewGachaService(
		domain.DefaultPools(),
		cfg.Gacha.MaxDraws,
		cfg.Gacha.SeedValue(),
		ledgerSvc,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize gacha engine")
	}
	if cfg.Gacha.SeedValue() != nil {
		log.Info().Int64("seed", cfg.Gacha.Seed).Msg("Gacha random source seeded from config")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Ledger:      ledgerSvc,
		Gacha:       gachaSvc,
		DefaultPool: cfg.Gacha.DefaultPool,
		Logger:      log,
	})

	// HTTP Server with graceful shutdown
	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr()).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
