package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"driftnet/internal/clients/jackett"
	"driftnet/internal/config"
	"driftnet/internal/core"
	"driftnet/internal/handlers"
	"driftnet/internal/utils"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.App.Debug, os.Stdout)

	// Wire up the upstream client, registry cache and fan-out searcher
	client := jackett.NewClient(cfg.Jackett.URL, cfg.Jackett.APIKey, cfg.JackettTimeout())
	registry := core.NewRegistry(client, cfg.Cache.File, cfg.CacheTTL(), logger)
	searcher := core.NewSearcher(registry, client, logger)

	// Start web server
	server := handlers.NewServer(cfg, searcher, registry, logger)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start: ", err)
		}
	}()

	logger.Infof("driftnet started successfully on port %d", cfg.App.Port)

	// Wait for interrupt
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("Shutdown error: ", err)
	}
}
