package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arxivpress/arxivpress/app/api"
	"github.com/arxivpress/arxivpress/app/arxiv"
	"github.com/arxivpress/arxivpress/app/blog"
	"github.com/arxivpress/arxivpress/app/cfg"
	"github.com/arxivpress/arxivpress/app/database"
	"github.com/arxivpress/arxivpress/app/profile"
	"github.com/arxivpress/arxivpress/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting arXiv Press server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	postRepo := database.NewPostRepository(db)

	prof, err := profile.Load(appCfg.ProfilePath)
	if err != nil {
		slog.Error("Failed to load generation profile", "path", appCfg.ProfilePath, "error", err)
		os.Exit(1)
	}
	slog.Info("Generation profile loaded", "query", prof.Search.Query, "keywords", len(prof.Search.Keywords))

	arxivClient := arxiv.NewClient(&http.Client{}, arxiv.DefaultBaseURL, appCfg.UserAgent, appCfg.MaxResults)
	extractor := arxiv.NewExtractor(prof.Search.Keywords, prof.Search.MaxEntries, prof.Search.MaxRelevant)

	gateway := blog.NewGateway(appCfg.GroqBaseURL, appCfg.GroqAPIKey, appCfg.Model,
		prof.Sampling.Temperature, prof.Sampling.MaxTokens, prof.Sampling.TopP)

	blogService := blog.NewService(arxivClient, extractor, gateway, postRepo, prof.Search.Query)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "generate_at", appCfg.GenerateAt)
	scheduler := tasks.NewScheduler(blogService)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(postRepo, blogService, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
