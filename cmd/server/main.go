// Package main initializes and starts the winslog HTTP server, setting
// up configuration, logging, the key-value store backend, services and
// handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/akulikov/winslog/internal/config"
	"github.com/akulikov/winslog/internal/db"
	"github.com/akulikov/winslog/internal/logger"
	"github.com/akulikov/winslog/internal/repository"
	"github.com/akulikov/winslog/internal/server/handler/http"
	"github.com/akulikov/winslog/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Open the configured key-value store backend.
	store, err := openStore(options)
	if err != nil {
		zapLogger.Fatal("cannot init storage", zap.Error(err))
	}

	// Initialize the profile store and the analytics engine, restoring
	// the last active profile's entry collection.
	profileService := service.NewProfileService(store, zapLogger)
	journalService := service.NewJournalService(store, zapLogger)

	ctx := context.Background()
	profileService.Load(ctx)
	journalService.SetActiveProfile(ctx, profileService.ActiveID())

	// Create HTTP handlers for the entry, profile and stats endpoints.
	entriesHandler := &http.EntriesHandler{Journal: journalService}
	profilesHandler := &http.ProfilesHandler{Profiles: profileService, Journal: journalService}
	statsHandler := &http.StatsHandler{Stats: journalService}

	// Build the router with middleware and routes.
	router := http.NewRouter(entriesHandler, profilesHandler, statsHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Port),
		zap.String("backend", options.Backend),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

// openStore builds the key-value store selected by the configuration.
func openStore(o *config.Options) (repository.KV, error) {
	switch o.Backend {
	case "memory":
		return repository.NewMemory(), nil
	case "file":
		return repository.NewFile(o.StoragePath)
	case "sqlite":
		sqlDB, err := db.InitSQLite(o.StoragePath)
		if err != nil {
			return nil, err
		}
		return repository.NewSQLite(sqlDB), nil
	case "postgres":
		sqlDB, err := db.InitPostgres(o.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgres(sqlDB), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", o.Backend)
	}
}
