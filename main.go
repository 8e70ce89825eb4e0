package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/config"
	"github.com/AbuAli85/Contract-Management-System-sub011/handler"
	"github.com/AbuAli85/Contract-Management-System-sub011/pkg/logger"
	"github.com/AbuAli85/Contract-Management-System-sub011/registry"
	"github.com/AbuAli85/Contract-Management-System-sub011/service"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	templates, err := registry.Load(cfg.Storage.Locations)
	if err != nil {
		slog.Error("failed to load template registry", "error", err)
		os.Exit(1)
	}
	slog.Info("template registry loaded", "templates", templates.Len())

	ctx := context.Background()

	// Persistence: PostgreSQL when configured, otherwise in memory
	var contracts service.ContractRepository
	var entities service.EntityLookup
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

		if err := db.PingContext(ctx); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		pg := service.NewPostgresContractStore(db)
		if err := pg.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		contracts = pg
		entities = service.NewSQLEntityStore(db)
		slog.Info("using postgres contract store")
	} else {
		contracts = service.NewContractStore(&cfg.Store)
		slog.Warn("no database configured, related entities will not be enriched")
	}

	// Storage links are optional
	var storage service.StorageLinker
	if cfg.Storage.Enabled {
		storageSvc, err := service.NewStorageService(&cfg.Storage)
		if err != nil {
			slog.Error("failed to initialize storage service", "error", err)
			os.Exit(1)
		}
		if err := storageSvc.EnsureBucket(ctx); err != nil {
			slog.Error("failed to ensure storage bucket", "error", err)
			os.Exit(1)
		}
		storage = storageSvc
	}

	automation := service.NewAutomationClient(&cfg.Automation)
	if !automation.Configured() {
		slog.Warn("automation webhook not configured, contracts will stay pending")
	}

	generator := service.NewGenerator(service.GeneratorDeps{
		Templates:  templates,
		Enricher:   service.NewEnricher(entities, service.NewMediaResolver(cfg.Automation.PlaceholderURL)),
		Assembler:  service.NewAssembler(cfg.Automation.CallbackURL, cfg.Automation.CallbackSecret),
		Dispatcher: automation,
		Contracts:  contracts,
		Storage:    storage,
	})

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(cfg, handler.Handlers{
		Auth:      handler.NewAuthHandler(cfg),
		Contracts: handler.NewContractHandler(generator, contracts),
		Templates: handler.NewTemplateHandler(templates),
		Callback:  handler.NewCallbackHandler(contracts, cfg.Automation.CallbackSecret),
	})

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}
