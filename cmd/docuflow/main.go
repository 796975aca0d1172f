package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"docuflow/internal/api"
	"docuflow/internal/api/handlers"
	"docuflow/internal/service"
	"docuflow/internal/storage"
	"docuflow/pkg/config"
	"docuflow/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting docuflow service")

	// The store lives for the lifetime of the process; entity state is
	// intentionally volatile, only uploaded files persist on disk.
	store := storage.NewMemStore()

	docService := service.NewDocumentService(store, cfg.Upload.Dir, cfg.Upload.MaxSize, appLogger)
	processor := service.NewProcessorService(store, storage.ExtractionPolicy(cfg.Extraction.Policy), appLogger)
	exporter := service.NewExportService(store, appLogger)

	app := api.SetupRouter(api.RouterConfig{
		Templates:       handlers.NewTemplateHandler(store, appLogger),
		Documents:       handlers.NewDocumentHandler(store, docService, processor, exporter, appLogger),
		Extractions:     handlers.NewExtractionHandler(store, appLogger),
		FeatureRequests: handlers.NewFeatureRequestHandler(store, appLogger),
		Health:          handlers.NewHealthHandler(),
		BodyLimit:       int(cfg.Upload.MaxSize) + 1024*1024,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		Logger:          appLogger,
	})

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
