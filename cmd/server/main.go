package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signinsheet/config"
	"signinsheet/internal/adapters/qr"
	delivery "signinsheet/internal/delivery/http"
	"signinsheet/internal/delivery/http/controllers"
	"signinsheet/internal/delivery/http/middleware"
	"signinsheet/internal/delivery/http/web"
	"signinsheet/internal/repository/filestore"
	"signinsheet/internal/services"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	store, err := filestore.New(cfg.DataDir, logger)
	if err != nil {
		logger.Error("failed to open data dir", "dir", cfg.DataDir, "err", err)
		os.Exit(1)
	}

	links := qr.NewLinks(cfg.BaseURL)
	renderer := qr.Renderer{}

	eventService := services.NewEventService(store, links, renderer)
	signInService := services.NewSignInService(store)
	adminService := services.NewAdminService(store, links, renderer, cfg.AdminKey)

	eventController := controllers.NewEventController(logger, eventService)
	signInController := controllers.NewSignInController(logger, signInService)
	adminController := controllers.NewAdminController(logger, adminService)

	pages, err := web.NewPages(logger, eventService, adminService, links)
	if err != nil {
		logger.Error("failed to initialize pages", "err", err)
		os.Exit(1)
	}

	mux := delivery.NewRouter(eventController, signInController, adminController, pages)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.Logging(logger, mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "data_dir", cfg.DataDir, "base_url", cfg.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		logger.Error("server error", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down server", "err", err)
	}
	logger.Info("shutdown complete")
}
