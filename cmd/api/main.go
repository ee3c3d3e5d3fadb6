package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-coach-go/internal/app"
	"sales-coach-go/internal/config"
	"sales-coach-go/internal/logger"
	"sales-coach-go/internal/server"
)

func main() {
	cfg, err := config.Load() // loads .env
	log := logger.New()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.WithField("service", "sales-coach-go").
		WithField("environment", cfg.Environment).
		WithField("mock_llm", cfg.UseMockLLM).
		WithField("mock_transcribe", cfg.UseMockTranscribe).
		Info("starting service")

	pipeline := app.New(cfg, log)

	// load the model before the first request rather than on it
	go func() {
		log.WithField("llm", pipeline.Status(context.Background())).Info("generation backend ready")
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.NewHandler(pipeline),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server terminated")
	}
	log.Info("server stopped")
}
