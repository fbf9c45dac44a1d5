package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/examprep/internal/app"
	"github.com/existflow/examprep/internal/config"
	"github.com/existflow/examprep/internal/db"
	"github.com/existflow/examprep/internal/logger"
	"github.com/existflow/examprep/internal/streak"
	"github.com/existflow/examprep/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	if err := logger.Init(logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		FilePath:   cfg.LogFile,
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,
		MaxBackups: 5,
		Console:    true,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.OpenStore(cfg.Storage, cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	sess, err := app.Open(ctx, store, streak.RealClock{})
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	srv := server.New(sess, server.Options{ReminderHour: cfg.ReminderHour})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", logger.F("error", err))
		}
	}()

	logger.Info("ExamPrep server starting", logger.F("addr", cfg.ServerAddr), logger.F("storage", cfg.Storage))
	if err := srv.Start(cfg.ServerAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", logger.F("error", err))
		os.Exit(1)
	}
	logger.Info("ExamPrep server stopped")
}
