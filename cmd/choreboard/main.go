package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mtlahti/choreboard/internal/config"
	"github.com/mtlahti/choreboard/internal/logging"
	"github.com/mtlahti/choreboard/internal/server"
	"github.com/mtlahti/choreboard/internal/store/memory"
	"github.com/mtlahti/choreboard/internal/store/persist"
	"github.com/mtlahti/choreboard/internal/week"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	adapter, err := openAdapter(cfg)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	if adapter != nil {
		defer adapter.Close()
	}

	st, err := memory.Open(adapter, logger.With("component", "store"))
	if err != nil {
		logger.Error("failed to load store", "error", err)
		os.Exit(1)
	}

	srv := server.New(st, server.Config{
		VAPIDPublicKey:  cfg.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.VAPIDPrivateKey,
		ReminderHour:    cfg.ReminderHour,
		Backup:          cfg.Backup,
	}, logger)

	// Seed well-known content keys and the current week's plans so the first
	// page load always has records to show.
	if err := srv.Contents().SeedDefaults(); err != nil {
		logger.Error("seed content", "error", err)
		os.Exit(1)
	}
	if err := srv.DayPlans().EnsureDates(week.Dates(time.Now())); err != nil {
		logger.Error("seed week", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	srv.BackupManager().Start(bgCtx)
	if sched := srv.PushScheduler(); sched != nil {
		sched.Start(bgCtx)
	}

	// Background cleanup goroutine
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := srv.Sessions().DeleteExpired(); n > 0 {
					logger.Info("cleaned up expired sessions", "count", n)
				}
				srv.RateLimiter().Cleanup()
			case <-bgCtx.Done():
				return
			}
		}
	}()

	go func() {
		logger.Info("choreboard starting", "addr", ":"+cfg.Port, "storage", cfg.Storage)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	bgCancel()
	srv.BackupManager().Stop()
	if sched := srv.PushScheduler(); sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// openAdapter selects the snapshot backend. Memory storage runs with no
// adapter at all; nothing survives a restart.
func openAdapter(cfg *config.Config) (persist.Adapter, error) {
	switch cfg.Storage {
	case config.StorageFiles:
		return persist.NewFiles(cfg.DataDir)
	case config.StorageSQLite:
		return persist.OpenSQLite(cfg.DBPath)
	default:
		return nil, nil
	}
}
