package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielpva/bgsds-watch/app/api"
	"github.com/danielpva/bgsds-watch/app/cfg"
	"github.com/danielpva/bgsds-watch/app/config"
	"github.com/danielpva/bgsds-watch/app/notify"
	"github.com/danielpva/bgsds-watch/app/scheduler"
	"github.com/danielpva/bgsds-watch/app/state"
	"github.com/danielpva/bgsds-watch/app/watcher"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)
	slog.Info("Starting bgsds-watch", "version", appCfg.Version)

	watchConfig, err := config.NewLoader(appCfg.ConfigFile).Load()
	if err != nil {
		slog.Error("Failed to load watch configuration", "path", appCfg.ConfigFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Watch configuration loaded",
		"url", watchConfig.URL,
		"marker", watchConfig.Marker,
		"keywords", len(watchConfig.Keywords))

	store, sqliteStore, closeStore, err := buildStore(appCfg)
	if err != nil {
		slog.Error("Failed to initialize state store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var recorder state.RunRecorder
	if sqliteStore != nil {
		recorder = sqliteStore
	}

	httpClient := &http.Client{}
	notifier := notify.NewTelegramClient(httpClient, appCfg.TelegramToken, appCfg.TelegramChatID,
		watchConfig.Settings.GetNotifyTimeout(), watchConfig.Settings.DisableLinkPreview)

	w, err := watcher.New(watchConfig, httpClient, store, recorder, notifier,
		appCfg.UserAgent, appCfg.NotifyOnError)
	if err != nil {
		slog.Error("Failed to initialize watcher", "error", err)
		os.Exit(1)
	}

	if !appCfg.Watch {
		report := w.Run(context.Background())
		if report.Outcome == watcher.OutcomeError {
			os.Exit(1)
		}
		return
	}

	runWatchMode(appCfg, w, store, sqliteStore)
}

func runWatchMode(appCfg *cfg.Cfg, w *watcher.Watcher, store state.Store, sqliteStore *state.SQLiteStore) {
	status := scheduler.NewStatus()

	var history api.RunHistory
	if sqliteStore != nil {
		history = sqliteStore
	}

	checkScheduler := scheduler.NewScheduler(w, status,
		time.Duration(appCfg.WatchInterval)*time.Second)
	checkScheduler.Start()
	defer checkScheduler.Stop()

	server := api.NewServer(api.NewHandler(status, store, history, appCfg.Version))
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP status server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Watch mode started", "interval_seconds", appCfg.WatchInterval)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

func buildStore(appCfg *cfg.Cfg) (state.Store, *state.SQLiteStore, func(), error) {
	switch appCfg.StateBackend {
	case "sqlite":
		sqliteStore, err := state.NewSQLiteStore(appCfg.StateDBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return sqliteStore, sqliteStore, func() { sqliteStore.Close() }, nil
	default:
		return state.NewFileStore(appCfg.StateFile), nil, func() {}, nil
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
