package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Gobert4/ultrawatchtogether/internal/config"
	"github.com/Gobert4/ultrawatchtogether/internal/server"
	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
	"github.com/Gobert4/ultrawatchtogether/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	addr := flag.String("addr", "", "listen address override")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("uwt-relay " + version.String())
		return
	}

	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	// Set up structured logging
	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting relay",
		"version", version.Version,
		"commit", version.Commit,
		"addr", cfg.Server.Addr,
	)

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := signaling.NewRoomStore()
	hub := signaling.NewHub(signaling.Config{
		ProbeInterval:  cfg.Signaling.ProbeInterval,
		WriteTimeout:   cfg.Signaling.WriteTimeout,
		SendBuffer:     cfg.Signaling.SendBuffer,
		MaxMessageSize: cfg.Signaling.MaxMessageSize,
		MaxChatLen:     cfg.Signaling.MaxChatLen,
		MaxNameLen:     cfg.Signaling.MaxNameLen,
	}, store, logger)
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewRouter(cfg, hub, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}
	logger.Info("relay stopped")
}

// newLogger builds the process logger from the log section.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
