package main

import (
	"log/slog"
	"os"

	"github.com/Gobert4/ultrawatchtogether/internal/cli"
)

func main() {
	initLogging()
	cli.Execute()
}

// initLogging keeps the terminal quiet unless LOG_LEVEL asks for more.
func initLogging() {
	level := slog.LevelError

	if l, ok := os.LookupEnv("LOG_LEVEL"); ok {
		switch l {
		case "dev", "development", "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn", "warning":
			level = slog.LevelWarn
		case "error", "production", "prod":
			level = slog.LevelError
		}
	}

	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}),
	)
	slog.SetDefault(logger)
}
