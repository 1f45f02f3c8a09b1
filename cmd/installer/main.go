// Installer is a tiny standalone service that serves the uwt install
// script, so `curl -fsSL https://get.example.com | sh` works from a
// short, stable URL.
package main

import (
	"embed"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Gobert4/ultrawatchtogether/internal/version"
)

//go:embed install.sh
var installScript embed.FS

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("installer " + version.String() + " is healthy\n"))
	})

	// Every other path serves the script, so the short URL works with
	// and without a trailing path.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		script, err := installScript.ReadFile("install.sh")
		if err != nil {
			logger.Error("reading install.sh", "error", err)
			http.Error(w, "script not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/x-sh; charset=utf-8")
		w.Header().Set("Content-Disposition", "inline; filename=\"install.sh\"")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if _, err := w.Write(script); err != nil {
			logger.Error("writing response", "error", err)
		}
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting installer service", "addr", *addr, "version", version.String())
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
