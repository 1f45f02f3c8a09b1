package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/Gobert4/ultrawatchtogether/internal/config"
	"github.com/Gobert4/ultrawatchtogether/internal/metrics"
	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
	"github.com/Gobert4/ultrawatchtogether/internal/version"
)

// Configure the websocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  64 * 1024, // 64 KB
	WriteBufferSize: 64 * 1024, // 64 KB

	// Accept any origin. Room access is arbitrated by the join rules,
	// not by the browser origin.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs returns an http.HandlerFunc that handles websocket requests.
// It takes the hub as a dependency.
func ServeWs(hub *signaling.Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		client := hub.NewClient(conn)

		// Register before the pumps start so the hello frame carries
		// the assigned identifier ahead of any other traffic.
		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}

// handleToken allocates a short, shareable room token that no live
// room is currently using.
func handleToken(store *signaling.RoomStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := signaling.NewRoomToken()
		for i := 0; i < 5 && store.Has(token); i++ {
			token = signaling.NewRoomToken()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"roomId": token})
	}
}

// handleHealth reports process health.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("relay " + version.String() + " is healthy\n"))
}

// NewRouter wires up all HTTP routes, middleware, and handlers.
func NewRouter(cfg *config.Config, hub *signaling.Hub, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/token", handleToken(hub.Store())).Methods(http.MethodGet)
	r.HandleFunc("/ws", ServeWs(hub, logger))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, metrics.Handler()).Methods(http.MethodGet)
	}

	// Optional front-end mount; everything unmatched falls through to
	// the static tree. Shared room links are client-side routes, so
	// they get the index page.
	if cfg.Server.StaticDir != "" {
		index := filepath.Join(cfg.Server.StaticDir, "index.html")
		r.PathPrefix("/r/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, index)
		})
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.Server.StaticDir)))
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}
