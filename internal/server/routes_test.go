package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Gobert4/ultrawatchtogether/internal/config"
	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
)

func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *signaling.Hub) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := signaling.NewHub(signaling.Config{}, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(NewRouter(cfg, hub, logger))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return srv, hub
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) signaling.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg signaling.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read message: %v", err)
	}
	return msg
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.Default())

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "healthy") {
		t.Errorf("body = %q, want health notice", body)
	}
}

func TestTokenEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.Default())

	resp, err := http.Get(srv.URL + "/api/token")
	if err != nil {
		t.Fatalf("GET /api/token: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		RoomID string `json:"roomId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !regexp.MustCompile(`^[a-z]+-[a-z]+-\d{2}$`).MatchString(payload.RoomID) {
		t.Errorf("roomId = %q, want adjective-noun-NN", payload.RoomID)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = true
	srv, _ := newTestServer(t, cfg)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "relay_connections_active") {
		t.Error("metrics exposition missing relay gauges")
	}
}

func TestMetricsDisabledByDefault(t *testing.T) {
	srv, _ := newTestServer(t, config.Default())

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when metrics are off", resp.StatusCode)
	}
}

func TestStaticMountServesRoomLinks(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>watch</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	cfg := config.Default()
	cfg.Server.StaticDir = dir
	srv, _ := newTestServer(t, cfg)

	for _, path := range []string{"/", "/r/brave-otter-42"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
		if !strings.Contains(string(body), "watch") {
			t.Errorf("GET %s body = %q, want index content", path, body)
		}
	}
}

func TestWebsocketSession(t *testing.T) {
	srv, hub := newTestServer(t, config.Default())

	host := dialWS(t, srv)
	defer host.Close()

	hello := readMessage(t, host)
	if hello.Type != signaling.TypeHello || hello.ID == "" {
		t.Fatalf("hello = %+v", hello)
	}

	if err := host.WriteJSON(signaling.Message{
		Type: signaling.TypeJoin, RoomID: "abc1", Role: signaling.RoleHost, Name: "Host",
	}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	joined := readMessage(t, host)
	if joined.Type != signaling.TypeJoined || joined.RoomID != "abc1" {
		t.Fatalf("joined = %+v", joined)
	}
	if joined.Roster == nil || joined.Roster.Host != nil || len(joined.Roster.Viewers) != 0 {
		t.Fatalf("first joiner roster = %+v, want empty", joined.Roster)
	}

	viewer := dialWS(t, srv)
	defer viewer.Close()

	vHello := readMessage(t, viewer)
	if err := viewer.WriteJSON(signaling.Message{
		Type: signaling.TypeJoin, RoomID: "abc1", Name: "Ben",
	}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	vJoined := readMessage(t, viewer)
	if vJoined.Type != signaling.TypeJoined || vJoined.HostID != hello.ID {
		t.Fatalf("viewer joined = %+v, want hostId %s", vJoined, hello.ID)
	}

	notice := readMessage(t, host)
	if notice.Type != signaling.TypeViewerJoined || notice.ViewerID != vHello.ID {
		t.Fatalf("host notice = %+v, want viewer_joined", notice)
	}
	readMessage(t, host) // system broadcast

	if err := viewer.WriteJSON(signaling.Message{
		Type: signaling.TypeChat, Message: "hi",
	}); err != nil {
		t.Fatalf("write chat: %v", err)
	}
	for _, conn := range []*websocket.Conn{host, viewer} {
		chat := readMessage(t, conn)
		if chat.Type != signaling.TypeChat || chat.From != vHello.ID || chat.Message != "hi" {
			t.Fatalf("chat = %+v, want hi from viewer", chat)
		}
		if chat.Ts == 0 {
			t.Error("chat.Ts not set")
		}
	}

	// Host drops; the viewer hears about it and is disconnected.
	host.Close()
	left := readMessage(t, viewer)
	if left.Type != signaling.TypeHostLeft {
		t.Fatalf("viewer got %q, want host_left", left.Type)
	}
	viewer.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := viewer.ReadMessage(); err == nil {
		t.Error("viewer connection should be closed after host departure")
	}

	waitForRoomGone(t, hub, "abc1")
}

func TestWebsocketMalformedKeepsConnection(t *testing.T) {
	srv, _ := newTestServer(t, config.Default())

	conn := dialWS(t, srv)
	defer conn.Close()
	readMessage(t, conn) // hello

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	errMsg := readMessage(t, conn)
	if errMsg.Type != signaling.TypeError || !strings.Contains(errMsg.Message, "malformed") {
		t.Fatalf("reply = %+v, want malformed error", errMsg)
	}

	// Still usable afterwards.
	if err := conn.WriteJSON(signaling.Message{
		Type: signaling.TypeJoin, RoomID: "recovery", Role: signaling.RoleHost,
	}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	if joined := readMessage(t, conn); joined.Type != signaling.TypeJoined {
		t.Errorf("follow-up join reply = %q, want joined", joined.Type)
	}
}

func TestWebsocketViewerNeedsHost(t *testing.T) {
	srv, _ := newTestServer(t, config.Default())

	conn := dialWS(t, srv)
	defer conn.Close()
	readMessage(t, conn) // hello

	if err := conn.WriteJSON(signaling.Message{
		Type: signaling.TypeJoin, RoomID: "empty-room",
	}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	errMsg := readMessage(t, conn)
	if errMsg.Type != signaling.TypeError || !strings.Contains(errMsg.Message, "no live host") {
		t.Fatalf("reply = %+v, want no-host error", errMsg)
	}
}

// waitForRoomGone polls the store until the room disappears. Teardown
// finishes asynchronously relative to the last frame a member reads.
func waitForRoomGone(t *testing.T, hub *signaling.Hub, roomID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Store().Has(roomID) {
		if time.Now().After(deadline) {
			t.Fatalf("room %s still in store", roomID)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
