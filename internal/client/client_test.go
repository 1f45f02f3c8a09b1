package client

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gobert4/ultrawatchtogether/internal/config"
	"github.com/Gobert4/ultrawatchtogether/internal/server"
	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
)

// newTestRelay starts a full relay and returns its ws:// URL.
func newTestRelay(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Default()
	hub := signaling.NewHub(signaling.Config{}, signaling.NewRoomStore(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	srv := httptest.NewServer(server.NewRouter(cfg, hub, logger))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})

	return "ws" + srv.URL[len("http"):] + "/ws"
}

// dialSession connects, starts the demux and waits for the hello.
func dialSession(t *testing.T, wsURL string) (*Client, *Handler, string) {
	t.Helper()

	c := NewClient(wsURL)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(c.Close)

	h := NewHandler(c)
	go h.Start()

	select {
	case id := <-h.Hello:
		return c, h, id
	case <-time.After(2 * time.Second):
		t.Fatal("no hello frame")
	}
	return nil, nil, ""
}

func join(c *Client, roomID string, role signaling.Role, name string) {
	c.Send(&signaling.Message{Type: signaling.TypeJoin, RoomID: roomID, Role: role, Name: name})
}

func waitJoined(t *testing.T, h *Handler) *JoinInfo {
	t.Helper()
	select {
	case info := <-h.Joined:
		return info
	case msg := <-h.Errors:
		t.Fatalf("join rejected: %s", msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no joined frame")
	}
	return nil
}

func TestConnectReceivesHello(t *testing.T) {
	wsURL := newTestRelay(t)

	_, _, id := dialSession(t, wsURL)
	if id == "" {
		t.Error("hello carried an empty identifier")
	}
}

func TestHostViewerChat(t *testing.T) {
	wsURL := newTestRelay(t)

	hostClient, hostHandler, _ := dialSession(t, wsURL)
	join(hostClient, "e2e-room", signaling.RoleHost, "Alice")
	hostInfo := waitJoined(t, hostHandler)

	if hostInfo.Role != signaling.RoleHost {
		t.Errorf("host ack role = %q, want host", hostInfo.Role)
	}
	if hostInfo.Roster == nil || len(hostInfo.Roster.Viewers) != 0 {
		t.Errorf("host ack roster = %+v, want empty", hostInfo.Roster)
	}

	viewerClient, viewerHandler, viewerID := dialSession(t, wsURL)
	join(viewerClient, "e2e-room", signaling.RoleViewer, "Bob")
	viewerInfo := waitJoined(t, viewerHandler)

	if viewerInfo.HostID == "" {
		t.Error("viewer ack missing host id")
	}
	if viewerInfo.Roster == nil || viewerInfo.Roster.Host == nil {
		t.Fatalf("viewer ack roster = %+v, want host entry", viewerInfo.Roster)
	}
	if viewerInfo.Roster.Host.Name != "Alice" {
		t.Errorf("roster host name = %q, want Alice", viewerInfo.Roster.Host.Name)
	}

	select {
	case member := <-hostHandler.ViewerJoined:
		if member.ID != viewerID || member.Name != "Bob" {
			t.Errorf("viewer_joined = %+v, want {%s Bob}", member, viewerID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("host did not observe the viewer join")
	}

	viewerClient.Send(&signaling.Message{Type: signaling.TypeChat, Message: "hi"})

	for _, h := range []*Handler{hostHandler, viewerHandler} {
		select {
		case ev := <-h.Chat:
			if ev.From != viewerID || ev.Message != "hi" || ev.Name != "Bob" {
				t.Errorf("chat event = %+v, want hi from %s", ev, viewerID)
			}
			if ev.Ts == 0 {
				t.Error("chat event missing timestamp")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("chat frame not delivered")
		}
	}
}

func TestViewerObservesHostLeft(t *testing.T) {
	wsURL := newTestRelay(t)

	hostClient, hostHandler, _ := dialSession(t, wsURL)
	join(hostClient, "hostdrop", signaling.RoleHost, "")
	waitJoined(t, hostHandler)

	viewerClient, viewerHandler, _ := dialSession(t, wsURL)
	join(viewerClient, "hostdrop", signaling.RoleViewer, "")
	waitJoined(t, viewerHandler)

	select {
	case <-hostHandler.ViewerJoined:
	case <-time.After(2 * time.Second):
		t.Fatal("host did not observe the viewer join")
	}

	hostClient.Close()

	select {
	case msg := <-viewerHandler.HostLeft:
		if msg == "" {
			t.Error("host_left carried no message")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not observe host_left")
	}

	select {
	case <-viewerHandler.Disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("viewer connection was not closed after host_left")
	}
}

func TestJoinRejectionSurfacesError(t *testing.T) {
	wsURL := newTestRelay(t)

	c, h, _ := dialSession(t, wsURL)
	join(c, "nobody-home", signaling.RoleViewer, "")

	select {
	case msg := <-h.Errors:
		if msg == "" {
			t.Error("error frame carried no message")
		}
	case info := <-h.Joined:
		t.Fatalf("join unexpectedly accepted: %+v", info)
	case <-time.After(2 * time.Second):
		t.Fatal("no error frame")
	}
}
