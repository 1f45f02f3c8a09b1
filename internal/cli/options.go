package cli

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
)

// DefaultServer is the relay address used when neither the flag nor
// the environment names one.
const DefaultServer = "localhost:8080"

const (
	envServer = "UWT_SERVER"
	envName   = "UWT_NAME"
)

// serverValue resolves the relay address with flag > env > default
// precedence.
func serverValue(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv(envServer); v != "" {
		return v
	}
	return DefaultServer
}

// nameValue resolves the display name with flag > env precedence. An
// empty result lets the relay pick a role-based default.
func nameValue(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return os.Getenv(envName)
}

// Endpoints holds the derived relay URLs.
type Endpoints struct {
	WS   string
	HTTP string
}

// ResolveEndpoints normalizes a relay address into websocket and HTTP
// base URLs. Bare hosts default to TLS, loopback hosts to plaintext.
func ResolveEndpoints(server string) (*Endpoints, error) {
	raw := strings.TrimSuffix(server, "/")
	if raw == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}

	if !strings.Contains(raw, "://") {
		if isLoopback(raw) {
			raw = "http://" + raw
		} else {
			raw = "https://" + raw
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	var wsScheme, httpScheme string
	switch u.Scheme {
	case "ws", "http":
		wsScheme, httpScheme = "ws", "http"
	case "wss", "https":
		wsScheme, httpScheme = "wss", "https"
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("server address %q has no host", server)
	}

	return &Endpoints{
		WS:   wsScheme + "://" + u.Host + "/ws",
		HTTP: httpScheme + "://" + u.Host,
	}, nil
}

// TokenURL is the token allocation endpoint.
func (e *Endpoints) TokenURL() string {
	return e.HTTP + "/api/token"
}

// RoomLink is the shareable browser URL for a room.
func (e *Endpoints) RoomLink(roomID string) string {
	return e.HTTP + "/r/" + roomID
}

func isLoopback(hostport string) bool {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// parseRoomInput accepts either a bare room identifier or a shared
// room link and returns the identifier.
func parseRoomInput(input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("room id cannot be empty")
	}

	if strings.Contains(input, "://") || strings.Contains(input, ".") {
		return extractRoomID(input)
	}

	return input, nil
}

// extractRoomID pulls the identifier out of a /r/<room> link.
func extractRoomID(urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse room link: %w", err)
	}

	path := strings.TrimSuffix(parsed.Path, "/")
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "r" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}

	return "", fmt.Errorf("could not extract a room id from %q", urlStr)
}
