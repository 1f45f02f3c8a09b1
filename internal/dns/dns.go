package dns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// Fallback resolvers queried when the system resolver fails. Captive
// portals and broken stub resolvers are common on the networks people
// host watch parties from.
var fallbackServers = []string{
	"1.1.1.1",                // Cloudflare
	"1.0.0.1",                // Cloudflare
	"[2606:4700:4700::1111]", // Cloudflare
	"8.8.8.8",                // Google
	"8.8.4.4",                // Google
	"[2001:4860:4860::8888]", // Google
	"9.9.9.9",                // Quad9
	"149.112.112.112",        // Quad9
}

// Lookup resolves host to a single IP address, trying the system
// resolver first and racing the public fallback servers if it fails.
// IP literals are returned unchanged.
func Lookup(host string) (string, error) {
	if net.ParseIP(host) != nil {
		return host, nil
	}

	if ip, err := systemLookup(host); err == nil {
		return ip, nil
	}

	slog.Debug("system resolver failed, racing fallback servers", "host", host)
	return raceLookup(host)
}

// DialContext resolves the host portion of addr through Lookup and
// dials the result. It matches the signature expected by
// net.Dialer-style hooks on websocket.Dialer and http.Transport.
func DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}

	ip, err := Lookup(host)
	if err != nil {
		return nil, fmt.Errorf("dns lookup failed: %w", err)
	}

	var d net.Dialer
	return d.DialContext(ctx, network, net.JoinHostPort(ip, port))
}

func systemLookup(host string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var r net.Resolver
	addrs, err := r.LookupHost(ctx, host)
	if err != nil {
		return "", err
	}
	return pickAddr(addrs)
}

// raceLookup queries every fallback server concurrently and returns
// the first usable answer.
func raceLookup(host string) (string, error) {
	type result struct {
		ip  string
		err error
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	results := make(chan result, len(fallbackServers))
	for _, server := range fallbackServers {
		go func(server string) {
			ip, err := queryServer(ctx, host, server)
			results <- result{ip: ip, err: err}
		}(server)
	}

	for range fallbackServers {
		select {
		case res := <-results:
			if res.err == nil {
				return res.ip, nil
			}
		case <-ctx.Done():
			return "", errors.New("dns fallback race timed out")
		}
	}

	return "", fmt.Errorf("failed to resolve %s: all fallback servers failed", host)
}

// queryServer asks one specific DNS server for host.
func queryServer(ctx context.Context, host, server string) (string, error) {
	r := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, net.JoinHostPort(server, "53"))
		},
	}

	addrs, err := r.LookupHost(ctx, host)
	if err != nil {
		return "", err
	}
	return pickAddr(addrs)
}

// pickAddr prefers an IPv4 answer, falling back to whatever came first.
func pickAddr(addrs []string) (string, error) {
	if len(addrs) == 0 {
		return "", errors.New("no addresses returned")
	}
	for _, addr := range addrs {
		if net.ParseIP(addr).To4() != nil {
			return addr, nil
		}
	}
	return addrs[0], nil
}
