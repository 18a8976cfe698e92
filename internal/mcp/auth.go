package mcp

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
)

// Server-defined JSON-RPC codes for rejected HTTP requests.
const (
	CodeUnauthorized = -32001
	CodeForbidden    = -32003
)

// NewAuthMiddleware guards the HTTP transport. Without a token only loopback
// callers are served. With a token, callers must come from loopback or an
// allowlisted CIDR and present it as a bearer token.
func NewAuthMiddleware(token, allowlist string) func(http.Handler) http.Handler {
	guard := &authMiddleware{token: strings.TrimSpace(token), allowed: parseAllowlist(allowlist)}
	return guard.wrap
}

type authMiddleware struct {
	token   string
	allowed []*net.IPNet
}

func (m *authMiddleware) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := parseRemoteIP(r.RemoteAddr)

		if m.token == "" {
			if ip == nil || !ip.IsLoopback() {
				writeJSON(w, WriteError(nil, CodeForbidden, "request IP not allowed", nil), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if !m.isAllowed(ip) {
			writeJSON(w, WriteError(nil, CodeForbidden, "request IP not allowed", nil), http.StatusForbidden)
			return
		}

		const bearerPrefix = "Bearer "
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			writeJSON(w, WriteError(nil, CodeUnauthorized, "missing or invalid bearer token", nil), http.StatusUnauthorized)
			return
		}

		provided := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.token)) != 1 {
			writeJSON(w, WriteError(nil, CodeUnauthorized, "invalid bearer token", nil), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *authMiddleware) isAllowed(ip net.IP) bool {
	if ip == nil {
		return false
	}
	if ip.IsLoopback() {
		return true
	}
	for _, network := range m.allowed {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func parseRemoteIP(remoteAddr string) net.IP {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(remoteAddr)
}

func parseAllowlist(raw string) []*net.IPNet {
	var networks []*net.IPNet
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			continue
		}
		networks = append(networks, network)
	}
	return networks
}
