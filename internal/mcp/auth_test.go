package mcp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

func guarded(token, allowlist string) http.Handler {
	return NewAuthMiddleware(token, allowlist)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func serve(h http.Handler, remote, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = remote
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) int {
	t.Helper()
	var resp protocol.Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == nil {
		t.Fatalf("expected error body, got %s", rr.Body.String())
	}
	return resp.Error.Code
}

func TestAuthWithoutTokenAllowsLoopbackOnly(t *testing.T) {
	h := guarded("", "10.0.0.0/8")

	if rr := serve(h, "127.0.0.1:1234", ""); rr.Code != http.StatusOK {
		t.Fatalf("expected loopback to pass, got %d", rr.Code)
	}
	if rr := serve(h, "[::1]:1234", ""); rr.Code != http.StatusOK {
		t.Fatalf("expected ipv6 loopback to pass, got %d", rr.Code)
	}

	rr := serve(h, "10.1.2.3:1234", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", rr.Code)
	}
	if code := errorCode(t, rr); code != CodeForbidden {
		t.Fatalf("expected forbidden code, got %d", code)
	}
}

func TestAuthWrongToken(t *testing.T) {
	h := guarded("secret", "")

	rr := serve(h, "127.0.0.1:1234", "Bearer nope")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if code := errorCode(t, rr); code != CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %d", code)
	}

	if rr := serve(h, "127.0.0.1:1234", "secret"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer prefix, got %d", rr.Code)
	}
}

func TestAuthAllowlist(t *testing.T) {
	h := guarded("secret", "10.0.0.0/8, not-a-cidr")

	if rr := serve(h, "10.4.5.6:1234", "Bearer secret"); rr.Code != http.StatusOK {
		t.Fatalf("expected allowlisted ip to pass, got %d", rr.Code)
	}
	if rr := serve(h, "203.0.113.9:1234", "Bearer secret"); rr.Code != http.StatusForbidden {
		t.Fatalf("expected foreign ip to be rejected, got %d", rr.Code)
	}
	if rr := serve(h, "garbage", "Bearer secret"); rr.Code != http.StatusForbidden {
		t.Fatalf("expected unparsable remote to be rejected, got %d", rr.Code)
	}
}

func TestAuthLoopbackWithToken(t *testing.T) {
	h := guarded("secret", "")
	if rr := serve(h, "127.0.0.1:1234", "Bearer secret"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
