package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

const maxBodySize = 1 << 20

// NewHTTPHandler serves one JSON-RPC request per POST to the root path and a
// liveness probe on /health. guard, when set, wraps the RPC endpoint only.
func NewHTTPHandler(server *Server, guard func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var rpc http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req protocol.Request
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
			writeJSON(w, WriteError(nil, protocol.CodeParseError, "invalid JSON", nil), http.StatusBadRequest)
			return
		}

		resp, ok := server.Handle(r.Context(), req)
		if !ok {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		writeJSON(w, resp, http.StatusOK)
	})
	if guard != nil {
		rpc = guard(rpc)
	}
	mux.Handle("/", rpc)
	return mux
}

// RunHTTP listens on addr until ctx is cancelled, then shuts down gracefully.
func RunHTTP(ctx context.Context, handler http.Handler, addr string, logger *logrus.Entry) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("HTTP MCP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down HTTP MCP server")
	return srv.Shutdown(shutdownCtx)
}

func writeJSON(w http.ResponseWriter, resp protocol.Response, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}
