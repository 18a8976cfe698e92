// Package app wires configuration, the vendor client and the tool catalog into
// an MCP server.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/smsactivate/mcp-sms-activate/internal/config"
	"github.com/smsactivate/mcp-sms-activate/internal/mcp"
	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
	"github.com/smsactivate/mcp-sms-activate/internal/services"
	"github.com/smsactivate/mcp-sms-activate/internal/smsactivate"
	"github.com/smsactivate/mcp-sms-activate/internal/tools"
	"github.com/smsactivate/mcp-sms-activate/internal/version"
)

// ServerName is reported to clients during initialize.
const ServerName = "mcp-sms-activate"

// NewToolbox builds the SMS-Activate MCP toolbox.
func NewToolbox(v tools.Vendor, names *services.Map) *mcp.Toolbox {
	return mcp.NewToolbox(
		// Account
		tools.GetBalance(v),

		// Number availability
		tools.GetNumbersStatus(v),
		tools.GetTopCountries(v),
		tools.GetOperators(v),

		// Activations
		tools.RequestNumber(v, names),
		tools.SetStatus(v),
		tools.GetStatus(v),
		tools.GetActiveActivations(v),
		tools.GetActivationHistory(v),

		// Reference data
		tools.GetPrices(v),
		tools.GetCountries(v),
		tools.GetServices(v),

		// Email activations
		tools.GetEmailDomains(v),
		tools.PurchaseEmail(v),
		tools.GetEmailStatus(v),
		tools.CancelEmail(v),
		tools.ReorderEmail(v),
	)
}

// App holds a ready-to-serve MCP server.
type App struct {
	cfg    config.Config
	server *mcp.Server
	logger *logrus.Entry
}

// New validates cfg and builds the vendor client, the service table and the
// server. Any error here is fatal to startup.
func New(cfg config.Config, logger *logrus.Entry) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard.WithField("component", ServerName)
	}

	names, err := services.Load(cfg.ServicesFile)
	if err != nil {
		return nil, fmt.Errorf("load service table: %w", err)
	}

	client := smsactivate.NewClient(cfg.APIKey, cfg.BaseURL,
		smsactivate.WithLogger(logger.WithField("component", "smsactivate")))

	tb := NewToolbox(client, names).WithLogger(logger.WithField("component", "toolbox"))
	info := protocol.ServerInfo{Name: ServerName, Version: version.Get().Version}

	logger.WithFields(logrus.Fields{
		"base_url": client.BaseURL(),
		"tools":    tb.Len(),
		"services": names.Len(),
	}).Info("server ready")

	return &App{cfg: cfg, server: mcp.NewServer(tb, info), logger: logger}, nil
}

// Server returns the MCP server.
func (a *App) Server() *mcp.Server {
	return a.server
}

// RunStdio serves the protocol on r and w until r is exhausted.
func (a *App) RunStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	a.logger.WithField("max_concurrency", a.cfg.MaxConcurrency).Info("serving MCP over stdio")
	return mcp.RunStdio(ctx, a.server, r, w, a.cfg.MaxConcurrency)
}

// HTTPHandler returns the guarded HTTP transport handler.
func (a *App) HTTPHandler() http.Handler {
	return mcp.NewHTTPHandler(a.server, mcp.NewAuthMiddleware(a.cfg.HTTPToken, a.cfg.HTTPAllowlist))
}

// RunHTTP serves the protocol over HTTP until ctx is cancelled.
func (a *App) RunHTTP(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.cfg.HTTPAddr
	}
	return mcp.RunHTTP(ctx, a.HTTPHandler(), addr, a.logger)
}
