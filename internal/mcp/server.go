package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

// ProtocolVersion is the MCP revision this server implements.
const ProtocolVersion = "2024-11-05"

// Server handles MCP JSON-RPC requests against a toolbox.
type Server struct {
	toolbox *Toolbox
	info    protocol.ServerInfo
}

// NewServer wires a toolbox into an MCP server.
func NewServer(tb *Toolbox, info protocol.ServerInfo) *Server {
	return &Server{toolbox: tb, info: info}
}

// Toolbox returns the server's toolbox.
func (s *Server) Toolbox() *Toolbox {
	return s.toolbox
}

// Handle routes a single request. The boolean is false for notifications, which
// must not be answered.
func (s *Server) Handle(ctx context.Context, req protocol.Request) (protocol.Response, bool) {
	if req.IsNotification() {
		return protocol.Response{}, false
	}
	id := normalizeID(req.ID)

	if err := validateJSONRPC(req); err != nil {
		return protocol.Response{JSONRPC: "2.0", ID: id, Error: err}, true
	}

	switch req.Method {
	case "initialize":
		return protocol.Response{JSONRPC: "2.0", ID: id, Result: protocol.InitializeResult{
			ProtocolVersion: ProtocolVersion,
			ServerInfo:      s.info,
			Capabilities: map[string]any{
				"tools": map[string]any{},
			},
		}}, true
	case "ping":
		return protocol.Response{JSONRPC: "2.0", ID: id, Result: struct{}{}}, true
	case "tools/list":
		return protocol.Response{JSONRPC: "2.0", ID: id, Result: protocol.ListResult{Tools: s.toolbox.Describe()}}, true
	case "tools/call":
		var params protocol.CallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return protocol.Response{JSONRPC: "2.0", ID: id, Error: &protocol.ResponseError{Code: protocol.CodeInvalidParams, Message: "invalid params"}}, true
		}
		if strings.TrimSpace(params.Name) == "" {
			return protocol.Response{JSONRPC: "2.0", ID: id, Error: &protocol.ResponseError{Code: protocol.CodeInvalidParams, Message: "tool name required"}}, true
		}
		return protocol.Response{JSONRPC: "2.0", ID: id, Result: s.toolbox.Call(ctx, params.Name, params.Args)}, true
	default:
		return protocol.Response{JSONRPC: "2.0", ID: id, Error: &protocol.ResponseError{Code: protocol.CodeMethodNotFound, Message: "method not found: " + req.Method}}, true
	}
}

// WriteError builds a response with an error and wraps encode issues.
func WriteError(id any, code int, message string, err error) protocol.Response {
	detail := message
	if err != nil {
		detail = fmt.Sprintf("%s: %v", message, err)
	}
	return protocol.Response{JSONRPC: "2.0", ID: normalizeID(id), Error: &protocol.ResponseError{Code: code, Message: detail}}
}

func validateJSONRPC(req protocol.Request) *protocol.ResponseError {
	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		return &protocol.ResponseError{Code: protocol.CodeInvalidRequest, Message: "invalid jsonrpc version"}
	}
	return nil
}

func normalizeID(id any) any {
	switch v := id.(type) {
	case nil:
		return nil
	case string, float64, json.Number:
		return v
	case int, int32, int64, uint32, uint64:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
