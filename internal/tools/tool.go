// Package tools implements the SMS-Activate MCP tool catalog.
package tools

import (
	"context"
	"encoding/json"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
	"github.com/smsactivate/mcp-sms-activate/internal/smsactivate"
)

// Vendor is the subset of the SMS-Activate client the tools call.
type Vendor interface {
	GetBalance(ctx context.Context) (smsactivate.Balance, error)
	GetNumbersStatus(ctx context.Context, country *int, operator string) (smsactivate.Outcome, error)
	GetTopCountriesByService(ctx context.Context, service string) (smsactivate.Outcome, error)
	GetOperators(ctx context.Context, country int) (smsactivate.Outcome, error)
	GetNumber(ctx context.Context, req smsactivate.ActivationRequest) (smsactivate.Activation, error)
	SetStatus(ctx context.Context, id string, status int) (string, error)
	GetStatus(ctx context.Context, id string) (smsactivate.Status, error)
	GetActiveActivations(ctx context.Context) (smsactivate.Outcome, error)
	GetActivationHistory(ctx context.Context) (smsactivate.Outcome, error)
	GetPrices(ctx context.Context, country *int, service string) (smsactivate.Outcome, error)
	GetCountries(ctx context.Context) (smsactivate.Outcome, error)
	GetServices(ctx context.Context) (smsactivate.Outcome, error)

	GetEmailDomains(ctx context.Context, site string) (json.RawMessage, error)
	PurchaseEmail(ctx context.Context, site, mailDomain string) (json.RawMessage, error)
	GetEmailStatus(ctx context.Context, id int64) (json.RawMessage, error)
	CancelEmail(ctx context.Context, id int64) error
	ReorderEmail(ctx context.Context, id int64) (json.RawMessage, error)
}

// Tool is what every constructor in this package returns. It satisfies mcp.Tool.
type Tool interface {
	Descriptor() protocol.ToolDescriptor
	Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error)
}

var _ Tool = (*tool)(nil)

// tool pairs a descriptor with a handler that receives raw JSON arguments.
type tool struct {
	desc protocol.ToolDescriptor
	run  func(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error)
}

func (t *tool) Descriptor() protocol.ToolDescriptor {
	return t.desc
}

// Invoke validates raw against the declared schema before the handler runs, so a
// rejected call never reaches the vendor.
func (t *tool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	return t.run(ctx, raw)
}

func newTool[A any](desc protocol.ToolDescriptor, fn func(ctx context.Context, args A) (protocol.CallResult, error)) *tool {
	return &tool{
		desc: desc,
		run: func(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
			var args A
			if err := decodeArgs(desc.Name, desc.InputSchema, raw, &args); err != nil {
				return protocol.CallResult{}, err
			}
			return fn(ctx, args)
		},
	}
}

type noArgs struct{}

// dump renders a legacy outcome as indented JSON.
func dump(out smsactivate.Outcome, err error) (protocol.CallResult, error) {
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.JSONResult(out.Value()), nil
}

func dumpRaw(raw json.RawMessage, err error) (protocol.CallResult, error) {
	if err != nil {
		return protocol.CallResult{}, err
	}
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	return protocol.JSONResult(raw), nil
}
