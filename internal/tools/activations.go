package tools

import (
	"context"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

// SetStatus changes the state of an activation.
func SetStatus(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "set_status",
		Description: "Change activation status",
		InputSchema: protocol.ObjectSchema(map[string]protocol.JSONSchema{
			"activationId": {Type: "string", Description: "Activation ID"},
			"status":       {Type: "integer", Description: "Status code: 1=report SMS sent, 3=request another code, 6=complete activation, 8=cancel activation"},
		}, "activationId", "status"),
	}
	type args struct {
		ActivationID string `json:"activationId"`
		Status       int    `json:"status"`
	}
	return newTool(desc, func(ctx context.Context, a args) (protocol.CallResult, error) {
		ack, err := v.SetStatus(ctx, a.ActivationID, a.Status)
		if err != nil {
			return protocol.CallResult{}, err
		}
		return protocol.TextResult("Status updated: " + ack), nil
	})
}

// GetStatus reports the state of an activation and the SMS code once delivered.
func GetStatus(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_status",
		Description: "Get activation status and SMS code",
		InputSchema: protocol.ObjectSchema(map[string]protocol.JSONSchema{
			"activationId": {Type: "string", Description: "Activation ID"},
		}, "activationId"),
	}
	type args struct {
		ActivationID string `json:"activationId"`
	}
	return newTool(desc, func(ctx context.Context, a args) (protocol.CallResult, error) {
		st, err := v.GetStatus(ctx, a.ActivationID)
		if err != nil {
			return protocol.CallResult{}, err
		}
		msg := "Status: " + st.Label()
		if st.Code != "" {
			msg += "\nCode: " + st.Code
		}
		return protocol.TextResult(msg), nil
	})
}

// GetActiveActivations lists open activations.
func GetActiveActivations(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_active_activations",
		Description: "Get list of active activations",
		InputSchema: protocol.ObjectSchema(nil),
	}
	return newTool(desc, func(ctx context.Context, _ noArgs) (protocol.CallResult, error) {
		return dump(v.GetActiveActivations(ctx))
	})
}

// GetActivationHistory lists past activations.
func GetActivationHistory(v Vendor) Tool {
	desc := protocol.ToolDescriptor{
		Name:        "get_activation_history",
		Description: "Get activation history",
		InputSchema: protocol.ObjectSchema(nil),
	}
	return newTool(desc, func(ctx context.Context, _ noArgs) (protocol.CallResult, error) {
		return dump(v.GetActivationHistory(ctx))
	})
}
